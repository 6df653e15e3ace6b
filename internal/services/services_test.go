// internal/services/services_test.go
package services

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hotelist/hotelist-backend/internal/database"
	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/ws"
)

// setupTestDB opens a throwaway in-memory database and runs the real
// migrations against it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{Username: username, Role: role}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

type recordedEvent struct {
	Topic string
	Event ws.Event
}

// recordingSink captures notifications instead of delivering them.
type recordingSink struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (s *recordingSink) Publish(topic string, event ws.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, recordedEvent{Topic: topic, Event: event})
}

func (s *recordingSink) all() []recordedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]recordedEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *recordingSink) last() (recordedEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return recordedEvent{}, false
	}
	return s.events[len(s.events)-1], true
}

func sampleHotelRequest() *HotelUpsertRequest {
	return &HotelUpsertRequest{
		NameCn:     "山景酒店",
		NameEn:     "Mountain View Hotel",
		Address:    "上海市浦东区世纪大道100号",
		StarRating: 4,
		RoomTypes: []RoomTypeInput{
			{Name: "标准间", BasePriceCents: 39900},
			{Name: "大床房", BasePriceCents: 49900},
		},
		NearbyPlaces: []NearbyPlaceInput{
			{Type: "ATTRACTION", Name: "东方明珠", DistanceMeters: intPtr(800)},
			{Type: "TRANSPORT", Name: "陆家嘴地铁站", DistanceMeters: intPtr(300)},
		},
		Discounts: []DiscountInput{
			{Type: "PERCENT_OFF", Title: "早鸟优惠", PercentOff: intPtr(15)},
		},
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
