// internal/services/search_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hotelist/hotelist-backend/internal/apperrors"
	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/utils"
)

func TestParseYMDDate(t *testing.T) {
	_, ok := parseYMDDate("2026-03-01")
	assert.True(t, ok)

	_, ok = parseYMDDate(" 2026-03-01 ")
	assert.True(t, ok)

	for _, bad := range []string{"", "2026/03/01", "03-01-2026", "2026-13-01", "yesterday"} {
		_, ok := parseYMDDate(bad)
		assert.False(t, ok, "%q should not parse", bad)
	}
}

func TestHotelMatchesKeyword(t *testing.T) {
	hotel := &models.Hotel{
		NameCn:  "山景酒店",
		NameEn:  "Mountain View Hotel",
		Address: "上海市浦东区",
		NearbyPlaces: []models.NearbyPlace{
			{Name: "东方明珠"},
		},
	}

	assert.True(t, hotelMatchesKeyword(hotel, "山景"))
	assert.True(t, hotelMatchesKeyword(hotel, "Mountain"))
	assert.True(t, hotelMatchesKeyword(hotel, "浦东"))
	assert.True(t, hotelMatchesKeyword(hotel, "明珠"))

	// Matching is substring and case-sensitive.
	assert.False(t, hotelMatchesKeyword(hotel, "mountain"))
	assert.False(t, hotelMatchesKeyword(hotel, "海景"))
}

func TestHotelMatchesTags(t *testing.T) {
	hotel := &models.Hotel{
		NameCn:  "山景酒店",
		Address: "上海市浦东区",
		NearbyPlaces: []models.NearbyPlace{
			{Name: "陆家嘴地铁站"},
		},
		Discounts: []models.Discount{
			{Title: "早鸟优惠", Description: "提前七天预订"},
		},
	}

	// Every tag must match somewhere; a single miss fails the hotel.
	assert.True(t, hotelMatchesTags(hotel, nil))
	assert.True(t, hotelMatchesTags(hotel, []string{"山景"}))
	assert.True(t, hotelMatchesTags(hotel, []string{"山景", "地铁", "早鸟"}))
	assert.True(t, hotelMatchesTags(hotel, []string{"提前七天"}))
	assert.False(t, hotelMatchesTags(hotel, []string{"山景", "泳池"}))
}

func TestSortByVisibility(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	early, late := base, base.Add(48*time.Hour)

	hotels := []models.Hotel{
		{NameCn: "never published", BaseModel: models.BaseModel{UpdatedAt: base.Add(time.Hour)}},
		{NameCn: "published early", PublishedAt: &early},
		{NameCn: "published late", PublishedAt: &late},
		{NameCn: "never published recent", BaseModel: models.BaseModel{UpdatedAt: base.Add(2 * time.Hour)}},
	}

	sortByVisibility(hotels)

	assert.Equal(t, "published late", hotels[0].NameCn)
	assert.Equal(t, "published early", hotels[1].NameCn)
	assert.Equal(t, "never published recent", hotels[2].NameCn)
	assert.Equal(t, "never published", hotels[3].NameCn)
}

func TestBuildResultItem(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)

	hotel := &models.Hotel{
		BaseModel:  models.BaseModel{ID: uuid.New()},
		NameCn:     "山景酒店",
		Address:    "上海市浦东区",
		StarRating: 4,
		NearbyPlaces: []models.NearbyPlace{
			{Name: "东方明珠", DistanceMeters: intPtr(800)},
			{Name: "陆家嘴地铁站", DistanceMeters: intPtr(300)},
			{Name: "无距离信息"},
		},
		Discounts: []models.Discount{
			{Title: "早鸟优惠", IsActive: true},
			{Title: "已过期", IsActive: true, EndDate: &past},
			{Title: "东方明珠", IsActive: true}, // duplicate of a nearby name
		},
		RoomTypes: []models.RoomType{
			{Name: "标准间", BasePriceCents: 39900},
			{Name: "大床房", BasePriceCents: 49900},
		},
		AuditLogs: []models.AuditLogEntry{{}, {}, {}},
	}

	item := buildResultItem(hotel, now)

	assert.Equal(t, hotel.ID.String(), item.HotelID)
	assert.Equal(t, "山景酒店", item.HotelName)
	// Nearby closest-first, unknown distances last, then effective discount
	// titles with duplicates and expired ones dropped.
	assert.Equal(t, []string{"陆家嘴地铁站", "东方明珠", "无距离信息", "早鸟优惠"}, item.Tags)
	assert.Equal(t, int64(39900), item.MinPrice)
	assert.Equal(t, 4.0, item.Score)
	assert.Equal(t, 3, item.CommentCount)
}

func TestBuildResultItemHotelLevelPriceWins(t *testing.T) {
	hotel := &models.Hotel{
		BaseModel:     models.BaseModel{ID: uuid.New()},
		NameCn:        "江景酒店",
		MinPriceCents: int64Ptr(29900),
		RoomTypes: []models.RoomType{
			{Name: "标准间", BasePriceCents: 39900},
		},
	}

	item := buildResultItem(hotel, time.Now())
	assert.Equal(t, int64(29900), item.MinPrice)
}

func seedSearchHotel(t *testing.T, db *gorm.DB, merchantID uuid.UUID, status models.HotelStatus, nameCn, address string) *models.Hotel {
	t.Helper()

	hotel := &models.Hotel{
		MerchantID: merchantID,
		NameCn:     nameCn,
		Address:    address,
		StarRating: 4,
		Currency:   "CNY",
		Status:     status,
		RoomTypes: []models.RoomType{
			{Name: "标准间", BasePriceCents: 39900, Currency: "CNY"},
		},
	}
	require.NoError(t, db.Create(hotel).Error)
	return hotel
}

func TestSearchPublicHotels(t *testing.T) {
	db := setupTestDB(t)
	merchant := createTestUser(t, db, "merchant1", models.UserRoleMerchant)
	svc := NewSearchService(db)

	seedSearchHotel(t, db, merchant.ID, models.HotelStatusApproved, "山景酒店", "上海市浦东区")
	seedSearchHotel(t, db, merchant.ID, models.HotelStatusApproved, "江景酒店", "上海市黄浦区")
	// Out of search scope: only reviewed-and-approved inventory is searchable.
	seedSearchHotel(t, db, merchant.ID, models.HotelStatusDraft, "草稿酒店", "上海市静安区")
	seedSearchHotel(t, db, merchant.ID, models.HotelStatusSubmitted, "待审酒店", "上海市徐汇区")

	base := SearchRequest{
		City:         "上海",
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-03",
	}

	t.Run("city scope", func(t *testing.T) {
		result, err := svc.SearchPublicHotels(base)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Total)
	})

	t.Run("keyword narrows", func(t *testing.T) {
		req := base
		req.Keyword = "山景"
		result, err := svc.SearchPublicHotels(req)
		require.NoError(t, err)
		require.Equal(t, 1, result.Total)
		assert.Equal(t, "山景酒店", result.List[0].HotelName)
	})

	t.Run("keyword misses", func(t *testing.T) {
		req := base
		req.Keyword = "海景"
		result, err := svc.SearchPublicHotels(req)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Total)
		assert.NotNil(t, result.List)
	})

	t.Run("tags are anded", func(t *testing.T) {
		req := base
		req.Tags = []string{"山景", "浦东"}
		result, err := svc.SearchPublicHotels(req)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)

		req.Tags = []string{"山景", "黄浦"}
		result, err = svc.SearchPublicHotels(req)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Total)
	})

	t.Run("unknown city", func(t *testing.T) {
		req := base
		req.City = "亚特兰蒂斯"
		_, err := svc.SearchPublicHotels(req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCityNotSupported))
	})

	t.Run("same day stay is invalid", func(t *testing.T) {
		req := base
		req.CheckOutDate = req.CheckInDate
		_, err := svc.SearchPublicHotels(req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadDateRange))
	})

	t.Run("inverted dates are invalid", func(t *testing.T) {
		req := base
		req.CheckInDate, req.CheckOutDate = req.CheckOutDate, req.CheckInDate
		_, err := svc.SearchPublicHotels(req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadDateRange))
	})

	t.Run("missing city", func(t *testing.T) {
		req := base
		req.City = ""
		_, err := svc.SearchPublicHotels(req)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidationFailed))
	})
}

func TestListPublishedHotels(t *testing.T) {
	db := setupTestDB(t)
	merchant := createTestUser(t, db, "merchant1", models.UserRoleMerchant)
	svc := NewSearchService(db)

	early := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(24 * time.Hour)

	h1 := seedSearchHotel(t, db, merchant.ID, models.HotelStatusPublished, "第一家", "北京市朝阳区")
	require.NoError(t, db.Model(h1).Update("published_at", early).Error)
	h2 := seedSearchHotel(t, db, merchant.ID, models.HotelStatusPublished, "第二家", "北京市海淀区")
	require.NoError(t, db.Model(h2).Update("published_at", late).Error)
	seedSearchHotel(t, db, merchant.ID, models.HotelStatusApproved, "未发布", "北京市西城区")

	result, err := svc.ListPublishedHotels(utils.ClampPagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	cards, ok := result.Items.([]PublicHotelCard)
	require.True(t, ok)
	require.Len(t, cards, 2)
	assert.Equal(t, "第二家", cards[0].NameCn)
	assert.Equal(t, "第一家", cards[1].NameCn)
}

func TestGetPublishedHotel(t *testing.T) {
	db := setupTestDB(t)
	merchant := createTestUser(t, db, "merchant1", models.UserRoleMerchant)
	svc := NewSearchService(db)

	published := seedSearchHotel(t, db, merchant.ID, models.HotelStatusPublished, "可见", "广州市天河区")
	hidden := seedSearchHotel(t, db, merchant.ID, models.HotelStatusApproved, "不可见", "广州市越秀区")

	hotel, err := svc.GetPublishedHotel(published.ID)
	require.NoError(t, err)
	assert.Equal(t, "可见", hotel.NameCn)
	assert.Len(t, hotel.RoomTypes, 1)

	// An unpublished hotel is indistinguishable from a missing one.
	_, err = svc.GetPublishedHotel(hidden.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.GetPublishedHotel(uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
