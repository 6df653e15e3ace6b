// internal/models/hotel_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestEffectiveMinPriceCents(t *testing.T) {
	t.Run("hotel level price wins", func(t *testing.T) {
		h := &Hotel{
			MinPriceCents: int64Ptr(29900),
			RoomTypes:     []RoomType{{BasePriceCents: 19900}},
		}
		assert.Equal(t, int64(29900), h.EffectiveMinPriceCents())
	})

	t.Run("cheapest room type otherwise", func(t *testing.T) {
		h := &Hotel{
			RoomTypes: []RoomType{
				{BasePriceCents: 49900},
				{BasePriceCents: 39900},
			},
		}
		assert.Equal(t, int64(39900), h.EffectiveMinPriceCents())
	})

	t.Run("zero when nothing is priced", func(t *testing.T) {
		assert.Equal(t, int64(0), (&Hotel{}).EffectiveMinPriceCents())
	})
}

func TestDiscountEffectiveAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name     string
		discount Discount
		want     bool
	}{
		{"active without window", Discount{IsActive: true}, true},
		{"inactive", Discount{IsActive: false}, false},
		{"inside window", Discount{IsActive: true, StartDate: &before, EndDate: &after}, true},
		{"not started", Discount{IsActive: true, StartDate: &after}, false},
		{"already ended", Discount{IsActive: true, EndDate: &before}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.discount.EffectiveAt(now))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	for raw, want := range map[string]HotelStatus{
		"DRAFT":        HotelStatusDraft,
		"draft":        HotelStatusDraft,
		" Published ":  HotelStatusPublished,
		"offline":      HotelStatusOffline,
	} {
		got, ok := NormalizeStatus(raw)
		assert.True(t, ok, "%q should normalize", raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "ARCHIVED", "publishedd"} {
		_, ok := NormalizeStatus(raw)
		assert.False(t, ok, "%q should not normalize", raw)
	}
}
