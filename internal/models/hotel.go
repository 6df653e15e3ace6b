// internal/models/hotel.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Hotel is the aggregate root of a merchant listing. MerchantID is fixed at
// creation; sub-collections share the hotel's lifetime and are replaced
// wholesale on edit. AuditLogs are append-only.
type Hotel struct {
	BaseModel
	MerchantID uuid.UUID `json:"merchant_id" gorm:"type:uuid;not null;index"`

	NameCn     string     `json:"name_cn" gorm:"size:255;not null"`
	NameEn     string     `json:"name_en,omitempty" gorm:"size:255"`
	Address    string     `json:"address" gorm:"size:500;not null"`
	StarRating int        `json:"star_rating" gorm:"not null"`
	OpenDate   *time.Time `json:"open_date,omitempty"`

	Currency      string `json:"currency" gorm:"size:8;default:'CNY'"`
	MinPriceCents *int64 `json:"min_price_cents,omitempty"`
	MaxPriceCents *int64 `json:"max_price_cents,omitempty"`

	Status            HotelStatus  `json:"status" gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	RejectReason      *string      `json:"reject_reason,omitempty" gorm:"type:text"`
	PublishedAt       *time.Time   `json:"published_at,omitempty"`
	OfflineAt         *time.Time   `json:"offline_at,omitempty"`
	OfflineFromStatus *HotelStatus `json:"offline_from_status,omitempty" gorm:"type:varchar(20)"`

	// Relationships
	Merchant     User            `json:"merchant,omitempty" gorm:"foreignKey:MerchantID"`
	RoomTypes    []RoomType      `json:"room_types,omitempty" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
	NearbyPlaces []NearbyPlace   `json:"nearby_places,omitempty" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
	Discounts    []Discount      `json:"discounts,omitempty" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
	AuditLogs    []AuditLogEntry `json:"audit_logs,omitempty" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
}

// EffectiveMinPriceCents is the price surfaced on search cards: the
// hotel-level minimum when set, otherwise the cheapest room type, otherwise 0.
func (h *Hotel) EffectiveMinPriceCents() int64 {
	if h.MinPriceCents != nil {
		return *h.MinPriceCents
	}
	var min *int64
	for i := range h.RoomTypes {
		p := h.RoomTypes[i].BasePriceCents
		if min == nil || p < *min {
			min = &p
		}
	}
	if min != nil {
		return *min
	}
	return 0
}

type RoomType struct {
	BaseModel
	HotelID        uuid.UUID `json:"hotel_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	BedType        string    `json:"bed_type,omitempty" gorm:"size:100"`
	Capacity       *int      `json:"capacity,omitempty"`
	AreaSqm        *float64  `json:"area_sqm,omitempty"`
	BasePriceCents int64     `json:"base_price_cents" gorm:"not null"`
	Currency       string    `json:"currency" gorm:"size:8"`
}

type NearbyPlace struct {
	BaseModel
	HotelID        uuid.UUID       `json:"hotel_id" gorm:"type:uuid;not null;index"`
	Type           NearbyPlaceType `json:"type" gorm:"type:varchar(20);not null"`
	Name           string          `json:"name" gorm:"size:255;not null"`
	DistanceMeters *int            `json:"distance_meters,omitempty"`
	Address        string          `json:"address,omitempty" gorm:"size:500"`
}

// Discount is a promotional rule. Exactly one value slot is populated
// according to Type: PercentOff for PERCENT_OFF, AmountOffCents for
// AMOUNT_OFF_CENTS.
type Discount struct {
	BaseModel
	HotelID        uuid.UUID    `json:"hotel_id" gorm:"type:uuid;not null;index"`
	Type           DiscountType `json:"type" gorm:"type:varchar(20);not null"`
	Title          string       `json:"title" gorm:"size:255;not null"`
	Description    string       `json:"description,omitempty" gorm:"type:text"`
	StartDate      *time.Time   `json:"start_date,omitempty"`
	EndDate        *time.Time   `json:"end_date,omitempty"`
	PercentOff     *int         `json:"percent_off,omitempty"`
	AmountOffCents *int64       `json:"amount_off_cents,omitempty"`
	IsActive       bool         `json:"is_active" gorm:"default:true"`
}

// EffectiveAt reports whether the discount applies at the given instant.
func (d *Discount) EffectiveAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}
