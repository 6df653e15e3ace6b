// internal/models/common.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the primary key in the application instead of the
// database so the same models run under postgres and the sqlite test driver.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Enums
type UserRole string

const (
	UserRoleMerchant UserRole = "MERCHANT"
	UserRoleAdmin    UserRole = "ADMIN"
)

type HotelStatus string

const (
	HotelStatusDraft     HotelStatus = "DRAFT"
	HotelStatusSubmitted HotelStatus = "SUBMITTED"
	HotelStatusApproved  HotelStatus = "APPROVED"
	HotelStatusRejected  HotelStatus = "REJECTED"
	HotelStatusPublished HotelStatus = "PUBLISHED"
	HotelStatusOffline   HotelStatus = "OFFLINE"
)

// NormalizeStatus maps any casing variant of a status token to the canonical
// upper-case enum. Lower-case values are a legacy client artifact and get
// folded here at the boundary so nothing downstream branches on string case.
func NormalizeStatus(raw string) (HotelStatus, bool) {
	switch HotelStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case HotelStatusDraft:
		return HotelStatusDraft, true
	case HotelStatusSubmitted:
		return HotelStatusSubmitted, true
	case HotelStatusApproved:
		return HotelStatusApproved, true
	case HotelStatusRejected:
		return HotelStatusRejected, true
	case HotelStatusPublished:
		return HotelStatusPublished, true
	case HotelStatusOffline:
		return HotelStatusOffline, true
	}
	return "", false
}

type NearbyPlaceType string

const (
	NearbyPlaceTypeAttraction NearbyPlaceType = "ATTRACTION"
	NearbyPlaceTypeTransport  NearbyPlaceType = "TRANSPORT"
	NearbyPlaceTypeMall       NearbyPlaceType = "MALL"
)

type DiscountType string

const (
	DiscountTypePercentOff DiscountType = "PERCENT_OFF"
	DiscountTypeAmountOff  DiscountType = "AMOUNT_OFF_CENTS"
)

type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionSubmit  AuditAction = "SUBMIT"
	AuditActionApprove AuditAction = "APPROVE"
	AuditActionReject  AuditAction = "REJECT"
	AuditActionPublish AuditAction = "PUBLISH"
	AuditActionOffline AuditAction = "OFFLINE"
	AuditActionRestore AuditAction = "RESTORE"
)
