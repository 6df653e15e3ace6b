// internal/models/audit_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogEntry is an immutable record of an action taken against a hotel.
// Entries are only ever appended; creation order is the audit trail.
type AuditLogEntry struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	HotelID    uuid.UUID   `json:"hotel_id" gorm:"type:uuid;not null;index"`
	OperatorID uuid.UUID   `json:"operator_id" gorm:"type:uuid;not null"`
	Action     AuditAction `json:"action" gorm:"type:varchar(20);not null"`
	Note       string      `json:"note,omitempty" gorm:"type:text"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (e *AuditLogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
