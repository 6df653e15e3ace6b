// internal/services/admin_service.go
package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelist/hotelist-backend/internal/lifecycle"
	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/ws"
)

// AdminService owns the review and visibility gates: approve/reject,
// publish/offline/restore.
type AdminService struct {
	db    *gorm.DB
	authz *AuthorizationService
	sink  ws.Sink
}

func NewAdminService(db *gorm.DB, authz *AuthorizationService, sink ws.Sink) *AdminService {
	return &AdminService{db: db, authz: authz, sink: sink}
}

type ReviewDecision struct {
	Result string `json:"result" validate:"required,oneof=APPROVE REJECT"`
	Reason string `json:"reason,omitempty"`
}

// ReviewHotel applies an APPROVE or REJECT decision to a SUBMITTED hotel.
// Rejection requires a non-empty reason; approval clears any previous one.
func (s *AdminService) ReviewHotel(hotelID uuid.UUID, actor Actor, decision ReviewDecision) (*models.Hotel, error) {
	action := models.AuditActionApprove
	if decision.Result == "REJECT" {
		action = models.AuditActionReject
	}

	if err := s.authz.Authorize(actor, action, nil); err != nil {
		return nil, err
	}

	return runTransition(s.db, s.sink, hotelID, actor.ID, lifecycle.Request{
		Action: action,
		Reason: decision.Reason,
	})
}

func (s *AdminService) PublishHotel(hotelID uuid.UUID, actor Actor) (*models.Hotel, error) {
	if err := s.authz.Authorize(actor, models.AuditActionPublish, nil); err != nil {
		return nil, err
	}

	return runTransition(s.db, s.sink, hotelID, actor.ID, lifecycle.Request{
		Action: models.AuditActionPublish,
		Now:    time.Now(),
	})
}

func (s *AdminService) OfflineHotel(hotelID uuid.UUID, actor Actor) (*models.Hotel, error) {
	if err := s.authz.Authorize(actor, models.AuditActionOffline, nil); err != nil {
		return nil, err
	}

	return runTransition(s.db, s.sink, hotelID, actor.ID, lifecycle.Request{
		Action: models.AuditActionOffline,
		Now:    time.Now(),
	})
}

func (s *AdminService) RestoreHotel(hotelID uuid.UUID, actor Actor) (*models.Hotel, error) {
	if err := s.authz.Authorize(actor, models.AuditActionRestore, nil); err != nil {
		return nil, err
	}

	return runTransition(s.db, s.sink, hotelID, actor.ID, lifecycle.Request{
		Action: models.AuditActionRestore,
	})
}
