// internal/services/authorization_service.go
package services

import (
	"github.com/google/uuid"

	"github.com/hotelist/hotelist-backend/internal/apperrors"
	"github.com/hotelist/hotelist-backend/internal/models"
)

// Actor is the trusted identity produced by the auth middleware. Credential
// validation happens before this layer; here only role and ownership matter.
type Actor struct {
	ID   uuid.UUID
	Role models.UserRole
}

// AuthorizationService maps (actor role, action, resource ownership) to
// allow/deny. Denials are Forbidden errors, kept distinct from precondition
// failures (InvalidTransition) and missing resources (NotFound).
type AuthorizationService struct{}

func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

var adminOnlyActions = map[models.AuditAction]bool{
	models.AuditActionApprove: true,
	models.AuditActionReject:  true,
	models.AuditActionPublish: true,
	models.AuditActionOffline: true,
	models.AuditActionRestore: true,
}

var merchantActions = map[models.AuditAction]bool{
	models.AuditActionCreate: true,
	models.AuditActionUpdate: true,
	models.AuditActionSubmit: true,
}

// Authorize decides whether the actor may request the action on the hotel.
// hotel is nil for CREATE (no resource exists yet).
func (s *AuthorizationService) Authorize(actor Actor, action models.AuditAction, hotel *models.Hotel) error {
	switch {
	case adminOnlyActions[action]:
		if actor.Role != models.UserRoleAdmin {
			return apperrors.Forbidden("only administrators may " + string(action) + " hotels")
		}
		return nil

	case merchantActions[action]:
		if actor.Role != models.UserRoleMerchant {
			return apperrors.Forbidden("only merchants may " + string(action) + " hotels")
		}
		if hotel != nil && hotel.MerchantID != actor.ID {
			return apperrors.Forbidden("hotel belongs to another merchant")
		}
		return nil

	default:
		return apperrors.Forbidden("unknown action " + string(action))
	}
}

// CanView reports read access. actor is nil for unauthenticated callers, who
// only ever see PUBLISHED hotels.
func (s *AuthorizationService) CanView(actor *Actor, hotel *models.Hotel) bool {
	if actor != nil {
		if actor.Role == models.UserRoleAdmin {
			return true
		}
		if actor.Role == models.UserRoleMerchant && hotel.MerchantID == actor.ID {
			return true
		}
	}
	return hotel.Status == models.HotelStatusPublished
}
