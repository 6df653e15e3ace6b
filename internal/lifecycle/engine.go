// internal/lifecycle/engine.go

// Package lifecycle implements the hotel status state machine as pure data
// transitions. It answers "is this action legal from the current status" and
// "what changes and side effects does it produce", leaving who-may-ask checks
// to the authorization gate and persistence to the services. The same rules
// therefore serve the HTTP surface and any batch/administrative tooling.
package lifecycle

import (
	"strings"
	"time"

	"github.com/hotelist/hotelist-backend/internal/apperrors"
	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/ws"
)

// Websocket event names emitted per transition.
const (
	EventUpdated   = "hotel:updated"
	EventSubmitted = "hotel:submitted"
	EventReviewed  = "hotel:reviewed"
	EventPublished = "hotel:published"
	EventOffline   = "hotel:offline"
	EventRestored  = "hotel:restored"
)

// Request names the attempted transition. Reason is required for REJECT,
// Now stamps PUBLISH/OFFLINE timestamps.
type Request struct {
	Action models.AuditAction
	Reason string
	Now    time.Time
}

// Effects describes the side effects a successful transition requires:
// exactly one audit entry, and one fire-and-forget notification.
type Effects struct {
	AuditAction models.AuditAction
	AuditNote   string
	Topic       string
	EventName   string
}

// EditableStatuses are the statuses in which the owning merchant may replace
// hotel fields and sub-collections.
var EditableStatuses = []models.HotelStatus{models.HotelStatusDraft, models.HotelStatusRejected}

// SubmittableStatuses are the statuses from which a merchant may (re)submit
// for review.
var SubmittableStatuses = []models.HotelStatus{
	models.HotelStatusDraft,
	models.HotelStatusRejected,
	models.HotelStatusOffline,
}

func statusIn(status models.HotelStatus, set []models.HotelStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// EnsureEditable fails with InvalidTransition unless the hotel is in a
// merchant-editable status. An update keeps the current status: a REJECTED
// hotel stays REJECTED until it is explicitly resubmitted.
func EnsureEditable(h *models.Hotel) error {
	if !statusIn(h.Status, EditableStatuses) {
		return apperrors.InvalidTransition(string(models.AuditActionUpdate), string(h.Status))
	}
	return nil
}

// Apply validates the requested transition against the hotel's current
// status, mutates the hotel to its resulting state and returns the required
// side effects. On any error the hotel is left untouched.
func Apply(h *models.Hotel, req Request) (Effects, error) {
	switch req.Action {
	case models.AuditActionSubmit:
		return submit(h)
	case models.AuditActionApprove:
		return approve(h)
	case models.AuditActionReject:
		return reject(h, req.Reason)
	case models.AuditActionPublish:
		return publish(h, req.Now)
	case models.AuditActionOffline:
		return takeOffline(h, req.Now)
	case models.AuditActionRestore:
		return restore(h)
	default:
		return Effects{}, apperrors.InvalidTransition(string(req.Action), string(h.Status))
	}
}

func submit(h *models.Hotel) (Effects, error) {
	if !statusIn(h.Status, SubmittableStatuses) {
		return Effects{}, apperrors.InvalidTransition(string(models.AuditActionSubmit), string(h.Status))
	}
	// Minimal completeness bar, deliberately permissive: full field coverage
	// is the reviewer's job.
	if strings.TrimSpace(h.NameCn) == "" || strings.TrimSpace(h.Address) == "" {
		return Effects{}, apperrors.ValidationFailed("hotel name and address are required before submitting for review")
	}
	if len(h.RoomTypes) < 1 {
		return Effects{}, apperrors.ValidationFailed("at least one room type is required before submitting for review")
	}

	h.Status = models.HotelStatusSubmitted
	h.RejectReason = nil
	return Effects{
		AuditAction: models.AuditActionSubmit,
		AuditNote:   "merchant submit",
		Topic:       ws.AdminTopic,
		EventName:   EventSubmitted,
	}, nil
}

func approve(h *models.Hotel) (Effects, error) {
	if h.Status != models.HotelStatusSubmitted {
		return Effects{}, apperrors.InvalidTransition(string(models.AuditActionApprove), string(h.Status))
	}

	h.Status = models.HotelStatusApproved
	h.RejectReason = nil
	return Effects{
		AuditAction: models.AuditActionApprove,
		AuditNote:   "approve",
		Topic:       ws.UserTopic(h.MerchantID),
		EventName:   EventReviewed,
	}, nil
}

func reject(h *models.Hotel, reason string) (Effects, error) {
	if h.Status != models.HotelStatusSubmitted {
		return Effects{}, apperrors.InvalidTransition(string(models.AuditActionReject), string(h.Status))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Effects{}, apperrors.ValidationFailed("a rejection reason is required")
	}

	h.Status = models.HotelStatusRejected
	h.RejectReason = &reason
	return Effects{
		AuditAction: models.AuditActionReject,
		AuditNote:   reason,
		Topic:       ws.UserTopic(h.MerchantID),
		EventName:   EventReviewed,
	}, nil
}

func publish(h *models.Hotel, now time.Time) (Effects, error) {
	if h.Status != models.HotelStatusApproved && h.Status != models.HotelStatusOffline {
		return Effects{}, apperrors.InvalidTransition(string(models.AuditActionPublish), string(h.Status))
	}

	h.Status = models.HotelStatusPublished
	// First publish stamps the timestamp; republishing after an offline spell
	// keeps the original one.
	if h.PublishedAt == nil {
		h.PublishedAt = &now
	}
	h.OfflineAt = nil
	h.OfflineFromStatus = nil
	return Effects{
		AuditAction: models.AuditActionPublish,
		AuditNote:   "publish",
		Topic:       ws.UserTopic(h.MerchantID),
		EventName:   EventPublished,
	}, nil
}

func takeOffline(h *models.Hotel, now time.Time) (Effects, error) {
	if h.Status != models.HotelStatusPublished {
		return Effects{}, apperrors.InvalidTransition(string(models.AuditActionOffline), string(h.Status))
	}

	from := h.Status
	h.OfflineFromStatus = &from
	h.Status = models.HotelStatusOffline
	h.OfflineAt = &now
	return Effects{
		AuditAction: models.AuditActionOffline,
		AuditNote:   "offline",
		Topic:       ws.UserTopic(h.MerchantID),
		EventName:   EventOffline,
	}, nil
}

func restore(h *models.Hotel) (Effects, error) {
	if h.Status != models.HotelStatusOffline {
		return Effects{}, apperrors.InvalidTransition(string(models.AuditActionRestore), string(h.Status))
	}

	// OFFLINE is only reachable from PUBLISHED under the current rules, but
	// the bookkeeping field is nullable, so fall back to PUBLISHED.
	restoreTo := models.HotelStatusPublished
	if h.OfflineFromStatus != nil {
		restoreTo = *h.OfflineFromStatus
	}

	h.Status = restoreTo
	h.OfflineAt = nil
	h.OfflineFromStatus = nil
	return Effects{
		AuditAction: models.AuditActionRestore,
		AuditNote:   "restore to " + string(restoreTo),
		Topic:       ws.UserTopic(h.MerchantID),
		EventName:   EventRestored,
	}, nil
}
