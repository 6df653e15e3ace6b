// internal/services/transition.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hotelist/hotelist-backend/internal/apperrors"
	"github.com/hotelist/hotelist-backend/internal/database"
	"github.com/hotelist/hotelist-backend/internal/lifecycle"
	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/ws"
)

// runTransition executes one lifecycle transition atomically: it reads the
// hotel, lets the engine compute the resulting state, then applies it with a
// guarded update keyed on the status it observed. When two requests race,
// the loser's guard matches zero rows and it fails with InvalidTransition
// against the now-current status instead of double-applying.
func runTransition(db *gorm.DB, sink ws.Sink, hotelID uuid.UUID, operatorID uuid.UUID, req lifecycle.Request) (*models.Hotel, error) {
	var hotel models.Hotel
	var effects lifecycle.Effects

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		if err := tx.Preload("RoomTypes").First(&hotel, "id = ?", hotelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("hotel")
			}
			return apperrors.Unexpected("failed to load hotel", err)
		}

		observedStatus := hotel.Status

		var applyErr error
		effects, applyErr = lifecycle.Apply(&hotel, req)
		if applyErr != nil {
			return applyErr
		}

		updates := map[string]interface{}{
			"status":              hotel.Status,
			"reject_reason":       hotel.RejectReason,
			"published_at":        hotel.PublishedAt,
			"offline_at":          hotel.OfflineAt,
			"offline_from_status": hotel.OfflineFromStatus,
		}

		res := tx.Model(&models.Hotel{}).
			Where("id = ? AND status = ?", hotelID, observedStatus).
			Updates(updates)
		if res.Error != nil {
			return apperrors.Unexpected("failed to update hotel", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost a concurrent race: report against the current status.
			var current models.Hotel
			if err := tx.Select("status").First(&current, "id = ?", hotelID).Error; err != nil {
				return apperrors.Unexpected("failed to re-read hotel", err)
			}
			return apperrors.InvalidTransition(string(req.Action), string(current.Status))
		}

		entry := models.AuditLogEntry{
			HotelID:    hotelID,
			OperatorID: operatorID,
			Action:     effects.AuditAction,
			Note:       effects.AuditNote,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Unexpected("failed to append audit log entry", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	publishTransitionEvent(sink, &hotel, effects)

	logrus.WithFields(logrus.Fields{
		"hotel_id": hotelID,
		"action":   req.Action,
		"status":   hotel.Status,
	}).Info("hotel transition applied")

	return &hotel, nil
}

// publishTransitionEvent runs after commit; the sink is fire-and-forget so
// a dead hub never affects the mutation.
func publishTransitionEvent(sink ws.Sink, hotel *models.Hotel, effects lifecycle.Effects) {
	payload := map[string]interface{}{"hotelId": hotel.ID.String()}

	switch effects.EventName {
	case lifecycle.EventReviewed:
		payload["status"] = hotel.Status
		if hotel.RejectReason != nil {
			payload["rejectReason"] = *hotel.RejectReason
		} else {
			payload["rejectReason"] = nil
		}
	case lifecycle.EventRestored:
		payload["status"] = hotel.Status
	}

	sink.Publish(effects.Topic, ws.Event{Name: effects.EventName, Payload: payload})
}

func reloadHotel(db *gorm.DB, hotelID uuid.UUID) (*models.Hotel, error) {
	var hotel models.Hotel
	err := db.Preload("RoomTypes").Preload("NearbyPlaces").Preload("Discounts").
		First(&hotel, "id = ?", hotelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("hotel")
		}
		return nil, apperrors.Unexpected("failed to load hotel", err)
	}
	return &hotel, nil
}
