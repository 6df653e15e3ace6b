// internal/services/hotel_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelist/hotelist-backend/internal/apperrors"
	"github.com/hotelist/hotelist-backend/internal/database"
	"github.com/hotelist/hotelist-backend/internal/lifecycle"
	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/utils"
	"github.com/hotelist/hotelist-backend/internal/ws"
)

type HotelService struct {
	db    *gorm.DB
	authz *AuthorizationService
	sink  ws.Sink
}

func NewHotelService(db *gorm.DB, authz *AuthorizationService, sink ws.Sink) *HotelService {
	return &HotelService{db: db, authz: authz, sink: sink}
}

type RoomTypeInput struct {
	Name           string   `json:"name" validate:"required"`
	BedType        string   `json:"bed_type,omitempty"`
	Capacity       *int     `json:"capacity,omitempty" validate:"omitempty,min=1"`
	AreaSqm        *float64 `json:"area_sqm,omitempty" validate:"omitempty,min=0"`
	BasePriceCents int64    `json:"base_price_cents" validate:"min=0"`
	Currency       string   `json:"currency,omitempty"`
}

type NearbyPlaceInput struct {
	Type           string `json:"type" validate:"required,oneof=ATTRACTION TRANSPORT MALL"`
	Name           string `json:"name" validate:"required"`
	DistanceMeters *int   `json:"distance_meters,omitempty" validate:"omitempty,min=0"`
	Address        string `json:"address,omitempty"`
}

type DiscountInput struct {
	Type           string     `json:"type" validate:"required,oneof=PERCENT_OFF AMOUNT_OFF_CENTS"`
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	PercentOff     *int       `json:"percent_off,omitempty" validate:"omitempty,min=1,max=100"`
	AmountOffCents *int64     `json:"amount_off_cents,omitempty" validate:"omitempty,min=1"`
	IsActive       *bool      `json:"is_active,omitempty"`
}

type HotelUpsertRequest struct {
	NameCn        string             `json:"name_cn" validate:"required"`
	NameEn        string             `json:"name_en,omitempty"`
	Address       string             `json:"address" validate:"required"`
	StarRating    int                `json:"star_rating" validate:"min=0,max=5"`
	OpenDate      *time.Time         `json:"open_date,omitempty"`
	MinPriceCents *int64             `json:"min_price_cents,omitempty" validate:"omitempty,min=0"`
	MaxPriceCents *int64             `json:"max_price_cents,omitempty" validate:"omitempty,min=0"`
	Currency      string             `json:"currency,omitempty"`
	RoomTypes     []RoomTypeInput    `json:"room_types,omitempty" validate:"dive"`
	NearbyPlaces  []NearbyPlaceInput `json:"nearby_places,omitempty" validate:"dive"`
	Discounts     []DiscountInput    `json:"discounts,omitempty" validate:"dive"`
}

func (req *HotelUpsertRequest) validate() error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.Wrap(apperrors.KindValidationFailed, "invalid hotel payload", err)
	}
	// Exactly one value slot per discount type.
	for _, d := range req.Discounts {
		switch models.DiscountType(d.Type) {
		case models.DiscountTypePercentOff:
			if d.PercentOff == nil || d.AmountOffCents != nil {
				return apperrors.ValidationFailed("PERCENT_OFF discounts must set percent_off and leave amount_off_cents empty")
			}
		case models.DiscountTypeAmountOff:
			if d.AmountOffCents == nil || d.PercentOff != nil {
				return apperrors.ValidationFailed("AMOUNT_OFF_CENTS discounts must set amount_off_cents and leave percent_off empty")
			}
		}
	}
	return nil
}

func (req *HotelUpsertRequest) currencyOr(fallback string) string {
	if req.Currency != "" {
		return req.Currency
	}
	if fallback != "" {
		return fallback
	}
	return "CNY"
}

func (req *HotelUpsertRequest) buildSubEntities(hotelID uuid.UUID, currency string) ([]models.RoomType, []models.NearbyPlace, []models.Discount) {
	roomTypes := make([]models.RoomType, 0, len(req.RoomTypes))
	for _, r := range req.RoomTypes {
		rtCurrency := r.Currency
		if rtCurrency == "" {
			rtCurrency = currency
		}
		roomTypes = append(roomTypes, models.RoomType{
			HotelID:        hotelID,
			Name:           r.Name,
			BedType:        r.BedType,
			Capacity:       r.Capacity,
			AreaSqm:        r.AreaSqm,
			BasePriceCents: r.BasePriceCents,
			Currency:       rtCurrency,
		})
	}

	nearbyPlaces := make([]models.NearbyPlace, 0, len(req.NearbyPlaces))
	for _, n := range req.NearbyPlaces {
		nearbyPlaces = append(nearbyPlaces, models.NearbyPlace{
			HotelID:        hotelID,
			Type:           models.NearbyPlaceType(n.Type),
			Name:           n.Name,
			DistanceMeters: n.DistanceMeters,
			Address:        n.Address,
		})
	}

	discounts := make([]models.Discount, 0, len(req.Discounts))
	for _, d := range req.Discounts {
		isActive := true
		if d.IsActive != nil {
			isActive = *d.IsActive
		}
		discounts = append(discounts, models.Discount{
			HotelID:        hotelID,
			Type:           models.DiscountType(d.Type),
			Title:          d.Title,
			Description:    d.Description,
			StartDate:      d.StartDate,
			EndDate:        d.EndDate,
			PercentOff:     d.PercentOff,
			AmountOffCents: d.AmountOffCents,
			IsActive:       isActive,
		})
	}

	return roomTypes, nearbyPlaces, discounts
}

// CreateHotel creates a new DRAFT listing owned by the merchant, with its
// sub-collections and the CREATE audit entry in one transaction.
func (s *HotelService) CreateHotel(actor Actor, req *HotelUpsertRequest) (*models.Hotel, error) {
	if err := s.authz.Authorize(actor, models.AuditActionCreate, nil); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	hotel := &models.Hotel{
		MerchantID:    actor.ID,
		NameCn:        req.NameCn,
		NameEn:        req.NameEn,
		Address:       req.Address,
		StarRating:    req.StarRating,
		OpenDate:      req.OpenDate,
		MinPriceCents: req.MinPriceCents,
		MaxPriceCents: req.MaxPriceCents,
		Currency:      req.currencyOr(""),
		Status:        models.HotelStatusDraft,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(hotel).Error; err != nil {
			return apperrors.Unexpected("failed to create hotel", err)
		}

		roomTypes, nearbyPlaces, discounts := req.buildSubEntities(hotel.ID, hotel.Currency)
		if err := createSubEntities(tx, roomTypes, nearbyPlaces, discounts); err != nil {
			return err
		}

		entry := models.AuditLogEntry{
			HotelID:    hotel.ID,
			OperatorID: actor.ID,
			Action:     models.AuditActionCreate,
			Note:       "create draft",
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Unexpected("failed to append audit log entry", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := reloadHotel(s.db, hotel.ID)
	if err != nil {
		return nil, err
	}

	s.sink.Publish(ws.UserTopic(actor.ID), ws.Event{
		Name:    lifecycle.EventUpdated,
		Payload: map[string]interface{}{"hotelId": created.ID.String(), "hotel": created},
	})

	return created, nil
}

// UpdateHotel fully replaces the hotel's fields and sub-collections. Only
// the owner may edit, and only in DRAFT or REJECTED; a REJECTED hotel stays
// REJECTED until it is explicitly resubmitted.
func (s *HotelService) UpdateHotel(hotelID uuid.UUID, actor Actor, req *HotelUpsertRequest) (*models.Hotel, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var existing models.Hotel
		if err := tx.First(&existing, "id = ?", hotelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("hotel")
			}
			return apperrors.Unexpected("failed to load hotel", err)
		}

		if err := s.authz.Authorize(actor, models.AuditActionUpdate, &existing); err != nil {
			return err
		}
		if err := lifecycle.EnsureEditable(&existing); err != nil {
			return err
		}

		// Full replace of sub-collections: delete-then-recreate inside the
		// same transaction as the parent update.
		if err := deleteSubEntities(tx, hotelID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name_cn":         req.NameCn,
			"name_en":         req.NameEn,
			"address":         req.Address,
			"star_rating":     req.StarRating,
			"open_date":       req.OpenDate,
			"min_price_cents": req.MinPriceCents,
			"max_price_cents": req.MaxPriceCents,
			"currency":        req.currencyOr(existing.Currency),
		}

		// Guard on the status the edit was authorized against so a racing
		// admin transition cannot interleave.
		res := tx.Model(&models.Hotel{}).
			Where("id = ? AND status = ?", hotelID, existing.Status).
			Updates(updates)
		if res.Error != nil {
			return apperrors.Unexpected("failed to update hotel", res.Error)
		}
		if res.RowsAffected == 0 {
			var current models.Hotel
			if err := tx.Select("status").First(&current, "id = ?", hotelID).Error; err != nil {
				return apperrors.Unexpected("failed to re-read hotel", err)
			}
			return apperrors.InvalidTransition(string(models.AuditActionUpdate), string(current.Status))
		}

		roomTypes, nearbyPlaces, discounts := req.buildSubEntities(hotelID, req.currencyOr(existing.Currency))
		if err := createSubEntities(tx, roomTypes, nearbyPlaces, discounts); err != nil {
			return err
		}

		entry := models.AuditLogEntry{
			HotelID:    hotelID,
			OperatorID: actor.ID,
			Action:     models.AuditActionUpdate,
			Note:       "merchant update",
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Unexpected("failed to append audit log entry", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := reloadHotel(s.db, hotelID)
	if err != nil {
		return nil, err
	}

	s.sink.Publish(ws.UserTopic(actor.ID), ws.Event{
		Name:    lifecycle.EventUpdated,
		Payload: map[string]interface{}{"hotelId": updated.ID.String(), "hotel": updated},
	})

	return updated, nil
}

// SubmitForReview moves the hotel into SUBMITTED after the completeness gate.
func (s *HotelService) SubmitForReview(hotelID uuid.UUID, actor Actor) (*models.Hotel, error) {
	hotel, err := s.loadForAction(hotelID, actor, models.AuditActionSubmit)
	if err != nil {
		return nil, err
	}

	return runTransition(s.db, s.sink, hotel.ID, actor.ID, lifecycle.Request{
		Action: models.AuditActionSubmit,
	})
}

// GetHotel returns the full sub-entity graph, subject to visibility rules.
func (s *HotelService) GetHotel(hotelID uuid.UUID, actor *Actor) (*models.Hotel, error) {
	hotel, err := reloadHotel(s.db, hotelID)
	if err != nil {
		return nil, err
	}

	if !s.authz.CanView(actor, hotel) {
		if actor == nil {
			// Do not leak the existence of unpublished hotels to the public.
			return nil, apperrors.NotFound("hotel")
		}
		return nil, apperrors.Forbidden("no access to this hotel")
	}

	return hotel, nil
}

// HotelListScope filters the authenticated listing surfaces.
type HotelListScope struct {
	MerchantID *uuid.UUID
	Status     *models.HotelStatus
}

// ListHotels serves the merchant and admin listing surfaces: status and/or
// merchant scoped, most recently updated first.
func (s *HotelService) ListHotels(scope HotelListScope, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Hotel{})

	if scope.MerchantID != nil {
		query = query.Where("merchant_id = ?", *scope.MerchantID)
	}
	if scope.Status != nil {
		query = query.Where("status = ?", *scope.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Unexpected("failed to count hotels", err)
	}

	var items []models.Hotel
	err := utils.ApplyPagination(query.Order("updated_at DESC"), params).
		Preload("Merchant").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Unexpected("failed to list hotels", err)
	}

	result := utils.CreatePaginationResult(items, total, params)
	return &result, nil
}

// GetAuditTrail returns the append-only history, oldest first.
func (s *HotelService) GetAuditTrail(hotelID uuid.UUID, actor *Actor) ([]models.AuditLogEntry, error) {
	hotel, err := reloadHotel(s.db, hotelID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanView(actor, hotel) {
		return nil, apperrors.Forbidden("no access to this hotel")
	}

	var entries []models.AuditLogEntry
	if err := s.db.Where("hotel_id = ?", hotelID).Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, apperrors.Unexpected("failed to load audit trail", err)
	}
	return entries, nil
}

func (s *HotelService) loadForAction(hotelID uuid.UUID, actor Actor, action models.AuditAction) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, "id = ?", hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("hotel")
		}
		return nil, apperrors.Unexpected("failed to load hotel", err)
	}
	if err := s.authz.Authorize(actor, action, &hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func createSubEntities(tx *gorm.DB, roomTypes []models.RoomType, nearbyPlaces []models.NearbyPlace, discounts []models.Discount) error {
	if len(roomTypes) > 0 {
		if err := tx.Create(&roomTypes).Error; err != nil {
			return apperrors.Unexpected("failed to create room types", err)
		}
	}
	if len(nearbyPlaces) > 0 {
		if err := tx.Create(&nearbyPlaces).Error; err != nil {
			return apperrors.Unexpected("failed to create nearby places", err)
		}
	}
	if len(discounts) > 0 {
		if err := tx.Create(&discounts).Error; err != nil {
			return apperrors.Unexpected("failed to create discounts", err)
		}
	}
	return nil
}

func deleteSubEntities(tx *gorm.DB, hotelID uuid.UUID) error {
	if err := tx.Where("hotel_id = ?", hotelID).Delete(&models.RoomType{}).Error; err != nil {
		return apperrors.Unexpected("failed to delete room types", err)
	}
	if err := tx.Where("hotel_id = ?", hotelID).Delete(&models.NearbyPlace{}).Error; err != nil {
		return apperrors.Unexpected("failed to delete nearby places", err)
	}
	if err := tx.Where("hotel_id = ?", hotelID).Delete(&models.Discount{}).Error; err != nil {
		return apperrors.Unexpected("failed to delete discounts", err)
	}
	return nil
}
