// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/services"
	"github.com/hotelist/hotelist-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
	hotelService *services.HotelService
}

func NewAdminHandler(adminService *services.AdminService, hotelService *services.HotelService) *AdminHandler {
	return &AdminHandler{adminService: adminService, hotelService: hotelService}
}

// GET /admin/hotels — defaults to the review queue (SUBMITTED).
func (h *AdminHandler) ListHotels(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	scope := services.HotelListScope{}

	raw := c.DefaultQuery("status", string(models.HotelStatusSubmitted))
	if raw != "" {
		status, valid := models.NormalizeStatus(raw)
		if !valid {
			utils.BadRequestResponse(c, "Unknown status "+raw, nil)
			return
		}
		scope.Status = &status
	}

	if merchantIDStr := c.Query("merchant_id"); merchantIDStr != "" {
		merchantID, err := uuid.Parse(merchantIDStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid merchant ID", nil)
			return
		}
		scope.MerchantID = &merchantID
	}

	result, err := h.hotelService.ListHotels(scope, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /admin/hotels/:id/review
func (h *AdminHandler) ReviewHotel(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid hotel ID", nil)
		return
	}

	var decision services.ReviewDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(&decision); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	hotel, err := h.adminService.ReviewHotel(hotelID, actor, decision)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"hotel": hotel})
}

// POST /admin/hotels/:id/publish
func (h *AdminHandler) PublishHotel(c *gin.Context) {
	h.transition(c, h.adminService.PublishHotel)
}

// POST /admin/hotels/:id/offline
func (h *AdminHandler) OfflineHotel(c *gin.Context) {
	h.transition(c, h.adminService.OfflineHotel)
}

// POST /admin/hotels/:id/restore
func (h *AdminHandler) RestoreHotel(c *gin.Context) {
	h.transition(c, h.adminService.RestoreHotel)
}

func (h *AdminHandler) transition(c *gin.Context, fn func(uuid.UUID, services.Actor) (*models.Hotel, error)) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid hotel ID", nil)
		return
	}

	hotel, err := fn(hotelID, actor)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"hotel": hotel})
}
