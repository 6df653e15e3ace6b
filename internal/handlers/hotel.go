// internal/handlers/hotel.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/services"
	"github.com/hotelist/hotelist-backend/internal/utils"
)

// HotelHandler serves the merchant surface.
type HotelHandler struct {
	hotelService *services.HotelService
}

func NewHotelHandler(hotelService *services.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userIDStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return services.Actor{}, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return services.Actor{}, false
	}
	role, _ := utils.GetUserRoleFromContext(c)
	return services.Actor{ID: userID, Role: models.UserRole(role)}, true
}

// POST /hotels
func (h *HotelHandler) CreateHotel(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.HotelUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	hotel, err := h.hotelService.CreateHotel(actor, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"hotel": hotel})
}

// PUT /hotels/:id
func (h *HotelHandler) UpdateHotel(c *gin.Context) {
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

	var req services.HotelUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	hotel, err := h.hotelService.UpdateHotel(hotelID, actor, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"hotel": hotel})
}

// POST /hotels/:id/submit
func (h *HotelHandler) SubmitForReview(c *gin.Context) {
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

	hotel, err := h.hotelService.SubmitForReview(hotelID, actor)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"hotel": hotel})
}

// GET /hotels
func (h *HotelHandler) ListMyHotels(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	scope := services.HotelListScope{MerchantID: &actor.ID}
	if raw := c.Query("status"); raw != "" {
		status, valid := models.NormalizeStatus(raw)
		if !valid {
			utils.BadRequestResponse(c, "Unknown status "+raw, nil)
			return
		}
		scope.Status = &status
	}

	result, err := h.hotelService.ListHotels(scope, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /hotels/:id
func (h *HotelHandler) GetHotel(c *gin.Context) {
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

	hotel, err := h.hotelService.GetHotel(hotelID, &actor)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"hotel": hotel})
}

// GET /hotels/:id/audits
func (h *HotelHandler) GetAuditTrail(c *gin.Context) {
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

	entries, err := h.hotelService.GetAuditTrail(hotelID, &actor)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"audits": entries})
}
