// internal/handlers/public.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelist/hotelist-backend/internal/apperrors"
	"github.com/hotelist/hotelist-backend/internal/services"
	"github.com/hotelist/hotelist-backend/internal/utils"
)

// Envelope codes for the public search surface. The client contract is a
// success-shaped body on every outcome, including validation failures.
const (
	searchCodeOK         = 0
	searchCodeValidation = 1001
	searchCodeCity       = 1002
	searchCodeInternal   = 2000
)

type PublicHandler struct {
	searchService *services.SearchService
	hotelService  *services.HotelService
}

func NewPublicHandler(searchService *services.SearchService, hotelService *services.HotelService) *PublicHandler {
	return &PublicHandler{searchService: searchService, hotelService: hotelService}
}

// GET /public/hotels
func (h *PublicHandler) ListHotels(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.searchService.ListPublishedHotels(params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /public/hotels/:id
func (h *PublicHandler) GetHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid hotel ID", nil)
		return
	}

	// Authenticated owners and admins may view their unpublished hotels
	// through the public detail route; everyone else sees PUBLISHED only.
	if actor, ok := actorFromContext(c); ok {
		hotel, err := h.hotelService.GetHotel(hotelID, &actor)
		if err != nil {
			utils.AppErrorResponse(c, err)
			return
		}
		utils.SuccessResponse(c, gin.H{"hotel": hotel})
		return
	}

	hotel, err := h.searchService.GetPublishedHotel(hotelID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"hotel": hotel})
}

// POST /user/hotels/search — always answers 200 with {code, message, data}.
func (h *PublicHandler) SearchHotels(c *gin.Context) {
	var req services.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		searchEnvelope(c, searchCodeValidation, "invalid search payload", nil)
		return
	}

	result, err := h.searchService.SearchPublicHotels(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCityNotSupported):
			searchEnvelope(c, searchCodeCity, err.Error(), nil)
		case apperrors.IsKind(err, apperrors.KindValidationFailed):
			searchEnvelope(c, searchCodeValidation, err.Error(), nil)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    searchCodeInternal,
				"message": "internal error",
				"data":    services.SearchResult{Total: 0, List: []services.SearchResultItem{}},
			})
		}
		return
	}

	searchEnvelope(c, searchCodeOK, "success", result)
}

func searchEnvelope(c *gin.Context, code int, message string, result *services.SearchResult) {
	if result == nil {
		result = &services.SearchResult{Total: 0, List: []services.SearchResultItem{}}
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    code,
		"message": message,
		"data":    result,
	})
}
