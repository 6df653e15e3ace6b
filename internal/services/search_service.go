// internal/services/search_service.go
package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotelist/hotelist-backend/internal/apperrors"
	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/utils"
)

// Search failure sentinels. The public search endpoint maps these onto its
// success-shaped envelope codes instead of transport errors.
var (
	ErrBadDateRange     = apperrors.ValidationFailed("check-in date must be before check-out date")
	ErrCityNotSupported = apperrors.ValidationFailed("city not supported")
)

// SearchService is the read-only query surface for end users. The search
// path scopes to APPROVED while listing/detail scope to PUBLISHED; the
// asymmetry is deliberate and mirrors the product contract.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

type SearchRequest struct {
	City         string   `json:"city" validate:"required"`
	Keyword      string   `json:"keyword,omitempty"`
	CheckInDate  string   `json:"checkInDate" validate:"required"`
	CheckOutDate string   `json:"checkOutDate" validate:"required"`
	Tags         []string `json:"tags,omitempty"`
}

// SearchResultItem is the card projection shown on the search surface.
type SearchResultItem struct {
	HotelID      string   `json:"hotelId"`
	HotelName    string   `json:"hotelName"`
	Address      string   `json:"address"`
	CoverImage   string   `json:"coverImage"`
	Tags         []string `json:"tags"`
	MinPrice     int64    `json:"minPrice"`
	Score        float64  `json:"score"`
	CommentCount int      `json:"commentCount"`
}

type SearchResult struct {
	Total int                `json:"total"`
	List  []SearchResultItem `json:"list"`
}

const (
	maxCardTags           = 8
	maxCardDiscountTitles = 4
)

// parseYMDDate parses a strict YYYY-MM-DD calendar date.
func parseYMDDate(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SearchPublicHotels runs the unauthenticated free-text search: city is a
// data-presence gate, keyword is an OR across name/address/nearby names, and
// tags are ANDed with each tag matching any of name, address, nearby name or
// discount text.
func (s *SearchService) SearchPublicHotels(req SearchRequest) (*SearchResult, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidationFailed, "invalid search payload", err)
	}

	checkIn, okIn := parseYMDDate(req.CheckInDate)
	checkOut, okOut := parseYMDDate(req.CheckOutDate)
	if !okIn || !okOut || !checkIn.Before(checkOut) {
		return nil, ErrBadDateRange
	}

	city := strings.TrimSpace(req.City)

	var cityCount int64
	err := s.db.Model(&models.Hotel{}).
		Where("status = ? AND address LIKE ?", models.HotelStatusApproved, "%"+city+"%").
		Count(&cityCount).Error
	if err != nil {
		return nil, apperrors.Unexpected("failed to probe city", err)
	}
	if cityCount == 0 {
		return nil, ErrCityNotSupported
	}

	var candidates []models.Hotel
	err = s.db.
		Where("status = ? AND address LIKE ?", models.HotelStatusApproved, "%"+city+"%").
		Preload("RoomTypes").
		Preload("NearbyPlaces").
		Preload("Discounts").
		Preload("AuditLogs").
		Find(&candidates).Error
	if err != nil {
		return nil, apperrors.Unexpected("failed to query hotels", err)
	}

	keyword := strings.TrimSpace(req.Keyword)
	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	matched := candidates[:0]
	for i := range candidates {
		h := &candidates[i]
		if keyword != "" && !hotelMatchesKeyword(h, keyword) {
			continue
		}
		if !hotelMatchesTags(h, tags) {
			continue
		}
		matched = append(matched, *h)
	}

	sortByVisibility(matched)

	now := time.Now()
	list := make([]SearchResultItem, 0, len(matched))
	for i := range matched {
		list = append(list, buildResultItem(&matched[i], now))
	}

	return &SearchResult{Total: len(list), List: list}, nil
}

// hotelMatchesKeyword is a case-sensitive substring match against the
// Chinese name, English name, address, or any nearby-place name.
func hotelMatchesKeyword(h *models.Hotel, keyword string) bool {
	if strings.Contains(h.NameCn, keyword) ||
		strings.Contains(h.NameEn, keyword) ||
		strings.Contains(h.Address, keyword) {
		return true
	}
	for i := range h.NearbyPlaces {
		if strings.Contains(h.NearbyPlaces[i].Name, keyword) {
			return true
		}
	}
	return false
}

// hotelMatchesTags requires every tag to match independently; each tag is an
// OR across name, address, nearby-place names and discount title/description.
func hotelMatchesTags(h *models.Hotel, tags []string) bool {
	for _, tag := range tags {
		if !hotelMatchesTag(h, tag) {
			return false
		}
	}
	return true
}

func hotelMatchesTag(h *models.Hotel, tag string) bool {
	if strings.Contains(h.NameCn, tag) || strings.Contains(h.Address, tag) {
		return true
	}
	for i := range h.NearbyPlaces {
		if strings.Contains(h.NearbyPlaces[i].Name, tag) {
			return true
		}
	}
	for i := range h.Discounts {
		if strings.Contains(h.Discounts[i].Title, tag) || strings.Contains(h.Discounts[i].Description, tag) {
			return true
		}
	}
	return false
}

// sortByVisibility orders most recently visible first: published-descending
// then updated-descending. Hotels never published sort after published ones.
func sortByVisibility(hotels []models.Hotel) {
	sort.SliceStable(hotels, func(i, j int) bool {
		pi, pj := hotels[i].PublishedAt, hotels[j].PublishedAt
		switch {
		case pi != nil && pj != nil && !pi.Equal(*pj):
			return pi.After(*pj)
		case pi != nil && pj == nil:
			return true
		case pi == nil && pj != nil:
			return false
		}
		return hotels[i].UpdatedAt.After(hotels[j].UpdatedAt)
	})
}

func buildResultItem(h *models.Hotel, now time.Time) SearchResultItem {
	// Nearby names closest-first, then titles of currently effective
	// discounts, deduplicated and capped.
	nearby := make([]models.NearbyPlace, len(h.NearbyPlaces))
	copy(nearby, h.NearbyPlaces)
	sort.SliceStable(nearby, func(i, j int) bool {
		di, dj := nearby[i].DistanceMeters, nearby[j].DistanceMeters
		switch {
		case di != nil && dj != nil:
			return *di < *dj
		case di != nil:
			return true
		default:
			return false
		}
	})

	seen := make(map[string]bool)
	cardTags := make([]string, 0, maxCardTags)
	appendTag := func(tag string) {
		if tag == "" || seen[tag] || len(cardTags) >= maxCardTags {
			return
		}
		seen[tag] = true
		cardTags = append(cardTags, tag)
	}

	for i := range nearby {
		appendTag(nearby[i].Name)
	}
	titles := 0
	for i := range h.Discounts {
		if titles >= maxCardDiscountTitles {
			break
		}
		if h.Discounts[i].EffectiveAt(now) {
			appendTag(h.Discounts[i].Title)
			titles++
		}
	}

	return SearchResultItem{
		HotelID:      h.ID.String(),
		HotelName:    h.NameCn,
		Address:      h.Address,
		CoverImage:   "",
		Tags:         cardTags,
		MinPrice:     h.EffectiveMinPriceCents(),
		Score:        float64(h.StarRating),
		CommentCount: len(h.AuditLogs),
	}
}

// PublicHotelCard is the reduced projection for the public list view.
type PublicHotelCard struct {
	ID            uuid.UUID            `json:"id"`
	NameCn        string               `json:"name_cn"`
	NameEn        string               `json:"name_en,omitempty"`
	Address       string               `json:"address"`
	StarRating    int                  `json:"star_rating"`
	MinPriceCents *int64               `json:"min_price_cents,omitempty"`
	MaxPriceCents *int64               `json:"max_price_cents,omitempty"`
	Currency      string               `json:"currency"`
	NearbyPlaces  []models.NearbyPlace `json:"nearby_places"`
}

// ListPublishedHotels serves the public listing: PUBLISHED only, most
// recently published first.
func (s *SearchService) ListPublishedHotels(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Hotel{}).Where("status = ?", models.HotelStatusPublished)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Unexpected("failed to count published hotels", err)
	}

	var hotels []models.Hotel
	err := utils.ApplyPagination(query.Order("published_at DESC"), params).
		Preload("NearbyPlaces").
		Find(&hotels).Error
	if err != nil {
		return nil, apperrors.Unexpected("failed to list published hotels", err)
	}

	cards := make([]PublicHotelCard, 0, len(hotels))
	for i := range hotels {
		h := &hotels[i]
		cards = append(cards, PublicHotelCard{
			ID:            h.ID,
			NameCn:        h.NameCn,
			NameEn:        h.NameEn,
			Address:       h.Address,
			StarRating:    h.StarRating,
			MinPriceCents: h.MinPriceCents,
			MaxPriceCents: h.MaxPriceCents,
			Currency:      h.Currency,
			NearbyPlaces:  h.NearbyPlaces,
		})
	}

	result := utils.CreatePaginationResult(cards, total, params)
	return &result, nil
}

// GetPublishedHotel returns the full sub-entity graph for a public detail
// view. Unpublished hotels are indistinguishable from missing ones.
func (s *SearchService) GetPublishedHotel(hotelID uuid.UUID) (*models.Hotel, error) {
	var hotel models.Hotel
	err := s.db.Preload("RoomTypes").Preload("NearbyPlaces").Preload("Discounts").
		First(&hotel, "id = ?", hotelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("hotel")
		}
		return nil, apperrors.Unexpected("failed to load hotel", err)
	}

	if hotel.Status != models.HotelStatusPublished {
		return nil, apperrors.NotFound("hotel")
	}

	return &hotel, nil
}
