// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// PaginationResult is the listing envelope shared by the merchant and admin
// surfaces.
type PaginationResult struct {
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Total    int64       `json:"total"`
	Items    interface{} `json:"items"`
}

// GetPaginationParams reads page/pageSize from the query string, flooring
// page at 1 and clamping pageSize to [1, 50].
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))

	return ClampPagination(page, pageSize)
}

func ClampPagination(page, pageSize int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return PaginationParams{Page: page, PageSize: pageSize}
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.Page - 1) * params.PageSize
	return db.Offset(offset).Limit(params.PageSize)
}

func CreatePaginationResult(items interface{}, total int64, params PaginationParams) PaginationResult {
	return PaginationResult{
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
		Items:    items,
	}
}
