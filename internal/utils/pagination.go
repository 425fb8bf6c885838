package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams carries offset pagination parsed from ?page=&limit=.
type PageParams struct {
	Page  int
	Limit int
}

// ParsePageParams reads page/limit query params, falling back to page 1 and
// the given default limit on anything missing or malformed.
func ParsePageParams(c *gin.Context, defaultLimit int) PageParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return PageParams{Page: page, Limit: limit}
}

// Skip returns the number of documents to skip for this page.
func (p PageParams) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Meta builds the pagination metadata object returned alongside listings.
func (p PageParams) Meta(total int64) gin.H {
	return gin.H{
		"page":       p.Page,
		"limit":      p.Limit,
		"total":      total,
		"totalPages": int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}
