package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsFor(t *testing.T, rawQuery string, defaultLimit int) PageParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return ParsePageParams(c, defaultLimit)
}

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantSkip  int64
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit", "page=3&limit=5", 3, 5, 10},
		{"garbage page", "page=abc&limit=5", 1, 5, 0},
		{"negative page", "page=-2", 1, 10, 0},
		{"zero limit", "limit=0", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paramsFor(t, tt.query, 10)
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", p.Page, p.Limit, tt.wantPage, tt.wantLimit)
			}
			if p.Skip() != tt.wantSkip {
				t.Errorf("Skip() = %d, want %d", p.Skip(), tt.wantSkip)
			}
		})
	}
}

func TestPageParamsMeta(t *testing.T) {
	meta := PageParams{Page: 2, Limit: 5}.Meta(11)
	if meta["totalPages"] != 3 {
		t.Errorf("totalPages = %v, want 3", meta["totalPages"])
	}
	if meta["total"] != int64(11) {
		t.Errorf("total = %v, want 11", meta["total"])
	}

	empty := PageParams{Page: 1, Limit: 10}.Meta(0)
	if empty["totalPages"] != 0 {
		t.Errorf("totalPages for empty set = %v, want 0", empty["totalPages"])
	}
}
