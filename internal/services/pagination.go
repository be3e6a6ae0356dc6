package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/charlesng35/favorites/internal/models"
)

const (
	// DefaultPageSize applies when take is missing or not numeric.
	DefaultPageSize = 20
	// MinPageSize and MaxPageSize bound every page.
	MinPageSize = 1
	MaxPageSize = 100
)

// maxCursor is the largest id every supported store can compare against.
const maxCursor = uint(math.MaxInt64)

// PageRequest is a parsed and clamped list request. A nil Cursor starts at
// the lowest id.
type PageRequest struct {
	Take   int
	Cursor *uint
}

// Page is one ascending slice of favorites. NextCursor is set only when the
// page is full, signalling more rows may follow.
type Page struct {
	Data       []models.Favorite `json:"data"`
	NextCursor *uint             `json:"nextCursor"`
}

// ParsePageRequest converts raw query values into a PageRequest. It never
// fails: malformed take falls back to DefaultPageSize, numeric take is
// clamped into [MinPageSize, MaxPageSize] and truncated, and a malformed or
// non-positive cursor is dropped.
func ParsePageRequest(takeRaw, cursorRaw string) PageRequest {
	req := PageRequest{Take: DefaultPageSize}

	if take, ok := parseNumber(takeRaw); ok {
		req.Take = clampTake(take)
	}

	if cursor, ok := parseCursor(cursorRaw); ok {
		req.Cursor = &cursor
	}

	return req
}

// Normalize clamps Take into the allowed range, treating zero as the default.
func (r PageRequest) Normalize() PageRequest {
	switch {
	case r.Take == 0:
		r.Take = DefaultPageSize
	case r.Take < MinPageSize:
		r.Take = MinPageSize
	case r.Take > MaxPageSize:
		r.Take = MaxPageSize
	}
	if r.Cursor != nil && *r.Cursor == 0 {
		r.Cursor = nil
	}
	return r
}

// ListPage returns up to req.Take favorites with ids strictly greater than
// the cursor, in ascending id order. A cursor naming a deleted or unknown id
// simply seeks to the next greater id.
func ListPage(ctx context.Context, db *gorm.DB, req PageRequest) (*Page, error) {
	if db == nil {
		return nil, errors.New("favorite service: db is required")
	}
	req = req.Normalize()

	query := db.WithContext(ensuredContext(ctx)).Model(&models.Favorite{})
	if req.Cursor != nil {
		cursor := *req.Cursor
		if cursor > maxCursor {
			cursor = maxCursor
		}
		query = query.Where("id > ?", cursor)
	}

	rows := make([]models.Favorite, 0, req.Take)
	if err := query.Order("id ASC").Limit(req.Take).Find(&rows).Error; err != nil {
		return nil, err
	}

	page := &Page{Data: rows}
	if len(rows) == req.Take {
		last := rows[len(rows)-1].ID
		page.NextCursor = &last
	}
	return page, nil
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) {
		return 0, false
	}
	return value, true
}

func clampTake(value float64) int {
	value = math.Min(math.Max(value, MinPageSize), MaxPageSize)
	return int(math.Trunc(value))
}

func parseCursor(raw string) (uint, bool) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
		if id == 0 {
			return 0, false
		}
		return uint(min(id, uint64(maxCursor))), true
	}

	value, ok := parseNumber(raw)
	if !ok || value < 1 {
		return 0, false
	}
	if value >= float64(maxCursor) {
		return maxCursor, true
	}
	return uint(math.Trunc(value)), true
}
