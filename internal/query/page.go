package query

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Window is an effective, validated pagination window. Page is 1-based.
type Window struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Offset is the number of matches skipped before the window starts. It
// saturates at math.MaxInt instead of wrapping negative.
func (w Window) Offset() int {
	if w.Page <= 1 || w.Limit <= 0 {
		return 0
	}
	if w.Page-1 > math.MaxInt/w.Limit {
		return math.MaxInt
	}
	return (w.Page - 1) * w.Limit
}

// ParseWindow reads page and limit query values leniently: anything missing,
// non-numeric or non-positive falls back to the defaults, and limits above
// maxLimit are clamped. A non-positive maxLimit disables clamping. Page is
// capped so the offset always fits in an int.
func ParseWindow(page, limit string, defaultLimit, maxLimit int) Window {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}

	w := Window{
		Page:  positiveInt(page, DefaultPage),
		Limit: positiveInt(limit, defaultLimit),
	}
	if maxLimit > 0 && w.Limit > maxLimit {
		w.Limit = maxLimit
	}
	if maxPage := math.MaxInt / w.Limit; w.Page > maxPage {
		w.Page = maxPage
	}
	return w
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// TotalPages is ceil(total/limit), never less than 1.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}
