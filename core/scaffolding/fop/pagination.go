// Package fop provides filter, order and pagination primitives shared by the
// repositories.
package fop

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage keeps (Number-1)*Limit within an int.
	MaxPage = math.MaxInt / MaxLimit
)

// Page is a page-number window over an ordered result set.
type Page struct {
	Number int
	Limit  int
}

// PageInfo describes where a page sits in the full result set.
type PageInfo struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ParsePage coerces raw query values into a Page. Anything that is not a
// positive integer falls back to the default; limit is clamped to MaxLimit.
func ParsePage(page, limit string) Page {
	return NewPage(atoiOr(page, DefaultPage), atoiOr(limit, DefaultLimit))
}

// NewPage normalizes number and limit the same way ParsePage does. Number is
// capped at MaxPage.
func NewPage(number, limit int) Page {
	if number <= 0 {
		number = DefaultPage
	}
	if number > MaxPage {
		number = MaxPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset is the number of records skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// NewPageInfo reports the page metadata for a result set of total records.
func NewPageInfo(total int, page Page) PageInfo {
	totalPages := 0
	if page.Limit > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}
	return PageInfo{
		Total:      total,
		Page:       page.Number,
		Limit:      page.Limit,
		TotalPages: totalPages,
	}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
