package fop_test

import (
	"math"
	"testing"

	"github.com/jrazmi/tasktrack/core/scaffolding/fop"
	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name        string
		page, limit string
		want        fop.Page
	}{
		{"empty uses defaults", "", "", fop.Page{Number: 1, Limit: 20}},
		{"explicit", "3", "10", fop.Page{Number: 3, Limit: 10}},
		{"non numeric", "abc", "x", fop.Page{Number: 1, Limit: 20}},
		{"zero and negative", "0", "-5", fop.Page{Number: 1, Limit: 20}},
		{"limit clamped", "2", "500", fop.Page{Number: 2, Limit: fop.MaxLimit}},
		{"whitespace", " 2 ", " 7", fop.Page{Number: 2, Limit: 7}},
		{"page capped", "9223372036854775807", "100", fop.Page{Number: fop.MaxPage, Limit: 100}},
		{"page beyond int", "99999999999999999999", "", fop.Page{Number: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fop.ParsePage(tt.page, tt.limit))
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, fop.NewPage(1, 10).Offset())
	assert.Equal(t, 20, fop.NewPage(3, 10).Offset())

	for _, limit := range []int{1, 20, fop.MaxLimit, 1000} {
		p := fop.NewPage(math.MaxInt, limit)
		assert.Positive(t, p.Offset(), "limit %d", limit)
	}
}

func TestNewPageInfo(t *testing.T) {
	info := fop.NewPageInfo(25, fop.NewPage(3, 10))
	assert.Equal(t, fop.PageInfo{Total: 25, Page: 3, Limit: 10, TotalPages: 3}, info)

	assert.Equal(t, 0, fop.NewPageInfo(0, fop.NewPage(1, 10)).TotalPages)
	assert.Equal(t, 1, fop.NewPageInfo(10, fop.NewPage(1, 10)).TotalPages)
	assert.Equal(t, 2, fop.NewPageInfo(11, fop.NewPage(1, 10)).TotalPages)
}
