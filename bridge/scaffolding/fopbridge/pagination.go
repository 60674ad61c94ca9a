// Package fopbridge provides the response shapes for paged and single-record
// results.
package fopbridge

import (
	"encoding/json"

	"github.com/jrazmi/tasktrack/core/scaffolding/fop"
)

// PaginatedResponse lists records under key together with their page info.
type PaginatedResponse[T any] struct {
	key      string
	Records  []T
	PageInfo fop.PageInfo
}

// NewPaginatedResponse builds a response rendered as
// {"<key>": [...], "pagination": {...}}. A nil records slice renders as [].
func NewPaginatedResponse[T any](key string, records []T, info fop.PageInfo) PaginatedResponse[T] {
	if records == nil {
		records = []T{}
	}
	return PaginatedResponse[T]{key: key, Records: records, PageInfo: info}
}

func (p PaginatedResponse[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(map[string]any{
		p.key:        p.Records,
		"pagination": p.PageInfo,
	})
	return data, "application/json", err
}
