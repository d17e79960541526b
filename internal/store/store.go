// Package store keeps feedback and analysis history in process memory.
//
// Both stores are safe for concurrent use. They are created once at startup
// and handed to the HTTP handlers; nothing survives a restart.
package store

import (
	"math"
	"time"

	"github.com/fakenewsdetect/backend/internal/validation"
)

const ISOLayout = validation.ISOLayout

// Pagination is the page envelope returned with every list.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// paginate returns the half-open window [(page-1)*limit, page*limit) of
// items. Pages past the end, and non-positive inputs, yield an empty slice.
func paginate[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// idSource issues millisecond-timestamp ids that never repeat or go
// backwards. Callers serialize access.
type idSource struct {
	last int64
	now  func() time.Time
}

func (s *idSource) next() int64 {
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// Option configures a store.
type Option func(*options)

type options struct {
	now      func() time.Time
	capacity int
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCapacity overrides the history capacity.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, capacity: DefaultHistoryCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity < 1 {
		o.capacity = DefaultHistoryCapacity
	}
	return o
}
