// Package pagination binds skip/limit query parameters and derives page
// numbers for list envelopes.
package pagination

import (
	"errors"
	"fmt"
)

const (
	// DefaultLimit applies when the caller sends no limit.
	DefaultLimit = 50
	// MaxLimit bounds a single page.
	MaxLimit = 1000
)

// ErrInvalid reports an unusable skip or limit.
var ErrInvalid = errors.New("invalid pagination parameters")

// Params is a zero-based offset and a page size.
type Params struct {
	Skip  int64
	Limit int64
}

// Page is the derived position of a window within a result set.
type Page struct {
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
}

// Query binds skip and limit from a request query string. Embed it in a
// handler's query struct and bind with gin's ShouldBindQuery. The tags
// repeat DefaultLimit and MaxLimit.
type Query struct {
	Skip  int64 `form:"skip" binding:"min=0"`
	Limit int64 `form:"limit,default=50" binding:"min=1,max=1000"`
}

// Params converts a bound query, re-checking the bounds for callers that
// filled the struct by hand.
func (q Query) Params() (Params, error) {
	p := Params{Skip: q.Skip, Limit: q.Limit}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate rejects a negative skip or a limit outside 1..MaxLimit.
func (p Params) Validate() error {
	if p.Skip < 0 {
		return fmt.Errorf("%w: skip must be >= 0", ErrInvalid)
	}
	if p.Limit <= 0 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalid, MaxLimit)
	}
	return nil
}

// Page computes page = skip/limit + 1 and pages = ceil(total/limit).
// p.Limit must be positive.
func (p Params) Page(total int64) Page {
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	return Page{
		Page:  p.Skip/p.Limit + 1,
		Pages: pages,
	}
}
