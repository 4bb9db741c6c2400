package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/store"
)

// MaskedValue replaces personal identifiers in list responses.
const MaskedValue = "***ENCRYPTED***"

// ListResult is one page of a filtered collection.
type ListResult[T any] struct {
	Items []T
	Total int64
	pagination.Page
}

// listPage applies filter, sort and the caller's window, and counts the full match.
func listPage[T any](ctx context.Context, col *store.Collection[T], filter bson.M, sort []store.SortField, p pagination.Params) (ListResult[T], error) {
	if err := p.Validate(); err != nil {
		return ListResult[T]{}, err
	}
	items, err := col.Find(ctx, filter, store.FindOptions{Sort: sort, Skip: p.Skip, Limit: p.Limit})
	if err != nil {
		return ListResult[T]{}, err
	}
	total, err := col.Count(ctx, filter)
	if err != nil {
		return ListResult[T]{}, err
	}
	return ListResult[T]{Items: items, Total: total, Page: p.Page(total)}, nil
}

// mapItems converts every item of a page, keeping the counts.
func mapItems[T, U any](in ListResult[T], fn func(T) U) ListResult[U] {
	out := ListResult[U]{Items: make([]U, len(in.Items)), Total: in.Total, Page: in.Page}
	for i, item := range in.Items {
		out.Items[i] = fn(item)
	}
	return out
}

// lookupRef fetches a record referenced by a list item. A missing reference
// yields nil and the item goes out without enrichment; any other store
// failure fails the whole list.
func lookupRef[T any](ctx context.Context, uc *AdminUseCase, op string, col *store.Collection[T], filter bson.M) (*T, error) {
	doc, err := col.FindOne(ctx, filter)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, uc.storeError(op, Actor{}, err)
	}
	return doc, nil
}

// setIfPresent adds an equality clause for a non-empty filter value.
func setIfPresent(filter bson.M, field, value string) {
	if v := strings.TrimSpace(value); v != "" {
		filter[field] = v
	}
}

// searchClause matches term case-insensitively as a literal in any field.
func searchClause(term string, fields ...string) bson.A {
	pattern := regexp.QuoteMeta(strings.TrimSpace(term))
	clauses := make(bson.A, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return clauses
}

func desc(field string) []store.SortField {
	return []store.SortField{{Field: field, Desc: true}}
}

func asc(field string) []store.SortField {
	return []store.SortField{{Field: field}}
}
