// Package store is the document collection layer consumed by the reporting
// engine. Filters are plain bson.M documents in MongoDB query syntax so the
// same filter runs against every backend.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned by FindOne when no document matches.
var ErrNotFound = errors.New("document not found")

// SortField orders results by a single field.
type SortField struct {
	Field string
	Desc  bool
}

// FindOptions controls ordering and paging of a find. A zero Limit means no limit.
type FindOptions struct {
	Sort  []SortField
	Skip  int64
	Limit int64
}

// Backend is a generic document store. Documents cross the boundary as raw BSON.
type Backend interface {
	Find(ctx context.Context, collection string, filter bson.M, opts FindOptions) ([]bson.Raw, error)
	FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error)
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
	Insert(ctx context.Context, collection string, doc interface{}) error
	InsertMany(ctx context.Context, collection string, docs []interface{}) error
	// Update applies set as a $set to every matching document and returns the match count.
	Update(ctx context.Context, collection string, filter bson.M, set bson.M) (int64, error)
	Delete(ctx context.Context, collection string, filter bson.M) (int64, error)
}

// Collection is a typed view over one backend collection.
type Collection[T any] struct {
	backend Backend
	name    string
}

// NewCollection binds a typed collection to a backend.
func NewCollection[T any](backend Backend, name string) *Collection[T] {
	return &Collection[T]{backend: backend, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Find returns every document matching filter.
func (c *Collection[T]) Find(ctx context.Context, filter bson.M, opts FindOptions) ([]T, error) {
	raws, err := c.backend.Find(ctx, c.name, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var doc T
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// FindOne returns the first matching document or ErrNotFound.
func (c *Collection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	raw, err := c.backend.FindOne(ctx, c.name, filter)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find one %s: %w", c.name, err)
	}
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return &doc, nil
}

// FindByID is FindOne on the "id" field.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return c.FindOne(ctx, bson.M{"id": id})
}

// Count returns the number of matching documents.
func (c *Collection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := c.backend.Count(ctx, c.name, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return n, nil
}

// Insert stores a single document.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	if err := c.backend.Insert(ctx, c.name, doc); err != nil {
		return fmt.Errorf("insert %s: %w", c.name, err)
	}
	return nil
}

// InsertMany stores docs in order.
func (c *Collection[T]) InsertMany(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	batch := make([]interface{}, len(docs))
	for i := range docs {
		batch[i] = &docs[i]
	}
	if err := c.backend.InsertMany(ctx, c.name, batch); err != nil {
		return fmt.Errorf("insert many %s: %w", c.name, err)
	}
	return nil
}

// Update sets fields on every matching document.
func (c *Collection[T]) Update(ctx context.Context, filter bson.M, set bson.M) (int64, error) {
	n, err := c.backend.Update(ctx, c.name, filter, set)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", c.name, err)
	}
	return n, nil
}

// DeleteAll empties the collection.
func (c *Collection[T]) DeleteAll(ctx context.Context) error {
	if _, err := c.backend.Delete(ctx, c.name, bson.M{}); err != nil {
		return fmt.Errorf("delete %s: %w", c.name, err)
	}
	return nil
}
