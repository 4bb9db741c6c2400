package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryBackend keeps documents in process. Documents are BSON-encoded on
// insert so reads see exactly what a database round trip would return.
type MemoryBackend struct {
	mu          sync.RWMutex
	collections map[string][]bson.Raw
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{collections: make(map[string][]bson.Raw)}
}

func (m *MemoryBackend) Find(ctx context.Context, collection string, filter bson.M, opts FindOptions) ([]bson.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Select(m.collections[collection], filter, opts)
}

func (m *MemoryBackend) FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error) {
	docs, err := m.Find(ctx, collection, filter, FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs[0], nil
}

func (m *MemoryBackend) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	docs, err := m.Find(ctx, collection, filter, FindOptions{})
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func (m *MemoryBackend) Insert(ctx context.Context, collection string, doc interface{}) error {
	return m.InsertMany(ctx, collection, []interface{}{doc})
}

func (m *MemoryBackend) InsertMany(ctx context.Context, collection string, docs []interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	encoded := make([]bson.Raw, 0, len(docs))
	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		encoded = append(encoded, raw)
	}
	m.mu.Lock()
	m.collections[collection] = append(m.collections[collection], encoded...)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Update(ctx context.Context, collection string, filter bson.M, set bson.M) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched int64
	docs := m.collections[collection]
	for i, raw := range docs {
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return matched, err
		}
		ok, err := Match(doc, filter)
		if err != nil {
			return matched, err
		}
		if !ok {
			continue
		}
		updated, err := ApplySet(raw, set)
		if err != nil {
			return matched, err
		}
		docs[i] = updated
		matched++
	}
	return matched, nil
}

func (m *MemoryBackend) Delete(ctx context.Context, collection string, filter bson.M) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.collections[collection][:0]
	var deleted int64
	for _, raw := range m.collections[collection] {
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return deleted, err
		}
		ok, err := Match(doc, filter)
		if err != nil {
			return deleted, err
		}
		if ok {
			deleted++
			continue
		}
		kept = append(kept, raw)
	}
	m.collections[collection] = kept
	return deleted, nil
}
