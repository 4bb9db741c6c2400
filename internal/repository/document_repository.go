package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/casino-admin/internal/logging"
	"github.com/example/casino-admin/internal/store"
)

// Document is one BSON document persisted in a relational table.
type Document struct {
	ID         uint      `gorm:"primaryKey"`
	Collection string    `gorm:"column:collection;size:64;index:idx_documents_collection_doc"`
	DocID      string    `gorm:"column:doc_id;size:64;index:idx_documents_collection_doc"`
	Body       []byte    `gorm:"column:body;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName overrides the default table name.
func (Document) TableName() string {
	return "documents"
}

// DocumentRepository implements store.Backend on top of gorm. Rows are scoped
// to a collection in SQL; the query itself is evaluated in process.
type DocumentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new repository instance.
func NewDocumentRepository(db *gorm.DB, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{db: db, logger: logger.Named("document_repository")}
}

// AutoMigrate ensures the schema is available.
func (r *DocumentRepository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Document{})
}

func (r *DocumentRepository) load(ctx context.Context, collection string) ([]Document, error) {
	var rows []Document
	err := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id").
		Find(&rows).Error
	if err != nil {
		wrapped := logging.NewOperationError("repository.load."+collection, "", err)
		r.logger.Error("failed to load documents", zap.Error(wrapped))
		return nil, wrapped
	}
	return rows, nil
}

func (r *DocumentRepository) Find(ctx context.Context, collection string, filter bson.M, opts store.FindOptions) ([]bson.Raw, error) {
	rows, err := r.load(ctx, collection)
	if err != nil {
		return nil, err
	}
	raws := make([]bson.Raw, len(rows))
	for i := range rows {
		raws[i] = rows[i].Body
	}
	return store.Select(raws, filter, opts)
}

func (r *DocumentRepository) FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error) {
	docs, err := r.Find(ctx, collection, filter, store.FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, store.ErrNotFound
	}
	return docs[0], nil
}

func (r *DocumentRepository) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	docs, err := r.Find(ctx, collection, filter, store.FindOptions{})
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func (r *DocumentRepository) Insert(ctx context.Context, collection string, doc interface{}) error {
	return r.InsertMany(ctx, collection, []interface{}{doc})
}

func (r *DocumentRepository) InsertMany(ctx context.Context, collection string, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	rows, err := encodeRows(collection, docs, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, 100).Error; err != nil {
		return logging.NewOperationError("repository.insert."+collection, "", err)
	}
	return nil
}

func (r *DocumentRepository) Update(ctx context.Context, collection string, filter bson.M, set bson.M) (int64, error) {
	rows, err := r.load(ctx, collection)
	if err != nil {
		return 0, err
	}
	var matched int64
	for i := range rows {
		hit, err := store.Select([]bson.Raw{rows[i].Body}, filter, store.FindOptions{})
		if err != nil {
			return matched, err
		}
		if len(hit) == 0 {
			continue
		}
		body, err := store.ApplySet(rows[i].Body, set)
		if err != nil {
			return matched, err
		}
		err = r.db.WithContext(ctx).
			Model(&Document{}).
			Where("id = ?", rows[i].ID).
			Update("body", []byte(body)).Error
		if err != nil {
			return matched, logging.NewOperationError("repository.update."+collection, store.DocumentID(rows[i].Body), err)
		}
		matched++
	}
	return matched, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, collection string, filter bson.M) (int64, error) {
	if len(filter) == 0 {
		res := r.db.WithContext(ctx).Where("collection = ?", collection).Delete(&Document{})
		if res.Error != nil {
			return 0, logging.NewOperationError("repository.delete."+collection, "", res.Error)
		}
		return res.RowsAffected, nil
	}

	rows, err := r.load(ctx, collection)
	if err != nil {
		return 0, err
	}
	var ids []uint
	for i := range rows {
		hit, err := store.Select([]bson.Raw{rows[i].Body}, filter, store.FindOptions{})
		if err != nil {
			return 0, err
		}
		if len(hit) > 0 {
			ids = append(ids, rows[i].ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Delete(&Document{}, ids)
	if res.Error != nil {
		return 0, logging.NewOperationError("repository.delete."+collection, "", res.Error)
	}
	return res.RowsAffected, nil
}

func encodeRows(collection string, docs []interface{}, now time.Time) ([]*Document, error) {
	rows := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		body, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &Document{
			Collection: collection,
			DocID:      store.DocumentID(body),
			Body:       body,
			CreatedAt:  now,
		})
	}
	return rows, nil
}
