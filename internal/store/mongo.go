package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend runs every operation against a MongoDB database.
type MongoBackend struct {
	db *mongo.Database
}

// NewMongoBackend wraps an open database handle.
func NewMongoBackend(db *mongo.Database) *MongoBackend {
	return &MongoBackend{db: db}
}

// ConnectMongo opens a client, pings the primary and returns the named database.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, client.Database(database), nil
}

func (m *MongoBackend) Find(ctx context.Context, collection string, filter bson.M, opts FindOptions) ([]bson.Raw, error) {
	findOptions := options.Find()
	if len(opts.Sort) > 0 {
		sortDoc := bson.D{}
		for _, field := range opts.Sort {
			dir := 1
			if field.Desc {
				dir = -1
			}
			sortDoc = append(sortDoc, bson.E{Key: field.Field, Value: dir})
		}
		findOptions.SetSort(sortDoc)
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOptions.SetLimit(opts.Limit)
	}

	cur, err := m.db.Collection(collection).Find(ctx, orEmpty(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []bson.Raw
	for cur.Next(ctx) {
		// cur.Current is reused by the next call to Next.
		raw := make(bson.Raw, len(cur.Current))
		copy(raw, cur.Current)
		out = append(out, raw)
	}
	return out, cur.Err()
}

func (m *MongoBackend) FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error) {
	raw, err := m.db.Collection(collection).FindOne(ctx, orEmpty(filter)).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return raw, err
}

func (m *MongoBackend) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return m.db.Collection(collection).CountDocuments(ctx, orEmpty(filter))
}

func (m *MongoBackend) Insert(ctx context.Context, collection string, doc interface{}) error {
	_, err := m.db.Collection(collection).InsertOne(ctx, doc)
	return err
}

func (m *MongoBackend) InsertMany(ctx context.Context, collection string, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := m.db.Collection(collection).InsertMany(ctx, docs)
	return err
}

func (m *MongoBackend) Update(ctx context.Context, collection string, filter bson.M, set bson.M) (int64, error) {
	res, err := m.db.Collection(collection).UpdateMany(ctx, orEmpty(filter), bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (m *MongoBackend) Delete(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := m.db.Collection(collection).DeleteMany(ctx, orEmpty(filter))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func orEmpty(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}
