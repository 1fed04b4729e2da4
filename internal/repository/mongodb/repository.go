package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/repository/tablestore"
)

const snapshotCollection = "summary_snapshots"

// SnapshotRepository defines the interface for summary snapshot storage.
type SnapshotRepository interface {
	SaveSummarySnapshot(ctx context.Context, snapshot models.SummarySnapshot) error
}

var (
	_ tablestore.Store   = (*MongoDBRepository)(nil)
	_ SnapshotRepository = (*MongoDBRepository)(nil)
)

// MongoDBRepository stores record collections and summary snapshots in MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
	now    func() time.Time
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
		now:    time.Now,
	}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Count returns the number of documents in the collection.
func (r *MongoDBRepository) Count(ctx context.Context, collection string) (int, error) {
	n, err := r.collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return int(n), nil
}

// Insert stamps every document with created_at and stores them with one InsertMany.
func (r *MongoDBRepository) Insert(ctx context.Context, collection string, docs []models.Document) ([]models.Document, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	createdAt := r.now().UTC()
	payload := make([]interface{}, 0, len(docs))
	stored := make([]models.Document, 0, len(docs))

	for _, doc := range docs {
		row := make(bson.M, len(doc)+1)
		for k, v := range doc {
			row[k] = v
		}
		row["created_at"] = createdAt
		payload = append(payload, row)
		stored = append(stored, models.Document(row))
	}

	res, err := r.collection(collection).InsertMany(ctx, payload, options.InsertMany().SetOrdered(true))
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	for i, id := range res.InsertedIDs {
		if i < len(stored) {
			stored[i]["id"] = idString(id)
		}
	}
	return stored, nil
}

// SelectRange returns a window of documents, newest first. _id breaks ties between
// documents inserted in the same batch.
func (r *MongoDBRepository) SelectRange(ctx context.Context, collection string, offset, limit int) ([]models.Document, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(rows))
	for _, row := range rows {
		if id, ok := row["_id"]; ok {
			row["id"] = idString(id)
			delete(row, "_id")
		}
		docs = append(docs, models.Document(row))
	}
	return docs, nil
}

// DeleteAll removes every document from the collection.
func (r *MongoDBRepository) DeleteAll(ctx context.Context, collection string) error {
	if _, err := r.collection(collection).DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return nil
}

// SaveSummarySnapshot saves a summary snapshot to the database.
func (r *MongoDBRepository) SaveSummarySnapshot(ctx context.Context, snapshot models.SummarySnapshot) error {
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = r.now().UTC()
	}
	_, err := r.collection(snapshotCollection).InsertOne(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("failed to insert summary snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func idString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
