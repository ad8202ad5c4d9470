package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/nano-midea/discovery/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoContentRepository implements ContentReader for MongoDB
type MongoContentRepository struct {
	collection *mongo.Collection
}

// NewMongoContentRepository creates a new MongoContentRepository
func NewMongoContentRepository(db *mongo.Database) *MongoContentRepository {
	return &MongoContentRepository{collection: db.Collection("content")}
}

// GetContent retrieves a content item by ID
func (r *MongoContentRepository) GetContent(ctx context.Context, id string) (*models.Content, error) {
	var c models.Content
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetAllContent retrieves the whole corpus ordered by ID
func (r *MongoContentRepository) GetAllContent(ctx context.Context) ([]models.Content, error) {
	return r.find(ctx, bson.D{})
}

// GetContentByOwner retrieves every item created by ownerID
func (r *MongoContentRepository) GetContentByOwner(ctx context.Context, ownerID string) ([]models.Content, error) {
	return r.find(ctx, bson.M{"user_id": ownerID})
}

func (r *MongoContentRepository) find(ctx context.Context, filter interface{}) ([]models.Content, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Content
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// EnsureIndexes creates the secondary indexes the listing queries use
func (r *MongoContentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "hashtags", Value: 1}}},
		{Keys: bson.D{{Key: "visibility", Value: 1}, {Key: "is_archived", Value: 1}}},
	})
	return err
}

// PutContent upserts a content item and reports whether it was newly inserted
func (r *MongoContentRepository) PutContent(ctx context.Context, c *models.Content) (bool, error) {
	now := time.Now().UnixMilli()
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = now
	}
	if c.UpdatedAt == 0 {
		c.UpdatedAt = c.CreatedAt
	}
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// DeleteContent removes a content item and returns what was deleted
func (r *MongoContentRepository) DeleteContent(ctx context.Context, id string) (*models.Content, error) {
	var c models.Content
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
