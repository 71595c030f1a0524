package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crestline/huddle/backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ImageRepository is the asset store for uploaded images. The relational
// side never references these documents; posts carry the returned URL as a
// plain string value.
type ImageRepository interface {
	StoreImage(ctx context.Context, data []byte, contentType string) (*models.Image, error)
	GetImageByID(ctx context.Context, id string) (*models.Image, error)
}

// MongoImageRepository implements ImageRepository for MongoDB.
type MongoImageRepository struct {
	collection *mongo.Collection
}

// NewMongoImageRepository creates a new MongoImageRepository.
func NewMongoImageRepository(db *mongo.Database) *MongoImageRepository {
	return &MongoImageRepository{collection: db.Collection("images")}
}

// StoreImage persists the uploaded bytes and returns the stored image with
// its generated id; Image.URL gives the public path.
func (r *MongoImageRepository) StoreImage(ctx context.Context, data []byte, contentType string) (*models.Image, error) {
	img := &models.Image{
		ID:          uuid.NewString(),
		ContentType: contentType,
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, img); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	return img, nil
}

func (r *MongoImageRepository) GetImageByID(ctx context.Context, id string) (*models.Image, error) {
	var img models.Image
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&img)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("image %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get image: %w", err)
	}
	return &img, nil
}
