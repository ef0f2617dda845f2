package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fixly/apperr"
	"fixly/database"
	"fixly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	coll := database.DB().Collection("providers")
	repo := &MongoProviderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create provider indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) Create(ctx context.Context, profile *models.ProviderProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("provider profile for user %s already exists", profile.UserID)
		}
		return fmt.Errorf("failed to create provider profile: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) GetByUserID(ctx context.Context, userID string) (*models.ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.ProviderProfile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("provider profile for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to fetch provider profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// UpdateFields patches the provider document with a $set over exactly
// the provided fields. Callers must never include the derived stats
// paths here; those belong to IncrementStats and SetRating.
func (r *MongoProviderRepo) UpdateFields(ctx context.Context, userID string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update provider profile %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("provider profile for user %s not found", userID)
	}
	return nil
}

// IncrementStats relies on Mongo's atomic $inc so two bookings
// completing concurrently for the same provider cannot lose a count.
func (r *MongoProviderRepo) IncrementStats(ctx context.Context, userID string, earnings float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"totalJobs": 1, "totalEarnings": earnings},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to increment stats for provider %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("provider profile for user %s not found", userID)
	}
	return nil
}

func (r *MongoProviderRepo) SetRating(ctx context.Context, userID string, rating float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"rating": rating, "updatedAt": time.Now().UTC()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to set rating for provider %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("provider profile for user %s not found", userID)
	}
	return nil
}
