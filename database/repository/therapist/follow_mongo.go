package therapistRepo

import (
	"fmt"
	"time"

	"mendwell/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FollowRepository persists the user-to-therapist follow edges backing the
// follower counter.
type FollowRepository interface {
	Follow(userID, therapistID string) (bool, error)
	Unfollow(userID, therapistID string) (bool, error)
	IsFollowing(userID, therapistID string) (bool, error)
	ListFollowedIDs(userID string) ([]string, error)
}

type followEdge struct {
	UserID      string    `bson:"user_id"`
	TherapistID string    `bson:"therapist_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

// MongoFollowRepo implements FollowRepository using MongoDB.
type MongoFollowRepo struct {
	coll *mongo.Collection
}

// NewMongoFollowRepo creates a new instance of FollowRepository using MongoDB.
func NewMongoFollowRepo() FollowRepository {
	repo := &MongoFollowRepo{coll: database.Collection("therapist_follows")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create follow indexes: %v\n", err)
	}
	return repo
}

func (r *MongoFollowRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "therapist_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create follow index: %w", err)
	}
	return nil
}

// Follow records the edge. Returns false when it already existed.
func (r *MongoFollowRepo) Follow(userID, therapistID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	edge := followEdge{UserID: userID, TherapistID: therapistID, CreatedAt: time.Now()}
	if _, err := r.coll.InsertOne(ctx, edge); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to record follow: %w", err)
	}
	return true, nil
}

// Unfollow removes the edge. Returns false when there was none.
func (r *MongoFollowRepo) Unfollow(userID, therapistID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "therapist_id": therapistID})
	if err != nil {
		return false, fmt.Errorf("failed to remove follow: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// IsFollowing reports whether the edge exists.
func (r *MongoFollowRepo) IsFollowing(userID, therapistID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID, "therapist_id": therapistID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return count > 0, nil
}

// ListFollowedIDs returns the therapist ids the user follows, newest first.
func (r *MongoFollowRepo) ListFollowedIDs(userID string) ([]string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list follows: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var edge followEdge
		if err := cursor.Decode(&edge); err != nil {
			return nil, fmt.Errorf("failed to decode follow: %w", err)
		}
		ids = append(ids, edge.TherapistID)
	}
	return ids, nil
}
