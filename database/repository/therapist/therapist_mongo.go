package therapistRepo

import (
	"context"
	"fmt"
	"time"

	"mendwell/database"
	"mendwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTherapistRepo implements TherapistRepository using MongoDB.
type MongoTherapistRepo struct {
	coll *mongo.Collection
}

// NewMongoTherapistRepo creates a new instance of TherapistRepository using MongoDB.
func NewMongoTherapistRepo() TherapistRepository {
	repo := &MongoTherapistRepo{coll: database.Collection("therapists")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create therapist indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTherapistRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "specialties", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "bio", Value: "text"}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new therapist document.
func (r *MongoTherapistRepo) Create(therapist *models.Therapist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	therapist.CreatedAt = now
	therapist.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, therapist); err != nil {
		return fmt.Errorf("failed to create therapist: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a therapist document.
func (r *MongoTherapistRepo) Update(therapist *models.Therapist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	therapist.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": therapist.ID}, bson.M{"$set": therapist})
	if err != nil {
		return fmt.Errorf("failed to update therapist with id %s: %w", therapist.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", therapist.ID)
	}
	return nil
}

// UpdateWithDocument applies a raw update document.
func (r *MongoTherapistRepo) UpdateWithDocument(id string, update bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update therapist with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}

// Delete removes a therapist document by its ID.
func (r *MongoTherapistRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete therapist with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a therapist by its unique ID.
func (r *MongoTherapistRepo) GetByID(id string) (*models.Therapist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var therapist models.Therapist
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&therapist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch therapist with id %s: %w", id, err)
	}
	return &therapist, nil
}

// GetByUserID retrieves the therapist profile owned by a platform user.
func (r *MongoTherapistRepo) GetByUserID(userID string) (*models.Therapist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var therapist models.Therapist
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&therapist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch therapist for user %s: %w", userID, err)
	}
	return &therapist, nil
}

// ExistsForUser reports whether a therapist row exists for the given user id.
// Used by the role resolver probe.
func (r *MongoTherapistRepo) ExistsForUser(userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to probe therapist for user %s: %w", userID, err)
	}
	return count > 0, nil
}

// List returns therapists matching the query filters.
func (r *MongoTherapistRepo) List(query models.TherapistQuery) ([]models.Therapist, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if query.Keyword != "" {
		filter["$text"] = bson.M{"$search": query.Keyword}
	}
	if query.Specialty != "" {
		filter["specialties"] = query.Specialty
	}
	if query.Method != "" {
		filter["meeting_methods"] = query.Method
	}
	if query.Verified != nil {
		filter["verified"] = *query.Verified
	}

	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	opts := options.Find().
		SetLimit(limit).
		SetSkip(query.Offset).
		SetSort(bson.D{{Key: "follower_count", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	defer cursor.Close(ctx)

	var therapists []models.Therapist
	for cursor.Next(ctx) {
		var t models.Therapist
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode therapist: %w", err)
		}
		therapists = append(therapists, t)
	}
	return therapists, nil
}

// IncrementFollowers bumps the follower counter (delta may be negative).
func (r *MongoTherapistRepo) IncrementFollowers(id string, delta int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$inc": bson.M{"follower_count": delta}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to update follower count for %s: %w", id, err)
	}
	return nil
}

// SetVerification updates the verification state and document reference.
func (r *MongoTherapistRepo) SetVerification(id string, status string, document string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{
		"verification_status": status,
		"verified":            status == models.VerificationApproved,
		"updated_at":          time.Now(),
	}
	if document != "" {
		set["verification_document"] = document
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to set verification for %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}
