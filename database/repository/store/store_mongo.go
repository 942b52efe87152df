package storeRepo

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

// StoreRepository defines persistence operations for stores.
type StoreRepository interface {
	Create(store *models.Store) error
	Update(store *models.Store) error
	Delete(id string) error
	GetByID(id string) (*models.Store, error)
	GetByOwnerID(ownerID string) (*models.Store, error)
	OwnerExists(ownerID string) (bool, error)
	List(limit, offset int64) ([]models.Store, error)
}

// MongoStoreRepo implements StoreRepository using MongoDB.
type MongoStoreRepo struct {
	coll *mongo.Collection
}

// NewMongoStoreRepo creates a new instance of StoreRepository using MongoDB.
func NewMongoStoreRepo() StoreRepository {
	repo := &MongoStoreRepo{coll: database.Collection("stores")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create store indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoStoreRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new store document.
func (r *MongoStoreRepo) Create(store *models.Store) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	store.CreatedAt = now
	store.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, store); err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// Update modifies an existing store document.
func (r *MongoStoreRepo) Update(store *models.Store) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	store.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": store.ID}, bson.M{"$set": store})
	if err != nil {
		return fmt.Errorf("failed to update store with id %s: %w", store.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("store with id %s not found", store.ID)
	}
	return nil
}

// Delete removes a store document by its ID.
func (r *MongoStoreRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete store with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("store with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a store by its unique ID.
func (r *MongoStoreRepo) GetByID(id string) (*models.Store, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var store models.Store
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&store); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch store with id %s: %w", id, err)
	}
	return &store, nil
}

// GetByOwnerID retrieves the store owned by a platform user.
func (r *MongoStoreRepo) GetByOwnerID(ownerID string) (*models.Store, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var store models.Store
	if err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&store); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch store for owner %s: %w", ownerID, err)
	}
	return &store, nil
}

// OwnerExists reports whether a store row exists for the given owner id.
// Used by the role resolver probe.
func (r *MongoStoreRepo) OwnerExists(ownerID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"owner_id": ownerID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to probe store for owner %s: %w", ownerID, err)
	}
	return count > 0, nil
}

// List returns stores, newest first.
func (r *MongoStoreRepo) List(limit, offset int64) ([]models.Store, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	opts := options.Find().
		SetLimit(limit).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer cursor.Close(ctx)

	var stores []models.Store
	for cursor.Next(ctx) {
		var s models.Store
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode store: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, nil
}
