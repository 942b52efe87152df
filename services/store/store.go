// Package store manages merchant accounts and their admin area.
package store

import (
	"fmt"

	storeRepo "mendwell/database/repository/store"
	"mendwell/models"
	"mendwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StoreService interface {
	RegisterStore(store *models.Store) (*models.Store, error)
	UpdateStore(ownerID string, store *models.Store) (*models.Store, error)
	GetStoreByID(id string) (*models.Store, error)
	GetStoreByOwner(ownerID string) (*models.Store, error)
	ListStores(limit, offset int64) ([]models.Store, error)
	DeleteStore(ownerID, id string) error
}

// DefaultStoreService is the production implementation.
type DefaultStoreService struct {
	Repo storeRepo.StoreRepository
}

// RegisterStore creates a store for a platform user. A user can own at most
// one store; ownership is what promotes their resolved role.
func (s *DefaultStoreService) RegisterStore(store *models.Store) (*models.Store, error) {
	if store.OwnerID == "" {
		return nil, fmt.Errorf("an owning user id is required")
	}
	if store.Name == "" {
		return nil, fmt.Errorf("a store name is required")
	}

	exists, err := s.Repo.OwnerExists(store.OwnerID)
	if err != nil {
		utils.GetLogger().Error("RegisterStore: ownership probe failed", zap.Error(err))
		return nil, fmt.Errorf("store registration failed, please try again")
	}
	if exists {
		return nil, fmt.Errorf("this account already owns a store")
	}

	store.ID = uuid.New().String()
	if err := s.Repo.Create(store); err != nil {
		utils.GetLogger().Error("RegisterStore: failed to create store", zap.Error(err))
		return nil, fmt.Errorf("store registration failed, please try again")
	}
	return store, nil
}

// UpdateStore replaces the store's mutable fields after an ownership check.
func (s *DefaultStoreService) UpdateStore(ownerID string, store *models.Store) (*models.Store, error) {
	current, err := s.Repo.GetByID(store.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("store with id %s not found", store.ID)
	}
	if current.OwnerID != ownerID {
		return nil, fmt.Errorf("only the store owner can update it")
	}

	store.OwnerID = current.OwnerID
	store.CreatedAt = current.CreatedAt
	if err := s.Repo.Update(store); err != nil {
		utils.GetLogger().Error("UpdateStore: failed to update store", zap.String("id", store.ID), zap.Error(err))
		return nil, fmt.Errorf("store update failed, please try again")
	}
	return store, nil
}

// GetStoreByID retrieves a store.
func (s *DefaultStoreService) GetStoreByID(id string) (*models.Store, error) {
	store, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("store with id %s not found", id)
	}
	return store, nil
}

// GetStoreByOwner retrieves the store owned by a platform user.
func (s *DefaultStoreService) GetStoreByOwner(ownerID string) (*models.Store, error) {
	store, err := s.Repo.GetByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("no store for user %s", ownerID)
	}
	return store, nil
}

// ListStores returns a page of stores.
func (s *DefaultStoreService) ListStores(limit, offset int64) ([]models.Store, error) {
	return s.Repo.List(limit, offset)
}

// DeleteStore removes the store after an ownership check. The owner's role
// should be invalidated by the caller so the demotion takes effect.
func (s *DefaultStoreService) DeleteStore(ownerID, id string) error {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch store: %w", err)
	}
	if current == nil {
		return fmt.Errorf("store with id %s not found", id)
	}
	if current.OwnerID != ownerID {
		return fmt.Errorf("only the store owner can delete it")
	}
	return s.Repo.Delete(id)
}
