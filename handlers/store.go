package handlers

import (
	"context"
	"net/http"
	"strconv"

	"mendwell/models"
	"mendwell/services/role"
	"mendwell/services/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StoreHandler serves merchant accounts and their admin area.
type StoreHandler struct {
	Stores   store.StoreService
	Resolver *role.Resolver
}

// NewStoreHandler wires a store handler.
func NewStoreHandler(stores store.StoreService, resolver *role.Resolver) *StoreHandler {
	return &StoreHandler{Stores: stores, Resolver: resolver}
}

// RegisterStoreHandler creates a store for the caller. The cached role is
// invalidated so the promotion to store owner is picked up immediately.
func (h *StoreHandler) RegisterStoreHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req models.Store
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.OwnerID = userID

	created, err := h.Stores.RegisterStore(&req)
	if err != nil {
		logger.Warn("store registration rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.Resolver.Invalidate(context.Background(), userID)
	c.JSON(http.StatusCreated, created)
}

// UpdateStoreHandler updates the caller's store.
func (h *StoreHandler) UpdateStoreHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.Store
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("id")

	updated, err := h.Stores.UpdateStore(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetStoreHandler returns one store.
func (h *StoreHandler) GetStoreHandler(c *gin.Context) {
	s, err := h.Stores.GetStoreByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

// GetMyStoreHandler returns the caller's store, the entry point of the
// store admin area.
func (h *StoreHandler) GetMyStoreHandler(c *gin.Context) {
	userID := c.GetString("userID")
	s, err := h.Stores.GetStoreByOwner(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListStoresHandler returns a page of stores.
func (h *StoreHandler) ListStoresHandler(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	stores, err := h.Stores.ListStores(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

// DeleteStoreHandler removes the caller's store and demotes their role.
func (h *StoreHandler) DeleteStoreHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Stores.DeleteStore(userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.Resolver.Invalidate(context.Background(), userID)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
