package handlers

import (
	"net/http"

	"mendwell/models"
	"mendwell/services/role"
	"mendwell/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves profile and settings endpoints.
type UserHandler struct {
	Users    user.UserService
	Resolver *role.Resolver
}

// NewUserHandler wires a user handler.
func NewUserHandler(users user.UserService, resolver *role.Resolver) *UserHandler {
	return &UserHandler{Users: users, Resolver: resolver}
}

// GetProfileHandler returns the authenticated user's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	profile, err := h.Users.GetUserByID(userID)
	if err != nil {
		logger.Error("failed to get user profile", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetRoleHandler resolves and returns the authenticated user's role.
func (h *UserHandler) GetRoleHandler(c *gin.Context) {
	userID := c.GetString("userID")
	resolved := h.Resolver.Resolve(c.Request.Context(), userID, false)
	c.JSON(http.StatusOK, gin.H{"role": string(resolved)})
}

// UpdateProfileHandler updates the authenticated user's profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = userID

	updated, err := h.Users.UpdateUser(req)
	if err != nil {
		logger.Error("failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdatePasswordHandler rotates the authenticated user's password.
func (h *UserHandler) UpdatePasswordHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Users.UpdatePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

// DeleteAccountHandler deletes the authenticated user's account.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	if err := h.Users.DeleteUser(userID); err != nil {
		logger.Error("failed to delete account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "account deleted"})
}

// GetNotificationSettingsHandler returns the user's push settings.
func (h *UserHandler) GetNotificationSettingsHandler(c *gin.Context) {
	userID := c.GetString("userID")

	settings, err := h.Users.GetNotificationSettings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateNotificationSettingsHandler upserts the user's push settings.
func (h *UserHandler) UpdateNotificationSettingsHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.NotificationSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.UserID = userID

	settings, err := h.Users.UpdateNotificationSettings(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// BanUserHandler suspends an account. Operator-only.
func (h *UserHandler) BanUserHandler(c *gin.Context) {
	logger := getLogger(c)
	targetID := c.Param("id")

	if err := h.Users.BanUser(targetID); err != nil {
		logger.Error("failed to ban user", zap.String("userID", targetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ban user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "banned"})
}

// UnbanUserHandler reactivates a suspended account. Operator-only.
func (h *UserHandler) UnbanUserHandler(c *gin.Context) {
	logger := getLogger(c)
	targetID := c.Param("id")

	if err := h.Users.UnbanUser(targetID); err != nil {
		logger.Error("failed to unban user", zap.String("userID", targetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unban user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "active"})
}
