package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mendwell/models"
	"mendwell/services/schedule"
	"mendwell/services/storage"
	"mendwell/services/therapist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TherapistHandler serves therapist profiles, availability and verification.
type TherapistHandler struct {
	Therapists therapist.TherapistService
	Storage    storage.StorageService
}

// NewTherapistHandler wires a therapist handler.
func NewTherapistHandler(therapists therapist.TherapistService, store storage.StorageService) *TherapistHandler {
	return &TherapistHandler{Therapists: therapists, Storage: store}
}

// RegisterTherapistHandler creates a therapist profile for the caller.
func (h *TherapistHandler) RegisterTherapistHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req models.Therapist
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.UserID = userID

	created, err := h.Therapists.RegisterTherapist(&req)
	if err != nil {
		logger.Warn("therapist registration rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTherapistHandler updates the caller's therapist profile.
func (h *TherapistHandler) UpdateTherapistHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.Therapist
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("id")

	updated, err := h.Therapists.UpdateTherapist(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetTherapistHandler returns one therapist profile.
func (h *TherapistHandler) GetTherapistHandler(c *gin.Context) {
	t, err := h.Therapists.GetTherapistByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// ListTherapistsHandler returns profiles matching the query filters.
func (h *TherapistHandler) ListTherapistsHandler(c *gin.Context) {
	var query models.TherapistQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	therapists, err := h.Therapists.ListTherapists(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list therapists"})
		return
	}
	c.JSON(http.StatusOK, therapists)
}

// DeleteTherapistHandler removes the caller's therapist profile.
func (h *TherapistHandler) DeleteTherapistHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Therapists.DeleteTherapist(userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AvailableDatesHandler returns the bookable dates in the lookahead window.
func (h *TherapistHandler) AvailableDatesHandler(c *gin.Context) {
	days := schedule.DefaultLookaheadDays
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}

	dates, err := h.Therapists.AvailableDates(c.Param("id"), time.Now(), days)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// AvailableSlotsHandler returns the bookable start times for a date.
func (h *TherapistHandler) AvailableSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.Therapists.AvailableSlots(c.Param("id"), date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, schedule.SlotLabel(s, schedule.DefaultIncrement))
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots, "labels": labels})
}

// FollowHandler records a follow.
func (h *TherapistHandler) FollowHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Therapists.Follow(userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "following"})
}

// UnfollowHandler removes a follow.
func (h *TherapistHandler) UnfollowHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Therapists.Unfollow(userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unfollowed"})
}

// ListFollowedHandler returns the therapists the caller follows.
func (h *TherapistHandler) ListFollowedHandler(c *gin.Context) {
	userID := c.GetString("userID")
	therapists, err := h.Therapists.ListFollowed(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list followed therapists"})
		return
	}
	c.JSON(http.StatusOK, therapists)
}

// SubmitVerificationHandler uploads a credential document and moves the
// caller's profile into review.
func (h *TherapistHandler) SubmitVerificationHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A document file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read the uploaded file"})
		return
	}
	defer file.Close()

	publicID, _, err := h.Storage.Upload(c.Request.Context(), file, "verification", fileHeader.Filename)
	if err != nil {
		logger.Error("verification upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	if err := h.Therapists.SubmitVerification(userID, publicID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.VerificationPending})
}

// ReviewVerificationHandler resolves a pending review. Operator-only.
func (h *TherapistHandler) ReviewVerificationHandler(c *gin.Context) {
	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Therapists.ReviewVerification(c.Param("id"), req.Approve); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reviewed"})
}

// VerificationDocumentHandler returns a signed, expiring URL for the
// credential document. Operator-only.
func (h *TherapistHandler) VerificationDocumentHandler(c *gin.Context) {
	t, err := h.Therapists.GetTherapistByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if t.VerificationDocument == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No verification document on file"})
		return
	}
	url := h.Storage.GetSecureDownloadURL(t.VerificationDocument, 15*time.Minute)
	c.JSON(http.StatusOK, gin.H{"url": url})
}
