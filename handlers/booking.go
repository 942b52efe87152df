package handlers

import (
	"net/http"

	"mendwell/models"
	"mendwell/services/booking"
	"mendwell/services/therapist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking lifecycle.
type BookingHandler struct {
	Bookings   booking.BookingService
	Therapists therapist.TherapistService
}

// NewBookingHandler wires a booking handler.
func NewBookingHandler(bookings booking.BookingService, therapists therapist.TherapistService) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Therapists: therapists}
}

// CreateBookingHandler books a slot for the caller.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Bookings.CreateBooking(userID, req)
	if err != nil {
		logger.Warn("booking rejected", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBookingHandler returns one booking, visible only to its parties.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")

	b, err := h.Bookings.GetBookingByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if b.UserID != userID && !h.ownsTherapist(userID, b.TherapistID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookingsHandler returns the caller's bookings.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	bookings, err := h.Bookings.ListUserBookings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListCalendarHandler returns the caller's therapist calendar.
func (h *BookingHandler) ListCalendarHandler(c *gin.Context) {
	userID := c.GetString("userID")

	t, err := h.Therapists.GetTherapistByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	bookings, err := h.Bookings.ListTherapistBookings(t.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ConfirmBookingHandler accepts a pending booking.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	h.statusChange(c, h.Bookings.ConfirmBooking)
}

// CancelBookingHandler cancels a booking.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	h.statusChange(c, h.Bookings.CancelBooking)
}

// CompleteBookingHandler closes out a confirmed booking.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	h.statusChange(c, h.Bookings.CompleteBooking)
}

func (h *BookingHandler) statusChange(c *gin.Context, fn func(actorID, bookingID string) (*models.Booking, error)) {
	userID := c.GetString("userID")
	updated, err := fn(userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) ownsTherapist(userID, therapistID string) bool {
	t, err := h.Therapists.GetTherapistByID(therapistID)
	return err == nil && t.UserID == userID
}
