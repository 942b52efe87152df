// Package notification delivers FCM pushes, gated by each user's
// notification settings.
package notification

import (
	"context"
	"time"

	userRepo "mendwell/database/repository/user"
	"mendwell/models"
	"mendwell/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Notification categories, matching the settings toggles.
const (
	CategoryMessages  = "messages"
	CategoryBookings  = "bookings"
	CategoryMarketing = "marketing"
)

type NotificationService interface {
	NotifyMessage(userID, title, body string)
	NotifyBooking(userID, title, body string)
	NotifyMarketing(userID, title, body string)
}

// DefaultNotificationService is the production implementation. A nil Client
// turns every push into a no-op, which keeps tests and local runs quiet.
type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	Client *messaging.Client
}

// NotifyMessage pushes a chat notification.
func (s *DefaultNotificationService) NotifyMessage(userID, title, body string) {
	go s.send(userID, CategoryMessages, title, body)
}

// NotifyBooking pushes a booking lifecycle notification.
func (s *DefaultNotificationService) NotifyBooking(userID, title, body string) {
	go s.send(userID, CategoryBookings, title, body)
}

// NotifyMarketing pushes promotional content. Off by default.
func (s *DefaultNotificationService) NotifyMarketing(userID, title, body string) {
	go s.send(userID, CategoryMarketing, title, body)
}

func (s *DefaultNotificationService) send(userID, category, title, body string) {
	if s.Client == nil {
		return
	}
	if !s.allowed(userID, category) {
		return
	}

	userRec, err := s.Users.GetByID(userID)
	if err != nil || userRec == nil {
		utils.GetLogger().Warn("push: failed to load recipient", zap.String("userID", userID), zap.Error(err))
		return
	}
	if userRec.FCMToken == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := &messaging.Message{
		Token: userRec.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{"category": category},
	}
	if _, err := s.Client.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("push: delivery failed", zap.String("userID", userID), zap.Error(err))
	}
}

// allowed checks the user's settings toggle for the category. Missing
// settings fall back to the defaults.
func (s *DefaultNotificationService) allowed(userID, category string) bool {
	settings, err := s.Users.GetNotificationSettings(userID)
	if err != nil {
		utils.GetLogger().Warn("push: failed to load settings", zap.String("userID", userID), zap.Error(err))
		return false
	}
	if settings == nil {
		defaults := models.DefaultNotificationSettings(userID)
		settings = &defaults
	}

	switch category {
	case CategoryMessages:
		return settings.Messages
	case CategoryBookings:
		return settings.Bookings
	case CategoryMarketing:
		return settings.Marketing
	default:
		return false
	}
}
