// Package chat persists direct messages and fans them out in real time over
// Redis pub/sub. A conversation is not a stored entity; it is the channel
// between two principals, derived from their message history.
package chat

import (
	"context"

	messageRepo "mendwell/database/repository/message"
	"mendwell/models"
)

// Notifier pushes new-message notifications. Satisfied by the notification
// service.
type Notifier interface {
	NotifyMessage(userID, title, body string)
}

// Bus fans messages out to live subscribers. Implemented by RedisBus.
type Bus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

type ChatService interface {
	SendMessage(senderID string, msg *models.Message) (*models.Message, error)
	History(userID, counterpartID string, limit int64) ([]models.Message, error)
	Conversations(userID string) ([]models.Conversation, error)
	MarkRead(userID, counterpartID string) error
	UnreadCount(userID string) (int64, error)
	Subscribe(ctx context.Context, userID, counterpartID string) (<-chan models.Message, error)
}

// DefaultChatService is the production implementation.
type DefaultChatService struct {
	Repo     messageRepo.MessageRepository
	Bus      Bus
	Notifier Notifier
}
