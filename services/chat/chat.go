package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mendwell/models"
	"mendwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// streamDedupeWindow caps how many recent message ids a live subscription
// remembers for duplicate suppression.
const streamDedupeWindow = 512

// SendMessage persists the message, fans it out to live subscribers, and
// notifies the receiver. Persistence is the source of truth; a pub/sub
// failure only degrades liveness.
func (s *DefaultChatService) SendMessage(senderID string, msg *models.Message) (*models.Message, error) {
	if msg.ReceiverID == "" {
		return nil, fmt.Errorf("a receiver id is required")
	}
	if msg.ReceiverID == senderID {
		return nil, fmt.Errorf("cannot message yourself")
	}
	if msg.Text == "" && msg.ImageURL == "" {
		return nil, fmt.Errorf("a message needs text or an image")
	}

	msg.ID = uuid.New().String()
	msg.SenderID = senderID
	msg.SentAt = time.Now()
	msg.Read = false

	if err := s.Repo.Create(msg); err != nil {
		utils.GetLogger().Error("SendMessage: failed to persist message", zap.Error(err))
		return nil, fmt.Errorf("failed to send message, please try again")
	}

	if s.Bus != nil {
		payload, err := json.Marshal(msg)
		if err == nil {
			channel := ChannelFor(senderID, msg.ReceiverID)
			if err := s.Bus.Publish(context.Background(), channel, payload); err != nil {
				utils.GetLogger().Warn("SendMessage: fan-out failed", zap.String("channel", channel), zap.Error(err))
			}
		}
	}

	if s.Notifier != nil {
		preview := msg.Text
		if preview == "" {
			preview = "Sent you an image"
		}
		s.Notifier.NotifyMessage(msg.ReceiverID, "New message", preview)
	}
	return msg, nil
}

// History returns the messages exchanged with a counterpart, oldest first.
// The page runs through a collector so duplicates never reach the client
// even if the underlying query overlaps a live replay.
func (s *DefaultChatService) History(userID, counterpartID string, limit int64) ([]models.Message, error) {
	messages, err := s.Repo.ListBetween(userID, counterpartID, limit)
	if err != nil {
		return nil, err
	}
	collector := NewCollector()
	collector.AddAll(messages)
	return collector.Messages(), nil
}

// Conversations derives the user's conversation list by grouping their
// messages by counterpart, newest conversation first.
func (s *DefaultChatService) Conversations(userID string) ([]models.Conversation, error) {
	messages, err := s.Repo.ListForUser(userID, 0)
	if err != nil {
		return nil, err
	}

	// Messages arrive newest first, so the first message seen for a
	// counterpart is that conversation's latest.
	var order []string
	byCounterpart := make(map[string]*models.Conversation)
	for i := range messages {
		msg := messages[i]
		counterpart := msg.SenderID
		if counterpart == userID {
			counterpart = msg.ReceiverID
		}

		conv, ok := byCounterpart[counterpart]
		if !ok {
			conv = &models.Conversation{CounterpartID: counterpart, LastMessage: &messages[i]}
			byCounterpart[counterpart] = conv
			order = append(order, counterpart)
		}
		if msg.ReceiverID == userID && !msg.Read {
			conv.UnreadCount++
		}
	}

	conversations := make([]models.Conversation, 0, len(order))
	for _, counterpart := range order {
		conversations = append(conversations, *byCounterpart[counterpart])
	}
	return conversations, nil
}

// MarkRead flags everything the counterpart sent as read.
func (s *DefaultChatService) MarkRead(userID, counterpartID string) error {
	return s.Repo.MarkRead(userID, counterpartID)
}

// UnreadCount returns the user's total unread message count.
func (s *DefaultChatService) UnreadCount(userID string) (int64, error) {
	return s.Repo.UnreadCount(userID)
}

// Subscribe opens a live message stream for the conversation. The returned
// channel closes when the context ends.
func (s *DefaultChatService) Subscribe(ctx context.Context, userID, counterpartID string) (<-chan models.Message, error) {
	if s.Bus == nil {
		return nil, fmt.Errorf("realtime messaging is not available")
	}

	channel := ChannelFor(userID, counterpartID)
	payloads, closeFn, err := s.Bus.Subscribe(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to conversation: %w", err)
	}

	out := make(chan models.Message, 16)
	go func() {
		defer close(out)
		defer closeFn()
		// Redis pub/sub is at-most-once per subscriber but a client may
		// reconnect mid-conversation; the collector drops redeliveries. The
		// window is bounded so a long-lived stream does not accumulate every
		// message it ever saw.
		collector := NewBoundedCollector(streamDedupeWindow)
		for payload := range payloads {
			var msg models.Message
			if err := json.Unmarshal(payload, &msg); err != nil {
				utils.GetLogger().Warn("Subscribe: dropping undecodable payload", zap.Error(err))
				continue
			}
			if !collector.Add(msg) {
				continue
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
