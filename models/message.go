package models

import "time"

// Message is one chat message between two principals. Conversations are not
// stored; they are derived by grouping messages by counterpart id.
type Message struct {
	ID         string    `bson:"id" json:"id"`
	SenderID   string    `bson:"sender_id" json:"senderId"`
	ReceiverID string    `bson:"receiver_id" json:"receiverId"`
	Text       string    `bson:"text,omitempty" json:"text,omitempty"`
	ImageURL   string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	SentAt     time.Time `bson:"sent_at" json:"sentAt"`
	Read       bool      `bson:"read" json:"read"`
}

// Conversation is a derived view: the counterpart plus the newest message
// and how many of their messages are still unread.
type Conversation struct {
	CounterpartID string   `json:"counterpartId"`
	LastMessage   *Message `json:"lastMessage,omitempty"`
	UnreadCount   int      `json:"unreadCount"`
}
