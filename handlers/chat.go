package handlers

import (
	"io"
	"net/http"
	"strconv"

	"mendwell/models"
	"mendwell/services/chat"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves direct messages, conversation listings and the live
// message stream.
type ChatHandler struct {
	Chat chat.ChatService
}

// NewChatHandler wires a chat handler.
func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Chat: svc}
}

// SendMessageHandler persists a message and fans it out to live subscribers.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req models.Message
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sent, err := h.Chat.SendMessage(userID, &req)
	if err != nil {
		logger.Warn("message rejected", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sent)
}

// ConversationsHandler returns the caller's conversations, newest first.
func (h *ChatHandler) ConversationsHandler(c *gin.Context) {
	userID := c.GetString("userID")

	conversations, err := h.Chat.Conversations(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversations"})
		return
	}
	c.JSON(http.StatusOK, conversations)
}

// HistoryHandler returns the message history with one counterpart.
func (h *ChatHandler) HistoryHandler(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	messages, err := h.Chat.History(userID, c.Param("counterpartId"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkReadHandler marks every message from the counterpart as read.
func (h *ChatHandler) MarkReadHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Chat.MarkRead(userID, c.Param("counterpartId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// UnreadCountHandler returns the caller's total unread count, for badges.
func (h *ChatHandler) UnreadCountHandler(c *gin.Context) {
	userID := c.GetString("userID")
	count, err := h.Chat.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unread messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// StreamHandler streams new messages in the conversation as server-sent
// events until the client disconnects.
func (h *ChatHandler) StreamHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	messages, err := h.Chat.Subscribe(c.Request.Context(), userID, c.Param("counterpartId"))
	if err != nil {
		logger.Error("chat subscribe failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open message stream"})
		return
	}

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-messages:
			if !ok {
				return false
			}
			c.SSEvent("message", msg)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
