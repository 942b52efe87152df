package handlers

import (
	"net/http"

	"mendwell/models"
	"mendwell/services/blog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BlogHandler serves content posts, likes and view-tracked reads.
type BlogHandler struct {
	Blog blog.BlogService
}

// NewBlogHandler wires a blog handler.
func NewBlogHandler(svc blog.BlogService) *BlogHandler {
	return &BlogHandler{Blog: svc}
}

// CreatePostHandler creates a post authored by the caller.
func (h *BlogHandler) CreatePostHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req models.BlogPost
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Blog.CreatePost(userID, &req)
	if err != nil {
		logger.Warn("post rejected", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdatePostHandler updates a post after an author check.
func (h *BlogHandler) UpdatePostHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.BlogPost
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("id")

	updated, err := h.Blog.UpdatePost(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePostHandler removes a post after an author check.
func (h *BlogHandler) DeletePostHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Blog.DeletePost(userID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetPostHandler returns one post by slug. Public; the viewer id is empty
// for anonymous readers, which still counts the view.
func (h *BlogHandler) GetPostHandler(c *gin.Context) {
	viewerID := c.GetString("userID")
	post, err := h.Blog.GetPost(c.Param("slug"), viewerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListPostsHandler returns published posts matching the query filters.
func (h *BlogHandler) ListPostsHandler(c *gin.Context) {
	var query models.BlogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	posts, err := h.Blog.ListPosts(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// LikePostHandler records the caller's like.
func (h *BlogHandler) LikePostHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Blog.Like(c.Param("id"), userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// UnlikePostHandler removes the caller's like.
func (h *BlogHandler) UnlikePostHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Blog.Unlike(c.Param("id"), userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false})
}

// HasLikedHandler reports whether the caller has liked the post.
func (h *BlogHandler) HasLikedHandler(c *gin.Context) {
	userID := c.GetString("userID")
	liked, err := h.Blog.HasLiked(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
