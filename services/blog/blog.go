// Package blog manages content posts, their likes and view counters, and
// scheduled publishing.
package blog

import (
	"fmt"
	"time"

	blogRepo "mendwell/database/repository/blog"
	"mendwell/models"
	"mendwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PublishScheduler enqueues the task that flips a scheduled post live.
// Satisfied by the task queue client.
type PublishScheduler interface {
	SchedulePublish(payload models.PublishPayload, at time.Time) error
}

type BlogService interface {
	CreatePost(authorID string, post *models.BlogPost) (*models.BlogPost, error)
	UpdatePost(authorID string, post *models.BlogPost) (*models.BlogPost, error)
	DeletePost(authorID, postID string) error
	GetPost(slug, viewerID string) (*models.BlogPost, error)
	ListPosts(query models.BlogQuery) ([]models.BlogPost, error)
	PublishNow(postID string) error

	Like(postID, userID string) error
	Unlike(postID, userID string) error
	HasLiked(postID, userID string) (bool, error)
}

// DefaultBlogService is the production implementation.
type DefaultBlogService struct {
	Repo      blogRepo.BlogRepository
	Scheduler PublishScheduler
}

// CreatePost creates a post. A post with a future ScheduledAt stays
// unpublished and gets a publish task; otherwise it goes live immediately.
func (s *DefaultBlogService) CreatePost(authorID string, post *models.BlogPost) (*models.BlogPost, error) {
	if post.Title == "" || post.Content == "" {
		return nil, fmt.Errorf("a title and content are required")
	}

	post.ID = uuid.New().String()
	post.AuthorID = authorID
	post.ViewCount = 0
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if post.Slug == "" {
		post.Slug = post.ID
	}
	if existing, err := s.Repo.GetBySlug(post.Slug); err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	} else if existing != nil {
		post.Slug = post.Slug + "-" + post.ID[:8]
	}

	now := time.Now()
	if !post.ScheduledAt.IsZero() && post.ScheduledAt.After(now) {
		post.Published = false
	} else {
		post.Published = true
		post.PublishedAt = now
		post.ScheduledAt = time.Time{}
	}

	if err := s.Repo.Create(post); err != nil {
		utils.GetLogger().Error("CreatePost: failed to create post", zap.Error(err))
		return nil, fmt.Errorf("failed to create post, please try again")
	}

	if !post.Published && s.Scheduler != nil {
		payload := models.PublishPayload{PostID: post.ID}
		if err := s.Scheduler.SchedulePublish(payload, post.ScheduledAt); err != nil {
			utils.GetLogger().Warn("CreatePost: failed to schedule publish", zap.String("postID", post.ID), zap.Error(err))
		}
	}
	return post, nil
}

// UpdatePost replaces the post's content fields after an author check.
func (s *DefaultBlogService) UpdatePost(authorID string, post *models.BlogPost) (*models.BlogPost, error) {
	current, err := s.Repo.GetByID(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("post with id %s not found", post.ID)
	}
	if current.AuthorID != authorID {
		return nil, fmt.Errorf("only the author can update this post")
	}

	post.AuthorID = current.AuthorID
	post.Slug = current.Slug
	post.Published = current.Published
	post.PublishedAt = current.PublishedAt
	post.ScheduledAt = current.ScheduledAt
	post.ViewCount = current.ViewCount
	post.CreatedAt = current.CreatedAt

	if err := s.Repo.Update(post); err != nil {
		utils.GetLogger().Error("UpdatePost: failed to update post", zap.String("postID", post.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update post, please try again")
	}
	return post, nil
}

// DeletePost removes the post after an author check.
func (s *DefaultBlogService) DeletePost(authorID, postID string) error {
	current, err := s.Repo.GetByID(postID)
	if err != nil {
		return fmt.Errorf("failed to fetch post: %w", err)
	}
	if current == nil {
		return fmt.Errorf("post with id %s not found", postID)
	}
	if current.AuthorID != authorID {
		return fmt.Errorf("only the author can delete this post")
	}
	return s.Repo.Delete(postID)
}

// GetPost returns a post by slug, bumps its view counter, and records the
// page view. Unpublished posts are only visible to their author.
func (s *DefaultBlogService) GetPost(slug, viewerID string) (*models.BlogPost, error) {
	post, err := s.Repo.GetBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %q not found", slug)
	}
	if !post.Published && post.AuthorID != viewerID {
		return nil, fmt.Errorf("post %q not found", slug)
	}

	if post.Published {
		if err := s.Repo.IncrementViews(post.ID); err != nil {
			utils.GetLogger().Warn("GetPost: view counter update failed", zap.String("postID", post.ID), zap.Error(err))
		} else {
			post.ViewCount++
		}
		// Analytics must never block or fail the read.
		go func() {
			view := &models.PageView{Path: "/blog/" + slug, UserID: viewerID, ViewedAt: time.Now()}
			if err := s.Repo.LogPageView(view); err != nil {
				utils.GetLogger().Warn("GetPost: page view logging failed", zap.Error(err))
			}
		}()
	}

	likeCount, err := s.Repo.LikeCount(post.ID)
	if err != nil {
		utils.GetLogger().Warn("GetPost: like count failed", zap.String("postID", post.ID), zap.Error(err))
	} else {
		post.LikeCount = likeCount
	}
	return post, nil
}

// ListPosts returns published posts with their like counts populated.
func (s *DefaultBlogService) ListPosts(query models.BlogQuery) ([]models.BlogPost, error) {
	posts, err := s.Repo.List(query)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		count, err := s.Repo.LikeCount(posts[i].ID)
		if err != nil {
			utils.GetLogger().Warn("ListPosts: like count failed", zap.String("postID", posts[i].ID), zap.Error(err))
			continue
		}
		posts[i].LikeCount = count
	}
	return posts, nil
}

// PublishNow flips a scheduled post live. Invoked by the queue worker; safe
// to retry because republishing is a no-op.
func (s *DefaultBlogService) PublishNow(postID string) error {
	post, err := s.Repo.GetByID(postID)
	if err != nil {
		return fmt.Errorf("failed to fetch post: %w", err)
	}
	if post == nil {
		// The post was deleted before its publish time; nothing to do.
		return nil
	}
	if post.Published {
		return nil
	}
	return s.Repo.MarkPublished(postID, time.Now())
}

// Like records the user's like. Liking twice is a no-op.
func (s *DefaultBlogService) Like(postID, userID string) error {
	post, err := s.Repo.GetByID(postID)
	if err != nil {
		return fmt.Errorf("failed to fetch post: %w", err)
	}
	if post == nil {
		return fmt.Errorf("post with id %s not found", postID)
	}
	return s.Repo.Like(postID, userID)
}

// Unlike removes the user's like.
func (s *DefaultBlogService) Unlike(postID, userID string) error {
	return s.Repo.Unlike(postID, userID)
}

// HasLiked reports whether the user has liked the post.
func (s *DefaultBlogService) HasLiked(postID, userID string) (bool, error) {
	return s.Repo.HasLiked(postID, userID)
}
