package blogRepo

import (
	"context"
	"fmt"
	"time"

	"mendwell/database"
	"mendwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlogRepository defines persistence operations for posts, likes and
// page-view rows.
type BlogRepository interface {
	Create(post *models.BlogPost) error
	Update(post *models.BlogPost) error
	Delete(id string) error
	GetByID(id string) (*models.BlogPost, error)
	GetBySlug(slug string) (*models.BlogPost, error)
	IncrementViews(id string) error
	List(query models.BlogQuery) ([]models.BlogPost, error)
	MarkPublished(id string, at time.Time) error

	Like(postID, userID string) error
	Unlike(postID, userID string) error
	LikeCount(postID string) (int64, error)
	HasLiked(postID, userID string) (bool, error)

	LogPageView(view *models.PageView) error
}

// MongoBlogRepo implements BlogRepository using MongoDB.
type MongoBlogRepo struct {
	posts     *mongo.Collection
	likes     *mongo.Collection
	pageViews *mongo.Collection
}

// NewMongoBlogRepo creates a new instance of BlogRepository using MongoDB.
func NewMongoBlogRepo() BlogRepository {
	repo := &MongoBlogRepo{
		posts:     database.Collection("blog_posts"),
		likes:     database.Collection("blog_likes"),
		pageViews: database.Collection("page_views"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create blog indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBlogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	postIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "published_at", Value: -1}}},
	}
	if _, err := r.posts.Indexes().CreateMany(ctx, postIndexes); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	likeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.likes.Indexes().CreateOne(ctx, likeIndex); err != nil {
		return fmt.Errorf("failed to create like index: %w", err)
	}
	return nil
}

// Create inserts a new post document.
func (r *MongoBlogRepo) Create(post *models.BlogPost) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := r.posts.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// Update modifies an existing post document.
func (r *MongoBlogRepo) Update(post *models.BlogPost) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	post.UpdatedAt = time.Now()
	result, err := r.posts.UpdateOne(ctx, bson.M{"id": post.ID}, bson.M{"$set": post})
	if err != nil {
		return fmt.Errorf("failed to update post with id %s: %w", post.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("post with id %s not found", post.ID)
	}
	return nil
}

// Delete removes a post and its likes.
func (r *MongoBlogRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.posts.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("post with id %s not found", id)
	}
	if _, err := r.likes.DeleteMany(ctx, bson.M{"post_id": id}); err != nil {
		return fmt.Errorf("failed to delete likes for post %s: %w", id, err)
	}
	return nil
}

// GetByID retrieves a post by its unique ID.
func (r *MongoBlogRepo) GetByID(id string) (*models.BlogPost, error) {
	return r.getOne(bson.M{"id": id})
}

// GetBySlug retrieves a post by its slug.
func (r *MongoBlogRepo) GetBySlug(slug string) (*models.BlogPost, error) {
	return r.getOne(bson.M{"slug": slug})
}

func (r *MongoBlogRepo) getOne(filter bson.M) (*models.BlogPost, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var post models.BlogPost
	if err := r.posts.FindOne(ctx, filter).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return &post, nil
}

// IncrementViews atomically bumps the view counter.
func (r *MongoBlogRepo) IncrementViews(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$inc": bson.M{"view_count": 1}}
	if _, err := r.posts.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to increment views for post %s: %w", id, err)
	}
	return nil
}

// List returns published posts matching the query, newest first.
func (r *MongoBlogRepo) List(query models.BlogQuery) ([]models.BlogPost, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"published": true}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	if query.Tag != "" {
		filter["tags"] = query.Tag
	}

	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	opts := options.Find().
		SetLimit(limit).
		SetSkip(query.Offset).
		SetSort(bson.D{{Key: "published_at", Value: -1}})

	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.BlogPost
	for cursor.Next(ctx) {
		var p models.BlogPost
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// MarkPublished flips a scheduled post to published.
func (r *MongoBlogRepo) MarkPublished(id string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"published": true, "published_at": at, "updated_at": at}}
	result, err := r.posts.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to publish post %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("post with id %s not found", id)
	}
	return nil
}

// Like inserts a like row; duplicate likes are ignored via the unique index.
func (r *MongoBlogRepo) Like(postID, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	like := models.BlogLike{PostID: postID, UserID: userID, CreatedAt: time.Now()}
	if _, err := r.likes.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to like post %s: %w", postID, err)
	}
	return nil
}

// Unlike removes a like row if present.
func (r *MongoBlogRepo) Unlike(postID, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.likes.DeleteOne(ctx, bson.M{"post_id": postID, "user_id": userID}); err != nil {
		return fmt.Errorf("failed to unlike post %s: %w", postID, err)
	}
	return nil
}

// LikeCount counts likes for a post.
func (r *MongoBlogRepo) LikeCount(postID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.likes.CountDocuments(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, fmt.Errorf("failed to count likes for post %s: %w", postID, err)
	}
	return count, nil
}

// HasLiked reports whether the user already liked the post.
func (r *MongoBlogRepo) HasLiked(postID, userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.likes.CountDocuments(ctx, bson.M{"post_id": postID, "user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to probe like: %w", err)
	}
	return count > 0, nil
}

// LogPageView inserts an analytics row.
func (r *MongoBlogRepo) LogPageView(view *models.PageView) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now()
	}
	if _, err := r.pageViews.InsertOne(ctx, view); err != nil {
		return fmt.Errorf("failed to log page view: %w", err)
	}
	return nil
}
