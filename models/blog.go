package models

import "time"

// BlogPost is a content entry. LikeCount is derived from the likes
// collection and only populated on reads; it is never written to the post
// document.
type BlogPost struct {
	ID          string    `bson:"id" json:"id"`
	Slug        string    `bson:"slug" json:"slug"`
	Title       string    `bson:"title" json:"title"`
	Content     string    `bson:"content" json:"content"`
	AuthorID    string    `bson:"author_id" json:"authorId"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	CoverImage  string    `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	Published   bool      `bson:"published" json:"published"`
	PublishedAt time.Time `bson:"published_at,omitempty" json:"publishedAt,omitzero"`
	ScheduledAt time.Time `bson:"scheduled_at,omitempty" json:"scheduledAt,omitzero"`
	ViewCount   int64     `bson:"view_count" json:"viewCount"`
	LikeCount   int64     `bson:"-" json:"likeCount"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// BlogLike is one row in the likes join collection.
type BlogLike struct {
	PostID    string    `bson:"post_id" json:"postId"`
	UserID    string    `bson:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// PageView is a fire-and-forget analytics row.
type PageView struct {
	Path     string    `bson:"path" json:"path"`
	UserID   string    `bson:"user_id,omitempty" json:"userId,omitempty"`
	ViewedAt time.Time `bson:"viewed_at" json:"viewedAt"`
}

// BlogQuery narrows post listings.
type BlogQuery struct {
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Limit    int64  `form:"limit"`
	Offset   int64  `form:"offset"`
}
