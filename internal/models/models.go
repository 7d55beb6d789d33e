package models

import (
	"database/sql"
	"time"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Category struct {
	CategoryID  string    `json:"categoryId" db:"category_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Slug        string    `json:"slug" db:"slug"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Location struct {
	LocationID  string    `json:"locationId" db:"location_id"`
	Name        string    `json:"name" db:"name"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Tag struct {
	TagID string `json:"tagId" db:"tag_id"`
	Name  string `json:"name" db:"name"`
	Slug  string `json:"slug" db:"slug"`
}

type Post struct {
	PostID      string         `json:"postId" db:"post_id"`
	AuthorID    string         `json:"authorId" db:"author_id"`
	CategoryID  sql.NullString `json:"categoryId" db:"category_id"`
	LocationID  sql.NullString `json:"locationId" db:"location_id"`
	Title       string         `json:"title" db:"title"`
	Text        string         `json:"text" db:"text"`
	ImageURL    sql.NullString `json:"imageUrl" db:"image_url"`
	PubDate     time.Time      `json:"pubDate" db:"pub_date"`
	IsPublished bool           `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`

	// Filled by joins and subqueries on read, never written back.
	AuthorUsername    string         `json:"authorUsername" db:"author_username"`
	CategoryTitle     sql.NullString `json:"categoryTitle" db:"category_title"`
	CategorySlug      sql.NullString `json:"categorySlug" db:"category_slug"`
	CategoryPublished sql.NullBool   `json:"-" db:"category_published"`
	LocationName      sql.NullString `json:"locationName" db:"location_name"`
	CommentCount      int            `json:"commentCount" db:"comment_count"`
	Tags              []Tag          `json:"tags" db:"-"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	AuthorUsername string `json:"authorUsername" db:"author_username"`
}

// Feed is one page of an ordered, comment-count annotated post listing.
type Feed struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}

func (f *Feed) HasPrev() bool { return f.Page > 1 }
func (f *Feed) HasNext() bool { return f.Page < f.TotalPages }
func (f *Feed) PrevPage() int { return f.Page - 1 }
func (f *Feed) NextPage() int { return f.Page + 1 }
