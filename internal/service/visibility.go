package service

import (
	"time"

	"blogicum/internal/models"
)

// IsGenerallyVisible is the stranger branch of the visibility rule: the post
// is published, its publication date has passed, and its category (if any)
// is published. Evaluated against a caller-supplied clock so the answer is
// fresh per request.
func IsGenerallyVisible(post *models.Post, now time.Time) bool {
	if !post.IsPublished || post.PubDate.After(now) {
		return false
	}
	if post.CategoryID.Valid {
		return post.CategoryPublished.Valid && post.CategoryPublished.Bool
	}
	return true
}

// IsVisibleTo decides whether viewerID may see the post. Authors always see
// their own work, scheduled or hidden or not; everyone else gets the
// general-visibility branch.
func IsVisibleTo(post *models.Post, viewerID string, now time.Time) bool {
	if viewerID != "" && viewerID == post.AuthorID {
		return true
	}
	return IsGenerallyVisible(post, now)
}
