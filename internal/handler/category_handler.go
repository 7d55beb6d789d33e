package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"blogicum/internal/service"
)

// CategoryPosts lists one published category's feed. An unpublished or
// missing category is a plain 404; the author exception never applies here.
func (h *Handlers) CategoryPosts(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	category, feed, err := h.PostService.CategoryFeed(r.Context(), slug, pageParam(r))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	_, username := h.currentUser(r)
	h.render(w, "category", map[string]interface{}{
		"Category": category,
		"Feed":     feed,
		"User":     username,
	})
}
