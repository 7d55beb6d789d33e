package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"blogicum/internal/service"
)

type commentForm struct {
	Text string `validate:"required"`
}

// AddComment gates on the post's general visibility: a post the public
// cannot see cannot be commented on, and reads as missing.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		post, err := h.PostService.GetPost(r.Context(), postID, userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				h.NotFound(w)
				return
			}
			h.ServerError(w, err)
			return
		}
		h.render(w, "comment_form", map[string]interface{}{
			"User":       username,
			"Post":       post,
			"Errors":     map[string]string{},
			"FormValues": map[string]string{},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	form := commentForm{Text: r.FormValue("text")}
	if err := h.Validate.Struct(form); err != nil {
		post, postErr := h.PostService.GetPost(r.Context(), postID, userID)
		if postErr != nil {
			h.NotFound(w)
			return
		}
		h.render(w, "comment_form", map[string]interface{}{
			"User":       username,
			"Post":       post,
			"Errors":     formErrors(err),
			"FormValues": map[string]string{"Text": form.Text},
		})
		return
	}

	if _, err := h.CommentService.AddComment(r.Context(), postID, userID, form.Text); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/posts/"+postID+"/", http.StatusSeeOther)
}

func (h *Handlers) EditComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["id"]
	commentID := vars["cid"]

	userID, username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	comment, err := h.CommentService.GetOwnedComment(r.Context(), postID, commentID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w)
			return
		}
		if errors.Is(err, service.ErrPermissionDenied) {
			h.Forbidden(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, "comment_form", map[string]interface{}{
			"User":       username,
			"Comment":    comment,
			"Errors":     map[string]string{},
			"FormValues": map[string]string{"Text": comment.Text},
		})
		return
	}

	if err = r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	form := commentForm{Text: r.FormValue("text")}
	if err = h.Validate.Struct(form); err != nil {
		h.render(w, "comment_form", map[string]interface{}{
			"User":       username,
			"Comment":    comment,
			"Errors":     formErrors(err),
			"FormValues": map[string]string{"Text": form.Text},
		})
		return
	}

	if err = h.CommentService.EditComment(r.Context(), postID, commentID, userID, form.Text); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w)
			return
		}
		if errors.Is(err, service.ErrPermissionDenied) {
			h.Forbidden(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/posts/"+postID+"/", http.StatusSeeOther)
}

// DeleteComment is POST-only and hard-denies ownership mismatches.
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["id"]
	commentID := vars["cid"]

	userID, _, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if err := h.CommentService.DeleteComment(r.Context(), postID, commentID, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w)
			return
		}
		if errors.Is(err, service.ErrPermissionDenied) {
			h.Forbidden(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/posts/"+postID+"/", http.StatusSeeOther)
}
