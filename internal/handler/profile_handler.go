package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"blogicum/internal/service"
)

type profileForm struct {
	Username  string `validate:"required,max=150"`
	FirstName string `validate:"omitempty,alpha"`
	LastName  string `validate:"omitempty,alpha"`
	Email     string `validate:"omitempty,email"`
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	profileUsername := mux.Vars(r)["username"]
	viewerID, username := h.currentUser(r)

	profile, err := h.UserService.GetByUsername(r.Context(), profileUsername)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	feed, err := h.PostService.ProfileFeed(r.Context(), profile.UserID, viewerID, pageParam(r))
	if err != nil {
		h.ServerError(w, err)
		return
	}

	h.render(w, "profile", map[string]interface{}{
		"Profile": profile,
		"Feed":    feed,
		"User":    username,
		"IsOwner": viewerID == profile.UserID,
	})
}

// EditProfile always edits the session user; any id in the request is
// irrelevant.
func (h *Handlers) EditProfile(w http.ResponseWriter, r *http.Request) {
	userID, username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		user, err := h.UserRepo.GetUserByID(r.Context(), userID)
		if err != nil {
			h.ServerError(w, err)
			return
		}
		h.render(w, "profile_form", map[string]interface{}{
			"User":   username,
			"Errors": map[string]string{},
			"FormValues": map[string]string{
				"Username":  user.Username,
				"FirstName": user.FirstName,
				"LastName":  user.LastName,
				"Email":     user.Email,
			},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	form := profileForm{
		Username:  r.FormValue("username"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
	}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, "profile_form", map[string]interface{}{
			"User":   username,
			"Errors": formErrors(err),
			"FormValues": map[string]string{
				"Username":  form.Username,
				"FirstName": form.FirstName,
				"LastName":  form.LastName,
				"Email":     form.Email,
			},
		})
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), userID, service.UpdateProfileRequest{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if err != nil {
		h.ServerError(w, err)
		return
	}

	// A changed username needs a fresh session cookie.
	if user.Username != username {
		if err = h.setSessionCookie(w, user); err != nil {
			h.ServerError(w, err)
			return
		}
	}

	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusSeeOther)
}
