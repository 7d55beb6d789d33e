package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"blogicum/internal/models"
	"blogicum/internal/service"
)

type postForm struct {
	Title   string `validate:"required,max=256"`
	Text    string `validate:"required"`
	PubDate string `validate:"required"`
}

var pubDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parsePubDate(value string) (time.Time, error) {
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// parsePostForm accepts both multipart (image attached) and plain urlencoded
// submissions.
func (h *Handlers) parsePostForm(r *http.Request) error {
	err := r.ParseMultipartForm(h.Cfg.MaxUploadSize)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return nil
}

// formImage extracts the optional image upload. Returns (nil, "") when the
// form carries no file.
func (h *Handlers) formImage(r *http.Request) (*service.ImageUpload, string) {
	if r.MultipartForm == nil {
		return nil, ""
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, ""
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		file.Close()
		return nil, "Unsupported file type. Allowed: JPEG, PNG, GIF, WebP"
	}

	return &service.ImageUpload{
		FileName: header.Filename,
		Size:     header.Size,
		Reader:   file,
	}, ""
}

// formSelections loads the choice lists for the post form.
func (h *Handlers) formSelections(r *http.Request) (map[string]interface{}, error) {
	categories, err := h.CategoryRepo.GetAllPublished(r.Context())
	if err != nil {
		return nil, err
	}
	locations, err := h.LocationRepo.GetAllPublished(r.Context())
	if err != nil {
		return nil, err
	}
	tags, err := h.TagRepo.GetAll(r.Context())
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"Categories": categories,
		"Locations":  locations,
		"Tags":       tags,
	}, nil
}

func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	feed, err := h.PostService.HomeFeed(r.Context(), pageParam(r))
	if err != nil {
		h.ServerError(w, err)
		return
	}

	_, username := h.currentUser(r)
	h.render(w, "home", map[string]interface{}{
		"Feed": feed,
		"User": username,
	})
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	viewerID, username := h.currentUser(r)

	post, err := h.PostService.GetPost(r.Context(), postID, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	comments, err := h.CommentService.ListForPost(r.Context(), postID)
	if err != nil {
		h.ServerError(w, err)
		return
	}

	h.render(w, "detail", map[string]interface{}{
		"Post":     post,
		"Comments": comments,
		"User":     username,
		"Errors":   map[string]string{},
		"FormValues": map[string]string{
			"Text": "",
		},
	})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	selections, err := h.formSelections(r)
	if err != nil {
		h.ServerError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		data := map[string]interface{}{
			"User":         username,
			"Errors":       map[string]string{},
			"FormValues":   map[string]string{},
			"SelectedTags": []string{},
		}
		for k, v := range selections {
			data[k] = v
		}
		h.render(w, "post_form", data)
		return
	}

	if err = h.parsePostForm(r); err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	form := postForm{
		Title:   r.FormValue("title"),
		Text:    r.FormValue("text"),
		PubDate: r.FormValue("pub_date"),
	}

	errs := map[string]string{}
	if err = h.Validate.Struct(form); err != nil {
		errs = formErrors(err)
	}

	var pubDate time.Time
	if form.PubDate != "" {
		if pubDate, err = parsePubDate(form.PubDate); err != nil {
			errs["PubDate"] = "Enter a valid date"
		}
	}

	image, imageErr := h.formImage(r)
	if imageErr != "" {
		errs["Image"] = imageErr
	}

	if len(errs) > 0 {
		data := map[string]interface{}{
			"User":   username,
			"Errors": errs,
			"FormValues": map[string]string{
				"Title":    form.Title,
				"Text":     form.Text,
				"PubDate":  form.PubDate,
				"Category": r.FormValue("category"),
				"Location": r.FormValue("location"),
			},
			"SelectedTags": r.Form["tags"],
		}
		for k, v := range selections {
			data[k] = v
		}
		h.render(w, "post_form", data)
		return
	}

	// Author comes from the session, never from the form.
	_, err = h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID:   userID,
		Title:      form.Title,
		Text:       form.Text,
		PubDate:    pubDate,
		CategoryID: r.FormValue("category"),
		LocationID: r.FormValue("location"),
		TagIDs:     r.Form["tags"],
		Image:      image,
	})
	if err != nil {
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/profile/"+username+"/", http.StatusSeeOther)
}

func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.GetPostForAuthor(r.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w)
			return
		}
		if errors.Is(err, service.ErrPermissionDenied) {
			// Soft denial: someone else's post just bounces to its page.
			http.Redirect(w, r, "/posts/"+postID+"/", http.StatusSeeOther)
			return
		}
		h.ServerError(w, err)
		return
	}

	selections, err := h.formSelections(r)
	if err != nil {
		h.ServerError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		data := map[string]interface{}{
			"User":         username,
			"Post":         post,
			"Errors":       map[string]string{},
			"FormValues":   postFormValues(post),
			"SelectedTags": tagIDs(post.Tags),
		}
		for k, v := range selections {
			data[k] = v
		}
		h.render(w, "post_form", data)
		return
	}

	if err = h.parsePostForm(r); err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	form := postForm{
		Title:   r.FormValue("title"),
		Text:    r.FormValue("text"),
		PubDate: r.FormValue("pub_date"),
	}

	errs := map[string]string{}
	if err = h.Validate.Struct(form); err != nil {
		errs = formErrors(err)
	}

	var pubDate time.Time
	if form.PubDate != "" {
		if pubDate, err = parsePubDate(form.PubDate); err != nil {
			errs["PubDate"] = "Enter a valid date"
		}
	}

	image, imageErr := h.formImage(r)
	if imageErr != "" {
		errs["Image"] = imageErr
	}

	if len(errs) > 0 {
		data := map[string]interface{}{
			"User":   username,
			"Post":   post,
			"Errors": errs,
			"FormValues": map[string]string{
				"Title":    form.Title,
				"Text":     form.Text,
				"PubDate":  form.PubDate,
				"Category": r.FormValue("category"),
				"Location": r.FormValue("location"),
			},
			"SelectedTags": r.Form["tags"],
		}
		for k, v := range selections {
			data[k] = v
		}
		h.render(w, "post_form", data)
		return
	}

	err = h.PostService.UpdatePost(r.Context(), service.UpdatePostRequest{
		PostID:     postID,
		AuthorID:   userID,
		Title:      form.Title,
		Text:       form.Text,
		PubDate:    pubDate,
		CategoryID: r.FormValue("category"),
		LocationID: r.FormValue("location"),
		TagIDs:     r.Form["tags"],
		Image:      image,
	})
	if err != nil {
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/posts/"+postID+"/", http.StatusSeeOther)
}

// DeletePost hard-denies non-owners, unlike edit. The confirmation page
// shows the post's current values.
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, username, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.GetPostForAuthor(r.Context(), postID, userID)
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
		h.render(w, "post_confirm_delete", map[string]interface{}{
			"User":       username,
			"Post":       post,
			"FormValues": postFormValues(post),
		})
		return
	}

	if err = h.PostService.DeletePost(r.Context(), postID, userID); err != nil {
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/profile/"+username+"/", http.StatusSeeOther)
}

func postFormValues(post *models.Post) map[string]string {
	return map[string]string{
		"Title":    post.Title,
		"Text":     post.Text,
		"PubDate":  post.PubDate.Format("2006-01-02T15:04"),
		"Category": post.CategoryID.String,
		"Location": post.LocationID.String,
	}
}

func tagIDs(tags []models.Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.TagID)
	}
	return ids
}
