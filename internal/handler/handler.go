package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"blogicum/internal/config"
	"blogicum/internal/middleware"
	"blogicum/internal/repository"
	"blogicum/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	CommentService service.CommentService
	UserRepo       repository.UserRepository
	CategoryRepo   repository.CategoryRepository
	LocationRepo   repository.LocationRepository
	TagRepo        repository.TagRepository
	Cfg            *config.Config
	Log            *zap.Logger
	Validate       *validator.Validate
	Templates      *template.Template
}

func NewHandlers(repo *repository.Repository, services *service.Service, cfg *config.Config, logger *zap.Logger, templates *template.Template) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		PostService:    services.Post,
		CommentService: services.Comment,
		UserRepo:       repo.User,
		CategoryRepo:   repo.Category,
		LocationRepo:   repo.Location,
		TagRepo:        repo.Tag,
		Cfg:            cfg,
		Log:            logger,
		Validate:       validator.New(),
		Templates:      templates,
	}
}

// currentUser returns the viewer from the request context; both values are
// empty for anonymous visitors.
func (h *Handlers) currentUser(r *http.Request) (string, string) {
	userID, _ := r.Context().Value(middleware.UserIDKey).(string)
	username, _ := r.Context().Value(middleware.UsernameKey).(string)
	return userID, username
}

// requireUser bounces anonymous visitors to the login page. Every mutation
// endpoint starts with this check.
func (h *Handlers) requireUser(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, username := h.currentUser(r)
	if userID == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return "", "", false
	}
	return userID, username, true
}

// pageParam reads ?page=; anything unparsable falls back to the first page.
// Out-of-range values are clamped later against the actual total.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
