package test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blogicum/internal/config"
	handlers "blogicum/internal/handler"
	"blogicum/internal/middleware"
	"blogicum/internal/repository"
	"blogicum/internal/service"
)

type fixture struct {
	auth         *MockAuthService
	user         *MockUserService
	post         *MockPostService
	comment      *MockCommentService
	userRepo     *MockUserRepository
	categoryRepo *MockCategoryRepository
	locationRepo *MockLocationRepository
	tagRepo      *MockTagRepository
	h            *handlers.Handlers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	templates, err := handlers.LoadTemplates("../../../web/templates/*.html")
	require.NoError(t, err)

	f := &fixture{
		auth:         new(MockAuthService),
		user:         new(MockUserService),
		post:         new(MockPostService),
		comment:      new(MockCommentService),
		userRepo:     new(MockUserRepository),
		categoryRepo: new(MockCategoryRepository),
		locationRepo: new(MockLocationRepository),
		tagRepo:      new(MockTagRepository),
	}

	repo := &repository.Repository{
		User:     f.userRepo,
		Category: f.categoryRepo,
		Location: f.locationRepo,
		Tag:      f.tagRepo,
	}
	services := &service.Service{
		Auth:    f.auth,
		User:    f.user,
		Post:    f.post,
		Comment: f.comment,
	}
	cfg := &config.Config{
		JWTSecretKey:        "test-secret",
		AccessTokenDuration: time.Hour,
		MaxUploadSize:       10 << 20,
	}

	f.h = handlers.NewHandlers(repo, services, cfg, zap.NewNop(), templates)

	return f
}

// withUser simulates an authenticated session on the request.
func withUser(r *http.Request, userID, username string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.UsernameKey, username)
	return r.WithContext(ctx)
}

// withVars injects router path variables without running a full router.
func withVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}
