package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"blogicum/cmd/app"
	"blogicum/internal/config"
	handlers "blogicum/internal/handler"
	"blogicum/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	logger := config.InitLogger()
	defer logger.Sync()

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	templates, err := handlers.LoadTemplates(cfg.TemplatesGlob)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	handler := handlers.NewHandlers(repo, services, cfg, logger, templates)

	r := mux.NewRouter()

	r.HandleFunc("/", handler.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", handler.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", handler.Logout).Methods(http.MethodGet)

	r.HandleFunc("/posts/create/", handler.CreatePost).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/posts/{id}/", handler.PostDetail).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}/edit/", handler.EditPost).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/posts/{id}/delete/", handler.DeletePost).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/posts/{id}/comment/", handler.AddComment).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/posts/{id}/edit_comment/{cid}/", handler.EditComment).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/posts/{id}/delete_comment/{cid}/", handler.DeleteComment).Methods(http.MethodPost)

	r.HandleFunc("/category/{slug}/", handler.CategoryPosts).Methods(http.MethodGet)

	r.HandleFunc("/profile/{username}/", handler.Profile).Methods(http.MethodGet)
	r.HandleFunc("/edit_profile/", handler.EditProfile).Methods(http.MethodGet, http.MethodPost)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware(logger),
		middleware.AuthContext(cfg),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Info(fmt.Sprintf("Server listening on %s", addr))

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
