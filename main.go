// Command launcher serves the Launcher social-posting web application:
// server-rendered feed, post and comment creation, first-party sessions, and
// the upload relay to the external blob store.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/launcher-go/auth"
	"github.com/user/launcher-go/comments"
	"github.com/user/launcher-go/config"
	"github.com/user/launcher-go/db"
	"github.com/user/launcher-go/posts"
	"github.com/user/launcher-go/upload"
	"github.com/user/launcher-go/web"
)

func main() {
	// In development .env supplies the environment; in production variables
	// are set directly, so a missing file is only a warning.
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	authService := auth.NewAuthService(pool, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService, renderer)

	postService := posts.NewPostService(pool)
	postHandlers := posts.NewPostHandlers(postService, renderer)

	commentService := comments.NewCommentService(pool)
	commentHandler := comments.NewCommentHandler(commentService, renderer)

	blobStore := upload.NewBlobStore(cfg.Blob)
	uploadHandler := upload.NewHandler(blobStore)

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(authService.SessionMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Public pages.
	r.Get("/", postHandlers.HandleFeed())
	r.Get("/posts/{slug}", postHandlers.HandlePostDetail())
	r.Get("/login", authHandlers.HandleLoginPage())
	r.Post("/login", authHandlers.HandleLogin())
	r.Get("/register", authHandlers.HandleRegisterPage())
	r.Post("/register", authHandlers.HandleRegister())
	r.Post("/logout", authHandlers.HandleLogout())

	// Routes that require a session; anonymous requests are redirected to
	// the sign-in page before any row can be inserted.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Get("/new-post", postHandlers.HandleNewPostPage())
		r.Post("/posts", postHandlers.HandleCreatePost())
		r.Post("/comments", commentHandler.HandleCreate())
	})

	// The upload relay is a JSON API route.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Post("/upload", uploadHandler.HandleUpload())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}
	log.Println("server stopped gracefully")
}
