package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/tsirdo8/mini-social/internal/config"
	"github.com/tsirdo8/mini-social/internal/handler"
	"github.com/tsirdo8/mini-social/internal/media"
	"github.com/tsirdo8/mini-social/internal/middleware"
	"github.com/tsirdo8/mini-social/internal/repository"
	"github.com/tsirdo8/mini-social/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	mediaStore, err := media.NewDiskStore(cfg.UploadDir)
	if err != nil {
		slog.Error("media store init failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo, mediaStore)
	postService := service.NewPostService(postRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	uploadHandler := handler.NewUploadHandler(mediaStore)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","message":"Server is running","timestamp":"` +
			time.Now().UTC().Format(time.RFC3339) + `"}`))
	})

	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(mediaStore.Dir()))))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/sign-up", authHandler.HandleSignUp)
		r.Post("/sign-in", authHandler.HandleSignIn)
		r.With(middleware.JWTAuth(cfg.JWTSecret)).Get("/current-user", authHandler.HandleCurrentUser)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))

		r.Get("/users", userHandler.HandleList)
		r.Put("/users", userHandler.HandleUpdate)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.HandleList)
			r.Post("/", postHandler.HandleCreate)
			r.Get("/{id}", postHandler.HandleGet)
			r.Put("/{id}", postHandler.HandleUpdate)
			r.Delete("/{id}", postHandler.HandleDelete)
			r.Post("/{id}/reactions", postHandler.HandleToggleReaction)
		})

		r.Post("/upload", uploadHandler.HandleUpload)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
