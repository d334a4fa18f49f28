// Package api sets up and starts the API
// server with routing, middleware, and Swagger documentation.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/matt-dz/tastetribe/docs"
	"github.com/matt-dz/tastetribe/internal/api/middleware"
	"github.com/matt-dz/tastetribe/internal/api/routes/ping"
	"github.com/matt-dz/tastetribe/internal/api/routes/screens"
	"github.com/matt-dz/tastetribe/internal/env"
)

const shutdownTimeout = 10 * time.Second

func addDocs(r chi.Router, serverAddr string) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/api/swagger/doc.json", serverAddr)),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Allow GET to serve Swagger
		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		// Block anything else
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

func addRoutes(router chi.Router) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Route("/screens", func(r chi.Router) {
			r.Use(middleware.InjectSession)

			r.Post("/explore", screens.MountExplore)
			r.Get("/explore/{screenID}", screens.GetExplore)
			r.Post("/explore/{screenID}/bookmarks/{recipeID}", screens.ToggleExploreBookmark)

			r.Post("/featured", screens.MountFeatured)
			r.Get("/featured/{screenID}", screens.GetFeatured)
			r.Put("/featured/{screenID}/viewport", screens.SetFeaturedViewport)
			r.Put("/featured/{screenID}/page", screens.SetFeaturedPage)

			r.Delete("/{screenID}", screens.Unmount)
		})
	})
}

// NewRouter builds the API handler for env.
func NewRouter(env *env.Env) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors(env.Config.Server.AllowedOrigins))

	addRoutes(router)
	addDocs(router, fmt.Sprintf("localhost:%d", env.Config.Server.Port))
	return router
}

// Start godoc
//
//	@title						TasteTribe API
//	@version					1.0
//	@description				Backend for the TasteTribe recipe browser.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//
//	@host						localhost:8080
//	@BasePath					/
func Start(ctx context.Context, env *env.Env) error {
	addr := fmt.Sprintf(":%d", env.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(env),
		ReadHeaderTimeout: 10 * time.Second,
	}
	defer env.Screens.Close()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	swept := make(chan struct{})
	go func() {
		defer close(swept)
		env.Screens.Run(sweepCtx)
	}()
	defer func() {
		stopSweep()
		<-swept
	}()

	errCh := make(chan error, 1)
	go func() {
		env.Logger.Info(fmt.Sprintf("Listening at 0.0.0.0%s", addr))
		env.Logger.Info(fmt.Sprintf("Swagger UI available at http://0.0.0.0%s/api/swagger/index.html", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	env.Logger.Info("shutting down", slog.Int("screens", env.Screens.Len()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
