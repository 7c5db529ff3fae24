package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/config"
	"github.com/vho0811/blogpost-backend/database"
	"github.com/vho0811/blogpost-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database) (Server, error) {
	c := config.New()

	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router, err := newRouter(database, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	backendPassword := config.GetString(router.config, "BACKEND_PASSWORD", "")

	// Session validation backend: Descope when a project ID is configured,
	// otherwise the shared-secret JWT validator.
	validator, err := newSessionValidator(router.config)
	if err != nil {
		return nil, err
	}

	bus := services.NewEventBus()

	// The design endpoint stays routable but answers 503 when no generation
	// backend is configured.
	var designer *services.Designer
	if generator, err := services.NewOpenAIGenerator(); err != nil {
		log.Warn().Err(err).Msg("Design generation disabled")
	} else {
		timeout := time.Duration(config.GetInt(router.config, "DESIGN_TIMEOUT_SECONDS", 60)) * time.Second
		designer = services.NewDesigner(generator, database.BlogPostRepo(), bus, timeout)
	}

	uploader, err := services.NewImageUploader(context.Background(), router.config)
	if err != nil {
		return nil, err
	}
	if uploader == nil {
		log.Warn().Msg("Image uploads disabled")
	}

	// Initialize all handlers
	handlers := initializeHandlers(database, designer, bus, uploader)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(validator, database.UserRepo())

	// Apply CORS middleware
	acceptedOrigins := strings.Split(os.Getenv("ACCEPTED_ORIGINS"), ",")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Backend-Password"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	chiRouter.Get("/health", healthHandler(router.startupTime))

	// Setup all route types
	setupFrontendRoutes(chiRouter, handlers, authMiddleware, backendPassword)

	return chiRouter, nil
}

func healthHandler(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.Logger)
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]interface{}{
			"status": "ok",
			"uptime": time.Since(startupTime).String(),
		})
	}
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
