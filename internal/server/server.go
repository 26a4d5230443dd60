package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"vbanking/internal/config"
	"vbanking/internal/domain"
	"vbanking/internal/handler"
	"vbanking/internal/repository"
	"vbanking/internal/repository/memory"
	"vbanking/internal/service"
	"vbanking/migrations"

	"github.com/gorilla/mux"
)

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
	port   string
}

// NewServer opens the configured storage and builds the router on top of it
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	var (
		store domain.Store
		db    *sql.DB
	)

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		store = memory.NewStore()
	default:
		var err error
		db, err = repository.Open(ctx, cfg.GetDBConnectionString())
		if err != nil {
			return nil, err
		}
		logger.Info("Successfully connected to database")

		if cfg.AutoMigrate {
			if err := migrations.Apply(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
			logger.Info("Database schema is up to date")
		}
		store = repository.NewStore(db, logger)
	}

	policy := service.AccountPolicy{
		OpeningBalance:    cfg.OpeningBalance,
		DeactivationActor: cfg.DeactivationActor,
	}

	return &Server{
		router: NewRouter(store, policy, logger),
		db:     db,
		logger: logger,
	}, nil
}

// NewRouter wires services and handlers over store
func NewRouter(store domain.Store, policy service.AccountPolicy, logger *slog.Logger) *mux.Router {
	accountService := service.NewAccountService(store, policy, logger)
	transferService := service.NewTransferService(store, logger)

	accountHandler := handler.NewAccountHandler(accountService)
	transferHandler := handler.NewTransferHandler(transferService)

	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	api := router.PathPrefix("/api/accounts").Subrouter()
	api.HandleFunc("", accountHandler.CreateAccount).Methods("POST")
	api.HandleFunc("", accountHandler.SearchAccounts).Methods("GET")
	api.HandleFunc("/transfer", transferHandler.Transfer).Methods("POST")
	api.HandleFunc("/{document}", accountHandler.GetAccount).Methods("GET")
	api.HandleFunc("/{document}/deactivate", accountHandler.Deactivate).Methods("PUT")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": "storage unavailable"})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	return router
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start listens on port ("0" picks a free one) and serves in the background.
// Serve errors are delivered on the returned channel.
func (s *Server) Start(port string) (string, <-chan error, error) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", nil, err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server", "port", s.port)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed", "error", err)
			errCh <- err
		}
	}()

	return s.port, errCh, nil
}

// Stop gracefully shuts down the server, then closes the database
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}

	if s.db != nil {
		s.db.Close()
	}
	return err
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer builds and starts a server with the given configuration
func StartServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, <-chan error, error) {
	server, err := NewServer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	_, errCh, err := server.Start(cfg.ServerPort)
	if err != nil {
		server.Stop(ctx)
		return nil, nil, err
	}

	return server, errCh, nil
}
