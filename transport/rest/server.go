package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type sessionUseCase interface {
	Connect(ctx context.Context, id string) (entity.Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (entity.Snapshot, error)
	SelectCell(ctx context.Context, id string, cell int) (entity.Snapshot, error)
	NewRound(ctx context.Context, id string) (entity.Snapshot, error)
	NewMatch(ctx context.Context, id string) (entity.Snapshot, error)
	EndSession(ctx context.Context, id string) error
}

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase

	router chi.Router
}

func New(logger *slog.Logger, sessions sessionUseCase, allowedOrigins []string) *Server {
	server := &Server{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(server.logRequest)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/ping", NewPingHandler().PingHandler)

	router.Route("/sessions", func(r chi.Router) {
		r.Post("/", server.handleCreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", server.handleGetSession)
			r.Delete("/", server.handleEndSession)
			r.Post("/cells/{cell}", server.handleSelectCell)
			r.Post("/round", server.handleNewRound)
			r.Post("/match", server.handleNewMatch)
		})
	})

	server.router = router

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
