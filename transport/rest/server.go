package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

func NewRouter(logger *slog.Logger, game gameUseCase) *mux.Router {
	ping := NewPingHandler()
	games := NewGameHandler(logger, game)

	router := mux.NewRouter()
	router.HandleFunc("/ping", ping.PingHandler).Methods(http.MethodGet)

	router.HandleFunc("/games", games.CreateGame).Methods(http.MethodPost)
	router.HandleFunc("/games/{id}", games.GetGame).Methods(http.MethodGet)
	router.HandleFunc("/games/{id}", games.LeaveGame).Methods(http.MethodDelete)
	router.HandleFunc("/games/{id}/turn", games.MakeTurn).Methods(http.MethodPost)
	router.HandleFunc("/games/{id}/restart", games.RestartGame).Methods(http.MethodPost)

	return router
}

// Start serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
