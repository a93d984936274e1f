package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gharsapp/ghars-backend/internal/service"
)

// LeaderboardWorker periodically rebuilds the cached leaderboard snapshot
// so public reads stay warm even when no point mutations occur.
type LeaderboardWorker struct {
	studentService *service.StudentService
	interval       time.Duration
	log            zerolog.Logger
}

// NewLeaderboardWorker creates a new LeaderboardWorker.
func NewLeaderboardWorker(studentService *service.StudentService, interval time.Duration, log zerolog.Logger) *LeaderboardWorker {
	return &LeaderboardWorker{
		studentService: studentService,
		interval:       interval,
		log:            log.With().Str("component", "leaderboard_worker").Logger(),
	}
}

// Start begins the refresh loop. Call in a goroutine.
func (w *LeaderboardWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			if _, err := w.studentService.RefreshLeaderboard(ctx); err != nil {
				if ctx.Err() == nil {
					w.log.Error().Err(err).Msg("Snapshot refresh error")
				}
			}
		}
	}
}
