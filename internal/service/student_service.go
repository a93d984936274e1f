package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gharsapp/ghars-backend/internal/config"
	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/repository"
)

// StudentService handles student accounts, points, and the public
// leaderboard. The leaderboard is served from a Redis snapshot that is
// invalidated on every mutation and republished to the live stream.
type StudentService struct {
	studentRepo *repository.StudentRepository
	rdb         *redis.Client
	cacheTTL    time.Duration
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, rdb *redis.Client, cacheTTL time.Duration, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		rdb:         rdb,
		cacheTTL:    cacheTTL,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List retrieves all students in leaderboard order.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.studentRepo.List(ctx)
}

// Create inserts a new student account.
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return err
	}
	s.invalidateLeaderboard(ctx)
	return nil
}

// Update modifies a student's info (not the password).
func (s *StudentService) Update(ctx context.Context, student *model.Student) error {
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return err
	}
	s.invalidateLeaderboard(ctx)
	return nil
}

// UpdatePassword replaces a student's stored credential.
func (s *StudentService) UpdatePassword(ctx context.Context, id int, password string) error {
	return s.studentRepo.UpdatePassword(ctx, id, password)
}

// UpdateAvatar sets a student's avatar URL.
func (s *StudentService) UpdateAvatar(ctx context.Context, id int, url string) error {
	return s.studentRepo.UpdateAvatar(ctx, id, url)
}

// AddPoints adds delta to a student's score and returns the student with
// the new total.
func (s *StudentService) AddPoints(ctx context.Context, id, delta int) (*model.Student, error) {
	if _, err := s.studentRepo.AddPoints(ctx, id, delta); err != nil {
		return nil, err
	}
	s.invalidateLeaderboard(ctx)
	return s.studentRepo.GetByID(ctx, id)
}

// Delete removes a student account.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateLeaderboard(ctx)
	return nil
}

// Leaderboard returns all students ordered by points, served from the
// Redis snapshot when fresh.
func (s *StudentService) Leaderboard(ctx context.Context) ([]model.Student, error) {
	cached, err := s.rdb.Get(ctx, config.CacheKey.LeaderboardKey()).Result()
	if err == nil {
		var students []model.Student
		if jsonErr := json.Unmarshal([]byte(cached), &students); jsonErr == nil {
			return students, nil
		}
		// Corrupt snapshot; fall through to a rebuild.
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("leaderboard cache read failed")
	}

	return s.RefreshLeaderboard(ctx)
}

// RefreshLeaderboard rebuilds the Redis snapshot from the row store and
// returns the fresh ranking.
func (s *StudentService) RefreshLeaderboard(ctx context.Context) ([]model.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	raw, err := json.Marshal(students)
	if err != nil {
		return nil, fmt.Errorf("marshal leaderboard: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.LeaderboardKey(), raw, s.cacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("leaderboard cache write failed")
	}
	return students, nil
}

// invalidateLeaderboard drops the snapshot and notifies live subscribers.
// Cache failures only cost freshness, so they are logged, not returned.
func (s *StudentService) invalidateLeaderboard(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.LeaderboardKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("leaderboard cache invalidation failed")
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.LeaderboardChannel(), "updated").Err(); err != nil {
		s.log.Warn().Err(err).Msg("leaderboard update publish failed")
	}
}
