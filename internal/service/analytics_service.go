package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gharsapp/ghars-backend/internal/config"
	"github.com/gharsapp/ghars-backend/internal/repository"
)

// EngagementReport consolidates site-wide statistics for admins holding
// the analytics permission.
type EngagementReport struct {
	TotalStudents   int                          `json:"total_students"`
	TotalClasses    int                          `json:"total_classes"`
	TotalWeeks      int                          `json:"total_weeks"`
	UnlockedWeeks   int                          `json:"unlocked_weeks"`
	TotalPoints     int                          `json:"total_points"`
	ClassEngagement []repository.ClassEngagement `json:"class_engagement"`
	GeneratedAt     time.Time                    `json:"generated_at"`
}

// AnalyticsService builds the engagement report from row-store aggregates,
// with a short Redis cache in front since the report only feeds a
// dashboard.
type AnalyticsService struct {
	reportRepo *repository.ReportRepository
	rdb        *redis.Client
	cacheTTL   time.Duration
	log        zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(reportRepo *repository.ReportRepository, rdb *redis.Client, cacheTTL time.Duration, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		reportRepo: reportRepo,
		rdb:        rdb,
		cacheTTL:   cacheTTL,
		log:        log.With().Str("component", "analytics_service").Logger(),
	}
}

// GetReport returns the engagement report, cached.
func (s *AnalyticsService) GetReport(ctx context.Context) (*EngagementReport, error) {
	cached, err := s.rdb.Get(ctx, config.CacheKey.AnalyticsReportKey()).Result()
	if err == nil {
		var report EngagementReport
		if jsonErr := json.Unmarshal([]byte(cached), &report); jsonErr == nil {
			return &report, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("report cache read failed")
	}

	report, err := s.buildReport(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(report); err == nil {
		if err := s.rdb.Set(ctx, config.CacheKey.AnalyticsReportKey(), raw, s.cacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("report cache write failed")
		}
	}
	return report, nil
}

func (s *AnalyticsService) buildReport(ctx context.Context) (*EngagementReport, error) {
	students, classes, weeks, unlocked, err := s.reportRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	totalPoints, err := s.reportRepo.GetTotalPoints(ctx)
	if err != nil {
		return nil, err
	}

	engagement, err := s.reportRepo.GetClassEngagement(ctx)
	if err != nil {
		return nil, err
	}

	return &EngagementReport{
		TotalStudents:   students,
		TotalClasses:    classes,
		TotalWeeks:      weeks,
		UnlockedWeeks:   unlocked,
		TotalPoints:     totalPoints,
		ClassEngagement: engagement,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}
