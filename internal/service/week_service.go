package service

import (
	"context"

	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/repository"
)

// WeekService handles weekly content modules and their cards.
type WeekService struct {
	weekRepo *repository.WeekRepository
}

// NewWeekService creates a new WeekService.
func NewWeekService(weekRepo *repository.WeekRepository) *WeekService {
	return &WeekService{weekRepo: weekRepo}
}

// GetByID retrieves a week with its cards.
func (s *WeekService) GetByID(ctx context.Context, id int) (*model.Week, error) {
	return s.weekRepo.GetByID(ctx, id)
}

// ListAll retrieves every week, locked or not. Admin panel view.
func (s *WeekService) ListAll(ctx context.Context) ([]model.Week, error) {
	return s.weekRepo.List(ctx)
}

// ListUnlocked retrieves only the weeks visible to the public.
func (s *WeekService) ListUnlocked(ctx context.Context) ([]model.Week, error) {
	weeks, err := s.weekRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	unlocked := make([]model.Week, 0, len(weeks))
	for _, w := range weeks {
		if !w.IsLocked {
			unlocked = append(unlocked, w)
		}
	}
	return unlocked, nil
}

// Create creates a new week.
func (s *WeekService) Create(ctx context.Context, week *model.Week) error {
	return s.weekRepo.Create(ctx, week)
}

// Update applies a partial update to a week. Nil request fields keep the
// stored value.
func (s *WeekService) Update(ctx context.Context, id int, req *model.UpdateWeekRequest) (*model.Week, error) {
	week, err := s.weekRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		week.Title = *req.Title
	}
	if req.IsLocked != nil {
		week.IsLocked = *req.IsLocked
	}
	if req.VideoURL != nil {
		week.VideoURL = *req.VideoURL
	}

	if err := s.weekRepo.Update(ctx, week); err != nil {
		return nil, err
	}
	return week, nil
}

// SetVideoURL records the uploaded video location on a week.
func (s *WeekService) SetVideoURL(ctx context.Context, id int, url string) (*model.Week, error) {
	return s.Update(ctx, id, &model.UpdateWeekRequest{VideoURL: &url})
}

// Delete removes a week and, via cascade, its cards.
func (s *WeekService) Delete(ctx context.Context, id int) error {
	return s.weekRepo.Delete(ctx, id)
}

// AddCard attaches a content card to a week.
func (s *WeekService) AddCard(ctx context.Context, card *model.ContentCard) error {
	return s.weekRepo.AddCard(ctx, card)
}

// UpdateCard modifies a content card.
func (s *WeekService) UpdateCard(ctx context.Context, card *model.ContentCard) error {
	return s.weekRepo.UpdateCard(ctx, card)
}

// DeleteCard removes a content card.
func (s *WeekService) DeleteCard(ctx context.Context, id int) error {
	return s.weekRepo.DeleteCard(ctx, id)
}
