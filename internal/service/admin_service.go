package service

import (
	"context"

	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/repository"
)

// AdminService handles admin account business logic.
type AdminService struct {
	adminRepo *repository.AdminRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo *repository.AdminRepository) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// List retrieves all admins.
func (s *AdminService) List(ctx context.Context) ([]model.Admin, error) {
	return s.adminRepo.List(ctx)
}

// Create creates a new admin.
func (s *AdminService) Create(ctx context.Context, admin *model.Admin) error {
	return s.adminRepo.Create(ctx, admin)
}

// Update modifies an admin's name and permission flags.
func (s *AdminService) Update(ctx context.Context, admin *model.Admin) error {
	return s.adminRepo.Update(ctx, admin)
}

// UpdatePassword replaces an admin's stored credential.
func (s *AdminService) UpdatePassword(ctx context.Context, id int, password string) error {
	return s.adminRepo.UpdatePassword(ctx, id, password)
}

// UpdateAvatar sets an admin's avatar URL.
func (s *AdminService) UpdateAvatar(ctx context.Context, id int, url string) error {
	return s.adminRepo.UpdateAvatar(ctx, id, url)
}

// Delete removes an admin account.
func (s *AdminService) Delete(ctx context.Context, id int) error {
	return s.adminRepo.Delete(ctx, id)
}
