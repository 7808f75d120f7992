package service

import (
	"context"

	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
)

// UserService handles user account business logic.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// List retrieves users with pagination.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]model.User, int64, error) {
	return s.userRepo.List(ctx, page, perPage)
}

// Create creates a new user account. The password must already be hashed.
func (s *UserService) Create(ctx context.Context, user *model.User) error {
	return s.userRepo.Create(ctx, user)
}

// Delete removes a user account and, via cascade, their enrollments.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}
