package service

import (
	"context"

	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
)

// TeacherService handles teacher profile business logic.
type TeacherService struct {
	teacherRepo *repository.TeacherRepository
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(teacherRepo *repository.TeacherRepository) *TeacherService {
	return &TeacherService{teacherRepo: teacherRepo}
}

// GetByID retrieves a teacher by ID.
func (s *TeacherService) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

// List retrieves all teachers.
func (s *TeacherService) List(ctx context.Context) ([]model.Teacher, error) {
	return s.teacherRepo.List(ctx)
}

// Create creates a new teacher.
func (s *TeacherService) Create(ctx context.Context, teacher *model.Teacher) error {
	return s.teacherRepo.Create(ctx, teacher)
}

// Update modifies an existing teacher.
func (s *TeacherService) Update(ctx context.Context, teacher *model.Teacher) error {
	return s.teacherRepo.Update(ctx, teacher)
}

// Delete removes a teacher. Classes referencing the teacher keep their rows;
// the foreign key sets teacher_id to NULL.
func (s *TeacherService) Delete(ctx context.Context, id int) error {
	return s.teacherRepo.Delete(ctx, id)
}
