package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, teacher_id, price, is_free, thumbnail_url, created_at, updated_at
		 FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.Price, &c.IsFree, &c.ThumbnailURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all classes, newest first.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, teacher_id, price, is_free, thumbnail_url, created_at, updated_at
		 FROM classes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.Price, &c.IsFree, &c.ThumbnailURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// ListByTeacher retrieves all classes taught by the given teacher.
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, teacher_id, price, is_free, thumbnail_url, created_at, updated_at
		 FROM classes WHERE teacher_id = $1 ORDER BY created_at DESC, id DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.Price, &c.IsFree, &c.ThumbnailURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (title, description, teacher_id, price, is_free, thumbnail_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.Description, c.TeacherID, c.Price, c.IsFree, c.ThumbnailURL,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classes
		 SET title = $1, description = $2, teacher_id = $3, price = $4, is_free = $5,
		     thumbnail_url = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		c.Title, c.Description, c.TeacherID, c.Price, c.IsFree, c.ThumbnailURL, c.ID,
	)
	return err
}

// Delete removes a class by its ID. Foreign keys on access_codes and
// enrollments prevent deleting a class that is still referenced.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return err
}
