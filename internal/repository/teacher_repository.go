package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
)

// TeacherRepository handles teacher data access.
type TeacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

// GetByID retrieves a teacher by ID.
func (r *TeacherRepository) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	t := &model.Teacher{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, subject, bio, photo_url, created_at, updated_at
		 FROM teachers WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Subject, &t.Bio, &t.PhotoURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves all teachers ordered by name.
func (r *TeacherRepository) List(ctx context.Context) ([]model.Teacher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, subject, bio, photo_url, created_at, updated_at
		 FROM teachers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []model.Teacher
	for rows.Next() {
		var t model.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Bio, &t.PhotoURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// Create inserts a new teacher.
func (r *TeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO teachers (name, subject, bio, photo_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		t.Name, t.Subject, t.Bio, t.PhotoURL,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update modifies an existing teacher.
func (r *TeacherRepository) Update(ctx context.Context, t *model.Teacher) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE teachers
		 SET name = $1, subject = $2, bio = $3, photo_url = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		t.Name, t.Subject, t.Bio, t.PhotoURL, t.ID,
	)
	return err
}

// Delete removes a teacher by ID.
func (r *TeacherRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	return err
}
