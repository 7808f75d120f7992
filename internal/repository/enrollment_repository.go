package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Exists reports whether the user already holds an enrollment for the class.
func (r *EnrollmentRepository) Exists(ctx context.Context, tx Tx, userID, classID int) (bool, error) {
	var exists bool
	err := resolve(r.pool, tx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE user_id = $1 AND class_id = $2)`,
		userID, classID,
	).Scan(&exists)
	return exists, err
}

// Create inserts an enrollment. The unique constraint on (user_id, class_id)
// is the final backstop against concurrent duplicates; callers translate the
// 23505 violation into a domain error.
func (r *EnrollmentRepository) Create(ctx context.Context, tx Tx, e *model.Enrollment) error {
	return resolve(r.pool, tx).QueryRow(ctx,
		`INSERT INTO enrollments (user_id, class_id)
		 VALUES ($1, $2)
		 RETURNING id, enrolled_at`,
		e.UserID, e.ClassID,
	).Scan(&e.ID, &e.EnrolledAt)
}

// ListClassesByUser retrieves the classes a user is enrolled in, newest first.
func (r *EnrollmentRepository) ListClassesByUser(ctx context.Context, userID int) ([]model.EnrolledClass, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.title, c.description, c.teacher_id, c.price, c.is_free, c.thumbnail_url,
		        c.created_at, c.updated_at, e.enrolled_at
		 FROM enrollments e
		 JOIN classes c ON c.id = e.class_id
		 WHERE e.user_id = $1
		 ORDER BY e.enrolled_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.EnrolledClass
	for rows.Next() {
		var ec model.EnrolledClass
		if err := rows.Scan(&ec.ID, &ec.Title, &ec.Description, &ec.TeacherID, &ec.Price, &ec.IsFree,
			&ec.ThumbnailURL, &ec.CreatedAt, &ec.UpdatedAt, &ec.EnrolledAt); err != nil {
			return nil, err
		}
		classes = append(classes, ec)
	}
	return classes, rows.Err()
}

// ListByClass retrieves the enrollment roster for a class.
func (r *EnrollmentRepository) ListByClass(ctx context.Context, classID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, class_id, enrolled_at
		 FROM enrollments WHERE class_id = $1
		 ORDER BY enrolled_at`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.ClassID, &e.EnrolledAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// Delete removes an enrollment by ID (administrative data management).
func (r *EnrollmentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	return err
}
