package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
)

// AccessCodeRepository handles access code data access.
type AccessCodeRepository struct {
	pool *pgxpool.Pool
}

// NewAccessCodeRepository creates a new AccessCodeRepository.
func NewAccessCodeRepository(pool *pgxpool.Pool) *AccessCodeRepository {
	return &AccessCodeRepository{pool: pool}
}

// FindUnusedByCode retrieves an unused code by its exact value. When called
// inside a transaction the row is locked (FOR UPDATE) so a concurrent
// redemption of the same code blocks until this transaction finishes.
// Returns pgx.ErrNoRows if the code does not exist or was already consumed.
func (r *AccessCodeRepository) FindUnusedByCode(ctx context.Context, tx Tx, code string) (*model.AccessCode, error) {
	q := `SELECT id, code, class_id, price, is_used, used_by, used_at, created_at
	      FROM access_codes WHERE code = $1 AND is_used = FALSE`
	if inTx(tx) {
		q += " FOR UPDATE"
	}

	ac := &model.AccessCode{}
	err := resolve(r.pool, tx).QueryRow(ctx, q, code).
		Scan(&ac.ID, &ac.Code, &ac.ClassID, &ac.Price, &ac.IsUsed, &ac.UsedBy, &ac.UsedAt, &ac.CreatedAt)
	if err != nil {
		return nil, err
	}
	return ac, nil
}

// MarkUsed flips a code to used state, recording the redeeming user and time.
func (r *AccessCodeRepository) MarkUsed(ctx context.Context, tx Tx, codeID, userID int, usedAt time.Time) error {
	_, err := resolve(r.pool, tx).Exec(ctx,
		`UPDATE access_codes SET is_used = TRUE, used_by = $1, used_at = $2 WHERE id = $3`,
		userID, usedAt, codeID,
	)
	return err
}

// Create inserts a new access code.
func (r *AccessCodeRepository) Create(ctx context.Context, ac *model.AccessCode) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO access_codes (code, class_id, price)
		 VALUES ($1, $2, $3)
		 RETURNING id, is_used, created_at`,
		ac.Code, ac.ClassID, ac.Price,
	).Scan(&ac.ID, &ac.IsUsed, &ac.CreatedAt)
}

// ListByClass retrieves codes for a class, optionally filtered by used state.
func (r *AccessCodeRepository) ListByClass(ctx context.Context, classID int, used *bool) ([]model.AccessCode, error) {
	q := `SELECT id, code, class_id, price, is_used, used_by, used_at, created_at
	      FROM access_codes WHERE class_id = $1`
	args := []any{classID}
	if used != nil {
		q += ` AND is_used = $2`
		args = append(args, *used)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []model.AccessCode
	for rows.Next() {
		var ac model.AccessCode
		if err := rows.Scan(&ac.ID, &ac.Code, &ac.ClassID, &ac.Price, &ac.IsUsed, &ac.UsedBy, &ac.UsedAt, &ac.CreatedAt); err != nil {
			return nil, err
		}
		codes = append(codes, ac)
	}
	return codes, rows.Err()
}

// StatsByClass returns usage counters for a class's codes.
func (r *AccessCodeRepository) StatsByClass(ctx context.Context, classID int) (*model.AccessCodeStats, error) {
	s := &model.AccessCodeStats{ClassID: classID}
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_used), COUNT(*) FILTER (WHERE NOT is_used)
		 FROM access_codes WHERE class_id = $1`, classID,
	).Scan(&s.Total, &s.Used, &s.Unused)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteUnused removes a code by ID only if it has not been consumed.
// Returns the number of rows removed (0 when the code was used or missing).
func (r *AccessCodeRepository) DeleteUnused(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM access_codes WHERE id = $1 AND is_used = FALSE`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
