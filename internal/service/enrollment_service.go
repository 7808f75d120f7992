package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Enrollment domain errors.
var (
	ErrInvalidOrUsedCode      = errors.New("invalid or already used code")
	ErrAlreadyEnrolled        = errors.New("already enrolled in this class")
	ErrClassNotFoundOrNotFree = errors.New("class not found or not free")
)

// TxRunner runs a function inside a database transaction.
// *repository.TxManager implements it; tests substitute a pass-through.
type TxRunner interface {
	WithTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

// AccessCodeStore is the code persistence surface redemption needs.
type AccessCodeStore interface {
	FindUnusedByCode(ctx context.Context, tx repository.Tx, code string) (*model.AccessCode, error)
	MarkUsed(ctx context.Context, tx repository.Tx, codeID, userID int, usedAt time.Time) error
}

// EnrollmentStore is the enrollment persistence surface.
type EnrollmentStore interface {
	Exists(ctx context.Context, tx repository.Tx, userID, classID int) (bool, error)
	Create(ctx context.Context, tx repository.Tx, e *model.Enrollment) error
	ListClassesByUser(ctx context.Context, userID int) ([]model.EnrolledClass, error)
	ListByClass(ctx context.Context, classID int) ([]model.Enrollment, error)
	Delete(ctx context.Context, id int) error
}

// ClassGetter resolves classes for the free-enrollment eligibility check.
type ClassGetter interface {
	GetByID(ctx context.Context, id int) (*model.Class, error)
}

// EnrollmentService owns code redemption and free enrollment. Both paths end
// in an enrollments insert guarded by the (user_id, class_id) unique
// constraint; redemption additionally consumes the access code in the same
// transaction so the two writes are all-or-nothing.
type EnrollmentService struct {
	tm      TxRunner
	codes   AccessCodeStore
	enrolls EnrollmentStore
	classes ClassGetter
	log     zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	tm TxRunner,
	codes AccessCodeStore,
	enrolls EnrollmentStore,
	classes ClassGetter,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		tm:      tm,
		codes:   codes,
		enrolls: enrolls,
		classes: classes,
		log:     log.With().Str("component", "enrollment_service").Logger(),
	}
}

// NormalizeCode canonicalizes a human-entered access code: surrounding
// whitespace stripped, letters upper-cased. Codes are stored normalized.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Redeem consumes an access code and enrolls the user into the class it
// unlocks. Runs as a single transaction: the unused-code lookup takes a row
// lock, so a concurrent redemption of the same code blocks until this one
// commits and then finds no unused row. Any failure after the code is marked
// used rolls the mark back, so a code is never left consumed without its
// enrollment.
func (s *EnrollmentService) Redeem(ctx context.Context, userID int, rawCode string) (int, error) {
	code := NormalizeCode(rawCode)

	var classID int
	err := s.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		ac, err := s.codes.FindUnusedByCode(ctx, tx, code)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInvalidOrUsedCode
			}
			return fmt.Errorf("find code: %w", err)
		}

		enrolled, err := s.enrolls.Exists(ctx, tx, userID, ac.ClassID)
		if err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if enrolled {
			return ErrAlreadyEnrolled
		}

		if err := s.codes.MarkUsed(ctx, tx, ac.ID, userID, time.Now()); err != nil {
			return fmt.Errorf("mark code used: %w", err)
		}

		e := &model.Enrollment{UserID: userID, ClassID: ac.ClassID}
		if err := s.enrolls.Create(ctx, tx, e); err != nil {
			if repository.IsUniqueViolation(err) {
				// A racing enrollment won between the check and the insert.
				// Returning the error rolls back the MarkUsed as well.
				return ErrAlreadyEnrolled
			}
			return fmt.Errorf("create enrollment: %w", err)
		}

		classID = ac.ClassID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("user_id", userID).Int("class_id", classID).Msg("Access code redeemed")
	return classID, nil
}

// EnrollFree enrolls the user into a class flagged free. No code is consumed,
// so no multi-statement transaction is needed; the unique constraint on
// enrollments is the backstop against a concurrent duplicate.
func (s *EnrollmentService) EnrollFree(ctx context.Context, userID, classID int) error {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrClassNotFoundOrNotFree
		}
		return fmt.Errorf("get class: %w", err)
	}
	if !class.IsFree {
		return ErrClassNotFoundOrNotFree
	}

	enrolled, err := s.enrolls.Exists(ctx, nil, userID, classID)
	if err != nil {
		return fmt.Errorf("check enrollment: %w", err)
	}
	if enrolled {
		return ErrAlreadyEnrolled
	}

	e := &model.Enrollment{UserID: userID, ClassID: classID}
	if err := s.enrolls.Create(ctx, nil, e); err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrAlreadyEnrolled
		}
		return fmt.Errorf("create enrollment: %w", err)
	}

	s.log.Info().Int("user_id", userID).Int("class_id", classID).Msg("Free enrollment created")
	return nil
}

// ListUserClasses returns the classes the user is enrolled in.
func (s *EnrollmentService) ListUserClasses(ctx context.Context, userID int) ([]model.EnrolledClass, error) {
	return s.enrolls.ListClassesByUser(ctx, userID)
}

// ClassRoster returns the enrollment records for a class (admin view).
func (s *EnrollmentService) ClassRoster(ctx context.Context, classID int) ([]model.Enrollment, error) {
	return s.enrolls.ListByClass(ctx, classID)
}

// RemoveEnrollment deletes an enrollment record. Administrative data
// management only; the redeemed code, if any, stays consumed.
func (s *EnrollmentService) RemoveEnrollment(ctx context.Context, id int) error {
	return s.enrolls.Delete(ctx, id)
}
