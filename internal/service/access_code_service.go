package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrClassNotFound is returned when a referenced class does not exist.
var ErrClassNotFound = errors.New("class not found")

// Codes are human-enterable: 8 characters from an alphabet without the
// ambiguous 0/O and 1/I glyphs.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 8

	// collision on a fresh random code is vanishingly rare; a handful of
	// retries covers it without an unbounded loop
	maxCodeAttempts = 5
)

// AccessCodeService handles administrative access code management.
type AccessCodeService struct {
	codeRepo  *repository.AccessCodeRepository
	classRepo *repository.ClassRepository
	log       zerolog.Logger
}

// NewAccessCodeService creates a new AccessCodeService.
func NewAccessCodeService(codeRepo *repository.AccessCodeRepository, classRepo *repository.ClassRepository, log zerolog.Logger) *AccessCodeService {
	return &AccessCodeService{
		codeRepo:  codeRepo,
		classRepo: classRepo,
		log:       log.With().Str("component", "access_code_service").Logger(),
	}
}

// Generate creates count random codes for a class at the given price.
// Returns the created codes so the admin can distribute them.
func (s *AccessCodeService) Generate(ctx context.Context, classID, count int, price float64) ([]model.AccessCode, error) {
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("get class: %w", err)
	}

	codes := make([]model.AccessCode, 0, count)
	for i := 0; i < count; i++ {
		ac, err := s.createOne(ctx, classID, price)
		if err != nil {
			return nil, err
		}
		codes = append(codes, *ac)
	}

	s.log.Info().Int("class_id", classID).Int("count", count).Msg("Access codes generated")
	return codes, nil
}

func (s *AccessCodeService) createOne(ctx context.Context, classID int, price float64) (*model.AccessCode, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}

		ac := &model.AccessCode{Code: code, ClassID: classID, Price: price}
		if err := s.codeRepo.Create(ctx, ac); err != nil {
			if repository.IsUniqueViolation(err) {
				continue // collided with an existing code, roll again
			}
			return nil, fmt.Errorf("insert code: %w", err)
		}
		return ac, nil
	}
	return nil, errors.New("could not generate a unique code")
}

// ListByClass returns a class's codes, optionally filtered by used state.
func (s *AccessCodeService) ListByClass(ctx context.Context, classID int, used *bool) ([]model.AccessCode, error) {
	return s.codeRepo.ListByClass(ctx, classID, used)
}

// StatsByClass returns usage counters for a class's codes.
func (s *AccessCodeService) StatsByClass(ctx context.Context, classID int) (*model.AccessCodeStats, error) {
	return s.codeRepo.StatsByClass(ctx, classID)
}

// DeleteUnused removes a code that has not been consumed. Consumed codes are
// part of the enrollment audit trail and cannot be deleted.
func (s *AccessCodeService) DeleteUnused(ctx context.Context, id int) (bool, error) {
	n, err := s.codeRepo.DeleteUnused(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// randomCode draws codeLength characters from codeAlphabet using crypto/rand.
func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, codeLength)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
