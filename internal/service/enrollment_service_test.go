package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ─── In-Memory Fakes ───────────────────────────────────────────────────────

type memAccessCodes struct {
	codes []model.AccessCode
}

func (m *memAccessCodes) FindUnusedByCode(_ context.Context, _ repository.Tx, code string) (*model.AccessCode, error) {
	for i := range m.codes {
		if m.codes[i].Code == code && !m.codes[i].IsUsed {
			c := m.codes[i]
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memAccessCodes) MarkUsed(_ context.Context, _ repository.Tx, codeID, userID int, usedAt time.Time) error {
	for i := range m.codes {
		if m.codes[i].ID == codeID {
			m.codes[i].IsUsed = true
			m.codes[i].UsedBy = &userID
			m.codes[i].UsedAt = &usedAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memAccessCodes) find(code string) *model.AccessCode {
	for i := range m.codes {
		if m.codes[i].Code == code {
			return &m.codes[i]
		}
	}
	return nil
}

type memEnrollments struct {
	rows      []model.Enrollment
	nextID    int
	createErr error
}

func (m *memEnrollments) Exists(_ context.Context, _ repository.Tx, userID, classID int) (bool, error) {
	for _, e := range m.rows {
		if e.UserID == userID && e.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memEnrollments) Create(_ context.Context, _ repository.Tx, e *model.Enrollment) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.rows {
		if existing.UserID == e.UserID && existing.ClassID == e.ClassID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "enrollments_user_class_unique"}
		}
	}
	m.nextID++
	e.ID = m.nextID
	e.EnrolledAt = time.Now()
	m.rows = append(m.rows, *e)
	return nil
}

func (m *memEnrollments) ListClassesByUser(_ context.Context, _ int) ([]model.EnrolledClass, error) {
	return nil, nil
}

func (m *memEnrollments) ListByClass(_ context.Context, classID int) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range m.rows {
		if e.ClassID == classID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEnrollments) Delete(_ context.Context, id int) error {
	for i, e := range m.rows {
		if e.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type memClasses struct {
	classes map[int]model.Class
}

func (m *memClasses) GetByID(_ context.Context, id int) (*model.Class, error) {
	c, ok := m.classes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

// fakeTxRunner snapshots the in-memory stores before running fn and restores
// them when fn fails, mirroring a rolled-back transaction.
type fakeTxRunner struct {
	codes   *memAccessCodes
	enrolls *memEnrollments
}

func (f *fakeTxRunner) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	codesSnap := make([]model.AccessCode, len(f.codes.codes))
	copy(codesSnap, f.codes.codes)
	enrollsSnap := make([]model.Enrollment, len(f.enrolls.rows))
	copy(enrollsSnap, f.enrolls.rows)
	nextIDSnap := f.enrolls.nextID

	if err := fn(ctx, nil); err != nil {
		f.codes.codes = codesSnap
		f.enrolls.rows = enrollsSnap
		f.enrolls.nextID = nextIDSnap
		return err
	}
	return nil
}

func newTestEnrollmentService(codes *memAccessCodes, enrolls *memEnrollments, classes *memClasses) *EnrollmentService {
	return NewEnrollmentService(
		&fakeTxRunner{codes: codes, enrolls: enrolls},
		codes,
		enrolls,
		classes,
		zerolog.Nop(),
	)
}

// ─── Redeem ────────────────────────────────────────────────────────────────

func TestRedeemSuccess(t *testing.T) {
	codes := &memAccessCodes{codes: []model.AccessCode{
		{ID: 1, Code: "ABCD2345", ClassID: 10},
	}}
	enrolls := &memEnrollments{}
	svc := newTestEnrollmentService(codes, enrolls, &memClasses{})

	classID, err := svc.Redeem(context.Background(), 7, "ABCD2345")
	if err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}
	if classID != 10 {
		t.Errorf("classID = %d, want 10", classID)
	}

	code := codes.find("ABCD2345")
	if !code.IsUsed {
		t.Error("code not marked used")
	}
	if code.UsedBy == nil || *code.UsedBy != 7 {
		t.Errorf("code.UsedBy = %v, want 7", code.UsedBy)
	}
	if code.UsedAt == nil {
		t.Error("code.UsedAt not set")
	}

	enrolled, _ := enrolls.Exists(context.Background(), nil, 7, 10)
	if !enrolled {
		t.Error("enrollment not created")
	}
}

func TestRedeemNormalizesInput(t *testing.T) {
	codes := &memAccessCodes{codes: []model.AccessCode{
		{ID: 1, Code: "ABCD2345", ClassID: 10},
	}}
	enrolls := &memEnrollments{}
	svc := newTestEnrollmentService(codes, enrolls, &memClasses{})

	classID, err := svc.Redeem(context.Background(), 7, "  abcd2345 ")
	if err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}
	if classID != 10 {
		t.Errorf("classID = %d, want 10", classID)
	}
}

func TestRedeemUnknownCode(t *testing.T) {
	svc := newTestEnrollmentService(&memAccessCodes{}, &memEnrollments{}, &memClasses{})

	_, err := svc.Redeem(context.Background(), 7, "NOPE2345")
	if !errors.Is(err, ErrInvalidOrUsedCode) {
		t.Errorf("Redeem() error = %v, want ErrInvalidOrUsedCode", err)
	}
}

func TestRedeemConsumedCode(t *testing.T) {
	codes := &memAccessCodes{codes: []model.AccessCode{
		{ID: 1, Code: "ABCD2345", ClassID: 10},
	}}
	enrolls := &memEnrollments{}
	svc := newTestEnrollmentService(codes, enrolls, &memClasses{})

	if _, err := svc.Redeem(context.Background(), 7, "ABCD2345"); err != nil {
		t.Fatalf("first Redeem() error = %v", err)
	}

	// Same code by another user must fail with the same opaque error as a
	// code that never existed.
	_, err := svc.Redeem(context.Background(), 8, "ABCD2345")
	if !errors.Is(err, ErrInvalidOrUsedCode) {
		t.Errorf("second Redeem() error = %v, want ErrInvalidOrUsedCode", err)
	}

	enrolled, _ := enrolls.Exists(context.Background(), nil, 8, 10)
	if enrolled {
		t.Error("losing user must not be enrolled")
	}
}

func TestRedeemAlreadyEnrolled(t *testing.T) {
	codes := &memAccessCodes{codes: []model.AccessCode{
		{ID: 1, Code: "ABCD2345", ClassID: 10},
	}}
	enrolls := &memEnrollments{rows: []model.Enrollment{
		{ID: 1, UserID: 7, ClassID: 10},
	}}
	svc := newTestEnrollmentService(codes, enrolls, &memClasses{})

	_, err := svc.Redeem(context.Background(), 7, "ABCD2345")
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("Redeem() error = %v, want ErrAlreadyEnrolled", err)
	}

	// The code must survive the failed redemption for another user.
	if codes.find("ABCD2345").IsUsed {
		t.Error("code consumed despite failed redemption")
	}
}

func TestRedeemRollsBackOnInsertFailure(t *testing.T) {
	codes := &memAccessCodes{codes: []model.AccessCode{
		{ID: 1, Code: "ABCD2345", ClassID: 10},
	}}
	enrolls := &memEnrollments{createErr: errors.New("connection reset")}
	svc := newTestEnrollmentService(codes, enrolls, &memClasses{})

	_, err := svc.Redeem(context.Background(), 7, "ABCD2345")
	if err == nil {
		t.Fatal("Redeem() succeeded, want error")
	}

	if codes.find("ABCD2345").IsUsed {
		t.Error("code left consumed after rollback")
	}
	if len(enrolls.rows) != 0 {
		t.Errorf("enrollments = %d, want 0", len(enrolls.rows))
	}
}

func TestRedeemTranslatesUniqueViolation(t *testing.T) {
	codes := &memAccessCodes{codes: []model.AccessCode{
		{ID: 1, Code: "ABCD2345", ClassID: 10},
	}}
	enrolls := &memEnrollments{createErr: &pgconn.PgError{Code: "23505"}}
	svc := newTestEnrollmentService(codes, enrolls, &memClasses{})

	_, err := svc.Redeem(context.Background(), 7, "ABCD2345")
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("Redeem() error = %v, want ErrAlreadyEnrolled", err)
	}
	if codes.find("ABCD2345").IsUsed {
		t.Error("code left consumed after unique violation")
	}
}

// ─── EnrollFree ────────────────────────────────────────────────────────────

func TestEnrollFreeSuccess(t *testing.T) {
	enrolls := &memEnrollments{}
	classes := &memClasses{classes: map[int]model.Class{
		20: {ID: 20, Title: "Intro", IsFree: true},
	}}
	svc := newTestEnrollmentService(&memAccessCodes{}, enrolls, classes)

	if err := svc.EnrollFree(context.Background(), 7, 20); err != nil {
		t.Fatalf("EnrollFree() error = %v", err)
	}

	enrolled, _ := enrolls.Exists(context.Background(), nil, 7, 20)
	if !enrolled {
		t.Error("enrollment not created")
	}
}

func TestEnrollFreeUnknownClass(t *testing.T) {
	svc := newTestEnrollmentService(&memAccessCodes{}, &memEnrollments{}, &memClasses{classes: map[int]model.Class{}})

	err := svc.EnrollFree(context.Background(), 7, 99)
	if !errors.Is(err, ErrClassNotFoundOrNotFree) {
		t.Errorf("EnrollFree() error = %v, want ErrClassNotFoundOrNotFree", err)
	}
}

func TestEnrollFreePaidClass(t *testing.T) {
	classes := &memClasses{classes: map[int]model.Class{
		20: {ID: 20, Title: "Advanced", IsFree: false, Price: 49.99},
	}}
	svc := newTestEnrollmentService(&memAccessCodes{}, &memEnrollments{}, classes)

	// A paid class is indistinguishable from a missing one.
	err := svc.EnrollFree(context.Background(), 7, 20)
	if !errors.Is(err, ErrClassNotFoundOrNotFree) {
		t.Errorf("EnrollFree() error = %v, want ErrClassNotFoundOrNotFree", err)
	}
}

func TestEnrollFreeTwice(t *testing.T) {
	enrolls := &memEnrollments{}
	classes := &memClasses{classes: map[int]model.Class{
		20: {ID: 20, Title: "Intro", IsFree: true},
	}}
	svc := newTestEnrollmentService(&memAccessCodes{}, enrolls, classes)

	if err := svc.EnrollFree(context.Background(), 7, 20); err != nil {
		t.Fatalf("first EnrollFree() error = %v", err)
	}
	err := svc.EnrollFree(context.Background(), 7, 20)
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("second EnrollFree() error = %v, want ErrAlreadyEnrolled", err)
	}
	if len(enrolls.rows) != 1 {
		t.Errorf("enrollments = %d, want 1", len(enrolls.rows))
	}
}

func TestEnrollFreeConcurrentDuplicate(t *testing.T) {
	// Exists says no, but the insert hits the unique constraint: the race
	// loser gets the same error as a plain duplicate.
	enrolls := &memEnrollments{createErr: &pgconn.PgError{Code: "23505"}}
	classes := &memClasses{classes: map[int]model.Class{
		20: {ID: 20, IsFree: true},
	}}
	svc := newTestEnrollmentService(&memAccessCodes{}, enrolls, classes)

	err := svc.EnrollFree(context.Background(), 7, 20)
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("EnrollFree() error = %v, want ErrAlreadyEnrolled", err)
	}
}

// ─── NormalizeCode ─────────────────────────────────────────────────────────

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abcd2345", "ABCD2345"},
		{"  ABCD2345  ", "ABCD2345"},
		{"\tAbCd2345\n", "ABCD2345"},
		{"ABCD2345", "ABCD2345"},
	}
	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
