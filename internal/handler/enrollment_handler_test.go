package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/mohamedkhaled004/school-academy-backend/internal/middleware"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
	"github.com/mohamedkhaled004/school-academy-backend/internal/validator"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	m.Run()
}

// ─── Fakes ─────────────────────────────────────────────────────────────────

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

type fakeCodes struct {
	codes map[string]*model.AccessCode
}

func (f *fakeCodes) FindUnusedByCode(_ context.Context, _ repository.Tx, code string) (*model.AccessCode, error) {
	ac, ok := f.codes[code]
	if !ok || ac.IsUsed {
		return nil, pgx.ErrNoRows
	}
	return ac, nil
}

func (f *fakeCodes) MarkUsed(_ context.Context, _ repository.Tx, codeID, userID int, usedAt time.Time) error {
	for _, ac := range f.codes {
		if ac.ID == codeID {
			ac.IsUsed = true
			ac.UsedBy = &userID
			ac.UsedAt = &usedAt
		}
	}
	return nil
}

type fakeEnrolls struct {
	rows []model.Enrollment
}

func (f *fakeEnrolls) Exists(_ context.Context, _ repository.Tx, userID, classID int) (bool, error) {
	for _, e := range f.rows {
		if e.UserID == userID && e.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrolls) Create(_ context.Context, _ repository.Tx, e *model.Enrollment) error {
	e.ID = len(f.rows) + 1
	f.rows = append(f.rows, *e)
	return nil
}

func (f *fakeEnrolls) ListClassesByUser(_ context.Context, _ int) ([]model.EnrolledClass, error) {
	return nil, nil
}

func (f *fakeEnrolls) ListByClass(_ context.Context, _ int) ([]model.Enrollment, error) {
	return nil, nil
}

func (f *fakeEnrolls) Delete(_ context.Context, _ int) error { return nil }

type fakeClasses struct {
	classes map[int]model.Class
}

func (f *fakeClasses) GetByID(_ context.Context, id int) (*model.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

// ─── Helpers ───────────────────────────────────────────────────────────────

func newTestHandler(codes *fakeCodes, enrolls *fakeEnrolls, classes *fakeClasses) *EnrollmentHandler {
	svc := service.NewEnrollmentService(fakeTxRunner{}, codes, enrolls, classes, zerolog.Nop())
	return NewEnrollmentHandler(svc)
}

func asUser(userID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyClaims, &service.Claims{UserID: userID, Role: model.RoleStudent})
		c.Next()
	}
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return w, parsed
}

// ─── RedeemCode ────────────────────────────────────────────────────────────

func TestRedeemCodeEndpoint(t *testing.T) {
	codes := &fakeCodes{codes: map[string]*model.AccessCode{
		"ABCD2345": {ID: 1, Code: "ABCD2345", ClassID: 10},
	}}
	h := newTestHandler(codes, &fakeEnrolls{}, &fakeClasses{})

	r := gin.New()
	r.POST("/redeem-code", asUser(7), h.RedeemCode)

	w, body := postJSON(t, r, "/redeem-code", `{"code":"abcd2345"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["class_id"] != float64(10) {
		t.Errorf("class_id = %v, want 10", body["class_id"])
	}
}

func TestRedeemCodeEndpointInvalidCode(t *testing.T) {
	h := newTestHandler(&fakeCodes{codes: map[string]*model.AccessCode{}}, &fakeEnrolls{}, &fakeClasses{})

	r := gin.New()
	r.POST("/redeem-code", asUser(7), h.RedeemCode)

	w, body := postJSON(t, r, "/redeem-code", `{"code":"NOPE2345"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["error"] != "Invalid or already used code" {
		t.Errorf("error = %q, want %q", body["error"], "Invalid or already used code")
	}
	if body["code"] != "INVALID_OR_USED_CODE" {
		t.Errorf("code = %q, want INVALID_OR_USED_CODE", body["code"])
	}
}

func TestRedeemCodeEndpointAlreadyEnrolled(t *testing.T) {
	codes := &fakeCodes{codes: map[string]*model.AccessCode{
		"ABCD2345": {ID: 1, Code: "ABCD2345", ClassID: 10},
	}}
	enrolls := &fakeEnrolls{rows: []model.Enrollment{{ID: 1, UserID: 7, ClassID: 10}}}
	h := newTestHandler(codes, enrolls, &fakeClasses{})

	r := gin.New()
	r.POST("/redeem-code", asUser(7), h.RedeemCode)

	w, body := postJSON(t, r, "/redeem-code", `{"code":"ABCD2345"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["error"] != "You already have access to this class" {
		t.Errorf("error = %q, want %q", body["error"], "You already have access to this class")
	}
}

func TestRedeemCodeEndpointValidation(t *testing.T) {
	h := newTestHandler(&fakeCodes{}, &fakeEnrolls{}, &fakeClasses{})

	r := gin.New()
	r.POST("/redeem-code", asUser(7), h.RedeemCode)

	w, body := postJSON(t, r, "/redeem-code", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["code"] != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", body["code"])
	}
	if _, ok := body["fields"]; !ok {
		t.Error("fields missing from validation failure")
	}
}

func TestRedeemCodeEndpointUnauthenticated(t *testing.T) {
	h := newTestHandler(&fakeCodes{}, &fakeEnrolls{}, &fakeClasses{})

	r := gin.New()
	r.POST("/redeem-code", h.RedeemCode) // no claims middleware

	w, _ := postJSON(t, r, "/redeem-code", `{"code":"ABCD2345"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

// ─── EnrollFree ────────────────────────────────────────────────────────────

func TestEnrollFreeEndpoint(t *testing.T) {
	classes := &fakeClasses{classes: map[int]model.Class{
		20: {ID: 20, Title: "Intro", IsFree: true},
	}}
	enrolls := &fakeEnrolls{}
	h := newTestHandler(&fakeCodes{}, enrolls, classes)

	r := gin.New()
	r.POST("/enroll-free", asUser(7), h.EnrollFree)

	w, body := postJSON(t, r, "/enroll-free", `{"class_id":20}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if body["class_id"] != float64(20) {
		t.Errorf("class_id = %v, want 20", body["class_id"])
	}
	if len(enrolls.rows) != 1 {
		t.Errorf("enrollments = %d, want 1", len(enrolls.rows))
	}
}

func TestEnrollFreeEndpointPaidClass(t *testing.T) {
	classes := &fakeClasses{classes: map[int]model.Class{
		20: {ID: 20, Title: "Advanced", Price: 49.99},
	}}
	h := newTestHandler(&fakeCodes{}, &fakeEnrolls{}, classes)

	r := gin.New()
	r.POST("/enroll-free", asUser(7), h.EnrollFree)

	w, body := postJSON(t, r, "/enroll-free", `{"class_id":20}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["error"] != "Class not found or not free" {
		t.Errorf("error = %q, want %q", body["error"], "Class not found or not free")
	}
}

func TestEnrollFreeEndpointDuplicate(t *testing.T) {
	classes := &fakeClasses{classes: map[int]model.Class{
		20: {ID: 20, IsFree: true},
	}}
	enrolls := &fakeEnrolls{rows: []model.Enrollment{{ID: 1, UserID: 7, ClassID: 20}}}
	h := newTestHandler(&fakeCodes{}, enrolls, classes)

	r := gin.New()
	r.POST("/enroll-free", asUser(7), h.EnrollFree)

	w, body := postJSON(t, r, "/enroll-free", `{"class_id":20}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["error"] != "Already enrolled in this class" {
		t.Errorf("error = %q, want %q", body["error"], "Already enrolled in this class")
	}
}

// ─── MyClasses ─────────────────────────────────────────────────────────────

func TestMyClassesEndpointEmpty(t *testing.T) {
	h := newTestHandler(&fakeCodes{}, &fakeEnrolls{}, &fakeClasses{})

	r := gin.New()
	r.GET("/my-classes", asUser(7), h.MyClasses)

	req := httptest.NewRequest(http.MethodGet, "/my-classes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	// Empty enrollment list must serialize as [] rather than null.
	if !strings.Contains(w.Body.String(), `"classes":[]`) {
		t.Errorf("body = %s, want classes:[]", w.Body.String())
	}
}
