package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhaled004/school-academy-backend/internal/middleware"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/response"
	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
	"github.com/mohamedkhaled004/school-academy-backend/internal/validator"
)

// EnrollmentHandler handles code redemption and enrollment endpoints.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// RedeemCode godoc
// POST /api/v1/student/redeem-code
// Consumes an access code and enrolls the caller into the class it unlocks.
func (h *EnrollmentHandler) RedeemCode(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.RedeemCodeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	classID, err := h.enrollmentService.Redeem(c.Request.Context(), claims.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrUsedCode):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidOrUsedCode)
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.Fail(c, http.StatusBadRequest, response.ErrAlreadyHasAccess)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class_id": classID})
}

// EnrollFree godoc
// POST /api/v1/student/enroll-free
// Enrolls the caller into a class flagged free.
func (h *EnrollmentHandler) EnrollFree(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.EnrollFreeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.enrollmentService.EnrollFree(c.Request.Context(), claims.UserID, req.ClassID); err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFoundOrNotFree):
			response.Fail(c, http.StatusBadRequest, response.ErrClassNotFree)
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.Fail(c, http.StatusBadRequest, response.ErrAlreadyEnrolled)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class_id": req.ClassID})
}

// MyClasses godoc
// GET /api/v1/student/my-classes
// Lists the classes the caller is enrolled in.
func (h *EnrollmentHandler) MyClasses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classes, err := h.enrollmentService.ListUserClasses(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if classes == nil {
		classes = []model.EnrolledClass{}
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// ClassRoster godoc
// GET /api/v1/admin/classes/:id/enrollments
// Lists the enrollment records for a class.
func (h *EnrollmentHandler) ClassRoster(c *gin.Context) {
	classID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	roster, err := h.enrollmentService.ClassRoster(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if roster == nil {
		roster = []model.Enrollment{}
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": roster})
}

// DeleteEnrollment godoc
// DELETE /api/v1/admin/enrollments/:id
// Removes an enrollment record.
func (h *EnrollmentHandler) DeleteEnrollment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.enrollmentService.RemoveEnrollment(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "enrollment removed"})
}

// parseIDParam parses a numeric :id-style path parameter.
func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
