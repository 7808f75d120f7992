package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/response"
	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
	"github.com/mohamedkhaled004/school-academy-backend/internal/validator"
)

// TeacherHandler handles teacher endpoints (public listing + admin CRUD).
type TeacherHandler struct {
	teacherService *service.TeacherService
	classService   *service.ClassService
}

// NewTeacherHandler creates a new TeacherHandler.
func NewTeacherHandler(teacherService *service.TeacherService, classService *service.ClassService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService, classService: classService}
}

// ListTeachers godoc
// GET /api/v1/public/teachers
// Lists all teachers for the public site.
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if teachers == nil {
		teachers = []model.Teacher{}
	}

	response.Success(c, http.StatusOK, gin.H{"teachers": teachers})
}

// GetTeacher godoc
// GET /api/v1/public/teachers/:id
// Returns a teacher's profile along with their classes.
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	teacher, err := h.teacherService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	classes, err := h.classService.ListByTeacher(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if classes == nil {
		classes = []model.Class{}
	}

	response.Success(c, http.StatusOK, gin.H{"teacher": teacher, "classes": classes})
}

// CreateTeacher godoc
// POST /api/v1/admin/teachers
// Creates a new teacher profile.
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req model.TeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher := &model.Teacher{
		Name:     req.Name,
		Subject:  req.Subject,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
	}

	if err := h.teacherService.Create(c.Request.Context(), teacher); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"teacher": teacher})
}

// UpdateTeacher godoc
// PUT /api/v1/admin/teachers/:id
// Updates an existing teacher profile.
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.TeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher := &model.Teacher{
		ID:       id,
		Name:     req.Name,
		Subject:  req.Subject,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
	}

	if err := h.teacherService.Update(c.Request.Context(), teacher); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	updated, _ := h.teacherService.GetByID(c.Request.Context(), id)

	response.Success(c, http.StatusOK, gin.H{"teacher": updated})
}

// DeleteTeacher godoc
// DELETE /api/v1/admin/teachers/:id
// Deletes a teacher profile; their classes are kept with no teacher.
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.teacherService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "teacher deleted successfully"})
}
