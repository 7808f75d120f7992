package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/repository"
	"github.com/mohamedkhaled004/school-academy-backend/internal/response"
	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
	"github.com/mohamedkhaled004/school-academy-backend/internal/validator"
)

// ClassHandler handles the public class catalog and admin class management.
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// Catalog godoc
// GET /api/v1/public/classes
// Lists all classes for browsing (cache-backed).
func (h *ClassHandler) Catalog(c *gin.Context) {
	classes, err := h.classService.PublicCatalog(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if classes == nil {
		classes = []model.Class{}
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// GetClass godoc
// GET /api/v1/public/classes/:id
// Returns a single class's public detail.
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// ListClasses godoc
// GET /api/v1/admin/classes
// Lists all classes without caching.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if classes == nil {
		classes = []model.Class{}
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// CreateClass godoc
// POST /api/v1/admin/classes
// Creates a new class.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{
		Title:        req.Title,
		Description:  req.Description,
		TeacherID:    req.TeacherID,
		Price:        req.Price,
		IsFree:       req.IsFree,
		ThumbnailURL: req.ThumbnailURL,
	}

	if err := h.classService.Create(c.Request.Context(), class); err != nil {
		if repository.IsForeignKeyViolation(err) {
			// teacher_id points at a teacher that does not exist
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// UpdateClass godoc
// PUT /api/v1/admin/classes/:id
// Updates an existing class.
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		TeacherID:    req.TeacherID,
		Price:        req.Price,
		IsFree:       req.IsFree,
		ThumbnailURL: req.ThumbnailURL,
	}

	if err := h.classService.Update(c.Request.Context(), class); err != nil {
		if repository.IsForeignKeyViolation(err) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	updated, _ := h.classService.GetByID(c.Request.Context(), id)

	response.Success(c, http.StatusOK, gin.H{"class": updated})
}

// DeleteClass godoc
// DELETE /api/v1/admin/classes/:id
// Deletes a class. Fails if codes or enrollments still reference it.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "class deleted successfully"})
}
