package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/response"
	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
	"github.com/mohamedkhaled004/school-academy-backend/internal/validator"
)

// AccessCodeHandler handles admin access-code management.
type AccessCodeHandler struct {
	codeService *service.AccessCodeService
}

// NewAccessCodeHandler creates a new AccessCodeHandler.
func NewAccessCodeHandler(codeService *service.AccessCodeService) *AccessCodeHandler {
	return &AccessCodeHandler{codeService: codeService}
}

// GenerateCodes godoc
// POST /api/v1/admin/access-codes
// Generates a batch of codes for a class.
func (h *AccessCodeHandler) GenerateCodes(c *gin.Context) {
	var req model.GenerateCodesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	codes, err := h.codeService.Generate(c.Request.Context(), req.ClassID, req.Count, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"codes": codes})
}

// ListCodes godoc
// GET /api/v1/admin/classes/:id/access-codes?used=true|false
// Lists a class's codes, optionally filtered by used state.
func (h *AccessCodeHandler) ListCodes(c *gin.Context) {
	classID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var used *bool
	if raw := c.Query("used"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		used = &v
	}

	codes, err := h.codeService.ListByClass(c.Request.Context(), classID, used)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if codes == nil {
		codes = []model.AccessCode{}
	}

	response.Success(c, http.StatusOK, gin.H{"codes": codes})
}

// CodeStats godoc
// GET /api/v1/admin/classes/:id/access-codes/stats
// Returns used/unused counters for a class's codes.
func (h *AccessCodeHandler) CodeStats(c *gin.Context) {
	classID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.codeService.StatsByClass(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// DeleteCode godoc
// DELETE /api/v1/admin/access-codes/:id
// Removes an unused code. Consumed codes cannot be deleted.
func (h *AccessCodeHandler) DeleteCode(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.codeService.DeleteUnused(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "access code deleted"})
}
