package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhaled004/school-academy-backend/internal/model"
	"github.com/mohamedkhaled004/school-academy-backend/internal/response"
	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
)

// UserHandler handles admin user management.
type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// ListUsers godoc
// GET /api/v1/admin/users?page=1&per_page=25
// Lists user accounts with pagination.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "25"))
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}

	users, total, err := h.userService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if users == nil {
		users = []model.User{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":    users,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

// DeleteUser godoc
// DELETE /api/v1/admin/users/:id
// Removes a user account and its enrollments.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// Best effort; the account is gone either way.
	_ = h.authService.ClearSession(c.Request.Context(), id)

	response.Success(c, http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// ResetUserSession godoc
// POST /api/v1/admin/users/:id/reset-session
// Clears a user's active session so they can log in fresh.
func (h *UserHandler) ResetUserSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.authService.ClearSession(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "session reset"})
}
