package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"projectpulse/internal/model"
	"projectpulse/internal/repository"
)

type UserHandler struct {
	userRepo *repository.UserRepository
}

func NewUserHandler(userRepo *repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// ListUsers handles GET /users?role=<role>. Used by the admin UI to
// pick clients and employees when creating a project.
func (h *UserHandler) ListUsers(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "role is required"})
		return
	}

	users, err := h.userRepo.ListByRole(c.Request.Context(), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch users"})
		return
	}
	if users == nil {
		users = []model.User{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}
