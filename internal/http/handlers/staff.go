package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"automart/internal/http/middleware"
	"automart/internal/repositories"
	"automart/internal/utils"
)

// ListUsers returns all non-superuser accounts for the staff console.
func ListUsers(c *gin.Context) {
	users, err := repositories.UserRepo{}.ListNonSuperusers()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ToggleStaff flips the staff flag on an account (superuser only).
func ToggleStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	isStaff, err := repositories.UserRepo{}.ToggleStaff(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "staff", "toggle_staff", fmt.Sprintf("user %d staff=%t", id, isStaff))
	c.JSON(http.StatusOK, gin.H{"id": id, "is_staff": isStaff})
}

type toggleRoleRequest struct {
	Role string `json:"role"`
}

// ToggleRole flips one specialist role on an account (superuser only).
// Accepted roles: mechanic, billing, ecommerce.
func ToggleRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req toggleRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := (repositories.UserRepo{}).ToggleProfileRole(id, req.Role); err != nil {
		RespondDomainError(c, err)
		return
	}
	user, err := repositories.UserRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "staff", "toggle_role", fmt.Sprintf("user %d role=%s", id, req.Role))
	c.JSON(http.StatusOK, user)
}
