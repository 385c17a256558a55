package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automart/internal/auth"
	"automart/internal/domain"
	"automart/internal/domain/models"
	"automart/internal/repositories"
	"automart/internal/utils"
)

const authUserKey = "auth_user"

// Auth validates the bearer token and loads the authenticated user
// into the request context.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		userID, err := auth.ParseAccessToken(token)
		if err != nil {
			msg := "invalid token"
			if err == auth.ErrExpiredToken {
				msg = "token expired"
			}
			abortUnauthorized(c, msg)
			return
		}
		user, err := repositories.UserRepo{}.GetByID(userID)
		if err != nil {
			if domain.IsNotFound(err) {
				abortUnauthorized(c, "invalid token")
				return
			}
			utils.LogEvent(GetRequestID(c), "auth", "load_user", "error: "+err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.Set(authUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user loaded by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(authUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// RequireStaff admits staff members and workshop specialists.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok || !u.IsStaffOrSpecialist() {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequireSuperuser admits superusers only.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok || !u.IsSuperuser {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin admits staff or superusers for catalog management.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok || !(u.IsStaff || u.IsSuperuser) {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
}
