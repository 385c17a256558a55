package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"automart/internal/auth"
	"automart/internal/domain"
	"automart/internal/http/middleware"
	"automart/internal/notify"
	"automart/internal/repositories"
	"automart/internal/utils"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user together with its workshop profile.
func Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" {
		RespondDomainError(c, domain.ValidationError{Field: "username", Msg: "is required"})
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "must be a valid email address"})
		return
	}
	if len(req.Password) < 8 {
		RespondDomainError(c, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"})
		return
	}

	repo := repositories.UserRepo{}
	taken, err := repo.Exists(req.Username, req.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if taken {
		RespondDomainError(c, domain.ConflictError{Msg: "username or email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	id, err := repo.CreateWithProfile(req.Username, req.Email, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if mailer != nil {
		mailer.Enqueue(notify.Mail{
			Subject:    "Welcome to AutoMart",
			Body:       fmt.Sprintf("Hi %s,\n\nYour AutoMart account is ready. You can now book services and order spare parts.", req.Username),
			Recipients: []string{req.Email},
		})
	}
	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", fmt.Sprintf("user %d created", id))

	c.JSON(http.StatusCreated, gin.H{"id": id, "username": req.Username, "email": req.Email})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a bearer token.
func Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		RespondDomainError(c, domain.ValidationError{Field: "username", Msg: "username and password are required"})
		return
	}

	repo := repositories.UserRepo{}
	user, hash, err := repo.GetByLogin(req.Username)
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		RespondDomainError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.NewAccessToken(user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	vehicles, err := repositories.VehicleRepo{}.ListByOwner(user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"user_id":      user.ID,
		"username":     user.Username,
		"is_staff":     user.IsStaff,
		"is_superuser": user.IsSuperuser,
		"is_mechanic":  user.Roles.IsMechanic,
		"is_billing":   user.Roles.IsBilling,
		"is_ecommerce": user.Roles.IsEcommerce,
		"has_vehicle":  len(vehicles) > 0,
	})
}

// UserDetails returns the authenticated user's account info.
func UserDetails(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"is_staff":     user.IsStaff,
		"is_superuser": user.IsSuperuser,
		"is_mechanic":  user.Roles.IsMechanic,
		"is_billing":   user.Roles.IsBilling,
		"is_ecommerce": user.Roles.IsEcommerce,
	})
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetRequest mails a short-lived reset token. The response
// does not reveal whether the address exists.
func PasswordResetRequest(c *gin.Context) {
	var req passwordResetRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "is required"})
		return
	}

	user, err := repositories.UserRepo{}.GetByEmail(req.Email)
	if err == nil {
		token, terr := auth.NewResetToken(user.ID)
		if terr == nil && mailer != nil {
			mailer.Enqueue(notify.Mail{
				Subject:    "AutoMart Password Reset",
				Body:       fmt.Sprintf("Hi %s,\n\nUse this token to reset your password within 30 minutes:\n\n%s", user.Username, token),
				Recipients: []string{user.Email},
			})
		}
	} else if !domain.IsNotFound(err) {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "if the address is registered, a reset email has been sent"})
}

type passwordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordResetConfirm sets a new password against a valid reset token.
func PasswordResetConfirm(c *gin.Context) {
	var req passwordResetConfirm
	if !bindJSON(c, &req) {
		return
	}
	if len(req.NewPassword) < 8 {
		RespondDomainError(c, domain.ValidationError{Field: "new_password", Msg: "must be at least 8 characters"})
		return
	}
	userID, err := auth.ParseResetToken(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired reset token"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.UserRepo{}).UpdatePassword(userID, string(hash)); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "password_reset", fmt.Sprintf("user %d password updated", userID))
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
