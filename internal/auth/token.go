// Package auth issues and validates the JWT tokens used by the API:
// bearer access tokens and short-lived password-reset tokens.
package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

var secret = []byte("super-secret-key-change-me")

const (
	accessTokenTTL = 24 * time.Hour
	resetTokenTTL  = 30 * time.Minute

	purposeAccess = "access"
	purposeReset  = "password_reset"
)

// SetSecret installs the signing key from configuration. Call once at
// startup before any token is issued.
func SetSecret(s string) {
	if strings.TrimSpace(s) != "" {
		secret = []byte(s)
	}
}

// NewAccessToken signs a bearer token for the user id.
func NewAccessToken(userID int64) (string, error) {
	return sign(userID, purposeAccess, accessTokenTTL)
}

// NewResetToken signs a short-lived password-reset token.
func NewResetToken(userID int64) (string, error) {
	return sign(userID, purposeReset, resetTokenTTL)
}

// ParseAccessToken returns the user id carried by a bearer token.
func ParseAccessToken(token string) (int64, error) {
	return parse(token, purposeAccess)
}

// ParseResetToken returns the user id carried by a reset token.
func ParseResetToken(token string) (int64, error) {
	return parse(token, purposeReset)
}

// ExtractBearer strips the "Bearer " scheme from an Authorization
// header value.
func ExtractBearer(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

func sign(userID int64, purpose string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     strconv.FormatInt(userID, 10),
		"purpose": purpose,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parse(tokenString, purpose string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return 0, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}
