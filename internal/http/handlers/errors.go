package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automart/internal/domain"
	"automart/internal/http/middleware"
	"automart/internal/utils"
)

// RespondDomainError maps a domain error onto an HTTP response.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err),
		domain.IsInvalidState(err),
		domain.IsInsufficientStock(err),
		domain.IsMissingPaymentRecord(err),
		domain.IsRefundFailed(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsPermissionDenied(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case domain.IsGateway(err):
		utils.LogEvent(middleware.GetRequestID(c), "http", "gateway_error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
