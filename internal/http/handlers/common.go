package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"automart/internal/config"
	"automart/internal/domain"
	"automart/internal/http/middleware"
	"automart/internal/notify"
	"automart/internal/payments"
	"automart/internal/repositories"
	"automart/internal/services"
)

var (
	env     config.Env
	gateway payments.Gateway
	mailer  notify.Enqueuer

	// completionHooks are attached to every booking service instance so
	// admin-driven and payment-driven completions both feed the ledger.
	completionHooks []services.CompletionHook
)

// Configure installs the shared handler dependencies. Call once at
// startup before the router is built.
func Configure(e config.Env, gw payments.Gateway, m notify.Enqueuer, hooks ...services.CompletionHook) {
	env = e
	gateway = gw
	mailer = m
	completionHooks = hooks
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		BookingRepo: repositories.BookingRepo{},
		VehicleRepo: repositories.VehicleRepo{},
		ServiceRepo: repositories.ServiceRepo{},
		UserRepo:    repositories.UserRepo{},
		Gateway:     gateway,
		Mail:        mailer,
		RequestID:   middleware.GetRequestID(c),
		OnCompleted: completionHooks,
	}
}

func orderService(c *gin.Context) services.OrderService {
	return services.OrderService{
		OrderRepo:   repositories.PartOrderRepo{},
		PartRepo:    repositories.PartRepo{},
		VehicleRepo: repositories.VehicleRepo{},
		UserRepo:    repositories.UserRepo{},
		Gateway:     gateway,
		Mail:        mailer,
		RequestID:   middleware.GetRequestID(c),
	}
}

func historyService(c *gin.Context) services.HistoryService {
	return services.HistoryService{
		HistoryRepo: repositories.HistoryRepo{},
		ServiceRepo: repositories.ServiceRepo{},
		RequestID:   middleware.GetRequestID(c),
	}
}

// bindJSON decodes the request body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "must be a positive integer"})
		return 0, false
	}
	return id, true
}
