package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automart/internal/domain"
	"automart/internal/http/middleware"
	"automart/internal/repositories"
)

// ListHistory returns the service logbook: the caller's own entries,
// or every entry for staff and specialists.
func ListHistory(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	entries, err := historyService(c).ListFor(user)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type historyUpdateRequest struct {
	OdometerReading *int    `json:"odometer_reading"`
	AdminNotes      *string `json:"admin_notes"`
}

// UpdateHistory lets staff amend the odometer reading and notes on a
// logbook entry. The financial fields stay immutable.
func UpdateHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req historyUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.OdometerReading == nil && req.AdminNotes == nil {
		RespondDomainError(c, domain.ValidationError{Msg: "nothing to update"})
		return
	}
	if req.OdometerReading != nil && *req.OdometerReading < 0 {
		RespondDomainError(c, domain.ValidationError{Field: "odometer_reading", Msg: "must not be negative"})
		return
	}
	if err := (repositories.HistoryRepo{}).Update(id, req.OdometerReading, req.AdminNotes); err != nil {
		RespondDomainError(c, err)
		return
	}
	entry, err := repositories.HistoryRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
