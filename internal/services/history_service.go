package services

import (
	"fmt"
	"strings"

	"automart/internal/domain/models"
	"automart/internal/repositories"
	"automart/internal/utils"
)

// HistoryService maintains the workshop logbook. OnBookingCompleted is
// registered as a booking completion hook; the rest serves the history
// screens.
type HistoryService struct {
	HistoryRepo repositories.HistoryRepo
	ServiceRepo repositories.ServiceRepo
	RequestID   string
}

// OnBookingCompleted appends at most one ledger row per completed
// booking event. Suppression key: (user, vehicle, completion date,
// amount). The hook is best-effort; a failed insert is logged but
// never blocks the booking transition that triggered it.
func (s HistoryService) OnBookingCompleted(b models.Booking) {
	actualCost := b.EffectiveCharge()

	exists, err := s.HistoryRepo.ExistsToday(b.UserID, b.VehicleID, actualCost)
	if err != nil {
		utils.LogEvent(s.RequestID, "history", "on_completed", "duplicate check failed: "+err.Error())
		return
	}
	if exists {
		return
	}

	serviceNames := "General Service"
	if names, err := s.ServiceRepo.NamesForBooking(b.ID); err == nil && len(names) > 0 {
		serviceNames = strings.Join(names, ", ")
	}

	_, err = s.HistoryRepo.Insert(models.ServiceHistory{
		UserID:           b.UserID,
		VehicleID:        b.VehicleID,
		ServicesRendered: serviceNames,
		TotalPaid:        actualCost,
		OdometerReading:  0,
		AdminNotes:       fmt.Sprintf("Auto-generated from Booking #%d. Billing finalized.", b.ID),
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "history", "on_completed", "insert failed: "+err.Error())
		return
	}
	utils.LogEvent(s.RequestID, "history", "on_completed", fmt.Sprintf("booking_id=%d logged", b.ID))
}

// ListFor returns all entries for privileged users (staff, mechanic,
// billing) and only personal entries for regular customers.
func (s HistoryService) ListFor(user models.User) ([]models.ServiceHistory, error) {
	if user.IsPrivileged() {
		return s.HistoryRepo.ListAll()
	}
	return s.HistoryRepo.ListByUser(user.ID)
}
