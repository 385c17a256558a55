package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"automart/internal/domain"
	"automart/internal/domain/models"
	"automart/internal/http/middleware"
	"automart/internal/repositories"
)

type vehicleRequest struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
}

func (r vehicleRequest) validate() error {
	if strings.TrimSpace(r.Make) == "" {
		return domain.ValidationError{Field: "make", Msg: "is required"}
	}
	if strings.TrimSpace(r.Model) == "" {
		return domain.ValidationError{Field: "model", Msg: "is required"}
	}
	if r.Year < 1900 || r.Year > time.Now().Year()+1 {
		return domain.ValidationError{Field: "year", Msg: "is out of range"}
	}
	return nil
}

// ListVehicles returns the caller's garage.
func ListVehicles(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	vehicles, err := repositories.VehicleRepo{}.ListByOwner(user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// CreateVehicle adds a vehicle to the caller's garage.
func CreateVehicle(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	var req vehicleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	id, err := repositories.VehicleRepo{}.Create(models.Vehicle{
		OwnerID:      user.ID,
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		LicensePlate: strings.TrimSpace(req.LicensePlate),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateVehicle edits a vehicle the caller owns.
func UpdateVehicle(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req vehicleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	err := repositories.VehicleRepo{}.Update(user.ID, models.Vehicle{
		ID:           id,
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		LicensePlate: strings.TrimSpace(req.LicensePlate),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle updated"})
}

// DeleteVehicle removes a vehicle the caller owns.
func DeleteVehicle(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.VehicleRepo{}).Delete(user.ID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
