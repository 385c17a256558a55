package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"automart/internal/domain"
	"automart/internal/domain/models"
	"automart/internal/repositories"
)

type serviceRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"`
}

func (r serviceRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if r.BasePrice < 0 {
		return domain.ValidationError{Field: "base_price", Msg: "must not be negative"}
	}
	return nil
}

// ListServices returns the service catalog.
func ListServices(c *gin.Context) {
	items, err := repositories.ServiceRepo{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetService returns one catalog entry.
func GetService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := repositories.ServiceRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateService adds a catalog entry (admin only).
func CreateService(c *gin.Context) {
	var req serviceRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	id, err := repositories.ServiceRepo{}.Create(models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateService edits a catalog entry (admin only).
func UpdateService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req serviceRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	err := repositories.ServiceRepo{}.Update(models.Service{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service updated"})
}

// DeleteService removes a catalog entry (admin only).
func DeleteService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.ServiceRepo{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
