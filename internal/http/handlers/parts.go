package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"automart/internal/domain"
	"automart/internal/domain/models"
	"automart/internal/repositories"
)

// ListParts returns the spare-parts catalog, optionally filtered by
// brand, model and year query parameters. Filters are advisory; the
// storefront still shows everything when they match nothing.
func ListParts(c *gin.Context) {
	filter := models.PartFilter{
		Brand: strings.TrimSpace(c.Query("brand")),
		Model: strings.TrimSpace(c.Query("model")),
		Year:  strings.TrimSpace(c.Query("year")),
	}
	parts, err := repositories.PartRepo{}.List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

// GetPart returns one spare part.
func GetPart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	part, err := repositories.PartRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

type partRequest struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        string  `json:"year"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (r partRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if r.Price < 0 {
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if r.Stock < 0 {
		return domain.ValidationError{Field: "stock", Msg: "must not be negative"}
	}
	return nil
}

func (r partRequest) model(id int64) models.SparePart {
	return models.SparePart{
		ID:          id,
		Name:        strings.TrimSpace(r.Name),
		Brand:       strings.TrimSpace(r.Brand),
		Model:       strings.TrimSpace(r.Model),
		Year:        strings.TrimSpace(r.Year),
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

// CreatePart adds a spare part to the catalog (admin only).
func CreatePart(c *gin.Context) {
	var req partRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	id, err := repositories.PartRepo{}.Create(req.model(0))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdatePart edits a spare part (admin only).
func UpdatePart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req partRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.validate(); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.PartRepo{}).Update(req.model(id)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "spare part updated"})
}

// DeletePart removes a spare part (admin only).
func DeletePart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.PartRepo{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "spare part deleted"})
}

// SellPart records a single over-the-counter sale, decrementing stock
// without creating an order (staff only).
func SellPart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	part, err := repositories.PartRepo{}.SellOne(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sale recorded", "stock": part.Stock})
}
