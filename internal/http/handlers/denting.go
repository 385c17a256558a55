package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"automart/internal/domain"
	"automart/internal/domain/models"
	"automart/internal/http/middleware"
	"automart/internal/repositories"
)

type dentingRequest struct {
	Description  string `json:"description"`
	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
}

// CreateDentingRequest files a denting/painting estimate request.
func CreateDentingRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	var req dentingRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "description", Msg: "is required"})
		return
	}
	id, err := repositories.DentingRepo{}.Create(models.DentingRequest{
		UserID:       user.ID,
		Description:  strings.TrimSpace(req.Description),
		VehicleMake:  strings.TrimSpace(req.VehicleMake),
		VehicleModel: strings.TrimSpace(req.VehicleModel),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "status": models.DentingPendingReview})
}

// ListDentingRequests returns the caller's requests, or all of them
// for staff.
func ListDentingRequests(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	repo := repositories.DentingRepo{}

	var err error
	var items any
	if user.IsStaffOrSpecialist() {
		items, err = repo.ListAll()
	} else {
		items, err = repo.ListByUser(user.ID)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type dentingReviewRequest struct {
	Status         string   `json:"status"`
	EstimatedPrice *float64 `json:"estimated_price"`
}

// ReviewDentingRequest lets staff set the review outcome and estimate.
func ReviewDentingRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dentingReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "is required"})
		return
	}
	if req.EstimatedPrice != nil && *req.EstimatedPrice < 0 {
		RespondDomainError(c, domain.ValidationError{Field: "estimated_price", Msg: "must not be negative"})
		return
	}
	if err := (repositories.DentingRepo{}).Review(id, req.Status, req.EstimatedPrice); err != nil {
		RespondDomainError(c, err)
		return
	}
	item, err := repositories.DentingRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
