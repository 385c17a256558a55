package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"automart/internal/http/middleware"
	"automart/internal/repositories"
	"automart/internal/services"
)

// HistoryInvoicePDF streams the PDF invoice for a logbook entry.
func HistoryInvoicePDF(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{
		HistoryRepo: repositories.HistoryRepo{},
		VehicleRepo: repositories.VehicleRepo{},
		UserRepo:    repositories.UserRepo{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateInvoice(user, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
