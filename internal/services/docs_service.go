package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"automart/internal/domain"
	"automart/internal/domain/models"
	"automart/internal/repositories"
	"automart/internal/utils"
)

// DocsService renders PDF invoices for service-history entries.
type DocsService struct {
	HistoryRepo repositories.HistoryRepo
	VehicleRepo repositories.VehicleRepo
	UserRepo    repositories.UserRepo
	RequestID   string
}

type invoiceData struct {
	HistoryID        int64
	CustomerName     string
	CustomerEmail    string
	VehicleLabel     string
	ServicesRendered string
	TotalPaid        float64
	CompletionDate   time.Time
	OdometerReading  int
}

// GenerateInvoice builds the PDF invoice for one logbook entry.
// Customers can only print their own invoices.
func (s DocsService) GenerateInvoice(requester models.User, historyID int64) ([]byte, string, error) {
	entry, err := s.HistoryRepo.GetByID(historyID)
	if err != nil {
		return nil, "", err
	}
	if entry.UserID != requester.ID && !requester.IsPrivileged() {
		return nil, "", domain.PermissionDeniedError{Msg: "not your service record"}
	}

	data := invoiceData{
		HistoryID:        entry.ID,
		ServicesRendered: entry.ServicesRendered,
		TotalPaid:        entry.TotalPaid,
		CompletionDate:   entry.CompletionDate,
		OdometerReading:  entry.OdometerReading,
	}
	if owner, err := s.UserRepo.GetByID(entry.UserID); err == nil {
		data.CustomerName = owner.Username
		data.CustomerEmail = owner.Email
	}
	if vehicle, err := s.VehicleRepo.GetByID(entry.VehicleID); err == nil {
		data.VehicleLabel = vehicle.Label()
	}

	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("history_id=%d", historyID))
	return buildInvoicePDF(data)
}

func buildInvoicePDF(d invoiceData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Service Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "AUTOMART SERVICE INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-SRV-%d", d.HistoryID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name    : "+orDash(d.CustomerName))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Email   : "+orDash(d.CustomerEmail))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Vehicle : "+orDash(d.VehicleLabel))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Work performed:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, orDash(d.ServicesRendered), "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Completed on : "+utils.FormatDate(d.CompletionDate))
	pdf.Ln(6)
	if d.OdometerReading > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Odometer     : %d km", d.OdometerReading))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total paid: INR "+utils.FormatMoney(d.TotalPaid))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Thank you for servicing your vehicle with AutoMart.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_SRV_%d.pdf", d.HistoryID)
	return buf.Bytes(), filename, nil
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
