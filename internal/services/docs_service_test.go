package services

import (
	"bytes"
	"testing"
	"time"
)

func TestBuildInvoicePDF(t *testing.T) {
	pdf, filename, err := buildInvoicePDF(invoiceData{
		HistoryID:        7,
		CustomerName:     "Tester",
		CustomerEmail:    "tester@example.com",
		VehicleLabel:     "2020 Maruti Swift",
		ServicesRendered: "Oil Change, Brake Check",
		TotalPaid:        1499.50,
		CompletionDate:   time.Now(),
		OdometerReading:  42000,
	})
	if err != nil {
		t.Fatalf("buildInvoicePDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("buildInvoicePDF returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
	if filename != "INVOICE_SRV_7.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}
