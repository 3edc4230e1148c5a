package services

import (
	"bytes"
	"fmt"

	"pg-backend/internal/models"
	"pg-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders rent receipts as PDF
type ReceiptService struct{}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

// GenerateReceipt renders a receipt for a verified rent payment
func (s *ReceiptService) GenerateReceipt(p *models.Payment) ([]byte, error) {
	if p.Status != models.PaymentVerified {
		return nil, invalid("receipts are only available for verified payments")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "PG Hostel - Rent Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Payment info box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, fmt.Sprintf("Receipt #%d", p.ID), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Tenant: %s", p.TenantName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Room: %s", p.RoomNumber), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Month: %s", p.MonthFor), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", timeutil.ToIST(p.Date).Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Amount table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(63, 7, "Amount Paid", "1", 0, "C", true, 0, "")
	pdf.CellFormat(63, 7, "Monthly Rent", "1", 0, "C", true, 0, "")
	pdf.CellFormat(64, 7, "Balance After Payment", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(63, 7, fmt.Sprintf("%.2f", p.Amount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 7, fmt.Sprintf("%.2f", p.TotalRent), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 7, fmt.Sprintf("%.2f", p.Balance), "1", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(190, 6, "This is a computer generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
