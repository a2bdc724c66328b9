// Package document renders customer-facing and internal documents from
// order data: proposal PDFs, cost report PDFs and spreadsheet exports.
// Rendering is pure: everything comes in through the Renderer options and
// the passed order, so output is reproducible for the same inputs.
package document

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/primeorcamentos/backoffice-api/internal/config"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
)

// Renderer produces documents with the company branding from configuration.
type Renderer struct {
	opts Options
}

// Options carries the branding applied to every rendered document.
type Options struct {
	CompanyName    string
	CompanyTaxID   string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CurrencySymbol string
	FooterNote     string
}

// NewRenderer creates a Renderer from the documents configuration.
func NewRenderer(cfg *config.DocumentsConfig) *Renderer {
	opts := Options{
		CompanyName:    cfg.CompanyName,
		CompanyTaxID:   cfg.CompanyTaxID,
		CompanyAddress: cfg.CompanyAddress,
		CompanyPhone:   cfg.CompanyPhone,
		CompanyEmail:   cfg.CompanyEmail,
		CurrencySymbol: cfg.CurrencySymbol,
		FooterNote:     cfg.FooterNote,
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "R$"
	}
	return &Renderer{opts: opts}
}

// ProposalPDF renders the customer-facing document for an order: the
// line items and the totals build-up. Cost items never appear here.
func (r *Renderer) ProposalPDF(order *domain.OrderDTO) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	r.writeHeader(pdf, titleForType(order.Type), order.Number)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Customer: %s", order.CustomerName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Subject: %s", order.Title))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", order.CreatedAt))
	pdf.Ln(5)
	if order.ValidUntil != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Valid until: %s", *order.ValidUntil))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 6, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(15, 6, "Unit", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Unit Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(80, 6, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 6, item.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, r.money(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, r.money(item.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	r.writeTotalLine(pdf, "Subtotal", order.Subtotal)
	if order.MarkupValue != 0 {
		r.writeTotalLine(pdf, fmt.Sprintf("Markup (%.2f%%)", order.MarkupRate), order.MarkupValue)
	}
	if order.TaxValue != 0 {
		r.writeTotalLine(pdf, fmt.Sprintf("Taxes (%.2f%%)", order.TaxRate), order.TaxValue)
	}
	if order.ContractPrice > 0 {
		r.writeTotalLine(pdf, "Itemized total", order.PlannedCost)
	}
	pdf.SetFont("Arial", "B", 11)
	r.writeTotalLine(pdf, "Total", order.TotalAmount)

	r.writeFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render proposal pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// CostReportPDF renders the internal planned-vs-actual report for a work
// order. This document is for internal use and shows cost lines.
func (r *Renderer) CostReportPDF(report *domain.CostReportDTO) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	r.writeHeader(pdf, "Cost Report", report.Number)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "Estimated", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Actual", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Variance", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, item := range report.Items {
		pdf.CellFormat(70, 6, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, r.money(item.EstimatedTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, r.money(item.ActualTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, r.money(item.Variance), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	r.writeTotalLine(pdf, "Revenue", report.Revenue)
	r.writeTotalLine(pdf, "Estimated cost", report.EstimatedCost)
	r.writeTotalLine(pdf, "Actual cost", report.ActualCost)
	r.writeTotalLine(pdf, "Planned profit", report.PlannedProfit)
	pdf.SetFont("Arial", "B", 11)
	r.writeTotalLine(pdf, "Actual profit", report.ActualProfit)

	r.writeFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render cost report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) writeHeader(pdf *gofpdf.Fpdf, title, number string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, r.opts.CompanyName)
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	if r.opts.CompanyTaxID != "" {
		pdf.Cell(0, 5, fmt.Sprintf("CNPJ: %s", r.opts.CompanyTaxID))
		pdf.Ln(4)
	}
	if r.opts.CompanyAddress != "" {
		pdf.Cell(0, 5, r.opts.CompanyAddress)
		pdf.Ln(4)
	}
	contact := r.opts.CompanyPhone
	if r.opts.CompanyEmail != "" {
		if contact != "" {
			contact += " | "
		}
		contact += r.opts.CompanyEmail
	}
	if contact != "" {
		pdf.Cell(0, 5, contact)
		pdf.Ln(4)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s %s", title, number))
	pdf.Ln(10)
}

func (r *Renderer) writeFooter(pdf *gofpdf.Fpdf) {
	if r.opts.FooterNote == "" {
		return
	}
	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(0, 4, r.opts.FooterNote, "", "L", false)
}

func (r *Renderer) writeTotalLine(pdf *gofpdf.Fpdf, label string, value float64) {
	pdf.CellFormat(130, 6, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(50, 6, r.money(value), "", 0, "R", false, 0, "")
	pdf.Ln(-1)
}

func (r *Renderer) money(v float64) string {
	return fmt.Sprintf("%s %.2f", r.opts.CurrencySymbol, v)
}

func titleForType(t domain.OrderType) string {
	switch t {
	case domain.OrderTypeServiceOrder:
		return "Service Order"
	case domain.OrderTypeWorkOrder:
		return "Work Order"
	default:
		return "Proposal"
	}
}
