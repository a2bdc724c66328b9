package document

import (
	"bytes"
	"fmt"

	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// OrderBookXLSX renders a spreadsheet listing of orders, one row each,
// for reporting outside the app.
func (r *Renderer) OrderBookXLSX(orders []domain.OrderSummaryDTO) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Number", "Type", "Status", "Customer", "Title", "Total", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, order := range orders {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), order.Number)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(order.Type))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(order.Status))
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), order.CustomerName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), order.Title)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), order.TotalAmount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), order.CreatedAt)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render order book xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// CostReportXLSX renders the planned-vs-actual report as a spreadsheet,
// summary block first, then per-line variances.
func (r *Renderer) CostReportXLSX(report *domain.CostReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	itemsSheet := "items"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(itemsSheet)

	_ = f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Cost Report %s", report.Number))
	_ = f.SetCellValue(summarySheet, "A3", "Revenue")
	_ = f.SetCellValue(summarySheet, "B3", report.Revenue)
	_ = f.SetCellValue(summarySheet, "A4", "Estimated cost")
	_ = f.SetCellValue(summarySheet, "B4", report.EstimatedCost)
	_ = f.SetCellValue(summarySheet, "A5", "Actual cost")
	_ = f.SetCellValue(summarySheet, "B5", report.ActualCost)
	_ = f.SetCellValue(summarySheet, "A6", "Planned profit")
	_ = f.SetCellValue(summarySheet, "B6", report.PlannedProfit)
	_ = f.SetCellValue(summarySheet, "A7", "Actual profit")
	_ = f.SetCellValue(summarySheet, "B7", report.ActualProfit)

	_ = f.SetCellValue(itemsSheet, "A1", "Description")
	_ = f.SetCellValue(itemsSheet, "B1", "Estimated")
	_ = f.SetCellValue(itemsSheet, "C1", "Actual")
	_ = f.SetCellValue(itemsSheet, "D1", "Variance")
	for i, item := range report.Items {
		row := i + 2
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), item.Description)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", row), item.EstimatedTotal)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", row), item.ActualTotal)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", row), item.Variance)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render cost report xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
