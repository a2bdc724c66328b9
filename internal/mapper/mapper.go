package mapper

import (
	"fmt"

	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/finance"
)

// ToCustomerDTO converts Customer to CustomerDTO
func ToCustomerDTO(customer *domain.Customer, openOrders int) domain.CustomerDTO {
	return domain.CustomerDTO{
		ID:            customer.ID,
		Name:          customer.Name,
		TaxID:         customer.TaxID,
		Email:         customer.Email,
		Phone:         customer.Phone,
		Address:       customer.Address,
		City:          customer.City,
		State:         customer.State,
		PostalCode:    customer.PostalCode,
		ContactPerson: customer.ContactPerson,
		Notes:         customer.Notes,
		IsActive:      customer.IsActive,
		OpenOrders:    openOrders,
		CreatedAt:     customer.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     customer.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToCatalogItemDTO converts CatalogItem to CatalogItemDTO
func ToCatalogItemDTO(item *domain.CatalogItem) domain.CatalogItemDTO {
	return domain.CatalogItemDTO{
		ID:          item.ID,
		Description: item.Description,
		Kind:        item.Kind,
		Unit:        item.Unit,
		UnitPrice:   item.UnitPrice,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToOrderItemDTO converts OrderItem to OrderItemDTO
func ToOrderItemDTO(item *domain.OrderItem) domain.OrderItemDTO {
	return domain.OrderItemDTO{
		ID:           item.ID,
		Description:  item.Description,
		Kind:         item.Kind,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		UnitPrice:    item.UnitPrice,
		Total:        item.Total,
		DisplayOrder: item.DisplayOrder,
	}
}

// ToCostItemDTO converts OrderCostItem to CostItemDTO, deriving the
// estimated/actual totals and the variance under the override rule
func ToCostItemDTO(item *domain.OrderCostItem) domain.CostItemDTO {
	fc := ToFinanceCostItem(item)
	est := fc.EstimatedTotal()
	act := fc.ActualTotal()

	return domain.CostItemDTO{
		ID:              item.ID,
		Description:     item.Description,
		Kind:            item.Kind,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		UnitPrice:       item.UnitPrice,
		ActualQuantity:  item.ActualQuantity,
		ActualUnitPrice: item.ActualUnitPrice,
		ActualValue:     item.ActualValue,
		EstimatedTotal:  finance.Round2(est),
		ActualTotal:     finance.Round2(act),
		Variance:        finance.Round2(est - act),
		DisplayOrder:    item.DisplayOrder,
	}
}

// ToOrderDTO converts Order to OrderDTO
func ToOrderDTO(order *domain.Order) domain.OrderDTO {
	items := make([]domain.OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = ToOrderItemDTO(&item)
	}

	dto := domain.OrderDTO{
		ID:            order.ID,
		Number:        order.Number,
		Type:          order.Type,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		Status:        order.Status,
		Title:         order.Title,
		Description:   order.Description,
		Notes:         order.Notes,
		MarkupRate:    order.MarkupRate,
		TaxRate:       order.TaxRate,
		ContractPrice: order.ContractPrice,
		Subtotal:      order.Subtotal,
		MarkupValue:   order.MarkupValue,
		TaxValue:      order.TaxValue,
		PlannedCost:   order.PlannedCost,
		TotalAmount:   order.TotalAmount,
		ActualCost:    order.ActualCost,
		PlannedProfit: order.PlannedProfit,
		ActualProfit:  order.ActualProfit,
		SourceQuoteID: order.SourceQuoteID,
		Items:         items,
		CreatedAt:     order.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     order.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if order.ValidUntil != nil {
		formatted := order.ValidUntil.Format("2006-01-02T15:04:05Z")
		dto.ValidUntil = &formatted
	}

	if order.IsWorkOrder() {
		dto.CostItems = make([]domain.CostItemDTO, len(order.CostItems))
		for i, item := range order.CostItems {
			dto.CostItems[i] = ToCostItemDTO(&item)
		}
	}

	return dto
}

// ToOrderSummaryDTO converts Order to OrderSummaryDTO
func ToOrderSummaryDTO(order *domain.Order) domain.OrderSummaryDTO {
	return domain.OrderSummaryDTO{
		ID:           order.ID,
		Number:       order.Number,
		Type:         order.Type,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		Title:        order.Title,
		TotalAmount:  order.TotalAmount,
		CreatedAt:    order.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    order.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToBdiConfigDTO converts BdiConfig to BdiConfigDTO
func ToBdiConfigDTO(cfg *domain.BdiConfig) domain.BdiConfigDTO {
	return domain.BdiConfigDTO{
		ID:             cfg.ID,
		Name:           cfg.Name,
		Administration: cfg.Administration,
		Insurance:      cfg.Insurance,
		Guarantee:      cfg.Guarantee,
		Risk:           cfg.Risk,
		Financial:      cfg.Financial,
		Profit:         cfg.Profit,
		ISS:            cfg.ISS,
		PIS:            cfg.PIS,
		COFINS:         cfg.COFINS,
		CPRB:           cfg.CPRB,
		TotalRate:      cfg.TotalRate,
		CreatedAt:      cfg.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:      cfg.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToFinanceLineItem converts an OrderItem to the financial engine's input
func ToFinanceLineItem(item *domain.OrderItem) finance.LineItem {
	return finance.LineItem{
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}

// ToFinanceLineItems converts a full order item list
func ToFinanceLineItems(items []domain.OrderItem) []finance.LineItem {
	out := make([]finance.LineItem, len(items))
	for i, item := range items {
		out[i] = ToFinanceLineItem(&item)
	}
	return out
}

// ToFinanceCostItem converts an OrderCostItem to the financial engine's input
func ToFinanceCostItem(item *domain.OrderCostItem) finance.CostItem {
	return finance.CostItem{
		Description:     item.Description,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		ActualQuantity:  item.ActualQuantity,
		ActualUnitPrice: item.ActualUnitPrice,
		ActualValue:     item.ActualValue,
	}
}

// ToFinanceCostItems converts a full cost item list
func ToFinanceCostItems(items []domain.OrderCostItem) []finance.CostItem {
	out := make([]finance.CostItem, len(items))
	for i, item := range items {
		out[i] = ToFinanceCostItem(&item)
	}
	return out
}

// ToCostReportDTO converts the financial engine's reconciliation output,
// pairing each variance line back with its source cost item
func ToCostReportDTO(order *domain.Order, report finance.CostReport) domain.CostReportDTO {
	items := make([]domain.CostItemDTO, len(order.CostItems))
	for i, item := range order.CostItems {
		items[i] = ToCostItemDTO(&item)
	}

	return domain.CostReportDTO{
		OrderID:       order.ID,
		Number:        order.Number,
		Revenue:       finance.Round2(report.Revenue),
		EstimatedCost: finance.Round2(report.EstimatedCost),
		ActualCost:    finance.Round2(report.ActualCost),
		PlannedProfit: finance.Round2(report.PlannedProfit),
		ActualProfit:  finance.Round2(report.ActualProfit),
		Items:         items,
	}
}

// ToBdiRates converts the stored configuration to the formula's input
func ToBdiRates(cfg *domain.BdiConfig) finance.BdiRates {
	return finance.BdiRates{
		Administration: cfg.Administration,
		Insurance:      cfg.Insurance,
		Guarantee:      cfg.Guarantee,
		Risk:           cfg.Risk,
		Financial:      cfg.Financial,
		Profit:         cfg.Profit,
		ISS:            cfg.ISS,
		PIS:            cfg.PIS,
		COFINS:         cfg.COFINS,
		CPRB:           cfg.CPRB,
	}
}

// FormatError creates a formatted error message
func FormatError(entity, operation string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", operation, entity, err)
}
