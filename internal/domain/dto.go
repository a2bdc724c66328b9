package domain

import (
	"time"

	"github.com/google/uuid"
)

// CustomerDTO is the API representation of a customer
type CustomerDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	TaxID         string    `json:"taxId,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	PostalCode    string    `json:"postalCode,omitempty"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	IsActive      bool      `json:"isActive"`
	OpenOrders    int       `json:"openOrders"`
	CreatedAt     string    `json:"createdAt"` // ISO 8601
	UpdatedAt     string    `json:"updatedAt"` // ISO 8601
}

type CreateCustomerRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	TaxID         string `json:"taxId,omitempty" validate:"omitempty,max=20"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address       string `json:"address,omitempty" validate:"omitempty,max=500"`
	City          string `json:"city,omitempty" validate:"omitempty,max=100"`
	State         string `json:"state,omitempty" validate:"omitempty,len=2"`
	PostalCode    string `json:"postalCode,omitempty" validate:"omitempty,max=20"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"omitempty,max=200"`
	Notes         string `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	TaxID         string `json:"taxId,omitempty" validate:"omitempty,max=20"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address       string `json:"address,omitempty" validate:"omitempty,max=500"`
	City          string `json:"city,omitempty" validate:"omitempty,max=100"`
	State         string `json:"state,omitempty" validate:"omitempty,len=2"`
	PostalCode    string `json:"postalCode,omitempty" validate:"omitempty,max=20"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"omitempty,max=200"`
	Notes         string `json:"notes,omitempty"`
	IsActive      *bool  `json:"isActive,omitempty"`
}

// CatalogItemDTO is the API representation of a catalog item
type CatalogItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Kind        ItemKind  `json:"kind"`
	Unit        string    `json:"unit"`
	UnitPrice   float64   `json:"unitPrice"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type CreateCatalogItemRequest struct {
	Description string   `json:"description" validate:"required,max=500"`
	Kind        ItemKind `json:"kind" validate:"required,oneof=service material"`
	Unit        string   `json:"unit,omitempty" validate:"omitempty,max=20"`
	UnitPrice   float64  `json:"unitPrice" validate:"gte=0"`
}

type UpdateCatalogItemRequest struct {
	Description string   `json:"description" validate:"required,max=500"`
	Kind        ItemKind `json:"kind" validate:"required,oneof=service material"`
	Unit        string   `json:"unit,omitempty" validate:"omitempty,max=20"`
	UnitPrice   float64  `json:"unitPrice" validate:"gte=0"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// OrderItemDTO is the API representation of a customer-facing order line
type OrderItemDTO struct {
	ID           uuid.UUID `json:"id"`
	Description  string    `json:"description"`
	Kind         ItemKind  `json:"kind"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit,omitempty"`
	UnitPrice    float64   `json:"unitPrice"`
	Total        float64   `json:"total"`
	DisplayOrder int       `json:"displayOrder"`
}

// CostItemDTO is the API representation of a work-order cost line,
// including the derived totals and variance
type CostItemDTO struct {
	ID              uuid.UUID `json:"id"`
	Description     string    `json:"description"`
	Kind            ItemKind  `json:"kind"`
	Quantity        float64   `json:"quantity"`
	Unit            string    `json:"unit,omitempty"`
	UnitPrice       float64   `json:"unitPrice"`
	ActualQuantity  float64   `json:"actualQuantity"`
	ActualUnitPrice float64   `json:"actualUnitPrice"`
	ActualValue     float64   `json:"actualValue,omitempty"`
	EstimatedTotal  float64   `json:"estimatedTotal"`
	ActualTotal     float64   `json:"actualTotal"`
	Variance        float64   `json:"variance"`
	DisplayOrder    int       `json:"displayOrder"`
}

// OrderDTO is the API representation of an order with its derived figures
type OrderDTO struct {
	ID            uuid.UUID      `json:"id"`
	Number        string         `json:"number"`
	Type          OrderType      `json:"type"`
	CustomerID    uuid.UUID      `json:"customerId"`
	CustomerName  string         `json:"customerName,omitempty"`
	Status        OrderStatus    `json:"status"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	MarkupRate    float64        `json:"markupRate"`
	TaxRate       float64        `json:"taxRate"`
	ContractPrice float64        `json:"contractPrice,omitempty"`
	Subtotal      float64        `json:"subtotal"`
	MarkupValue   float64        `json:"markupValue"`
	TaxValue      float64        `json:"taxValue"`
	PlannedCost   float64        `json:"plannedCost"`
	TotalAmount   float64        `json:"totalAmount"`
	ActualCost    float64        `json:"actualCost,omitempty"`
	PlannedProfit float64        `json:"plannedProfit,omitempty"`
	ActualProfit  float64        `json:"actualProfit,omitempty"`
	ValidUntil    *string        `json:"validUntil,omitempty"` // ISO 8601
	SourceQuoteID *uuid.UUID     `json:"sourceQuoteId,omitempty"`
	Items         []OrderItemDTO `json:"items"`
	CostItems     []CostItemDTO  `json:"costItems,omitempty"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
}

// OrderSummaryDTO is the list representation of an order (no item lists)
type OrderSummaryDTO struct {
	ID           uuid.UUID   `json:"id"`
	Number       string      `json:"number"`
	Type         OrderType   `json:"type"`
	CustomerID   uuid.UUID   `json:"customerId"`
	CustomerName string      `json:"customerName,omitempty"`
	Status       OrderStatus `json:"status"`
	Title        string      `json:"title"`
	TotalAmount  float64     `json:"totalAmount"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

type CreateOrderItemRequest struct {
	Description  string   `json:"description" validate:"required,max=500"`
	Kind         ItemKind `json:"kind,omitempty" validate:"omitempty,oneof=service material"`
	Quantity     float64  `json:"quantity"`
	Unit         string   `json:"unit,omitempty" validate:"omitempty,max=20"`
	UnitPrice    float64  `json:"unitPrice"`
	DisplayOrder int      `json:"displayOrder,omitempty"`
}

type CreateOrderRequest struct {
	Type          OrderType                `json:"type" validate:"required,oneof=quote service_order work_order"`
	CustomerID    uuid.UUID                `json:"customerId" validate:"required"`
	Title         string                   `json:"title" validate:"required,max=200"`
	Description   string                   `json:"description,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	MarkupRate    float64                  `json:"markupRate,omitempty" validate:"omitempty,gte=0"`
	TaxRate       float64                  `json:"taxRate,omitempty" validate:"omitempty,gte=0"`
	ContractPrice float64                  `json:"contractPrice,omitempty" validate:"omitempty,gte=0"`
	ValidUntil    *time.Time               `json:"validUntil,omitempty"`
	Items         []CreateOrderItemRequest `json:"items,omitempty" validate:"dive"`
}

type UpdateOrderRequest struct {
	Title         string                   `json:"title" validate:"required,max=200"`
	Description   string                   `json:"description,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	MarkupRate    float64                  `json:"markupRate,omitempty" validate:"omitempty,gte=0"`
	TaxRate       float64                  `json:"taxRate,omitempty" validate:"omitempty,gte=0"`
	ContractPrice float64                  `json:"contractPrice,omitempty" validate:"omitempty,gte=0"`
	ValidUntil    *time.Time               `json:"validUntil,omitempty"`
	Items         []CreateOrderItemRequest `json:"items,omitempty" validate:"dive"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}

type CreateCostItemRequest struct {
	Description  string   `json:"description" validate:"required,max=500"`
	Kind         ItemKind `json:"kind,omitempty" validate:"omitempty,oneof=service material"`
	Quantity     float64  `json:"quantity"`
	Unit         string   `json:"unit,omitempty" validate:"omitempty,max=20"`
	UnitPrice    float64  `json:"unitPrice"`
	DisplayOrder int      `json:"displayOrder,omitempty"`
}

type UpdateCostItemRequest struct {
	Description string   `json:"description" validate:"required,max=500"`
	Kind        ItemKind `json:"kind,omitempty" validate:"omitempty,oneof=service material"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit,omitempty" validate:"omitempty,max=20"`
	UnitPrice   float64  `json:"unitPrice"`
}

// RecordActualRequest records the incurred cost of a cost line.
// Either the quantity/price pair or the direct value can be supplied;
// a nonzero value is authoritative.
type RecordActualRequest struct {
	ActualQuantity  float64 `json:"actualQuantity,omitempty"`
	ActualUnitPrice float64 `json:"actualUnitPrice,omitempty"`
	ActualValue     float64 `json:"actualValue,omitempty"`
}

// CostReportDTO aggregates the planned-vs-actual position of a work order
type CostReportDTO struct {
	OrderID       uuid.UUID     `json:"orderId"`
	Number        string        `json:"number"`
	Revenue       float64       `json:"revenue"`
	EstimatedCost float64       `json:"estimatedCost"`
	ActualCost    float64       `json:"actualCost"`
	PlannedProfit float64       `json:"plannedProfit"`
	ActualProfit  float64       `json:"actualProfit"`
	Items         []CostItemDTO `json:"items"`
}

// BdiConfigDTO is the API representation of a BDI configuration
type BdiConfigDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Administration float64   `json:"administration"`
	Insurance      float64   `json:"insurance"`
	Guarantee      float64   `json:"guarantee"`
	Risk           float64   `json:"risk"`
	Financial      float64   `json:"financial"`
	Profit         float64   `json:"profit"`
	ISS            float64   `json:"iss"`
	PIS            float64   `json:"pis"`
	COFINS         float64   `json:"cofins"`
	CPRB           float64   `json:"cprb"`
	TotalRate      float64   `json:"totalRate"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

// SaveBdiConfigRequest carries the nine BDI inputs. The total is always
// recomputed server-side and never accepted from the client.
type SaveBdiConfigRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Administration float64 `json:"administration" validate:"gte=0"`
	Insurance      float64 `json:"insurance" validate:"gte=0"`
	Guarantee      float64 `json:"guarantee" validate:"gte=0"`
	Risk           float64 `json:"risk" validate:"gte=0"`
	Financial      float64 `json:"financial" validate:"gte=0"`
	Profit         float64 `json:"profit" validate:"gte=0"`
	ISS            float64 `json:"iss" validate:"gte=0"`
	PIS            float64 `json:"pis" validate:"gte=0"`
	COFINS         float64 `json:"cofins" validate:"gte=0"`
	CPRB           float64 `json:"cprb" validate:"gte=0"`
}

// BdiPreviewRequest asks for a stateless BDI computation
type BdiPreviewRequest struct {
	Administration float64 `json:"administration" validate:"gte=0"`
	Insurance      float64 `json:"insurance" validate:"gte=0"`
	Guarantee      float64 `json:"guarantee" validate:"gte=0"`
	Risk           float64 `json:"risk" validate:"gte=0"`
	Financial      float64 `json:"financial" validate:"gte=0"`
	Profit         float64 `json:"profit" validate:"gte=0"`
	ISS            float64 `json:"iss" validate:"gte=0"`
	PIS            float64 `json:"pis" validate:"gte=0"`
	COFINS         float64 `json:"cofins" validate:"gte=0"`
	CPRB           float64 `json:"cprb" validate:"gte=0"`
}

// BdiPreviewResponse carries the computed percentage
type BdiPreviewResponse struct {
	TotalRate float64 `json:"totalRate"`
}

// ListOrdersFilter narrows order listings
type ListOrdersFilter struct {
	Type       OrderType
	Status     OrderStatus
	CustomerID *uuid.UUID
	Search     string
	Limit      int
	Offset     int
}
