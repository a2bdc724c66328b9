package domain

import (
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Customer represents a client of the business
type Customer struct {
	BaseModel
	Name          string  `gorm:"type:varchar(200);not null;index"`
	TaxID         string  `gorm:"type:varchar(20);unique;index;column:tax_id"` // CNPJ or CPF
	Email         string  `gorm:"type:varchar(255)"`
	Phone         string  `gorm:"type:varchar(50)"`
	Address       string  `gorm:"type:varchar(500)"`
	City          string  `gorm:"type:varchar(100)"`
	State         string  `gorm:"type:varchar(2)"`
	PostalCode    string  `gorm:"type:varchar(20);column:postal_code"`
	ContactPerson string  `gorm:"type:varchar(200);column:contact_person"`
	Notes         string  `gorm:"type:text"`
	IsActive      bool    `gorm:"not null;default:true;column:is_active"`
	Orders        []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// ItemKind distinguishes labor from material cost lines
type ItemKind string

const (
	ItemKindService  ItemKind = "service"
	ItemKindMaterial ItemKind = "material"
)

// IsValid checks if the ItemKind is a valid enum value
func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindService, ItemKindMaterial:
		return true
	}
	return false
}

// CatalogItem is a reusable service or material definition used to
// pre-fill order lines
type CatalogItem struct {
	BaseModel
	Description string   `gorm:"type:varchar(500);not null;index"`
	Kind        ItemKind `gorm:"type:varchar(20);not null;default:'service';index"`
	Unit        string   `gorm:"type:varchar(20);not null;default:'un'"`
	UnitPrice   float64  `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	IsActive    bool     `gorm:"not null;default:true;column:is_active"`
}

// OrderType represents the kind of document an order is
type OrderType string

const (
	OrderTypeQuote        OrderType = "quote"
	OrderTypeServiceOrder OrderType = "service_order"
	OrderTypeWorkOrder    OrderType = "work_order"
)

// IsValid checks if the OrderType is a valid enum value
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeQuote, OrderTypeServiceOrder, OrderTypeWorkOrder:
		return true
	}
	return false
}

// NumberPrefix returns the order-number prefix for the type.
func (t OrderType) NumberPrefix() string {
	switch t {
	case OrderTypeServiceOrder:
		return "OS"
	case OrderTypeWorkOrder:
		return "OB"
	default:
		return "QT"
	}
}

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "draft"
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusApproved   OrderStatus = "approved"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusPaid       OrderStatus = "paid"
)

// IsValid checks if the OrderStatus is a valid enum value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPending, OrderStatusApproved,
		OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled, OrderStatusPaid:
		return true
	}
	return false
}

// orderStatusTransitions lists the allowed next statuses per status.
// Cancelled and paid are terminal.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:      {OrderStatusPending, OrderStatusCancelled},
	OrderStatusPending:    {OrderStatusApproved, OrderStatusCancelled},
	OrderStatusApproved:   {OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {OrderStatusPaid},
	OrderStatusCancelled:  {},
	OrderStatusPaid:       {},
}

// CanTransitionTo reports whether a status change is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return len(orderStatusTransitions[s]) == 0
}

// Order represents a quote, service order or work order.
//
// Subtotal, MarkupValue, TaxValue, PlannedCost and TotalAmount are caches of
// the financial engine's output for the current items/rates/contract price.
// They are rewritten on every save and must never be edited independently.
// ActualCost, PlannedProfit and ActualProfit are only maintained for work
// orders, from the cost item list.
type Order struct {
	BaseModel
	Number        string      `gorm:"type:varchar(50);unique;index"`
	Type          OrderType   `gorm:"type:varchar(20);not null;index"`
	CustomerID    uuid.UUID   `gorm:"type:uuid;not null;index;column:customer_id"`
	Customer      *Customer   `gorm:"foreignKey:CustomerID"`
	CustomerName  string      `gorm:"type:varchar(200);column:customer_name"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Title         string      `gorm:"type:varchar(200);not null"`
	Description   string      `gorm:"type:text"`
	Notes         string      `gorm:"type:text"`
	MarkupRate    float64     `gorm:"type:decimal(7,2);not null;default:0;column:markup_rate"` // percent, often a BDI snapshot
	TaxRate       float64     `gorm:"type:decimal(7,2);not null;default:0;column:tax_rate"`    // percent
	ContractPrice float64     `gorm:"type:decimal(15,2);not null;default:0;column:contract_price"`
	Subtotal      float64     `gorm:"type:decimal(15,2);not null;default:0"`
	MarkupValue   float64     `gorm:"type:decimal(15,2);not null;default:0;column:markup_value"`
	TaxValue      float64     `gorm:"type:decimal(15,2);not null;default:0;column:tax_value"`
	PlannedCost   float64     `gorm:"type:decimal(15,2);not null;default:0;column:planned_cost"`
	TotalAmount   float64     `gorm:"type:decimal(15,2);not null;default:0;column:total_amount"`
	ActualCost    float64     `gorm:"type:decimal(15,2);not null;default:0;column:actual_cost"`
	PlannedProfit float64     `gorm:"type:decimal(15,2);not null;default:0;column:planned_profit"`
	ActualProfit  float64     `gorm:"type:decimal(15,2);not null;default:0;column:actual_profit"`
	ValidUntil    *time.Time  `gorm:"type:date;column:valid_until"` // quotes only
	SourceQuoteID *uuid.UUID  `gorm:"type:uuid;index;column:source_quote_id"`

	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CostItems []OrderCostItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// IsWorkOrder reports whether the order carries a planned-cost item list.
func (o *Order) IsWorkOrder() bool {
	return o.Type == OrderTypeWorkOrder
}

// IsLocked reports whether item and rate edits are blocked. Terminal orders
// only accept nothing further; completed orders only accept status changes.
func (o *Order) IsLocked() bool {
	return o.Status == OrderStatusCancelled || o.Status == OrderStatusPaid || o.Status == OrderStatusCompleted
}

// OrderItem is a customer-facing line on an order
type OrderItem struct {
	BaseModel
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index;column:order_id"`
	Order        *Order    `gorm:"foreignKey:OrderID"`
	Description  string    `gorm:"type:varchar(500);not null"`
	Kind         ItemKind  `gorm:"type:varchar(20);not null;default:'service'"`
	Quantity     float64   `gorm:"type:decimal(12,3);not null;default:0"`
	Unit         string    `gorm:"type:varchar(20);not null;default:'un'"`
	UnitPrice    float64   `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	Total        float64   `gorm:"type:decimal(15,2);not null;default:0"` // cache of quantity x unit_price
	DisplayOrder int       `gorm:"not null;default:0;column:display_order"`
}

// OrderCostItem is one line of a work order's internal cost budget,
// tracking planned values plus recorded actuals. A nonzero ActualValue
// override takes precedence over the actual quantity/price pair.
type OrderCostItem struct {
	BaseModel
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index;column:order_id"`
	Order           *Order    `gorm:"foreignKey:OrderID"`
	Description     string    `gorm:"type:varchar(500);not null"`
	Kind            ItemKind  `gorm:"type:varchar(20);not null;default:'material'"`
	Quantity        float64   `gorm:"type:decimal(12,3);not null;default:0"`
	Unit            string    `gorm:"type:varchar(20);not null;default:'un'"`
	UnitPrice       float64   `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	ActualQuantity  float64   `gorm:"type:decimal(12,3);not null;default:0;column:actual_quantity"`
	ActualUnitPrice float64   `gorm:"type:decimal(15,2);not null;default:0;column:actual_unit_price"`
	ActualValue     float64   `gorm:"type:decimal(15,2);not null;default:0;column:actual_value"`
	DisplayOrder    int       `gorm:"not null;default:0;column:display_order"`
}

// BdiConfig is a named snapshot of BDI formula inputs plus the computed
// total. TotalRate is always recomputed server-side from the nine inputs
// on save; it is never accepted from the client.
type BdiConfig struct {
	BaseModel
	Name           string  `gorm:"type:varchar(200);not null;index"`
	Administration float64 `gorm:"type:decimal(7,2);not null;default:0"`
	Insurance      float64 `gorm:"type:decimal(7,2);not null;default:0"`
	Guarantee      float64 `gorm:"type:decimal(7,2);not null;default:0"`
	Risk           float64 `gorm:"type:decimal(7,2);not null;default:0"`
	Financial      float64 `gorm:"type:decimal(7,2);not null;default:0"`
	Profit         float64 `gorm:"type:decimal(7,2);not null;default:0"`
	ISS            float64 `gorm:"type:decimal(7,2);not null;default:0;column:iss"`
	PIS            float64 `gorm:"type:decimal(7,2);not null;default:0;column:pis"`
	COFINS         float64 `gorm:"type:decimal(7,2);not null;default:0;column:cofins"`
	CPRB           float64 `gorm:"type:decimal(7,2);not null;default:0;column:cprb"`
	TotalRate      float64 `gorm:"type:decimal(7,2);not null;default:0;column:total_rate"`
}

// NumberSequence tracks the last issued sequence per prefix and year,
// backing human-readable order numbers like "QT-2026-014"
type NumberSequence struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Prefix    string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_sequence_prefix_year"`
	Year      int       `gorm:"not null;uniqueIndex:idx_sequence_prefix_year"`
	LastValue int       `gorm:"not null;default:0;column:last_value"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}
