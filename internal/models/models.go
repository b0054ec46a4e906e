package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusApproved         OrderStatus = "APPROVED"
	OrderStatusInProduction     OrderStatus = "IN_PRODUCTION"
	OrderStatusReadyForDelivery OrderStatus = "READY_FOR_DELIVERY"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCredit   PaymentMethod = "CREDIT"
	PaymentOther    PaymentMethod = "OTHER"
)

type SaleStatus string

const (
	SaleStatusActive    SaleStatus = "ACTIVE"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

type WebTemplate string

const (
	TemplateClassic WebTemplate = "CLASSIC"
	TemplateModern  WebTemplate = "MODERN"
	TemplateElegant WebTemplate = "ELEGANT"
	TemplateDark    WebTemplate = "DARK"
	TemplateMinimal WebTemplate = "MINIMAL"
)

type CollectionStatus string

const (
	CollectionStatusDraft    CollectionStatus = "DRAFT"
	CollectionStatusActive   CollectionStatus = "ACTIVE"
	CollectionStatusShared   CollectionStatus = "SHARED"
	CollectionStatusArchived CollectionStatus = "ARCHIVED"
)

// Orders arrive from the customer-facing submission flow with their own ids,
// so primary keys are opaque strings rather than generated uuids.
type Order struct {
	ID           string      `gorm:"type:text;primaryKey"`
	CollectionID string      `gorm:"type:text;not null;index"`
	CustomerID   *string     `gorm:"type:text;index"`
	Status       OrderStatus `gorm:"type:text;not null;default:'APPROVED';index"`

	SubtotalCents int64 `gorm:"not null;default:0"`
	ItemCount     int   `gorm:"not null;default:0"` // derived: sum of item quantities
	Urgent        bool  `gorm:"not null;default:false"`

	Observations     string `gorm:"type:text"`
	BusinessNotes    string `gorm:"type:text"`
	FeedbackComments string `gorm:"type:text"`
	DeliveryMethod   string `gorm:"type:text"`
	PaymentMethod    string `gorm:"type:text"` // free text as submitted; mapped on materialization

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// RecomputeDerived refreshes ItemCount from the item quantities.
func (o *Order) RecomputeDerived() {
	count := 0
	for _, it := range o.Items {
		count += int(it.Quantity)
	}
	o.ItemCount = count
}

type OrderItem struct {
	ID        string `gorm:"type:text;primaryKey"`
	OrderID   string `gorm:"type:text;not null;index;uniqueIndex:ux_order_items_order_product"`
	ProductID string `gorm:"type:text;not null;uniqueIndex:ux_order_items_order_product"`
	Position  int    `gorm:"not null;default:0"`
	Quantity  uint32 `gorm:"type:int;not null"` // CHECK >= 1 in migration

	Rating        *int16  `gorm:"type:smallint"` // 1..5
	Notes         *string `gorm:"type:text"`
	Customization *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }

type Product struct {
	ID            string `gorm:"type:text;primaryKey"`
	Name          string `gorm:"type:text;not null"`
	PriceCents    int64  `gorm:"not null;default:0"`
	StockQuantity int32  `gorm:"not null;default:0"` // CHECK >= 0 in migration
	IsActive      bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

const saleIDPrefix = "ORDER_"

// SaleIDForOrder derives the deterministic sale id used as the idempotency
// witness: at most one sale can ever exist for a given order.
func SaleIDForOrder(orderID string) string { return saleIDPrefix + orderID }

type Sale struct {
	ID         string        `gorm:"type:text;primaryKey"` // "ORDER_" + order id
	CustomerID *string       `gorm:"type:text;index"`
	TotalCents int64         `gorm:"not null;default:0"`
	Date       time.Time     `gorm:"not null;default:now();index"`
	Payment    PaymentMethod `gorm:"type:text;not null;default:'CASH'"`
	Note       string        `gorm:"type:text"`
	Status     SaleStatus    `gorm:"type:text;not null;default:'ACTIVE';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

func (Sale) TableName() string { return "sales" }

type SaleItem struct {
	ID             string `gorm:"type:text;primaryKey"`
	SaleID         string `gorm:"type:text;not null;index"`
	ProductID      string `gorm:"type:text;not null"`
	ProductName    string `gorm:"type:text;not null"`
	Position       int    `gorm:"not null;default:0"`
	Quantity       uint32 `gorm:"type:int;not null"`
	UnitPriceCents int64  `gorm:"not null"`
}

func (SaleItem) TableName() string { return "sale_items" }

type Collection struct {
	ID   string `gorm:"type:text;primaryKey"`
	Name string `gorm:"type:text;not null"`

	// Full list of linked customers; only the first one is authoritative.
	AssociatedCustomerIDs []string `gorm:"serializer:json;type:jsonb"`
	// Derived from AssociatedCustomerIDs[0]; indexed for template fan-out.
	PrimaryCustomerID *string `gorm:"type:text;index"`

	WebTemplate WebTemplate      `gorm:"type:text;not null;default:'CLASSIC'"`
	Color       *string          `gorm:"type:text"` // hex, optional
	Status      CollectionStatus `gorm:"type:text;not null;default:'DRAFT';index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []CollectionItem `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

func (Collection) TableName() string { return "collections" }

// PrimaryCustomer returns the first associated customer id, the only one
// authoritative for template propagation and portal linkage.
func (c *Collection) PrimaryCustomer() string {
	if len(c.AssociatedCustomerIDs) == 0 {
		return ""
	}
	return c.AssociatedCustomerIDs[0]
}

// SyncPrimaryCustomer rewrites the derived PrimaryCustomerID column.
func (c *Collection) SyncPrimaryCustomer() {
	if first := c.PrimaryCustomer(); first != "" {
		c.PrimaryCustomerID = &first
	} else {
		c.PrimaryCustomerID = nil
	}
}

type CollectionItem struct {
	ID           string `gorm:"type:text;primaryKey"`
	CollectionID string `gorm:"type:text;not null;index;uniqueIndex:ux_collection_items_col_product"`
	ProductID    string `gorm:"type:text;not null;uniqueIndex:ux_collection_items_col_product"`
	DisplayOrder int    `gorm:"not null;default:0"` // dense, zero-based after normalization
	IsFeatured   bool   `gorm:"not null;default:false"`

	SpecialPriceCents *int64  `gorm:""`
	Notes             *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (CollectionItem) TableName() string { return "collection_items" }
