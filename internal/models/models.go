package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, j)
}

// User roles
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// Order statuses
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// Order payment statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment record statuses
const (
	PaymentSuccess       = "success"
	PaymentFailed        = "failed"
	PaymentPending       = "pending"
	MethodCashOnDelivery = "cash_on_delivery"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `json:"full_name"`
	Phone        *string   `gorm:"uniqueIndex" json:"phone"`
	Role         string    `gorm:"default:customer;not null" json:"role"` // customer, staff, admin
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Address struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AddressLine1 string    `gorm:"not null" json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `gorm:"not null" json:"city"`
	PostalCode   string    `gorm:"not null" json:"postal_code"`
	Country      string    `gorm:"not null" json:"country"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	// No gorm default tag: gorm drops zero-value fields that carry one, so an
	// explicit false would be stored as true. Callers set the flag themselves.
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	MenuItems []MenuItem `gorm:"foreignKey:CategoryID" json:"menu_items,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type MenuItem struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category               Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name                   string          `gorm:"not null" json:"name"`
	Description            string          `gorm:"not null" json:"description"`
	Price                  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL               string          `json:"image_url"`
	// No gorm default tag, same zero-value trap as Category.IsActive.
	IsAvailable            bool            `json:"is_available"`
	PreparationTimeMinutes int             `json:"preparation_time_minutes"`
	Calories               int             `json:"calories"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Order struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User                  User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DeliveryAddressID     uuid.UUID       `gorm:"type:uuid;not null" json:"delivery_address_id"`
	DeliveryAddress       Address         `gorm:"foreignKey:DeliveryAddressID" json:"delivery_address,omitempty"`
	TotalAmount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status                string          `gorm:"default:pending;not null" json:"status"` // pending, confirmed, preparing, out_for_delivery, delivered, cancelled
	PaymentStatus         string          `gorm:"default:pending;not null" json:"payment_status"` // pending, paid, failed
	PaymentMethod         string          `gorm:"default:cash_on_delivery" json:"payment_method"`
	DeliveryInstructions  string          `json:"delivery_instructions"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	Payment    *Payment    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payment,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentStatusPending
	}
	return nil
}

type OrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID   uuid.UUID       `gorm:"type:uuid;not null" json:"menu_item_id"`
	MenuItem     MenuItem        `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_order"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Payment - one per order, enforced by the unique index on order_id.
type Payment struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Amount               decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	GatewayTransactionID string          `gorm:"not null;index" json:"gateway_transaction_id"`
	Status               string          `gorm:"not null" json:"status"` // success, failed, pending, or gateway pass-through
	MethodDetails        JSONB           `gorm:"type:jsonb" json:"method_details"`
	CreatedAt            time.Time       `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RestaurantInfo - singleton row, lazily created on first read.
type RestaurantInfo struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	LogoURL        string    `json:"logo_url"`
	OperatingHours JSONB     `gorm:"type:jsonb" json:"operating_hours"`
	DeliveryZones  JSONB     `gorm:"type:jsonb" json:"delivery_zones"`
}

func (r *RestaurantInfo) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
