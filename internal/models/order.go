package models

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusConfirmed  OrderStatus = "Confirmed"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
	StatusRefunded   OrderStatus = "Refunded"
)

// ValidOrderStatuses returns the closed status set in display order.
func ValidOrderStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending,
		StatusConfirmed,
		StatusProcessing,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
		StatusRefunded,
	}
}

func (s OrderStatus) IsValid() bool {
	for _, valid := range ValidOrderStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type OrderItem struct {
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

type Order struct {
	OrderID         int64       `json:"order_id"`
	OrderNumber     string      `json:"order_number"`
	CreatedAt       time.Time   `json:"created_at"`
	TotalAmount     float64     `json:"total_amount"`
	Customer        Customer    `json:"customer"`
	ShippingAddress string      `json:"shipping_address"`
	BillingAddress  string      `json:"billing_address"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentStatus   string      `json:"payment_status"`
	Status          OrderStatus `json:"status"`
	Items           []OrderItem `json:"items"`
	ShippingAmount  float64     `json:"shipping_amount"`
	TaxAmount       float64     `json:"tax_amount"`
	DiscountAmount  float64     `json:"discount_amount"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
}

type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
