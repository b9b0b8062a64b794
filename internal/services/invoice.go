package services

import (
	"time"

	"github.com/Ritesh010/admin/internal/models"
)

// Invoice is a print-ready view of one order. Subtotal is summed from the
// line items; shipping is derived as total minus subtotal rather than read
// from the order's shipping field, so it silently absorbs tax and discount.
// The derivation is kept as-is and labeled accordingly in the document.
type Invoice struct {
	OrderNumber     string
	Status          models.OrderStatus
	CustomerName    string
	CustomerPhone   string
	ShippingAddress string
	BillingAddress  string
	Items           []models.OrderItem
	Subtotal        float64
	ShippingAmount  float64
	TotalAmount     float64
	CreatedAt       time.Time
}

// BuildInvoice is a pure transform; nothing is retained after rendering.
func BuildInvoice(order *models.Order) Invoice {
	var subtotal float64
	for _, item := range order.Items {
		subtotal += item.TotalPrice
	}

	return Invoice{
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		CustomerName:    order.Customer.FirstName + " " + order.Customer.LastName,
		CustomerPhone:   order.Customer.Phone,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		Items:           order.Items,
		Subtotal:        subtotal,
		ShippingAmount:  order.TotalAmount - subtotal,
		TotalAmount:     order.TotalAmount,
		CreatedAt:       order.CreatedAt,
	}
}
