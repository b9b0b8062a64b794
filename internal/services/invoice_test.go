package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ritesh010/admin/internal/models"
)

func TestBuildInvoice(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	order := &models.Order{
		OrderNumber: "ORD-1001",
		Status:      models.StatusShipped,
		CreatedAt:   created,
		TotalAmount: 120,
		Customer: models.Customer{
			FirstName: "Asha",
			LastName:  "Rao",
			Phone:     "555-0101",
		},
		ShippingAddress: "12 Lake View",
		BillingAddress:  "14 Hill Road",
		Items: []models.OrderItem{
			{ProductName: "Widget", Quantity: 2, UnitPrice: 25, TotalPrice: 50},
			{ProductName: "Gadget", Quantity: 1, UnitPrice: 40, TotalPrice: 40},
		},
	}

	inv := BuildInvoice(order)

	assert.Equal(t, "ORD-1001", inv.OrderNumber)
	assert.Equal(t, "Asha Rao", inv.CustomerName)
	assert.Equal(t, 90.0, inv.Subtotal)
	// Shipping is derived from the total, not read from the order's
	// shipping field, so it absorbs tax and discount.
	assert.Equal(t, 30.0, inv.ShippingAmount)
	assert.Equal(t, 120.0, inv.TotalAmount)
	assert.Equal(t, created, inv.CreatedAt)
}

func TestBuildInvoiceNoItems(t *testing.T) {
	inv := BuildInvoice(&models.Order{TotalAmount: 15})

	assert.Equal(t, 0.0, inv.Subtotal)
	assert.Equal(t, 15.0, inv.ShippingAmount)
}
