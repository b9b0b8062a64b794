package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Ritesh010/admin/internal/models"
)

// ProductForm is the flat form input as submitted by the product pages.
// Numeric fields stay strings here; coercion happens in BuildPayload so a
// garbled number surfaces as a validation failure, not a dropped field.
type ProductForm struct {
	Name          string
	Description   string
	Price         string
	CostPrice     string
	StockQuantity string
	MinStockLevel string
	Weight        string
	Dimensions    string
	AttributeKeys []string
	AttributeVals []string
}

// ValidationError names the first failing field; no API call is made when
// validation fails.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CoerceAttributeValue applies the free-text typing rules: a comma makes a
// list of trimmed strings, "true"/"false" (any case) a bool, a fully numeric
// value a number, anything else stays a string.
func CoerceAttributeValue(value string) any {
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		items := make([]string, len(parts))
		for i, p := range parts {
			items[i] = strings.TrimSpace(p)
		}
		return items
	}

	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}

	// ParseFloat accepts "NaN" and "Inf" spellings, but neither survives
	// JSON encoding; those stay strings.
	if n, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return n
	}

	return value
}

// CollectAttributes pairs key/value rows into the attributes mapping. Rows
// with an empty key or value are dropped silently.
func CollectAttributes(keys, values []string) map[string]any {
	attributes := make(map[string]any)

	n := len(keys)
	if len(values) < n {
		n = len(values)
	}

	for i := 0; i < n; i++ {
		key := strings.TrimSpace(keys[i])
		value := strings.TrimSpace(values[i])
		if key == "" || value == "" {
			continue
		}
		attributes[key] = CoerceAttributeValue(value)
	}

	return attributes
}

// ParseDimensions splits a single comma-separated string into exactly three
// components. Unparsable components default to 0; the unit is always cm.
func ParseDimensions(input string) models.Dimensions {
	parts := strings.Split(input, ",")

	component := func(i int) float64 {
		if i >= len(parts) {
			return 0
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return 0
		}
		return n
	}

	return models.Dimensions{
		Length: component(0),
		Width:  component(1),
		Height: component(2),
		Unit:   "cm",
	}
}

// DeriveSKU builds the SKU from the uppercase initials of each
// whitespace-separated word of the name.
func DeriveSKU(name string) string {
	var sku strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		sku.WriteString(strings.ToUpper(string(r[0])))
	}
	return sku.String()
}

// BuildPayload assembles the API payload from the form. Unparsable numeric
// fields become zero values and are left for Validate to reject.
func BuildPayload(form ProductForm) models.ProductPayload {
	price, _ := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
	costPrice, _ := strconv.ParseFloat(strings.TrimSpace(form.CostPrice), 64)
	weight, _ := strconv.ParseFloat(strings.TrimSpace(form.Weight), 64)
	stock, _ := strconv.Atoi(strings.TrimSpace(form.StockQuantity))
	minStock, _ := strconv.Atoi(strings.TrimSpace(form.MinStockLevel))

	return models.ProductPayload{
		Name:          form.Name,
		Description:   form.Description,
		Price:         price,
		CostPrice:     costPrice,
		SKU:           DeriveSKU(form.Name),
		StockQuantity: stock,
		MinStockLevel: minStock,
		Weight:        weight,
		Dimensions:    ParseDimensions(form.Dimensions),
		Attributes:    CollectAttributes(form.AttributeKeys, form.AttributeVals),
	}
}

// Validate enforces the client-side rules before any network call: name,
// price and cost price are required; both prices strictly positive; stock
// non-negative. The first failing field is reported.
func Validate(payload models.ProductPayload) error {
	if strings.TrimSpace(payload.Name) == "" {
		return &ValidationError{Field: "name", Message: "Please fill in the name field."}
	}
	if payload.Price == 0 {
		return &ValidationError{Field: "price", Message: "Please fill in the price field."}
	}
	if payload.CostPrice == 0 {
		return &ValidationError{Field: "cost_price", Message: "Please fill in the cost price field."}
	}
	if payload.Price < 0 || payload.CostPrice < 0 {
		return &ValidationError{Field: "price", Message: "Price and cost price must be greater than 0."}
	}
	if payload.StockQuantity < 0 {
		return &ValidationError{Field: "stock_quantity", Message: "Stock quantity cannot be negative."}
	}
	return nil
}
