package views

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Ritesh010/admin/internal/models"
	"github.com/Ritesh010/admin/internal/services"
)

// MetricSlot binds one semantic field path to a display label. The slot
// table is the render-time replacement for the original's implicit
// DOM-id/data-path coupling: slots whose path is absent from the flattened
// data are skipped silently.
type MetricSlot struct {
	Path  string
	Label string
}

func DashboardSlots() []MetricSlot {
	return []MetricSlot{
		{Path: "total_orders", Label: "Total Orders"},
		{Path: "total_revenue", Label: "Total Revenue"},
		{Path: "total_products", Label: "Total Products"},
		{Path: "total_customers", Label: "Total Customers"},
		{Path: "orders.pending", Label: "Pending Orders"},
		{Path: "orders.delivered", Label: "Delivered Orders"},
		{Path: "revenue.today", Label: "Revenue Today"},
		{Path: "revenue.this_month", Label: "Revenue This Month"},
	}
}

func AnalyticsSlots() []MetricSlot {
	return []MetricSlot{
		{Path: "total_orders", Label: "Total Orders"},
		{Path: "total_revenue", Label: "Total Revenue"},
		{Path: "average_order_value", Label: "Avg Order Value"},
		{Path: "status_counts.Pending", Label: "Pending"},
		{Path: "status_counts.Processing", Label: "Processing"},
		{Path: "status_counts.Shipped", Label: "Shipped"},
		{Path: "status_counts.Delivered", Label: "Delivered"},
	}
}

// AttributeEntry is one displayed attribute line.
type AttributeEntry struct {
	Key   string
	Value string
}

// ProductRow is the products table view of one product.
type ProductRow struct {
	ProductID  int64
	Name       string
	Price      float64
	Summary    string
	IsActive   bool
	Attributes []AttributeEntry
}

func NewProductRow(p models.Product) ProductRow {
	return ProductRow{
		ProductID:  p.ProductID,
		Name:       p.Name,
		Price:      p.Price,
		Summary:    productSummary(p.Attributes),
		IsActive:   p.IsActive,
		Attributes: FormatAttributes(p.Attributes),
	}
}

func ProductRows(products []models.Product) []ProductRow {
	rows := make([]ProductRow, len(products))
	for i, p := range products {
		rows[i] = NewProductRow(p)
	}
	return rows
}

// productSummary shows "brand model" like the list page always has, falling
// back to Unknown when the brand attribute is missing.
func productSummary(attributes map[string]any) string {
	brand := "Unknown"
	if v, ok := attributes["brand"]; ok {
		brand = attributeString(v)
	}
	model := ""
	if v, ok := attributes["model"]; ok {
		model = attributeString(v)
	}
	return strings.TrimSpace(brand + " " + model)
}

// FormatAttributes flattens the attributes mapping into displayable lines,
// sorted by key. Nested mappings become one line per sub-key; lists are
// joined with commas.
func FormatAttributes(attributes map[string]any) []AttributeEntry {
	var entries []AttributeEntry

	for key, value := range attributes {
		if nested, ok := value.(map[string]any); ok {
			for subKey, subValue := range nested {
				entries = append(entries, AttributeEntry{Key: subKey, Value: attributeString(subValue)})
			}
			continue
		}
		entries = append(entries, AttributeEntry{Key: key, Value: attributeString(value)})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// attributeString renders one attribute value the way the form expects it
// back: lists comma-joined, numbers without a trailing exponent, booleans as
// true/false.
func attributeString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = attributeString(item)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// AttrRow is one editable key/value row on the product form.
type AttrRow struct {
	Key   string
	Value string
}

// FormAttrRows converts stored attributes into editable rows. An empty row
// is appended when there are none so the form always shows an input pair.
func FormAttrRows(attributes map[string]any) []AttrRow {
	var rows []AttrRow
	for _, entry := range FormatAttributes(attributes) {
		rows = append(rows, AttrRow{Key: entry.Key, Value: entry.Value})
	}
	if len(rows) == 0 {
		rows = append(rows, AttrRow{})
	}
	return rows
}

// PendingImage is one preview entry; Index is the stable removal handle and
// is recomputed by the set after every removal.
type PendingImage struct {
	Index int
	Name  string
	Size  int
}

func PendingImages(set *services.PendingImageSet) []PendingImage {
	files := set.Files()
	out := make([]PendingImage, len(files))
	for i, f := range files {
		out[i] = PendingImage{Index: i, Name: f.Name, Size: f.Size()}
	}
	return out
}
