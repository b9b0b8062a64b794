package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenPaths(t *testing.T) {
	data := map[string]any{
		"total_orders": float64(37),
		"revenue": map[string]any{
			"today": 199.5,
			"breakdown": map[string]any{
				"cards": float64(120),
			},
		},
		"active":    true,
		"top_skus":  []any{"AB", "CD"},
		"site_name": "birdcart",
		"missing":   nil,
	}

	flat := FlattenPaths(data)

	assert.Equal(t, map[string]string{
		"total_orders":            "37",
		"revenue.today":           "199.5",
		"revenue.breakdown.cards": "120",
		"active":                  "true",
		"top_skus":                "AB,CD",
		"site_name":               "birdcart",
		"missing":                 "",
	}, flat)
}

func TestFlattenPathsEmpty(t *testing.T) {
	assert.Empty(t, FlattenPaths(map[string]any{}))
}
