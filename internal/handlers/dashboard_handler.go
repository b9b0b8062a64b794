package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Ritesh010/admin/internal/api"
	"github.com/Ritesh010/admin/internal/models"
	"github.com/Ritesh010/admin/internal/session"
	"github.com/Ritesh010/admin/internal/views"
)

type DashboardHandler struct {
	Base
}

func NewDashboardHandler(sessions *session.Store, client *api.Client, templates *views.TemplateCache, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{Base{
		Sessions:  sessions,
		API:       client,
		Templates: templates,
		Logger:    logger,
	}}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.API.DashboardOverview(r.Context(), h.token(r))
	if err != nil {
		h.Logger.Error().Err(err).Msg("Dashboard fetch failed")
		h.render(w, r, "dashboard.html", map[string]any{
			"Error":        "Failed to load dashboard data. Please refresh the page.",
			"Metrics":      map[string]string{},
			"Slots":        views.DashboardSlots(),
			"RecentOrders": []models.Order{},
		})
		return
	}

	h.render(w, r, "dashboard.html", map[string]any{
		"Metrics":      views.FlattenPaths(data),
		"Slots":        views.DashboardSlots(),
		"RecentOrders": recentOrders(data),
	})
}

// recentOrders lifts the recent_orders list back out of the overview
// payload; the rest of the payload stays path-flattened for the metric
// slots.
func recentOrders(data map[string]any) []models.Order {
	raw, ok := data["recent_orders"]
	if !ok {
		return nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var orders []models.Order
	if err := json.Unmarshal(encoded, &orders); err != nil {
		return nil
	}
	return orders
}
