package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Ritesh010/admin/internal/api"
	"github.com/Ritesh010/admin/internal/models"
	"github.com/Ritesh010/admin/internal/services"
	"github.com/Ritesh010/admin/internal/session"
	"github.com/Ritesh010/admin/internal/views"
)

type OrderHandler struct {
	Base
}

func NewOrderHandler(sessions *session.Store, client *api.Client, templates *views.TemplateCache, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{Base{
		Sessions:  sessions,
		API:       client,
		Templates: templates,
		Logger:    logger,
	}}
}

// Orders fetches the order list and the analytics concurrently and renders
// them together. If either fetch fails the page shows the failure and no
// order rows render; there is no partial result.
func (h *OrderHandler) Orders(w http.ResponseWriter, r *http.Request) {
	token := h.token(r)

	var (
		orders    []models.Order
		analytics map[string]any
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		orders, err = h.API.ListOrders(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		analytics, err = h.API.OrderAnalytics(ctx, token)
		return err
	})

	if err := g.Wait(); err != nil {
		h.Logger.Error().Err(err).Msg("Orders page fetch failed")
		h.render(w, r, "orders.html", map[string]any{
			"Error":     "Failed to load orders. Please refresh the page.",
			"Orders":    []models.Order{},
			"Analytics": map[string]string{},
			"Slots":     views.AnalyticsSlots(),
			"Statuses":  models.ValidOrderStatuses(),
		})
		return
	}

	h.render(w, r, "orders.html", map[string]any{
		"Orders":    orders,
		"Analytics": views.FlattenPaths(analytics),
		"Slots":     views.AnalyticsSlots(),
		"Statuses":  models.ValidOrderStatuses(),
	})
}

// UpdateStatus changes one order's status and sends the browser back to the
// orders page for a full re-render; there is no partial update to revert on
// failure.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		redirect(w, r, "/orders", "", "Invalid order ID.")
		return
	}

	status := models.OrderStatus(r.FormValue("status"))
	if !status.IsValid() {
		redirect(w, r, "/orders", "", "Invalid order status.")
		return
	}

	if err := h.API.UpdateOrderStatus(r.Context(), h.token(r), orderID, status); err != nil {
		h.Logger.Error().Err(err).Int64("order_id", orderID).Msg("Status update failed")
		redirect(w, r, "/orders", "", "Failed to update order status. Please try again.")
		return
	}

	h.Logger.Info().Int64("order_id", orderID).Str("status", string(status)).Msg("Order status updated")
	redirect(w, r, "/orders", "Order status updated to: "+string(status), "")
}

// Invoice renders the print-ready document for one order in its own tab.
func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		redirect(w, r, "/orders", "", "Invalid order ID.")
		return
	}

	order, err := h.API.GetOrder(r.Context(), h.token(r), orderID)
	if err != nil {
		h.Logger.Error().Err(err).Int64("order_id", orderID).Msg("Order fetch failed")
		redirect(w, r, "/orders", "", "Failed to load order. Please refresh the page.")
		return
	}

	var buf bytes.Buffer
	if err := h.Templates.RenderDocument(&buf, "invoice.html", services.BuildInvoice(order)); err != nil {
		h.Logger.Error().Err(err).Msg("Invoice render failed")
		http.Error(w, "Failed to render invoice", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
