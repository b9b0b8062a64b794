package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ritesh010/admin/internal/api"
	"github.com/Ritesh010/admin/internal/middleware"
	"github.com/Ritesh010/admin/internal/models"
	"github.com/Ritesh010/admin/internal/session"
	"github.com/Ritesh010/admin/internal/views"
)

func testTemplates(t *testing.T) *views.TemplateCache {
	t.Helper()
	tc := views.NewTemplateCache()
	require.NoError(t, tc.Load())
	return tc
}

func testStore() *session.Store {
	return session.NewStore("test-secret", zerolog.Nop())
}

// authedRequest builds a request carrying the context values the auth
// middleware would have attached.
func authedRequest(method, target string, form url.Values) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	ctx := context.WithValue(req.Context(), middleware.SessionIDKey, "sess-1")
	ctx = context.WithValue(ctx, middleware.SessionKey, &models.Session{
		Token:     "tok",
		FirstName: "Asha",
		LastName:  "Rao",
		Username:  "asha",
	})
	return req.WithContext(ctx)
}

func redirectQuery(t *testing.T, rec *httptest.ResponseRecorder) (string, url.Values) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	return loc.Path, loc.Query()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(t *testing.T, r *http.Request, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(out))
}

func sampleOrder() models.Order {
	return models.Order{
		OrderID:     5,
		OrderNumber: "ORD-2026-005",
		CreatedAt:   time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
		TotalAmount: 120,
		Customer:    models.Customer{FirstName: "Priya", LastName: "Nair", Email: "priya@example.com"},
		Status:      models.StatusPending,
		Items: []models.OrderItem{
			{ProductName: "Widget", SKU: "W", Quantity: 2, UnitPrice: 25, TotalPrice: 50},
			{ProductName: "Gadget", SKU: "G", Quantity: 1, UnitPrice: 40, TotalPrice: 40},
		},
	}
}

func TestOrdersPageRendersListAndAnalytics(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/orders/admin/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.OrderList{Orders: []models.Order{sampleOrder()}})
	})
	apiMux.HandleFunc("/orders/admin/analytics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"total_orders": 12, "status_counts": map[string]any{"Pending": 3}})
	})
	server := httptest.NewServer(apiMux)
	defer server.Close()

	h := NewOrderHandler(testStore(), api.New(server.URL, zerolog.Nop()), testTemplates(t), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Orders(rec, authedRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ORD-2026-005")
	assert.Contains(t, body, "Priya Nair")
	assert.Contains(t, body, "Total Orders")
	assert.Contains(t, body, "12")
}

func TestOrdersPageFailsAsAWhole(t *testing.T) {
	// Analytics failing must suppress the order rows too, even though the
	// list fetch succeeded.
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/orders/admin/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.OrderList{Orders: []models.Order{sampleOrder()}})
	})
	apiMux.HandleFunc("/orders/admin/analytics", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	})
	server := httptest.NewServer(apiMux)
	defer server.Close()

	h := NewOrderHandler(testStore(), api.New(server.URL, zerolog.Nop()), testTemplates(t), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Orders(rec, authedRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to load orders")
	assert.NotContains(t, body, "Priya")
	assert.NotContains(t, body, "ORD-2026-005")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	h := NewOrderHandler(testStore(), api.New(server.URL, zerolog.Nop()), testTemplates(t), zerolog.Nop())

	req := authedRequest(http.MethodPost, "/orders/5/status", url.Values{"status": {"Bogus"}})
	req = mux.SetURLVars(req, map[string]string{"id": "5"})
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	path, q := redirectQuery(t, rec)
	assert.Equal(t, "/orders", path)
	assert.Equal(t, "Invalid order status.", q.Get("error"))
	assert.False(t, called, "no API call for an invalid status")
}

func TestUpdateStatusSuccess(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	h := NewOrderHandler(testStore(), api.New(server.URL, zerolog.Nop()), testTemplates(t), zerolog.Nop())

	req := authedRequest(http.MethodPost, "/orders/5/status", url.Values{"status": {"Shipped"}})
	req = mux.SetURLVars(req, map[string]string{"id": "5"})
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	path, q := redirectQuery(t, rec)
	assert.Equal(t, "/orders", path)
	assert.Equal(t, "Order status updated to: Shipped", q.Get("notice"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/orders/5/status", gotPath)
}

func TestInvoiceDerivesShippingFromTotals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/5", r.URL.Path)
		writeJSON(w, sampleOrder())
	}))
	defer server.Close()

	h := NewOrderHandler(testStore(), api.New(server.URL, zerolog.Nop()), testTemplates(t), zerolog.Nop())

	req := authedRequest(http.MethodGet, "/orders/5/invoice", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "5"})
	rec := httptest.NewRecorder()
	h.Invoice(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	// Items total 90 against a 120 order total, so 30 lands on the
	// shipping and adjustments line.
	assert.Contains(t, body, "$90.00")
	assert.Contains(t, body, "$30.00")
	assert.Contains(t, body, "ORD-2026-005")
}
