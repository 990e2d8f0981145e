package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	handlerhttp "github.com/vasiliy-maslov/laundry-service/internal/handler/http"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
	"github.com/vasiliy-maslov/laundry-service/internal/receipt"
	"github.com/vasiliy-maslov/laundry-service/internal/store"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	st := store.NewMemStore()
	receipts, err := receipt.NewFileWriter(t.TempDir())
	require.NoError(t, err)

	cat := catalog.New(st)
	engine := order.NewEngine(order.DefaultLateFeePerDay)
	orders := order.NewService(st, engine, receipts)

	router := chi.NewRouter()
	handlerhttp.NewHandler(cat, orders).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeOrder(t *testing.T, data []byte) order.Order {
	t.Helper()
	var o order.Order
	require.NoError(t, json.Unmarshal(data, &o))
	return o
}

func seedService(t *testing.T, router chi.Router) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/services", map[string]any{
		"code":           "SV-CG",
		"name":           "Wash & Iron (Regular)",
		"price_per_kg":   10000,
		"estimated_days": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func createOrder(t *testing.T, router chi.Router) order.Order {
	t.Helper()
	seedService(t, router)
	rec := doJSON(t, router, http.MethodPost, "/orders", map[string]any{
		"customer_name": "Budi Santoso",
		"phone":         "081234567890",
		"service_code":  "SV-CG",
		"weight_kg":     3.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeOrder(t, rec.Body.Bytes())
}

func TestHandler_AddAndListServices(t *testing.T) {
	router := newTestRouter(t)
	seedService(t, router)

	rec := doJSON(t, router, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var services []catalog.Service
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	require.Len(t, services, 1)
	assert.Equal(t, "SV-CG", services[0].Code)
	assert.True(t, services[0].PricePerKg.Equal(decimal.NewFromInt(10000)))
}

func TestHandler_AddService_ValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/services", map[string]any{
		"price_per_kg": 10000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
}

func TestHandler_AddService_DuplicateCode(t *testing.T) {
	router := newTestRouter(t)
	seedService(t, router)

	rec := doJSON(t, router, http.MethodPost, "/services", map[string]any{
		"code":           "SV-CG",
		"name":           "Another",
		"price_per_kg":   8000,
		"estimated_days": 1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_AddCustomer_Conflict(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/customers", map[string]any{
		"name":  "Budi Santoso",
		"phone": "081234567890",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/customers", map[string]any{
		"name":  "budi santoso",
		"phone": "081234567890",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "existing")
}

func TestHandler_CreateOrder(t *testing.T) {
	router := newTestRouter(t)
	o := createOrder(t, router)

	assert.Regexp(t, `^OR-[0-9a-f]{8}$`, o.ID)
	assert.Equal(t, "Budi Santoso", o.CustomerName)
	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(35000)))
	assert.Equal(t, order.StatusReceived, o.Status)
}

func TestHandler_CreateOrder_UnknownService(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/orders", map[string]any{
		"customer_name": "Budi Santoso",
		"service_code":  "SV-missing",
		"weight_kg":     3.5,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_UpdateStatus_Guard(t *testing.T) {
	router := newTestRouter(t)
	o := createOrder(t, router)

	rec := doJSON(t, router, http.MethodPost, "/orders/"+o.ID+"/status", map[string]any{"target": "DELIVERED"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Illegal status transition")
}

func TestHandler_UpdateStatus_InvalidTarget(t *testing.T) {
	router := newTestRouter(t)
	o := createOrder(t, router)

	rec := doJSON(t, router, http.MethodPost, "/orders/"+o.ID+"/status", map[string]any{"target": "SHIPPED"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_FullLifecycle(t *testing.T) {
	router := newTestRouter(t)
	o := createOrder(t, router)

	for _, target := range []string{"PROCESSING", "READY", "DELIVERED"} {
		rec := doJSON(t, router, http.MethodPost, "/orders/"+o.ID+"/status", map[string]any{"target": target})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	// Delivery within the turnaround window: nothing extra due.
	rec := doJSON(t, router, http.MethodGet, "/orders/"+o.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeOrder(t, rec.Body.Bytes())
	assert.Equal(t, order.StatusDelivered, got.Status)
	assert.True(t, got.DamageFee.IsZero())

	rec = doJSON(t, router, http.MethodPost, "/orders/"+o.ID+"/payment", map[string]any{"amount": 35000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payment struct {
		Order    order.Order `json:"order"`
		TotalDue string      `json:"total_due"`
		Partial  bool        `json:"partial"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
	assert.True(t, payment.Order.Paid)
	assert.False(t, payment.Partial)
	assert.Equal(t, "35000", payment.TotalDue)

	// Paying twice is rejected.
	rec = doJSON(t, router, http.MethodPost, "/orders/"+o.ID+"/payment", map[string]any{"amount": 35000})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/orders/"+o.ID+"/receipt", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "KILO LAUNDRY RECEIPT")
	assert.Contains(t, rec.Body.String(), "& PAID")

	rec = doJSON(t, router, http.MethodGet, "/reports/income", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var income struct {
		Total  string `json:"total"`
		ByDate []struct {
			Date   string `json:"date"`
			Amount string `json:"amount"`
		} `json:"by_date"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &income))
	assert.Equal(t, "35000", income.Total)
	require.Len(t, income.ByDate, 1)
	assert.Equal(t, "35000", income.ByDate[0].Amount)
}

func TestHandler_PartialPayment(t *testing.T) {
	router := newTestRouter(t)
	o := createOrder(t, router)

	for _, target := range []string{"READY", "DELIVERED"} {
		rec := doJSON(t, router, http.MethodPost, "/orders/"+o.ID+"/status", map[string]any{"target": target})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/orders/"+o.ID+"/payment", map[string]any{"amount": 20000})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/orders/"+o.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeOrder(t, rec.Body.Bytes()).Paid, "declined partial payment must not mutate the order")

	rec = doJSON(t, router, http.MethodPost, "/orders/"+o.ID+"/payment", map[string]any{
		"amount":          20000,
		"confirm_partial": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payment struct {
		Order   order.Order `json:"order"`
		Partial bool        `json:"partial"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
	assert.True(t, payment.Partial)
	assert.True(t, payment.Order.Paid)
	assert.True(t, payment.Order.PaidAmount.Equal(decimal.NewFromInt(20000)))
}

func TestHandler_GetOrder_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/orders/OR-missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
