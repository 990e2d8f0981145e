package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
	"github.com/vasiliy-maslov/laundry-service/internal/report"
)

type AddServiceRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" validate:"required"`
	PricePerKg    float64 `json:"price_per_kg" validate:"required,gt=0"`
	EstimatedDays int     `json:"estimated_days" validate:"gte=0"`
}

type AddCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

type CreateOrderRequest struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	Phone        string  `json:"phone"`
	ServiceCode  string  `json:"service_code" validate:"required"`
	WeightKg     float64 `json:"weight_kg" validate:"required,gt=0"`
	Notes        string  `json:"notes"`
}

type UpdateStatusRequest struct {
	Target string `json:"target" validate:"required,oneof=PROCESSING READY DELIVERED"`
}

type PayOrderRequest struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	ConfirmPartial bool    `json:"confirm_partial"`
}

type StatusChangeResponse struct {
	Order    order.Order `json:"order"`
	LateDays int         `json:"late_days"`
	LateFee  string      `json:"late_fee"`
}

type PaymentResponse struct {
	Order    order.Order `json:"order"`
	TotalDue string      `json:"total_due"`
	Partial  bool        `json:"partial"`
}

type IncomeReportResponse struct {
	Total  string             `json:"total"`
	ByDate []DateIncomeRecord `json:"by_date"`
}

type DateIncomeRecord struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

type Handler struct {
	catalog  *catalog.Catalog
	orders   *order.Service
	validate *validator.Validate
}

func NewHandler(cat *catalog.Catalog, orders *order.Service) *Handler {
	return &Handler{
		catalog:  cat,
		orders:   orders,
		validate: validator.New(),
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/services", h.handleAddService)
	router.Get("/services", h.handleListServices)
	router.Post("/customers", h.handleAddCustomer)
	router.Get("/customers", h.handleListCustomers)
	router.Post("/orders", h.handleCreateOrder)
	router.Get("/orders", h.handleListOrders)
	router.Get("/orders/{id}", h.handleGetOrder)
	router.Post("/orders/{id}/status", h.handleUpdateStatus)
	router.Post("/orders/{id}/payment", h.handlePayOrder)
	router.Get("/orders/{id}/receipt", h.handleGetReceipt)
	router.Get("/reports/income", h.handleIncomeReport)
}

func (h *Handler) handleAddService(w http.ResponseWriter, r *http.Request) {
	var req AddServiceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	svc, err := h.catalog.AddService(r.Context(), req.Code, req.Name, decimal.NewFromFloat(req.PricePerKg), req.EstimatedDays)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to add service")
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to add service"))
		return
	}
	respondWithJSON(w, http.StatusCreated, svc)
}

func (h *Handler) handleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.Services(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list services")
		respondWithError(w, http.StatusInternalServerError, "Failed to list services")
		return
	}
	respondWithJSON(w, http.StatusOK, services)
}

func (h *Handler) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var req AddCustomerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cust, err := h.catalog.AddCustomer(r.Context(), req.Name, req.Phone)
	if errors.Is(err, catalog.ErrAlreadyRegistered) {
		// Advisory conflict: the existing record is returned so the
		// caller can proceed under its id.
		respondWithJSON(w, http.StatusConflict, map[string]any{
			"error":    "Customer already registered",
			"existing": cust,
		})
		return
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to add customer")
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to add customer"))
		return
	}
	respondWithJSON(w, http.StatusCreated, cust)
}

func (h *Handler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.catalog.Customers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list customers")
		respondWithError(w, http.StatusInternalServerError, "Failed to list customers")
		return
	}
	respondWithJSON(w, http.StatusOK, customers)
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if req.CustomerID == "" && req.CustomerName == "" {
		respondWithError(w, http.StatusBadRequest, "Either customer_id or customer_name is required")
		return
	}

	var cust catalog.Customer
	var err error
	if req.CustomerID != "" {
		cust, err = h.catalog.CustomerByID(r.Context(), req.CustomerID)
	} else {
		cust, err = h.catalog.AddCustomer(r.Context(), req.CustomerName, req.Phone)
		if errors.Is(err, catalog.ErrAlreadyRegistered) {
			err = nil
		}
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to resolve customer for order")
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to resolve customer"))
		return
	}

	svc, err := h.catalog.ServiceByCode(r.Context(), req.ServiceCode)
	if err != nil {
		log.Warn().Err(err).Str("service_code", req.ServiceCode).Msg("Failed to resolve service for order")
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to resolve service"))
		return
	}

	o, err := h.orders.Create(r.Context(), cust, svc, req.WeightKg, req.Notes)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create order")
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to create order"))
		return
	}
	respondWithJSON(w, http.StatusCreated, o)
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	filter := order.Status(r.URL.Query().Get("status"))
	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders")
		respondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to get order"))
		return
	}
	respondWithJSON(w, http.StatusOK, o)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	o, change, err := h.orders.UpdateStatus(r.Context(), id, order.Status(req.Target))
	if err != nil {
		log.Warn().Err(err).Str("order_id", id).Str("target", req.Target).Msg("Failed to update order status")
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to update order status"))
		return
	}
	respondWithJSON(w, http.StatusOK, StatusChangeResponse{
		Order:    *o,
		LateDays: change.LateDays,
		LateFee:  change.LateFee.String(),
	})
}

func (h *Handler) handlePayOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req PayOrderRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	confirm := func(totalDue, amount decimal.Decimal) bool { return req.ConfirmPartial }
	o, result, _, err := h.orders.Pay(r.Context(), id, decimal.NewFromFloat(req.Amount), confirm)
	if err != nil {
		log.Warn().Err(err).Str("order_id", id).Msg("Failed to pay order")
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to pay order"))
		return
	}
	respondWithJSON(w, http.StatusOK, PaymentResponse{
		Order:    *o,
		TotalDue: result.TotalDue.String(),
		Partial:  result.Partial,
	})
}

func (h *Handler) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := h.orders.Receipt(r.Context(), id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessage(err, "Failed to render receipt"))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Error().Err(err).Msg("Failed to write receipt response")
	}
}

func (h *Handler) handleIncomeReport(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), "")
	if err != nil {
		log.Error().Err(err).Msg("Failed to load orders for income report")
		respondWithError(w, http.StatusInternalServerError, "Failed to build income report")
		return
	}

	byDate := report.IncomeByDate(orders)
	records := make([]DateIncomeRecord, 0, len(byDate))
	for _, entry := range byDate {
		records = append(records, DateIncomeRecord{Date: entry.Date.String(), Amount: entry.Amount.String()})
	}
	respondWithJSON(w, http.StatusOK, IncomeReportResponse{
		Total:  report.TotalIncome(orders).String(),
		ByDate: records,
	})
}

// decodeAndValidate decodes the JSON body into dst and validates it,
// writing the error response itself on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		log.Warn().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request payload: %v", err))
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: formatValidationErrors(validationErrors),
			})
		} else {
			log.Error().Err(err).Msg("Unexpected error type during validation")
			respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		}
		return false
	}
	return true
}
