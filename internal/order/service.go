package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
)

var ErrOrderNotFound = errors.New("order not found")

// Store is the slice of the record store the order service needs.
// Collections are loaded and saved whole.
type Store interface {
	LoadOrders(ctx context.Context) ([]Order, error)
	SaveOrders(ctx context.Context, orders []Order) error
}

// ReceiptSink renders an order snapshot into receipt text and persists
// it, returning the text.
type ReceiptSink interface {
	Emit(o Order) (string, error)
}

// Service orchestrates the order engine over the record store. Every
// mutation is a whole-collection load-modify-save; a failed operation
// leaves the persisted state unchanged.
type Service struct {
	store    Store
	engine   *Engine
	receipts ReceiptSink
}

func NewService(store Store, engine *Engine, receipts ReceiptSink) *Service {
	return &Service{store: store, engine: engine, receipts: receipts}
}

func (s *Service) Create(ctx context.Context, cust catalog.Customer, svc catalog.Service, weightKg float64, notes string) (*Order, error) {
	o, err := s.engine.NewOrder(cust, svc, weightKg, notes)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load orders: %w", err)
	}
	orders = append(orders, *o)
	if err := s.store.SaveOrders(ctx, orders); err != nil {
		return nil, fmt.Errorf("service: failed to save orders: %w", err)
	}

	log.Info().
		Str("order_id", o.ID).
		Str("customer_id", o.CustomerID).
		Str("service_code", o.ServiceCode).
		Str("subtotal", o.Subtotal.String()).
		Msg("service: order created")
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	orders, err := s.store.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load orders: %w", err)
	}
	for i := range orders {
		if orders[i].ID == id {
			o := orders[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("service: order %q: %w", id, ErrOrderNotFound)
}

// List returns all orders in insertion order, optionally filtered by
// status (empty filter means all).
func (s *Service) List(ctx context.Context, filter Status) ([]Order, error) {
	orders, err := s.store.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load orders: %w", err)
	}
	if filter == "" {
		return orders, nil
	}
	filtered := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == filter {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, target Status) (*Order, *StatusChange, error) {
	orders, err := s.store.LoadOrders(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to load orders: %w", err)
	}

	i := indexByID(orders, id)
	if i < 0 {
		return nil, nil, fmt.Errorf("service: order %q: %w", id, ErrOrderNotFound)
	}

	o := orders[i]
	change, err := s.engine.AdvanceStatus(&o, target)
	if err != nil {
		log.Warn().Str("order_id", id).Str("target", target.String()).Err(err).Msg("service: status transition rejected")
		return nil, nil, err
	}

	orders[i] = o
	if err := s.store.SaveOrders(ctx, orders); err != nil {
		return nil, nil, fmt.Errorf("service: failed to save orders: %w", err)
	}

	log.Info().
		Str("order_id", o.ID).
		Str("old_status", change.From.String()).
		Str("new_status", change.To.String()).
		Msg("service: order status updated")
	return &o, change, nil
}

// Pay records a payment and emits the receipt as a side effect. The
// receipt text is returned; a receipt write failure surfaces as an
// error, but the payment itself is already persisted at that point.
func (s *Service) Pay(ctx context.Context, id string, amount decimal.Decimal, confirm ConfirmFunc) (*Order, *PaymentResult, string, error) {
	orders, err := s.store.LoadOrders(ctx)
	if err != nil {
		return nil, nil, "", fmt.Errorf("service: failed to load orders: %w", err)
	}

	i := indexByID(orders, id)
	if i < 0 {
		return nil, nil, "", fmt.Errorf("service: order %q: %w", id, ErrOrderNotFound)
	}

	o := orders[i]
	result, err := s.engine.AcceptPayment(&o, amount, confirm)
	if err != nil {
		log.Warn().Str("order_id", id).Str("amount", amount.String()).Err(err).Msg("service: payment rejected")
		return nil, nil, "", err
	}

	orders[i] = o
	if err := s.store.SaveOrders(ctx, orders); err != nil {
		return nil, nil, "", fmt.Errorf("service: failed to save orders: %w", err)
	}

	log.Info().
		Str("order_id", o.ID).
		Str("paid_amount", o.PaidAmount.String()).
		Bool("partial", result.Partial).
		Msg("service: payment recorded")

	text, err := s.receipts.Emit(o)
	if err != nil {
		log.Error().Str("order_id", o.ID).Err(err).Msg("service: failed to emit receipt")
		return &o, result, "", fmt.Errorf("service: failed to emit receipt: %w", err)
	}
	return &o, result, text, nil
}

// Receipt re-emits the receipt for an existing order.
func (s *Service) Receipt(ctx context.Context, id string) (string, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	text, err := s.receipts.Emit(*o)
	if err != nil {
		return "", fmt.Errorf("service: failed to emit receipt: %w", err)
	}
	return text, nil
}

func indexByID(orders []Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
