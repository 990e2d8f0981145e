package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/ident"
)

var (
	ErrInvalidWeight     = errors.New("weight must be greater than zero")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrAlreadyPaid       = errors.New("order already paid")
	ErrPaymentDeclined   = errors.New("payment declined")
)

// StatusChange describes the outcome of a status transition. LateDays
// and LateFee are non-zero only for a late DELIVERED transition.
type StatusChange struct {
	From     Status
	To       Status
	LateDays int
	LateFee  decimal.Decimal
}

type PaymentResult struct {
	TotalDue decimal.Decimal
	Amount   decimal.Decimal
	Partial  bool
}

// ConfirmFunc decides whether a payment short of the total due is
// accepted as a down payment.
type ConfirmFunc func(totalDue, amount decimal.Decimal) bool

// Engine owns order mutation: creation, the status state machine, fee
// accumulation and payment acceptance. It performs no I/O; every
// operation is deterministic given the injected clock.
type Engine struct {
	lateFeePerDay decimal.Decimal
	now           func() time.Time
}

func NewEngine(lateFeePerDay decimal.Decimal) *Engine {
	return NewEngineWithNow(lateFeePerDay, time.Now)
}

func NewEngineWithNow(lateFeePerDay decimal.Decimal, now func() time.Time) *Engine {
	return &Engine{lateFeePerDay: lateFeePerDay, now: now}
}

// NewOrder builds a RECEIVED order with the customer and service data
// snapshotted in. The subtotal is fixed here and never recomputed.
func (e *Engine) NewOrder(cust catalog.Customer, svc catalog.Service, weightKg float64, notes string) (*Order, error) {
	if !(weightKg > 0) {
		return nil, fmt.Errorf("engine: weight %v kg: %w", weightKg, ErrInvalidWeight)
	}

	today := DateOf(e.now())
	return &Order{
		ID:            ident.New("OR"),
		CustomerID:    cust.ID,
		CustomerName:  cust.Name,
		ServiceCode:   svc.Code,
		ServiceName:   svc.Name,
		WeightKg:      weightKg,
		Subtotal:      decimal.NewFromFloat(weightKg).Mul(svc.PricePerKg).Round(2),
		Notes:         notes,
		Received:      today,
		ExpectedReady: today.AddDays(svc.EstimatedDays),
		Status:        StatusReceived,
		Paid:          false,
		PaidAmount:    decimal.Zero,
		LateFeePerDay: e.lateFeePerDay,
		DamageFee:     decimal.Zero,
	}, nil
}

// AdvanceStatus moves the order to target.
//
// PROCESSING has no precondition. READY stamps the actual ready date.
// DELIVERED is only legal from READY; a late pickup folds the late fee
// into the damage fee and reports it through the returned StatusChange.
func (e *Engine) AdvanceStatus(o *Order, target Status) (*StatusChange, error) {
	change := &StatusChange{From: o.Status, To: target, LateFee: decimal.Zero}
	today := DateOf(e.now())

	switch target {
	case StatusProcessing:
		o.Status = StatusProcessing
	case StatusReady:
		ready := today
		o.ActualReady = &ready
		o.Status = StatusReady
	case StatusDelivered:
		if o.Status != StatusReady {
			return nil, fmt.Errorf("engine: order %s is %s, must be READY before DELIVERED: %w", o.ID, o.Status, ErrIllegalTransition)
		}
		lateDays := today.DaysSince(o.ExpectedReady)
		if lateDays > 0 {
			fee := o.LateFeePerDay.Mul(decimal.NewFromInt(int64(lateDays)))
			o.DamageFee = o.DamageFee.Add(fee).Round(2)
			change.LateDays = lateDays
			change.LateFee = fee
		}
		delivered := today
		o.Delivered = &delivered
		o.Status = StatusDelivered
	default:
		return nil, fmt.Errorf("engine: unknown target status %q: %w", target, ErrIllegalTransition)
	}

	return change, nil
}

// AcceptPayment records a payment against the order. An amount short of
// the total due is only taken when confirm approves it; a decline
// leaves the order untouched. The recorded amount stands as-is; any
// shortfall is discharged, no balance is tracked.
func (e *Engine) AcceptPayment(o *Order, amount decimal.Decimal, confirm ConfirmFunc) (*PaymentResult, error) {
	if o.Paid {
		return nil, fmt.Errorf("engine: order %s: %w", o.ID, ErrAlreadyPaid)
	}

	totalDue := TotalDue(o)
	partial := amount.LessThan(totalDue)
	if partial && (confirm == nil || !confirm(totalDue, amount)) {
		return nil, fmt.Errorf("engine: order %s, %s of %s due: %w", o.ID, amount, totalDue, ErrPaymentDeclined)
	}

	o.Paid = true
	o.PaidAmount = amount
	return &PaymentResult{TotalDue: totalDue, Amount: amount, Partial: partial}, nil
}
