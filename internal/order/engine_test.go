package order_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
)

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
	}
}

var (
	testCustomer = catalog.Customer{ID: "CU-test01", Name: "Budi Santoso", Phone: "081234567890"}
	testService  = catalog.Service{Code: "SV-CG", Name: "Wash & Iron (Regular)", PricePerKg: decimal.NewFromInt(10000), EstimatedDays: 2}
)

func TestEngine_NewOrder(t *testing.T) {
	e := order.NewEngineWithNow(decimal.NewFromInt(5000), fixedNow(2024, time.January, 8))

	tests := []struct {
		name     string
		weightKg float64
		wantErr  error
	}{
		{name: "zero_weight", weightKg: 0, wantErr: order.ErrInvalidWeight},
		{name: "negative_weight", weightKg: -1.2, wantErr: order.ErrInvalidWeight},
		{name: "valid_weight", weightKg: 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := e.NewOrder(testCustomer, testService, tt.weightKg, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, o)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, o)

			assert.Regexp(t, `^OR-[0-9a-f]{8}$`, o.ID)
			assert.Equal(t, "CU-test01", o.CustomerID)
			assert.Equal(t, "Budi Santoso", o.CustomerName)
			assert.Equal(t, "SV-CG", o.ServiceCode)
			assert.Equal(t, "Wash & Iron (Regular)", o.ServiceName)
			assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(35000)), "subtotal = %s", o.Subtotal)
			assert.Equal(t, order.NewDate(2024, time.January, 8), o.Received)
			assert.Equal(t, order.NewDate(2024, time.January, 10), o.ExpectedReady)
			assert.Nil(t, o.ActualReady)
			assert.Nil(t, o.Delivered)
			assert.Equal(t, order.StatusReceived, o.Status)
			assert.False(t, o.Paid)
			assert.True(t, o.PaidAmount.IsZero())
			assert.True(t, o.DamageFee.IsZero())
			assert.True(t, o.LateFeePerDay.Equal(decimal.NewFromInt(5000)))
		})
	}
}

func TestEngine_NewOrder_SubtotalRounding(t *testing.T) {
	e := order.NewEngineWithNow(decimal.NewFromInt(5000), fixedNow(2024, time.January, 8))
	svc := catalog.Service{Code: "SV-X", Name: "Odd pricing", PricePerKg: decimal.NewFromInt(9999), EstimatedDays: 1}

	o, err := e.NewOrder(testCustomer, svc, 1.555, "")
	require.NoError(t, err)
	// 1.555 * 9999 = 15548.445, rounded half away from zero.
	assert.True(t, o.Subtotal.Equal(decimal.RequireFromString("15548.45")), "subtotal = %s", o.Subtotal)
}

func TestEngine_AdvanceStatus(t *testing.T) {
	today := order.NewDate(2024, time.January, 10)

	tests := []struct {
		name        string
		status      order.Status
		target      order.Status
		wantErr     bool
		wantActual  bool
		wantDeliver bool
	}{
		{name: "received_to_processing", status: order.StatusReceived, target: order.StatusProcessing},
		{name: "processing_to_ready", status: order.StatusProcessing, target: order.StatusReady, wantActual: true},
		{name: "received_to_ready", status: order.StatusReceived, target: order.StatusReady, wantActual: true},
		{name: "ready_to_delivered", status: order.StatusReady, target: order.StatusDelivered, wantDeliver: true},
		{name: "received_to_delivered_rejected", status: order.StatusReceived, target: order.StatusDelivered, wantErr: true},
		{name: "processing_to_delivered_rejected", status: order.StatusProcessing, target: order.StatusDelivered, wantErr: true},
		// No precondition guards the PROCESSING transition.
		{name: "delivered_to_processing", status: order.StatusDelivered, target: order.StatusProcessing},
		{name: "received_target_rejected", status: order.StatusReceived, target: order.StatusReceived, wantErr: true},
		{name: "unknown_target_rejected", status: order.StatusReceived, target: order.Status("SHIPPED"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := order.NewEngineWithNow(decimal.NewFromInt(5000), fixedNow(2024, time.January, 10))
			o := &order.Order{
				ID:            "OR-test01",
				Status:        tt.status,
				ExpectedReady: today,
				LateFeePerDay: decimal.NewFromInt(5000),
				Subtotal:      decimal.NewFromInt(35000),
			}

			change, err := e.AdvanceStatus(o, tt.target)
			if tt.wantErr {
				assert.ErrorIs(t, err, order.ErrIllegalTransition)
				assert.Equal(t, tt.status, o.Status, "status must not regress on a rejected transition")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, o.Status)
			assert.Equal(t, tt.status, change.From)
			assert.Equal(t, tt.target, change.To)
			if tt.wantActual {
				require.NotNil(t, o.ActualReady)
				assert.Equal(t, today, *o.ActualReady)
			}
			if tt.wantDeliver {
				require.NotNil(t, o.Delivered)
				assert.Equal(t, today, *o.Delivered)
			}
		})
	}
}

func TestEngine_LateFee(t *testing.T) {
	tests := []struct {
		name          string
		deliveredOn   order.Date
		wantLateDays  int
		wantDamageFee decimal.Decimal
	}{
		{
			name:          "three_days_late",
			deliveredOn:   order.NewDate(2024, time.January, 13),
			wantLateDays:  3,
			wantDamageFee: decimal.NewFromInt(15000),
		},
		{
			name:          "on_time",
			deliveredOn:   order.NewDate(2024, time.January, 10),
			wantDamageFee: decimal.Zero,
		},
		{
			name:          "early",
			deliveredOn:   order.NewDate(2024, time.January, 9),
			wantDamageFee: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := order.NewEngineWithNow(decimal.NewFromInt(5000), fixedNow(tt.deliveredOn.Year, tt.deliveredOn.Month, tt.deliveredOn.Day))
			o := &order.Order{
				ID:            "OR-test01",
				Status:        order.StatusReady,
				ExpectedReady: order.NewDate(2024, time.January, 10),
				LateFeePerDay: decimal.NewFromInt(5000),
				Subtotal:      decimal.NewFromInt(35000),
			}

			change, err := e.AdvanceStatus(o, order.StatusDelivered)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLateDays, change.LateDays)
			assert.True(t, o.DamageFee.Equal(tt.wantDamageFee), "damage fee = %s", o.DamageFee)
			assert.True(t, change.LateFee.Equal(tt.wantDamageFee), "late fee = %s", change.LateFee)
			assert.True(t, order.TotalDue(o).Equal(decimal.NewFromInt(35000).Add(tt.wantDamageFee)))
		})
	}
}

func TestEngine_AcceptPayment(t *testing.T) {
	e := order.NewEngineWithNow(decimal.NewFromInt(5000), fixedNow(2024, time.January, 10))

	newOrder := func() *order.Order {
		return &order.Order{
			ID:         "OR-test01",
			Status:     order.StatusDelivered,
			Subtotal:   decimal.NewFromInt(35000),
			DamageFee:  decimal.Zero,
			PaidAmount: decimal.Zero,
		}
	}

	t.Run("already_paid", func(t *testing.T) {
		o := newOrder()
		o.Paid = true
		o.PaidAmount = decimal.NewFromInt(10000)

		result, err := e.AcceptPayment(o, decimal.NewFromInt(35000), nil)
		assert.ErrorIs(t, err, order.ErrAlreadyPaid)
		assert.Nil(t, result)
		assert.True(t, o.PaidAmount.Equal(decimal.NewFromInt(10000)), "paid amount must stay unchanged")
	})

	t.Run("partial_without_confirmation", func(t *testing.T) {
		o := newOrder()

		_, err := e.AcceptPayment(o, decimal.NewFromInt(20000), nil)
		assert.ErrorIs(t, err, order.ErrPaymentDeclined)
		assert.False(t, o.Paid)
		assert.True(t, o.PaidAmount.IsZero())
	})

	t.Run("partial_declined", func(t *testing.T) {
		o := newOrder()
		decline := func(totalDue, amount decimal.Decimal) bool { return false }

		_, err := e.AcceptPayment(o, decimal.NewFromInt(20000), decline)
		assert.ErrorIs(t, err, order.ErrPaymentDeclined)
		assert.False(t, o.Paid)
	})

	t.Run("partial_confirmed", func(t *testing.T) {
		o := newOrder()
		var confirmedDue, confirmedAmount decimal.Decimal
		confirm := func(totalDue, amount decimal.Decimal) bool {
			confirmedDue, confirmedAmount = totalDue, amount
			return true
		}

		result, err := e.AcceptPayment(o, decimal.NewFromInt(20000), confirm)
		require.NoError(t, err)
		assert.True(t, o.Paid)
		assert.True(t, o.PaidAmount.Equal(decimal.NewFromInt(20000)), "recorded amount must be exact, no top-up")
		assert.True(t, result.Partial)
		assert.True(t, confirmedDue.Equal(decimal.NewFromInt(35000)))
		assert.True(t, confirmedAmount.Equal(decimal.NewFromInt(20000)))
	})

	t.Run("full_payment", func(t *testing.T) {
		o := newOrder()
		o.DamageFee = decimal.NewFromInt(15000)

		result, err := e.AcceptPayment(o, decimal.NewFromInt(50000), nil)
		require.NoError(t, err)
		assert.True(t, o.Paid)
		assert.False(t, result.Partial)
		assert.True(t, result.TotalDue.Equal(decimal.NewFromInt(50000)))
	})
}

func TestEngine_Lifecycle(t *testing.T) {
	current := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	e := order.NewEngineWithNow(decimal.NewFromInt(5000), func() time.Time { return current })

	o, err := e.NewOrder(testCustomer, testService, 3.5, "work clothes")
	require.NoError(t, err)
	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(35000)))
	subtotalAtCreation := o.Subtotal

	_, err = e.AdvanceStatus(o, order.StatusProcessing)
	require.NoError(t, err)

	current = current.AddDate(0, 0, 1)
	_, err = e.AdvanceStatus(o, order.StatusReady)
	require.NoError(t, err)

	current = current.AddDate(0, 0, 1) // expected ready date, on time
	change, err := e.AdvanceStatus(o, order.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, 0, change.LateDays)
	assert.True(t, o.DamageFee.IsZero())
	assert.True(t, order.TotalDue(o).Equal(decimal.NewFromInt(35000)))

	result, err := e.AcceptPayment(o, decimal.NewFromInt(35000), nil)
	require.NoError(t, err)
	assert.True(t, o.Paid)
	assert.False(t, result.Partial)
	assert.True(t, o.Subtotal.Equal(subtotalAtCreation), "subtotal is fixed at creation")

	// Terminal for the payment flag.
	_, err = e.AcceptPayment(o, decimal.NewFromInt(1), nil)
	assert.True(t, errors.Is(err, order.ErrAlreadyPaid))
}
