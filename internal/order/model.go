package order

import (
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusReceived   Status = "RECEIVED"
	StatusProcessing Status = "PROCESSING"
	StatusReady      Status = "READY"
	StatusDelivered  Status = "DELIVERED"
)

func (s Status) String() string {
	return string(s)
}

// DefaultLateFeePerDay is the per-day penalty applied when an order is
// picked up after its expected ready date.
var DefaultLateFeePerDay = decimal.NewFromInt(5000)

// Order is one laundry transaction from intake to paid delivery.
// Customer and service fields are point-in-time snapshots taken at
// creation; later catalog edits do not propagate.
type Order struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	ServiceCode   string          `json:"serviceCode"`
	ServiceName   string          `json:"serviceName"`
	WeightKg      float64         `json:"weightKg"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Notes         string          `json:"notes"`
	Received      Date            `json:"receivedDate"`
	ExpectedReady Date            `json:"expectedReadyDate"`
	ActualReady   *Date           `json:"actualReadyDate"`
	Delivered     *Date           `json:"deliveredDate"`
	Status        Status          `json:"status"`
	Paid          bool            `json:"paid"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	LateFeePerDay decimal.Decimal `json:"lateFeePerDay"`
	DamageFee     decimal.Decimal `json:"damageFee"`
}

// TotalDue is the amount owed for the order: subtotal plus accumulated fees.
func TotalDue(o *Order) decimal.Decimal {
	return o.Subtotal.Add(o.DamageFee)
}
