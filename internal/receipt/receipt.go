// Package receipt renders an order snapshot into the fixed-layout
// receipt text and persists it as one file per order.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
)

const currencyPrefix = "Rp "

var divider = strings.Repeat("=", 30)

// Render is a pure function of the order snapshot: identical snapshots
// produce byte-identical text.
func Render(o order.Order) string {
	lines := []string{
		divider,
		"     KILO LAUNDRY RECEIPT",
		divider,
		"Order ID       : " + o.ID,
		"Customer       : " + o.CustomerName,
		"Service        : " + o.ServiceName + " (" + o.ServiceCode + ")",
		"Weight         : " + formatWeight(o.WeightKg) + " kg",
		"Price per kg   : " + FormatCurrency(unitPrice(o)),
		"Subtotal       : " + FormatCurrency(o.Subtotal),
		"",
		"Extra fees     : " + FormatCurrency(o.DamageFee),
		"Total due      : " + FormatCurrency(order.TotalDue(&o)),
		"",
		"Received       : " + o.Received.String(),
		"Expected ready : " + o.ExpectedReady.String(),
		"Delivered      : " + dateOrDash(o.Delivered),
		"",
		statusLine(o),
		divider,
		"  THANK YOU FOR YOUR VISIT!",
		divider,
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatCurrency renders an amount integer-rounded with "."-grouped
// thousands, e.g. "Rp 35.000".
func FormatCurrency(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}
	return currencyPrefix + sign + grouped.String()
}

// FileName derives the receipt artifact name from the order id.
func FileName(orderID string) string {
	return "receipt_" + orderID + ".txt"
}

// FileWriter persists rendered receipts under a dedicated directory.
type FileWriter struct {
	dir string
}

func NewFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("receipt: failed to create receipt dir %s: %w", dir, err)
	}
	return &FileWriter{dir: dir}, nil
}

// Emit renders the order and writes the exact rendered bytes to
// receipt_<orderID>.txt, overwriting any previous artifact.
func (w *FileWriter) Emit(o order.Order) (string, error) {
	text := Render(o)
	path := filepath.Join(w.dir, FileName(o.ID))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("receipt: failed to write %s: %w", path, err)
	}
	log.Debug().Str("order_id", o.ID).Str("path", path).Msg("receipt: receipt written")
	return text, nil
}

func unitPrice(o order.Order) decimal.Decimal {
	if o.WeightKg > 0 {
		return o.Subtotal.Div(decimal.NewFromFloat(o.WeightKg))
	}
	return o.Subtotal
}

func formatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}

func dateOrDash(d *order.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func statusLine(o order.Order) string {
	if o.Paid {
		return "Status: " + o.Status.String() + " & PAID"
	}
	return "Status: " + o.Status.String()
}
