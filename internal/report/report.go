// Package report aggregates paid orders into income summaries. It is
// read-only over the order collection.
package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
)

type DateIncome struct {
	Date   order.Date
	Amount decimal.Decimal
}

// TotalIncome sums paidAmount over all paid orders.
func TotalIncome(orders []order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Paid {
			total = total.Add(o.PaidAmount)
		}
	}
	return total
}

// IncomeByDate groups paid orders by delivered date, falling back to
// actual ready date, then received date. Entries are ordered by
// ascending date.
func IncomeByDate(orders []order.Order) []DateIncome {
	byDate := make(map[order.Date]decimal.Decimal)
	for _, o := range orders {
		if !o.Paid {
			continue
		}
		d := incomeDate(o)
		byDate[d] = byDate[d].Add(o.PaidAmount)
	}

	out := make([]DateIncome, 0, len(byDate))
	for d, amount := range byDate {
		out = append(out, DateIncome{Date: d, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func incomeDate(o order.Order) order.Date {
	switch {
	case o.Delivered != nil:
		return *o.Delivered
	case o.ActualReady != nil:
		return *o.ActualReady
	default:
		return o.Received
	}
}
