package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
)

// seed overwrites the store with a small demo dataset: three services,
// one customer and one freshly received order.
func (a *App) seed(ctx context.Context) error {
	services := []catalog.Service{
		{Code: "SV-CG", Name: "Wash & Iron (Regular)", PricePerKg: decimal.NewFromInt(10000), EstimatedDays: 2},
		{Code: "SV-EX", Name: "Wash & Iron (Express)", PricePerKg: decimal.NewFromInt(15000), EstimatedDays: 1},
		{Code: "SV-C", Name: "Dry Wash", PricePerKg: decimal.NewFromInt(8000), EstimatedDays: 2},
	}
	customers := []catalog.Customer{
		{ID: "CU-demo01", Name: "Budi Santoso", Phone: "081234567890"},
	}

	today := order.Today()
	orders := []order.Order{
		{
			ID:            "OR-demo01",
			CustomerID:    customers[0].ID,
			CustomerName:  customers[0].Name,
			ServiceCode:   services[0].Code,
			ServiceName:   services[0].Name,
			WeightKg:      3.5,
			Subtotal:      decimal.NewFromFloat(3.5).Mul(services[0].PricePerKg).Round(2),
			Notes:         "Work clothes, small bag",
			Received:      today,
			ExpectedReady: today.AddDays(services[0].EstimatedDays),
			Status:        order.StatusReceived,
			Paid:          false,
			PaidAmount:    decimal.Zero,
			LateFeePerDay: order.DefaultLateFeePerDay,
			DamageFee:     decimal.Zero,
		},
	}

	if err := a.store.SaveServices(ctx, services); err != nil {
		return err
	}
	if err := a.store.SaveCustomers(ctx, customers); err != nil {
		return err
	}
	if err := a.store.SaveOrders(ctx, orders); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Seed data written.")
	return nil
}
