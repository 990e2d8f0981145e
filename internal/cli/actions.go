package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
	"github.com/vasiliy-maslov/laundry-service/internal/receipt"
	"github.com/vasiliy-maslov/laundry-service/internal/report"
)

func (a *App) addService(ctx context.Context) error {
	code, err := a.prompt("Service code (enter = auto): ")
	if err != nil {
		return err
	}
	name, err := a.prompt("Service name (e.g. 'Wash & Iron Express'): ")
	if err != nil {
		return err
	}
	priceStr, err := a.prompt("Price per kg (e.g. 10000): ")
	if err != nil {
		return err
	}
	price, perr := decimal.NewFromString(priceStr)
	if perr != nil {
		return fmt.Errorf("price %q: %w", priceStr, catalog.ErrInvalidNumber)
	}
	daysStr, err := a.prompt("Estimated turnaround (days): ")
	if err != nil {
		return err
	}
	days, perr := strconv.Atoi(daysStr)
	if perr != nil {
		return fmt.Errorf("days %q: %w", daysStr, catalog.ErrInvalidNumber)
	}

	svc, err := a.catalog.AddService(ctx, code, name, price, days)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Service %q (%s) added.\n", svc.Name, svc.Code)
	return nil
}

func (a *App) listServices(ctx context.Context) error {
	services, err := a.catalog.Services(ctx)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		fmt.Fprintln(a.out, "No services registered yet.")
		return nil
	}
	fmt.Fprintf(a.out, "%-10s %-30s %10s %8s\n", "Code", "Service", "Price/kg", "Days")
	fmt.Fprintln(a.out, divider(65))
	for _, s := range services {
		fmt.Fprintf(a.out, "%-10s %-30s %10s %8d\n", s.Code, truncate(s.Name, 30), s.PricePerKg.StringFixed(0), s.EstimatedDays)
	}
	return nil
}

func (a *App) addCustomer(ctx context.Context) error {
	name, err := a.prompt("Customer name: ")
	if err != nil {
		return err
	}
	phone, err := a.prompt("Phone (optional): ")
	if err != nil {
		return err
	}

	cust, err := a.catalog.AddCustomer(ctx, name, phone)
	if errors.Is(err, catalog.ErrAlreadyRegistered) {
		fmt.Fprintf(a.out, "Customer already registered: %s\n", cust.ID)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Customer added. ID: %s\n", cust.ID)
	return nil
}

func (a *App) listCustomers(ctx context.Context) error {
	customers, err := a.catalog.Customers(ctx)
	if err != nil {
		return err
	}
	if len(customers) == 0 {
		fmt.Fprintln(a.out, "No customers yet.")
		return nil
	}
	fmt.Fprintf(a.out, "%-12s %-25s %-15s\n", "ID", "Name", "Phone")
	fmt.Fprintln(a.out, divider(55))
	for _, c := range customers {
		fmt.Fprintf(a.out, "%-12s %-25s %-15s\n", c.ID, truncate(c.Name, 25), truncate(c.Phone, 15))
	}
	return nil
}

func (a *App) createOrder(ctx context.Context) error {
	services, err := a.catalog.Services(ctx)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		fmt.Fprintln(a.out, "No services registered. Add a service first.")
		return nil
	}

	if err := a.listCustomers(ctx); err != nil {
		return err
	}
	useExisting, err := a.prompt("Use existing customer? (y/n): ")
	if err != nil {
		return err
	}

	var cust catalog.Customer
	if useExisting == "y" {
		id, err := a.prompt("Customer ID: ")
		if err != nil {
			return err
		}
		cust, err = a.catalog.CustomerByID(ctx, id)
		if err != nil {
			return err
		}
	} else {
		name, err := a.prompt("New customer name: ")
		if err != nil {
			return err
		}
		phone, err := a.prompt("Phone (optional): ")
		if err != nil {
			return err
		}
		cust, err = a.catalog.AddCustomer(ctx, name, phone)
		if err != nil && !errors.Is(err, catalog.ErrAlreadyRegistered) {
			return err
		}
		fmt.Fprintf(a.out, "Customer ID: %s\n", cust.ID)
	}

	if err := a.listServices(ctx); err != nil {
		return err
	}
	code, err := a.prompt("Service code: ")
	if err != nil {
		return err
	}
	svc, err := a.catalog.ServiceByCode(ctx, code)
	if err != nil {
		return err
	}

	weightStr, err := a.prompt("Weight in kg (decimals allowed, e.g. 2.5): ")
	if err != nil {
		return err
	}
	weight, perr := strconv.ParseFloat(weightStr, 64)
	if perr != nil {
		return fmt.Errorf("weight %q: %w", weightStr, order.ErrInvalidWeight)
	}
	notes, err := a.prompt("Notes (stains, fragile items, ...) (optional): ")
	if err != nil {
		return err
	}

	o, err := a.orders.Create(ctx, cust, svc, weight, notes)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order created. ID: %s\n", o.ID)
	fmt.Fprintf(a.out, "Expected ready: %s  | Total: %s\n", o.ExpectedReady, receipt.FormatCurrency(o.Subtotal))
	return nil
}

func (a *App) listOrders(ctx context.Context, filter order.Status) error {
	orders, err := a.orders.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")
		return nil
	}
	fmt.Fprintf(a.out, "%-12s %-20s %-8s %7s %10s %-10s %-10s\n", "ID", "Customer", "Svc", "Wt(kg)", "Total", "Status", "Received")
	fmt.Fprintln(a.out, divider(90))
	for _, o := range orders {
		fmt.Fprintf(a.out, "%-12s %-20s %-8s %7.1f %10s %-10s %-10s\n",
			o.ID, truncate(o.CustomerName, 20), o.ServiceCode, o.WeightKg, o.Subtotal.StringFixed(0), o.Status, o.Received)
	}
	fmt.Fprintln(a.out, divider(90))
	return nil
}

func (a *App) orderDetail(ctx context.Context) error {
	id, err := a.prompt("Order ID: ")
	if err != nil {
		return err
	}
	o, err := a.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

func (a *App) updateStatus(ctx context.Context) error {
	if err := a.listOrders(ctx, ""); err != nil {
		return err
	}
	id, err := a.prompt("Order ID to update: ")
	if err != nil {
		return err
	}
	o, err := a.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Current status: %s\n", o.Status)
	fmt.Fprintln(a.out, "Target status: 1) PROCESSING  2) READY  3) DELIVERED")
	choice, err := a.prompt("Select status (1/2/3): ")
	if err != nil {
		return err
	}

	var target order.Status
	switch choice {
	case "1":
		target = order.StatusProcessing
	case "2":
		target = order.StatusReady
	case "3":
		target = order.StatusDelivered
	default:
		fmt.Fprintln(a.out, "Invalid choice.")
		return nil
	}

	updated, change, err := a.orders.UpdateStatus(ctx, id, target)
	if err != nil {
		return err
	}
	if change.LateFee.IsPositive() {
		fmt.Fprintf(a.out, "Late pickup: %d day(s) -> late fee: %s\n", change.LateDays, receipt.FormatCurrency(change.LateFee))
	}
	fmt.Fprintf(a.out, "Status changed to %s.\n", updated.Status)
	return nil
}

func (a *App) payOrder(ctx context.Context) error {
	if err := a.listOrders(ctx, order.StatusDelivered); err != nil {
		return err
	}
	id, err := a.prompt("Order ID to pay: ")
	if err != nil {
		return err
	}
	o, err := a.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total due: %s\n", receipt.FormatCurrency(order.TotalDue(o)))

	amountStr, err := a.prompt("Payment amount: ")
	if err != nil {
		return err
	}
	amount, perr := decimal.NewFromString(amountStr)
	if perr != nil {
		return fmt.Errorf("amount %q: %w", amountStr, catalog.ErrInvalidNumber)
	}

	var promptErr error
	confirm := func(totalDue, amount decimal.Decimal) bool {
		answer, err := a.prompt("Amount is short of the total. Accept as down payment? (y/n): ")
		if err != nil {
			promptErr = err
			return false
		}
		return answer == "y"
	}

	_, _, text, err := a.orders.Pay(ctx, id, amount, confirm)
	if promptErr != nil {
		return promptErr
	}
	if err != nil {
		if errors.Is(err, order.ErrPaymentDeclined) {
			fmt.Fprintln(a.out, "Payment cancelled.")
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Payment recorded. Thank you.")
	fmt.Fprintln(a.out, "\n"+text)
	return nil
}

func (a *App) incomeReport(ctx context.Context) error {
	orders, err := a.orders.List(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total income (paid orders): %s\n", receipt.FormatCurrency(report.TotalIncome(orders)))
	byDate := report.IncomeByDate(orders)
	if len(byDate) == 0 {
		return nil
	}
	fmt.Fprintln(a.out, "\nIncome by date:")
	for _, entry := range byDate {
		fmt.Fprintf(a.out, "%s: %s\n", entry.Date, receipt.FormatCurrency(entry.Amount))
	}
	return nil
}

func (a *App) pendingReport(ctx context.Context) error {
	fmt.Fprintln(a.out, "Orders not yet completed / picked up:")
	orders, err := a.orders.List(ctx, "")
	if err != nil {
		return err
	}
	pending := orders[:0:0]
	for _, o := range orders {
		if o.Status != order.StatusDelivered {
			pending = append(pending, o)
		}
	}
	if len(pending) == 0 {
		fmt.Fprintln(a.out, "Nothing pending.")
		return nil
	}
	fmt.Fprintf(a.out, "%-12s %-20s %-8s %-10s %-10s\n", "ID", "Customer", "Svc", "Status", "Expected")
	fmt.Fprintln(a.out, divider(70))
	for _, o := range pending {
		fmt.Fprintf(a.out, "%-12s %-20s %-8s %-10s %-10s\n", o.ID, truncate(o.CustomerName, 20), o.ServiceCode, o.Status, o.ExpectedReady)
	}
	return nil
}

func (a *App) printReceipt(ctx context.Context) error {
	id, err := a.prompt("Order ID to print: ")
	if err != nil {
		return err
	}
	text, err := a.orders.Receipt(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n"+text)
	return nil
}

func divider(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
