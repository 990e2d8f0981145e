// Package cli drives the shop console: a numbered menu dispatching to
// the catalog, order and report operations. It owns all prompting and
// printing; the domain packages stay free of console I/O.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
	"github.com/vasiliy-maslov/laundry-service/internal/store"
)

type command int

const (
	cmdExit command = iota
	cmdAddService
	cmdListServices
	cmdAddCustomer
	cmdListCustomers
	cmdCreateOrder
	cmdListOrders
	cmdOrderDetail
	cmdUpdateStatus
	cmdPayOrder
	cmdIncomeReport
	cmdPendingReport
	cmdSeed
	cmdPrintReceipt
)

var menu = []struct {
	key   string
	label string
	cmd   command
}{
	{"1", "Add service", cmdAddService},
	{"2", "List services", cmdListServices},
	{"3", "Add customer", cmdAddCustomer},
	{"4", "List customers", cmdListCustomers},
	{"5", "Create order (laundry intake)", cmdCreateOrder},
	{"6", "List orders", cmdListOrders},
	{"7", "Order detail", cmdOrderDetail},
	{"8", "Update order status", cmdUpdateStatus},
	{"9", "Pay order", cmdPayOrder},
	{"10", "Income report", cmdIncomeReport},
	{"11", "Pending / all orders report", cmdPendingReport},
	{"12", "Seed sample data (demo)", cmdSeed},
	{"13", "Reprint receipt", cmdPrintReceipt},
	{"0", "Exit", cmdExit},
}

type App struct {
	store   store.RecordStore
	catalog *catalog.Catalog
	orders  *order.Service
	in      *bufio.Reader
	out     io.Writer
}

func NewApp(st store.RecordStore, cat *catalog.Catalog, orders *order.Service, in io.Reader, out io.Writer) *App {
	return &App{
		store:   st,
		catalog: cat,
		orders:  orders,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run loops over the menu until exit or end of input. Action failures
// are printed and the session continues.
func (a *App) Run(ctx context.Context) error {
	for {
		a.printMenu()
		choice, err := a.prompt("Select: ")
		if err != nil {
			return err
		}

		cmd, ok := parseCommand(choice)
		if !ok {
			fmt.Fprintln(a.out, "Invalid choice.")
			continue
		}
		if cmd == cmdExit {
			fmt.Fprintln(a.out, "Bye!")
			return nil
		}

		if err := a.dispatch(ctx, cmd); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintf(a.out, "Action failed: %v\n", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd command) error {
	switch cmd {
	case cmdAddService:
		return a.addService(ctx)
	case cmdListServices:
		return a.listServices(ctx)
	case cmdAddCustomer:
		return a.addCustomer(ctx)
	case cmdListCustomers:
		return a.listCustomers(ctx)
	case cmdCreateOrder:
		return a.createOrder(ctx)
	case cmdListOrders:
		return a.listOrders(ctx, "")
	case cmdOrderDetail:
		return a.orderDetail(ctx)
	case cmdUpdateStatus:
		return a.updateStatus(ctx)
	case cmdPayOrder:
		return a.payOrder(ctx)
	case cmdIncomeReport:
		return a.incomeReport(ctx)
	case cmdPendingReport:
		return a.pendingReport(ctx)
	case cmdSeed:
		return a.seed(ctx)
	case cmdPrintReceipt:
		return a.printReceipt(ctx)
	}
	return nil
}

func parseCommand(choice string) (command, bool) {
	for _, entry := range menu {
		if entry.key == choice {
			return entry.cmd, true
		}
	}
	return 0, false
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out, "\n=== KILO LAUNDRY SHOP CONSOLE ===")
	for _, entry := range menu {
		fmt.Fprintf(a.out, "%s. %s\n", entry.key, entry.label)
	}
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
