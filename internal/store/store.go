// Package store persists the service, customer and order collections.
// Collections are always loaded and saved whole; there is no partial
// update, and concurrent writers are last-writer-wins.
package store

import (
	"context"

	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
)

// RecordStore is the full persistence contract. An absent or empty
// store yields empty collections, never an error.
type RecordStore interface {
	LoadServices(ctx context.Context) ([]catalog.Service, error)
	SaveServices(ctx context.Context, services []catalog.Service) error
	LoadCustomers(ctx context.Context) ([]catalog.Customer, error)
	SaveCustomers(ctx context.Context, customers []catalog.Customer) error
	LoadOrders(ctx context.Context) ([]order.Order, error)
	SaveOrders(ctx context.Context, orders []order.Order) error
}
