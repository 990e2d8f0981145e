package store

import (
	"context"

	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
)

// MemStore is an in-memory RecordStore used in tests and anywhere a
// throwaway store is handy. Loads and saves copy the slices so callers
// never alias the stored state.
type MemStore struct {
	services  []catalog.Service
	customers []catalog.Customer
	orders    []order.Order
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) LoadServices(ctx context.Context) ([]catalog.Service, error) {
	return append([]catalog.Service{}, s.services...), nil
}

func (s *MemStore) SaveServices(ctx context.Context, services []catalog.Service) error {
	s.services = append([]catalog.Service{}, services...)
	return nil
}

func (s *MemStore) LoadCustomers(ctx context.Context) ([]catalog.Customer, error) {
	return append([]catalog.Customer{}, s.customers...), nil
}

func (s *MemStore) SaveCustomers(ctx context.Context, customers []catalog.Customer) error {
	s.customers = append([]catalog.Customer{}, customers...)
	return nil
}

func (s *MemStore) LoadOrders(ctx context.Context) ([]order.Order, error) {
	return append([]order.Order{}, s.orders...), nil
}

func (s *MemStore) SaveOrders(ctx context.Context, orders []order.Order) error {
	s.orders = append([]order.Order{}, orders...)
	return nil
}
