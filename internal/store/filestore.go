package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vasiliy-maslov/laundry-service/internal/catalog"
	"github.com/vasiliy-maslov/laundry-service/internal/order"
)

const (
	servicesFile  = "services.json"
	customersFile = "customers.json"
	ordersFile    = "orders.json"
)

// FileStore keeps one JSON file per collection under a data directory.
// Saves rewrite the whole file.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: failed to create data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) LoadServices(ctx context.Context) ([]catalog.Service, error) {
	return loadJSON[catalog.Service](s.path(servicesFile))
}

func (s *FileStore) SaveServices(ctx context.Context, services []catalog.Service) error {
	return saveJSON(s.path(servicesFile), services)
}

func (s *FileStore) LoadCustomers(ctx context.Context) ([]catalog.Customer, error) {
	return loadJSON[catalog.Customer](s.path(customersFile))
}

func (s *FileStore) SaveCustomers(ctx context.Context, customers []catalog.Customer) error {
	return saveJSON(s.path(customersFile), customers)
}

func (s *FileStore) LoadOrders(ctx context.Context) ([]order.Order, error) {
	return loadJSON[order.Order](s.path(ordersFile))
}

func (s *FileStore) SaveOrders(ctx context.Context, orders []order.Order) error {
	return saveJSON(s.path(ordersFile), orders)
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store: failed to parse %s: %w", path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func saveJSON[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("store: failed to write %s: %w", path, err)
	}
	return nil
}
