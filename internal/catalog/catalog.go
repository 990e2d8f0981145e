package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/laundry-service/internal/ident"
)

var (
	ErrDuplicateCode = errors.New("service code already exists")
	ErrInvalidNumber = errors.New("invalid numeric value")
	ErrEmptyName     = errors.New("name must not be empty")
	// ErrAlreadyRegistered is advisory: it is returned together with the
	// existing customer record, and the caller may proceed under that id.
	ErrAlreadyRegistered = errors.New("customer already registered")
	ErrServiceNotFound   = errors.New("service not found")
	ErrCustomerNotFound  = errors.New("customer not found")
)

// Store is the slice of the record store the catalog needs.
type Store interface {
	LoadServices(ctx context.Context) ([]Service, error)
	SaveServices(ctx context.Context, services []Service) error
	LoadCustomers(ctx context.Context) ([]Customer, error)
	SaveCustomers(ctx context.Context, customers []Customer) error
}

// Catalog manages service definitions and customer identities.
// It only ever appends; nothing is edited or deleted.
type Catalog struct {
	store Store
}

func New(store Store) *Catalog {
	return &Catalog{store: store}
}

// AddService registers a new service. An empty code generates a fresh
// "SV-" identifier.
func (c *Catalog) AddService(ctx context.Context, code, name string, pricePerKg decimal.Decimal, estimatedDays int) (Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Service{}, fmt.Errorf("catalog: service name: %w", ErrEmptyName)
	}
	if !pricePerKg.IsPositive() {
		return Service{}, fmt.Errorf("catalog: price per kg must be positive, got %s: %w", pricePerKg, ErrInvalidNumber)
	}
	if estimatedDays < 0 {
		return Service{}, fmt.Errorf("catalog: estimated days must not be negative, got %d: %w", estimatedDays, ErrInvalidNumber)
	}

	services, err := c.store.LoadServices(ctx)
	if err != nil {
		return Service{}, fmt.Errorf("catalog: failed to load services: %w", err)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		code = ident.New("SV")
	}
	for _, s := range services {
		if s.Code == code {
			return Service{}, fmt.Errorf("catalog: code %q: %w", code, ErrDuplicateCode)
		}
	}

	svc := Service{
		Code:          code,
		Name:          name,
		PricePerKg:    pricePerKg,
		EstimatedDays: estimatedDays,
	}
	services = append(services, svc)
	if err := c.store.SaveServices(ctx, services); err != nil {
		return Service{}, fmt.Errorf("catalog: failed to save services: %w", err)
	}

	log.Info().Str("service_code", svc.Code).Str("service_name", svc.Name).Msg("catalog: service added")
	return svc, nil
}

// AddCustomer registers a customer. A customer counts as existing only
// when both name (case-insensitive) and phone match exactly; in that
// case the existing record is returned with ErrAlreadyRegistered.
func (c *Catalog) AddCustomer(ctx context.Context, name, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return Customer{}, fmt.Errorf("catalog: customer name: %w", ErrEmptyName)
	}

	customers, err := c.store.LoadCustomers(ctx)
	if err != nil {
		return Customer{}, fmt.Errorf("catalog: failed to load customers: %w", err)
	}

	for _, existing := range customers {
		if strings.EqualFold(existing.Name, name) && existing.Phone == phone {
			return existing, fmt.Errorf("catalog: customer %s: %w", existing.ID, ErrAlreadyRegistered)
		}
	}

	cust := Customer{ID: ident.New("CU"), Name: name, Phone: phone}
	customers = append(customers, cust)
	if err := c.store.SaveCustomers(ctx, customers); err != nil {
		return Customer{}, fmt.Errorf("catalog: failed to save customers: %w", err)
	}

	log.Info().Str("customer_id", cust.ID).Str("customer_name", cust.Name).Msg("catalog: customer added")
	return cust, nil
}

// Services returns all service definitions in insertion order.
func (c *Catalog) Services(ctx context.Context) ([]Service, error) {
	services, err := c.store.LoadServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load services: %w", err)
	}
	return services, nil
}

// Customers returns all customers in insertion order.
func (c *Catalog) Customers(ctx context.Context) ([]Customer, error) {
	customers, err := c.store.LoadCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to load customers: %w", err)
	}
	return customers, nil
}

func (c *Catalog) ServiceByCode(ctx context.Context, code string) (Service, error) {
	services, err := c.store.LoadServices(ctx)
	if err != nil {
		return Service{}, fmt.Errorf("catalog: failed to load services: %w", err)
	}
	for _, s := range services {
		if s.Code == code {
			return s, nil
		}
	}
	return Service{}, fmt.Errorf("catalog: service %q: %w", code, ErrServiceNotFound)
}

func (c *Catalog) CustomerByID(ctx context.Context, id string) (Customer, error) {
	customers, err := c.store.LoadCustomers(ctx)
	if err != nil {
		return Customer{}, fmt.Errorf("catalog: failed to load customers: %w", err)
	}
	for _, cust := range customers {
		if cust.ID == id {
			return cust, nil
		}
	}
	return Customer{}, fmt.Errorf("catalog: customer %q: %w", id, ErrCustomerNotFound)
}
