package catalog

import "github.com/shopspring/decimal"

// Service is a laundry service definition, priced per kilogram.
type Service struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	PricePerKg    decimal.Decimal `json:"pricePerKg"`
	EstimatedDays int             `json:"estimatedDays"`
}

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
