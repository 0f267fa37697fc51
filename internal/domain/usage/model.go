// Package usage records billable inference operations per user.
package usage

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceKind labels what kind of inference call a record covers.
type ServiceKind string

const (
	ServiceImageGeneration ServiceKind = "image_generation"
	ServiceTextGeneration  ServiceKind = "text_generation"
)

// Record is a single usage ledger entry.
type Record struct {
	ID        uint            `json:"-"`
	PublicID  string          `json:"id"`
	UserID    uint            `json:"-"`
	Service   ServiceKind     `json:"service"`
	Provider  string          `json:"provider"`
	Model     string          `json:"model,omitempty"`
	Quantity  int             `json:"quantity"`
	CostUSD   decimal.Decimal `json:"cost_usd"`
	Metadata  map[string]any  `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Summary aggregates a user's ledger by service kind.
type Summary struct {
	Service      ServiceKind     `json:"service"`
	RequestCount int64           `json:"request_count"`
	Quantity     int64           `json:"quantity"`
	CostUSD      decimal.Decimal `json:"cost_usd"`
}

// Flat per-operation pricing. Image ops are billed per image, text ops
// per call.
var servicePricing = map[ServiceKind]decimal.Decimal{
	ServiceImageGeneration: decimal.NewFromFloat(0.04),
	ServiceTextGeneration:  decimal.NewFromFloat(0.001),
}

// CalculateCost returns the USD cost for quantity operations of kind.
func CalculateCost(kind ServiceKind, quantity int) decimal.Decimal {
	price, ok := servicePricing[kind]
	if !ok {
		return decimal.Zero
	}
	if quantity < 1 {
		quantity = 1
	}
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
