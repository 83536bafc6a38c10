// Package repair holds the shared domain records consumed by the engine cores.
// The engine never mutates these; it only derives values from them
package repair

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one repair ticket handed to the engine by the caller
type Order struct {
	ID               string `json:"id"`
	CustomerName     string `json:"customerName,omitempty"`
	DeviceModel      string `json:"deviceModel,omitempty"`
	IssueDescription string `json:"issueDescription,omitempty"`

	// Urgency is the caller-assigned triage urgency on a 1-5 scale
	Urgency int `json:"urgency"`

	// TechnicalComplexity is the estimated difficulty on a 1-5 scale
	TechnicalComplexity int `json:"technicalComplexity"`

	// HistoricalValue is the expected revenue of this repair, zero when unknown
	HistoricalValue float64 `json:"historicalValue,omitempty"`

	// Resolution is the technician's recorded outcome, free text, often empty
	Resolution string `json:"resolution,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	Stage Stage `json:"stage"`
}

// LastActivity returns UpdatedAt when present, else CreatedAt
func (o Order) LastActivity() time.Time {
	if o.UpdatedAt != nil && !o.UpdatedAt.IsZero() {
		return *o.UpdatedAt
	}
	return o.CreatedAt
}

// AgeHours returns hours elapsed since creation, clamped at zero
func (o Order) AgeHours(now time.Time) float64 {
	return clampHours(now.Sub(o.CreatedAt))
}

// InactivityHours returns hours since the last activity, clamped at zero
func (o Order) InactivityHours(now time.Time) float64 {
	return clampHours(now.Sub(o.LastActivity()))
}

func clampHours(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return d.Hours()
}

// ProductStock is a snapshot of inventory for one part
type ProductStock struct {
	SKU  string `json:"sku"`
	Name string `json:"name,omitempty"`

	// QuantityAvailable never goes negative in a stored snapshot; only the
	// reservation algorithm projects it below zero to signal a shortfall
	QuantityAvailable int `json:"quantityAvailable"`

	// ReorderThreshold at or below which a reorder alert fires; zero or
	// negative means unset and the engine default applies
	ReorderThreshold int `json:"reorderThreshold,omitempty"`

	// UnitCost is the material cost of one unit, used by the cost report
	UnitCost decimal.Decimal `json:"unitCost"`
}
