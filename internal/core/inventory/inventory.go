// Package inventory turns a prioritized repair queue into stock reservation
// proposals, reorder alerts, and a materials cost report.
//
// Nothing here is persisted: reservations are recommendations the caller may
// commit against the real inventory system, and projected quantities below
// zero only ever signal a shortfall inside one computation
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fixqueue/internal/core/analytics"
	"fixqueue/internal/core/priority"
	"fixqueue/internal/core/repair"
)

// DefaultReorderThreshold applies when neither the product nor the caller
// supplies one
const DefaultReorderThreshold = 3

// PartNeed is one inferred part requirement for a repair
type PartNeed struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// Catalog maps an issue category (see analytics.IssueKey) to the parts a
// repair in that category typically consumes
type Catalog map[string][]PartNeed

// DefaultCatalog covers the common phone repair jobs with one generic SKU per
// part family. Callers with their own SKU scheme pass their own catalog
func DefaultCatalog() Catalog {
	return Catalog{
		"screen":   {{SKU: "display-assembly", Qty: 1}},
		"battery":  {{SKU: "battery-pack", Qty: 1}},
		"charging": {{SKU: "charging-port", Qty: 1}},
		"water":    {{SKU: "gasket-seal-kit", Qty: 1}, {SKU: "cleaning-solution", Qty: 1}},
		"camera":   {{SKU: "camera-module", Qty: 1}},
		"audio":    {{SKU: "speaker-unit", Qty: 1}},
		"power":    {{SKU: "battery-pack", Qty: 1}, {SKU: "power-flex", Qty: 1}},
	}
}

// PartsFor infers the part needs of one repair from its issue description.
// Repairs whose issue matches no catalog entry need nothing
func (c Catalog) PartsFor(o repair.Order) []PartNeed {
	needs := c[analytics.IssueKey(o.IssueDescription)]
	out := make([]PartNeed, len(needs))
	copy(out, needs)
	return out
}

// Reservation is a proposed allocation of stock units to one repair
type Reservation struct {
	ID       string `json:"id"`
	RepairID string `json:"repairId"`
	SKU      string `json:"sku"`
	Qty      int    `json:"qty"`

	// Partial marks a reservation that covers less than the inferred need
	Partial bool `json:"partial,omitempty"`
}

// ReorderAlert flags a product whose projected stock sits at or below its
// threshold. Projected can be negative: that is the shortfall signal
type ReorderAlert struct {
	SKU       string `json:"sku"`
	Name      string `json:"name,omitempty"`
	Projected int    `json:"projected"`
	Threshold int    `json:"threshold"`
	Deficit   int    `json:"deficit"`
}

// Options tunes the reservation walk
type Options struct {
	Priority priority.Config
	Catalog  Catalog

	// Threshold is the fallback reorder threshold for products without one
	Threshold int
}

func (o Options) withDefaults() Options {
	if o.Catalog == nil {
		o.Catalog = DefaultCatalog()
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultReorderThreshold
	}
	return o
}

// reservationNamespace seeds the deterministic v5 reservation ids
var reservationNamespace = uuid.MustParse("8f1bd8f2-4c5d-4d8a-9f3a-2f6a1e0c9b71")

// reservationID derives a stable id from the repair and SKU so two runs over
// identical input produce byte-identical reservations
func reservationID(repairID, sku string) string {
	return uuid.NewSHA1(reservationNamespace, []byte(repairID+"|"+sku)).String()
}

// SuggestReservations walks repairs in priority order and greedily reserves
// inferred parts from a working copy of the stock snapshot. Partial coverage
// is allowed so a late-queue repair still gets whatever remains. Alerts fire
// as soon as a SKU's projected stock crosses its threshold; one alert per
// SKU carrying the final projection.
//
// Deterministic: the priority order is total, the working copy walk is
// sequential, and reservation ids are content-derived
func SuggestReservations(
	orders []repair.Order,
	products []repair.ProductStock,
	opts Options,
	now time.Time,
) ([]Reservation, []ReorderAlert) {
	opts = opts.withDefaults()

	working := make(map[string]int, len(products))
	thresholds := make(map[string]int, len(products))
	names := make(map[string]string, len(products))
	for _, p := range products {
		working[p.SKU] = p.QuantityAvailable
		th := p.ReorderThreshold
		if th <= 0 {
			th = opts.Threshold
		}
		thresholds[p.SKU] = th
		names[p.SKU] = p.Name
	}

	var reservations []Reservation
	alerted := map[string]int{} // sku -> index into alerts
	var alerts []ReorderAlert

	for _, ranked := range priority.Rank(orders, opts.Priority, now) {
		if ranked.Repair.Stage.Terminal() {
			continue
		}
		for _, need := range opts.Catalog.PartsFor(ranked.Repair) {
			avail, known := working[need.SKU]
			if !known {
				// no snapshot for this SKU; nothing to reserve or project
				continue
			}

			take := need.Qty
			if avail < take {
				take = avail
			}
			if take < 0 {
				take = 0
			}

			// project demand even past zero so the deficit is visible
			projected := avail - need.Qty
			working[need.SKU] = projected

			if take > 0 {
				reservations = append(reservations, Reservation{
					ID:       reservationID(ranked.Repair.ID, need.SKU),
					RepairID: ranked.Repair.ID,
					SKU:      need.SKU,
					Qty:      take,
					Partial:  take < need.Qty,
				})
			}

			th := thresholds[need.SKU]
			if projected <= th {
				a := ReorderAlert{
					SKU:       need.SKU,
					Name:      names[need.SKU],
					Projected: projected,
					Threshold: th,
					Deficit:   th - projected,
				}
				if i, seen := alerted[need.SKU]; seen {
					alerts[i] = a // keep the final projection
				} else {
					alerted[need.SKU] = len(alerts)
					alerts = append(alerts, a)
				}
			}
		}
	}

	return reservations, alerts
}

// ReorderAlerts scans a stock snapshot with no repair context: any product at
// or below threshold gets an alert with its deficit. Pure and total
func ReorderAlerts(products []repair.ProductStock, threshold int) []ReorderAlert {
	if threshold <= 0 {
		threshold = DefaultReorderThreshold
	}
	var out []ReorderAlert
	for _, p := range products {
		th := p.ReorderThreshold
		if th <= 0 {
			th = threshold
		}
		if p.QuantityAvailable <= th {
			out = append(out, ReorderAlert{
				SKU:       p.SKU,
				Name:      p.Name,
				Projected: p.QuantityAvailable,
				Threshold: th,
				Deficit:   th - p.QuantityAvailable,
			})
		}
	}
	return out
}

// CostLine is one reserved part priced out
type CostLine struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name,omitempty"`
	Qty      int             `json:"qty"`
	UnitCost decimal.Decimal `json:"unitCost"`
	Total    decimal.Decimal `json:"total"`
}

// RepairCost is the materials breakdown for one repair
type RepairCost struct {
	RepairID     string          `json:"repairId"`
	CustomerName string          `json:"customerName,omitempty"`
	Lines        []CostLine      `json:"lines"`
	Total        decimal.Decimal `json:"total"`
}

// CostReport joins reservations back to products and repairs
type CostReport struct {
	Repairs    []RepairCost    `json:"repairs"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// BuildCostReport prices each reservation at its product's unit cost and
// groups the lines per repair. Reservations against unknown SKUs price at
// zero rather than failing; the report is for estimation, not invoicing
func BuildCostReport(
	reservations []Reservation,
	products []repair.ProductStock,
	orders []repair.Order,
) CostReport {
	costs := make(map[string]decimal.Decimal, len(products))
	names := make(map[string]string, len(products))
	for _, p := range products {
		costs[p.SKU] = p.UnitCost
		names[p.SKU] = p.Name
	}
	customers := make(map[string]string, len(orders))
	for _, o := range orders {
		customers[o.ID] = o.CustomerName
	}

	byRepair := map[string]*RepairCost{}
	var order []string
	for _, res := range reservations {
		rc, ok := byRepair[res.RepairID]
		if !ok {
			rc = &RepairCost{RepairID: res.RepairID, CustomerName: customers[res.RepairID]}
			byRepair[res.RepairID] = rc
			order = append(order, res.RepairID)
		}
		unit := costs[res.SKU] // zero value for unknown SKUs
		line := CostLine{
			SKU:      res.SKU,
			Name:     names[res.SKU],
			Qty:      res.Qty,
			UnitCost: unit,
			Total:    unit.Mul(decimal.NewFromInt(int64(res.Qty))),
		}
		rc.Lines = append(rc.Lines, line)
		rc.Total = rc.Total.Add(line.Total)
	}

	// reservation order is priority order; keep it
	report := CostReport{GrandTotal: decimal.Zero}
	for _, id := range order {
		rc := byRepair[id]
		report.Repairs = append(report.Repairs, *rc)
		report.GrandTotal = report.GrandTotal.Add(rc.Total)
	}
	return report
}
