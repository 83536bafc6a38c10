// Package priority implements the repair urgency scoring engine and the
// total ordering it induces over a repair queue.
//
// The score is a weighted linear combination of four signals: caller urgency,
// ticket age, technical complexity, and historical value. Urgency, age, and
// value raise the score; complexity lowers it so that quick wins surface
// ahead of long jobs at equal urgency. Age keeps rising (capped) so stale
// tickets cannot starve behind a stream of fresh urgent ones
package priority

import (
	"sort"
	"time"

	"fixqueue/internal/core/repair"
)

// Config carries the tunable weights and normalization caps
type Config struct {
	UrgencyWeight    float64 `json:"urgencyWeight"`
	AgeWeight        float64 `json:"ageWeight"`
	ComplexityWeight float64 `json:"complexityWeight"`
	ValueWeight      float64 `json:"valueWeight"`

	// MaxAgeHours caps the age signal; beyond it the signal saturates
	MaxAgeHours float64 `json:"maxAgeHours"`

	// MaxValue normalizes historical value into [0,1]; values above it saturate
	MaxValue float64 `json:"maxValue"`
}

// DefaultConfig is the single well-known weighting.
// Urgency dominates, age breaks stalemates, complexity is a mild drag
func DefaultConfig() Config {
	return Config{
		UrgencyWeight:    10,
		AgeWeight:        0.5,
		ComplexityWeight: 2,
		ValueWeight:      5,
		MaxAgeHours:      24 * 14,
		MaxValue:         1000,
	}
}

// Normalize clamps negative weights and zeroed caps back to usable values.
// Weights are non-negative by contract; a caller sending a negative one gets
// zero contribution for that signal rather than an inverted ordering
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.UrgencyWeight < 0 {
		c.UrgencyWeight = 0
	}
	if c.AgeWeight < 0 {
		c.AgeWeight = 0
	}
	if c.ComplexityWeight < 0 {
		c.ComplexityWeight = 0
	}
	if c.ValueWeight < 0 {
		c.ValueWeight = 0
	}
	if c.MaxAgeHours <= 0 {
		c.MaxAgeHours = d.MaxAgeHours
	}
	if c.MaxValue <= 0 {
		c.MaxValue = d.MaxValue
	}
	return c
}

// Merge overlays non-zero fields of o onto c, so callers can override a
// subset of weights and keep defaults for the rest
func (c Config) Merge(o Config) Config {
	if o.UrgencyWeight != 0 {
		c.UrgencyWeight = o.UrgencyWeight
	}
	if o.AgeWeight != 0 {
		c.AgeWeight = o.AgeWeight
	}
	if o.ComplexityWeight != 0 {
		c.ComplexityWeight = o.ComplexityWeight
	}
	if o.ValueWeight != 0 {
		c.ValueWeight = o.ValueWeight
	}
	if o.MaxAgeHours != 0 {
		c.MaxAgeHours = o.MaxAgeHours
	}
	if o.MaxValue != 0 {
		c.MaxValue = o.MaxValue
	}
	return c.Normalize()
}

// Score computes the urgency score for one repair. Pure and total: missing
// optional fields contribute zero, and no well-formed order can make it panic
func Score(o repair.Order, cfg Config, now time.Time) float64 {
	cfg = cfg.Normalize()

	urgency := float64(clampInt(o.Urgency, 0, 5))

	age := o.AgeHours(now)
	if age > cfg.MaxAgeHours {
		age = cfg.MaxAgeHours
	}

	complexity := float64(maxInt(o.TechnicalComplexity, 0))

	value := o.HistoricalValue
	if value < 0 {
		value = 0
	}
	if value > cfg.MaxValue {
		value = cfg.MaxValue
	}

	s := cfg.UrgencyWeight*urgency +
		cfg.AgeWeight*age +
		cfg.ValueWeight*(value/cfg.MaxValue) -
		cfg.ComplexityWeight*complexity
	return s
}

// Ranked pairs a repair with its computed score
type Ranked struct {
	ID     string       `json:"id"`
	Score  float64      `json:"score"`
	Repair repair.Order `json:"repair"`
}

// Rank returns a new slice ordered by descending score; ties break toward the
// older CreatedAt, and equal-score equal-age tickets keep their input order
// (stable sort), so the ordering is total and reproducible
func Rank(orders []repair.Order, cfg Config, now time.Time) []Ranked {
	cfg = cfg.Normalize()
	out := make([]Ranked, 0, len(orders))
	for _, o := range orders {
		out = append(out, Ranked{ID: o.ID, Score: Score(o, cfg, now), Repair: o})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Repair.CreatedAt.Before(out[j].Repair.CreatedAt)
	})
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}
