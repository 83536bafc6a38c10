package priority

import (
	"testing"
	"time"

	"fixqueue/internal/core/repair"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func order(id string, urgency, complexity int, ageHours float64, value float64) repair.Order {
	return repair.Order{
		ID:                  id,
		Urgency:             urgency,
		TechnicalComplexity: complexity,
		HistoricalValue:     value,
		CreatedAt:           now.Add(-time.Duration(ageHours * float64(time.Hour))),
		Stage:               repair.StageReceived,
	}
}

func TestScore_UrgencyMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	for u := 1; u < 5; u++ {
		lo := Score(order("a", u, 2, 10, 0), cfg, now)
		hi := Score(order("b", u+1, 2, 10, 0), cfg, now)
		if hi <= lo {
			t.Fatalf("urgency %d -> %d should increase score: %v <= %v", u, u+1, hi, lo)
		}
	}
}

func TestScore_AgeMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	younger := Score(order("a", 3, 2, 6, 0), cfg, now)
	older := Score(order("b", 3, 2, 96, 0), cfg, now)
	if older < younger {
		t.Fatalf("older ticket scored lower: %v < %v", older, younger)
	}
}

// Complexity drags the score down: quick wins first at equal urgency
func TestScore_ComplexityLowers(t *testing.T) {
	cfg := DefaultConfig()
	easy := Score(order("a", 3, 1, 10, 0), cfg, now)
	hard := Score(order("b", 3, 5, 10, 0), cfg, now)
	if hard >= easy {
		t.Fatalf("harder job should score lower: %v >= %v", hard, easy)
	}
}

func TestScore_ValueRewards(t *testing.T) {
	cfg := DefaultConfig()
	cheap := Score(order("a", 3, 2, 10, 0), cfg, now)
	dear := Score(order("b", 3, 2, 10, 800), cfg, now)
	if dear <= cheap {
		t.Fatalf("higher value should score higher: %v <= %v", dear, cheap)
	}
}

func TestScore_GuardsMalformedInput(t *testing.T) {
	cfg := Config{UrgencyWeight: -3, AgeWeight: -1} // negative weights clamp to zero
	o := repair.Order{ID: "x", Urgency: -7, TechnicalComplexity: -2, HistoricalValue: -50}
	got := Score(o, cfg, now) // zero CreatedAt means a huge age, capped by MaxAgeHours
	if got != got {           // NaN check
		t.Fatalf("score must never be NaN")
	}
}

func TestScore_FutureCreatedAtClampsToZeroAge(t *testing.T) {
	cfg := DefaultConfig()
	future := order("a", 3, 2, -5, 0) // created 5h in the future
	present := order("b", 3, 2, 0, 0)
	if Score(future, cfg, now) != Score(present, cfg, now) {
		t.Fatalf("future createdAt should contribute zero age")
	}
}

// Old urgent ticket beats a fresh low-urgency one
func TestRank_EndToEnd(t *testing.T) {
	a := order("A", 5, 2, 96, 0)
	b := order("B", 1, 2, 6, 0)
	if Score(a, DefaultConfig(), now) <= Score(b, DefaultConfig(), now) {
		t.Fatalf("expected A to outscore B")
	}
	ranked := Rank([]repair.Order{b, a}, DefaultConfig(), now)
	if ranked[0].ID != "A" {
		t.Fatalf("expected A first, got %s", ranked[0].ID)
	}
}

func TestRank_TieBreakOlderFirst(t *testing.T) {
	a := order("old", 3, 2, 50, 0)
	b := order("new", 3, 2, 10, 0)
	// equalize the age signal so scores differ only via CreatedAt tie-break
	cfg := DefaultConfig()
	cfg.AgeWeight = 0
	ranked := Rank([]repair.Order{b, a}, cfg, now)
	if ranked[0].ID != "old" {
		t.Fatalf("equal scores must order older first, got %s", ranked[0].ID)
	}
}

func TestRank_StableAndRepeatable(t *testing.T) {
	in := []repair.Order{
		order("a", 2, 2, 10, 0),
		order("b", 2, 2, 10, 0), // identical to a apart from id
		order("c", 5, 1, 3, 100),
	}
	// identical CreatedAt for a and b
	in[1].CreatedAt = in[0].CreatedAt

	first := Rank(in, DefaultConfig(), now)
	second := Rank(in, DefaultConfig(), now)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("ordering not reproducible at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
	// a and b tie exactly; input order must survive
	var ai, bi int
	for i, r := range first {
		switch r.ID {
		case "a":
			ai = i
		case "b":
			bi = i
		}
	}
	if ai > bi {
		t.Fatalf("stable sort violated: a at %d after b at %d", ai, bi)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []repair.Order{
		order("a", 1, 2, 10, 0),
		order("b", 5, 2, 10, 0),
	}
	Rank(in, DefaultConfig(), now)
	if in[0].ID != "a" || in[1].ID != "b" {
		t.Fatalf("input slice reordered")
	}
}

func TestConfig_Merge(t *testing.T) {
	got := DefaultConfig().Merge(Config{AgeWeight: 2})
	if got.AgeWeight != 2 {
		t.Fatalf("merge should override age weight, got %v", got.AgeWeight)
	}
	if got.UrgencyWeight != DefaultConfig().UrgencyWeight {
		t.Fatalf("merge should keep unset fields")
	}
}
