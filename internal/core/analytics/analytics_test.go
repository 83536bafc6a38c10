package analytics

import (
	"testing"
	"time"

	"fixqueue/internal/core/repair"
)

var t0 = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func completed(id, model, issue string, hours float64) repair.Order {
	done := t0.Add(time.Duration(hours * float64(time.Hour)))
	return repair.Order{
		ID:               id,
		DeviceModel:      model,
		IssueDescription: issue,
		CreatedAt:        t0,
		UpdatedAt:        &done,
		Stage:            repair.StageDelivered,
	}
}

func TestEstimateDurations_EmptyInput(t *testing.T) {
	got := EstimateDurations(nil)
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
	got = EstimateDurations([]repair.Order{})
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestEstimateDurations_GroupsAndStats(t *testing.T) {
	orders := []repair.Order{
		completed("1", "iPhone 12", "cracked screen", 10),
		completed("2", "iPhone 13", "screen shattered glass", 20),
		completed("3", "Samsung S21", "battery drains fast", 30),
		// open ticket must be excluded
		{ID: "4", DeviceModel: "iPhone 12", IssueDescription: "cracked screen", CreatedAt: t0, Stage: repair.StageInRepair},
	}
	got := EstimateDurations(orders)

	iph, ok := got[GroupKey("iphone", "screen")]
	if !ok {
		t.Fatalf("missing iphone|screen group: %v", got)
	}
	if iph.Count != 2 {
		t.Fatalf("iphone screen count = %d, want 2", iph.Count)
	}
	if iph.MeanHours != 15 {
		t.Fatalf("mean = %v, want 15", iph.MeanHours)
	}
	if iph.MinHours != 10 || iph.MaxHours != 20 {
		t.Fatalf("min/max = %v/%v", iph.MinHours, iph.MaxHours)
	}

	// singleton group reports its one sample as-is
	sam, ok := got[GroupKey("samsung", "battery")]
	if !ok {
		t.Fatalf("missing samsung|battery group: %v", got)
	}
	if sam.Count != 1 || sam.MeanHours != 30 || sam.P50Hours != 30 || sam.P90Hours != 30 {
		t.Fatalf("singleton stats wrong: %+v", sam)
	}
}

func TestEstimateDurations_SkipsNegativeAndMissingCompletion(t *testing.T) {
	bad := completed("1", "iPhone", "screen", -4) // updated before created
	noDone := repair.Order{ID: "2", DeviceModel: "iPhone", IssueDescription: "screen",
		CreatedAt: t0, Stage: repair.StageDelivered}
	got := EstimateDurations([]repair.Order{bad, noDone})
	if len(got) != 0 {
		t.Fatalf("expected no groups, got %v", got)
	}
}

func TestPercentile_NearestRank(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if p := percentile(xs, 50); p != 5 {
		t.Fatalf("p50 = %v, want 5", p)
	}
	if p := percentile(xs, 90); p != 9 {
		t.Fatalf("p90 = %v, want 9", p)
	}
	if p := percentile(xs[:1], 90); p != 1 {
		t.Fatalf("p90 of singleton = %v, want 1", p)
	}
}

func TestCorrelateSymptoms_EmptyInput(t *testing.T) {
	if got := CorrelateSymptoms(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestCorrelateSymptoms_RanksPairs(t *testing.T) {
	orders := []repair.Order{
		{ID: "1", IssueDescription: "screen cracked"},
		{ID: "2", IssueDescription: "screen cracked"},
		{ID: "3", IssueDescription: "screen cracked battery"},
		{ID: "4", IssueDescription: "battery drains"},
	}
	got := CorrelateSymptoms(orders)
	if len(got) == 0 {
		t.Fatalf("expected correlations")
	}
	top := got[0]
	if top.A != "cracked" || top.B != "screen" {
		t.Fatalf("top pair = %s/%s, want cracked/screen", top.A, top.B)
	}
	if top.Count != 3 {
		t.Fatalf("top count = %d, want 3", top.Count)
	}
	// strength = 3 / (3 + 3 - 3) = 1.0
	if top.Strength != 1.0 {
		t.Fatalf("top strength = %v, want 1.0", top.Strength)
	}
	// battery/drains seen together once only, below minimum support
	for _, c := range got {
		if c.A == "battery" && c.B == "drains" {
			t.Fatalf("pair below support should be dropped: %+v", c)
		}
	}
}

func TestCorrelateSymptoms_Deterministic(t *testing.T) {
	orders := []repair.Order{
		{ID: "1", IssueDescription: "screen battery charging"},
		{ID: "2", IssueDescription: "screen battery charging"},
	}
	a := CorrelateSymptoms(orders)
	b := CorrelateSymptoms(orders)
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sequence differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRecommendDiagnosis_EmptyCases(t *testing.T) {
	if got := RecommendDiagnosis(nil, "anything", 5); len(got) != 0 {
		t.Fatalf("empty history should recommend nothing, got %v", got)
	}
	orders := []repair.Order{{ID: "1", IssueDescription: "screen cracked"}}
	if got := RecommendDiagnosis(orders, "", 5); len(got) != 0 {
		t.Fatalf("empty query should recommend nothing, got %v", got)
	}
	if got := RecommendDiagnosis(orders, "totally unrelated words", 5); len(got) != 0 {
		t.Fatalf("zero overlap should recommend nothing, got %v", got)
	}
}

func TestRecommendDiagnosis_RanksByOverlap(t *testing.T) {
	orders := []repair.Order{
		{ID: "far", IssueDescription: "battery drains overnight", Resolution: "replaced battery"},
		{ID: "near", IssueDescription: "cracked screen glass", Resolution: "replaced display"},
		{ID: "mid", IssueDescription: "screen flickers sometimes", Resolution: "reseated connector"},
	}
	got := RecommendDiagnosis(orders, "cracked screen", 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(got))
	}
	if got[0].RepairID != "near" {
		t.Fatalf("best match = %s, want near", got[0].RepairID)
	}
	if got[0].Resolution != "replaced display" {
		t.Fatalf("resolution not carried: %+v", got[0])
	}
	if got[0].Score <= got[1].Score {
		t.Fatalf("ranking not descending: %v <= %v", got[0].Score, got[1].Score)
	}
}

func TestRecommendDiagnosis_LimitApplies(t *testing.T) {
	var orders []repair.Order
	for i := 0; i < 10; i++ {
		orders = append(orders, repair.Order{
			ID:               string(rune('a' + i)),
			IssueDescription: "screen cracked",
		})
	}
	got := RecommendDiagnosis(orders, "screen cracked", 3)
	if len(got) != 3 {
		t.Fatalf("limit not applied, got %d", len(got))
	}
}
