// Package analytics derives aggregate statistics from historical repairs:
// per-group duration estimates, symptom co-occurrence, and diagnosis
// recommendations from closest textual matches.
//
// Every function is pure over its inputs: no mutation, no I/O, and empty
// collections come back as empty results rather than errors
package analytics

import (
	"sort"
	"strings"

	"fixqueue/internal/core/repair"
	"fixqueue/internal/core/textkit"
)

// DurationStats aggregates completion times for one device x issue group.
// Hours are elapsed wall time between creation and last activity
type DurationStats struct {
	DeviceKey string  `json:"deviceKey"`
	IssueKey  string  `json:"issueKey"`
	Count     int     `json:"count"`
	MeanHours float64 `json:"meanHours"`
	MinHours  float64 `json:"minHours"`
	MaxHours  float64 `json:"maxHours"`
	P50Hours  float64 `json:"p50Hours"`
	P90Hours  float64 `json:"p90Hours"`
}

// issueBuckets maps symptom keywords to a coarse issue category. Order
// matters: the first bucket with a keyword hit wins
var issueBuckets = []struct {
	key      string
	keywords []string
}{
	{"screen", []string{"screen", "pantalla", "display", "cracked", "glass", "lcd", "tactil", "touch"}},
	{"battery", []string{"battery", "bateria", "drain", "drains", "agotada", "swollen"}},
	{"charging", []string{"charging", "charge", "carga", "cargador", "port", "cable", "conector"}},
	{"water", []string{"water", "agua", "liquid", "liquido", "moisture", "mojado", "wet"}},
	{"camera", []string{"camera", "camara", "lens", "lente", "blurry", "borrosa"}},
	{"audio", []string{"audio", "speaker", "altavoz", "sound", "sonido", "microphone", "microfono"}},
	{"power", []string{"power", "boot", "enciende", "dead", "apaga", "arranca", "restarts"}},
	{"software", []string{"software", "update", "slow", "lento", "freeze", "crash", "sistema"}},
}

// IssueKey buckets an issue description into a coarse category.
// Unmatched descriptions land in "other"
func IssueKey(issue string) string {
	kws := textkit.Keywords(issue)
	if len(kws) == 0 {
		return "other"
	}
	set := make(map[string]struct{}, len(kws))
	for _, k := range kws {
		set[k] = struct{}{}
	}
	for _, b := range issueBuckets {
		for _, kw := range b.keywords {
			if _, ok := set[kw]; ok {
				return b.key
			}
		}
	}
	return "other"
}

// DeviceKey reduces a device model to its leading keyword (usually the brand)
func DeviceKey(model string) string {
	kws := textkit.Keywords(model)
	if len(kws) == 0 {
		return "unknown"
	}
	return kws[0]
}

// GroupKey formats the mapping key for EstimateDurations results
func GroupKey(deviceKey, issueKey string) string { return deviceKey + "|" + issueKey }

// EstimateDurations groups completed repairs (ready or delivered, with a
// recorded last activity) by device x issue and reports duration aggregates.
// Singleton groups report their one sample as-is
func EstimateDurations(orders []repair.Order) map[string]DurationStats {
	samples := map[string][]float64{}
	meta := map[string][2]string{}

	for _, o := range orders {
		if o.Stage != repair.StageReady && o.Stage != repair.StageDelivered {
			continue
		}
		if o.UpdatedAt == nil || o.UpdatedAt.IsZero() {
			continue
		}
		hours := o.UpdatedAt.Sub(o.CreatedAt).Hours()
		if hours < 0 {
			continue
		}
		dk, ik := DeviceKey(o.DeviceModel), IssueKey(o.IssueDescription)
		key := GroupKey(dk, ik)
		samples[key] = append(samples[key], hours)
		meta[key] = [2]string{dk, ik}
	}

	out := make(map[string]DurationStats, len(samples))
	for key, xs := range samples {
		sort.Float64s(xs)
		sum := 0.0
		for _, x := range xs {
			sum += x
		}
		m := meta[key]
		out[key] = DurationStats{
			DeviceKey: m[0],
			IssueKey:  m[1],
			Count:     len(xs),
			MeanHours: sum / float64(len(xs)),
			MinHours:  xs[0],
			MaxHours:  xs[len(xs)-1],
			P50Hours:  percentile(xs, 50),
			P90Hours:  percentile(xs, 90),
		}
	}
	return out
}

// percentile uses the nearest-rank method over already-sorted samples
func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p*len(sorted) + 99) / 100 // ceil(p*n/100)
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

// Correlation is a ranked keyword pair with its co-occurrence strength
type Correlation struct {
	A        string  `json:"a"`
	B        string  `json:"b"`
	Count    int     `json:"count"`
	Strength float64 `json:"strength"`
}

// minPairSupport drops pairs seen together fewer than this many times
const minPairSupport = 2

// CorrelateSymptoms computes pairwise keyword co-occurrence across all issue
// descriptions. Strength is Jaccard: both / (a + b - both). Results are
// ranked by strength descending with a fixed name tie-break so equal inputs
// always produce the identical sequence
func CorrelateSymptoms(orders []repair.Order) []Correlation {
	single := map[string]int{}
	pair := map[[2]string]int{}

	for _, o := range orders {
		kws := textkit.Keywords(o.IssueDescription)
		for _, k := range kws {
			single[k]++
		}
		for i := 0; i < len(kws); i++ {
			for j := i + 1; j < len(kws); j++ {
				a, b := kws[i], kws[j]
				if b < a {
					a, b = b, a
				}
				pair[[2]string{a, b}]++
			}
		}
	}

	out := make([]Correlation, 0, len(pair))
	for p, both := range pair {
		if both < minPairSupport {
			continue
		}
		union := single[p[0]] + single[p[1]] - both
		if union <= 0 {
			continue
		}
		out = append(out, Correlation{
			A:        p[0],
			B:        p[1],
			Count:    both,
			Strength: float64(both) / float64(union),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Strength != out[j].Strength {
			return out[i].Strength > out[j].Strength
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Recommendation is one historical repair whose description closely matches
// the queried issue text
type Recommendation struct {
	RepairID    string   `json:"repairId"`
	DeviceModel string   `json:"deviceModel,omitempty"`
	Issue       string   `json:"issue"`
	Resolution  string   `json:"resolution,omitempty"`
	Matched     []string `json:"matched"`
	Score       float64  `json:"score"`
}

// DefaultRecommendLimit bounds the shortlist when the caller passes limit <= 0
const DefaultRecommendLimit = 5

// RecommendDiagnosis finds the historical repairs whose issue text overlaps
// the query the most (Jaccard over keywords) and returns a ranked shortlist.
// Empty query text or zero overlap yields an empty slice, never an error
func RecommendDiagnosis(orders []repair.Order, issueText string, limit int) []Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	query := textkit.Keywords(issueText)
	if len(query) == 0 {
		return nil
	}
	qset := make(map[string]struct{}, len(query))
	for _, k := range query {
		qset[k] = struct{}{}
	}

	var out []Recommendation
	for _, o := range orders {
		kws := textkit.Keywords(o.IssueDescription)
		if len(kws) == 0 {
			continue
		}
		var matched []string
		for _, k := range kws {
			if _, ok := qset[k]; ok {
				matched = append(matched, k)
			}
		}
		if len(matched) == 0 {
			continue
		}
		union := len(query) + len(kws) - len(matched)
		out = append(out, Recommendation{
			RepairID:    o.ID,
			DeviceModel: o.DeviceModel,
			Issue:       o.IssueDescription,
			Resolution:  strings.TrimSpace(o.Resolution),
			Matched:     matched,
			Score:       float64(len(matched)) / float64(union),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].RepairID < out[j].RepairID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
