package repair

import "testing"

// The mapping tables are asserted exactly; round-trip identity is NOT a
// property of this mapping (ready and delivered both collapse to completed)
func TestStageStatus_Table(t *testing.T) {
	tests := []struct {
		in   Stage
		want Status
	}{
		{StageReceived, StatusPending},
		{StageDiagnosis, StatusInProgress},
		{StageAwaitingParts, StatusWaitingParts},
		{StageInRepair, StatusInProgress},
		{StageQualityCheck, StatusOnHold},
		{StageReady, StatusCompleted},
		{StageDelivered, StatusCompleted},
		{StageCancelled, StatusCancelled},
		{Stage("bogus"), StatusPending},
		{Stage(""), StatusPending},
	}
	for _, tc := range tests {
		if got := StageStatus(tc.in); got != tc.want {
			t.Fatalf("StageStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusStage_Table(t *testing.T) {
	tests := []struct {
		in   Status
		want Stage
	}{
		{StatusPending, StageReceived},
		{StatusInProgress, StageDiagnosis},
		{StatusWaitingParts, StageAwaitingParts},
		{StatusOnHold, StageQualityCheck},
		{StatusCompleted, StageReady},
		{StatusCancelled, StageCancelled},
		{Status("bogus"), StageReceived},
	}
	for _, tc := range tests {
		if got := StatusStage(tc.in); got != tc.want {
			t.Fatalf("StatusStage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMapping_LossyNotRoundTrip(t *testing.T) {
	// delivered -> completed -> ready, deliberately not delivered
	if got := StatusStage(StageStatus(StageDelivered)); got != StageReady {
		t.Fatalf("expected delivered to round-trip to ready, got %q", got)
	}
	// in_repair -> in_progress -> diagnosis
	if got := StatusStage(StageStatus(StageInRepair)); got != StageDiagnosis {
		t.Fatalf("expected in_repair to round-trip to diagnosis, got %q", got)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Stage
		want     bool
	}{
		{StageReceived, StageDiagnosis, true},
		{StageDiagnosis, StageAwaitingParts, true},
		{StageReady, StageDelivered, true},
		{StageReceived, StageInRepair, false}, // no skipping
		{StageDelivered, StageCancelled, false},
		{StageCancelled, StageReceived, false},
		{StageInRepair, StageCancelled, true},
		{StageReceived, StageCancelled, true},
	}
	for _, tc := range tests {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
