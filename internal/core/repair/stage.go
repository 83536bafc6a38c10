package repair

// Stage is the repair lifecycle state in the domain's own vocabulary.
// Mutations happen in the external repair system; the engine only reads stages
type Stage string

// Lifecycle stages in order, plus the terminal cancelled state
const (
	StageReceived      Stage = "received"
	StageDiagnosis     Stage = "diagnosis"
	StageAwaitingParts Stage = "awaiting_parts"
	StageInRepair      Stage = "in_repair"
	StageQualityCheck  Stage = "quality_check"
	StageReady         Stage = "ready"
	StageDelivered     Stage = "delivered"
	StageCancelled     Stage = "cancelled"
)

// Status is the simplified vocabulary the UI layer speaks
type Status string

// UI statuses
const (
	StatusPending      Status = "pending"
	StatusInProgress   Status = "in_progress"
	StatusWaitingParts Status = "waiting_parts"
	StatusOnHold       Status = "on_hold"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
)

// stageOrder indexes the forward lifecycle for transition checks
var stageOrder = map[Stage]int{
	StageReceived:      0,
	StageDiagnosis:     1,
	StageAwaitingParts: 2,
	StageInRepair:      3,
	StageQualityCheck:  4,
	StageReady:         5,
	StageDelivered:     6,
}

// Known reports whether s is one of the fixed lifecycle states
func (s Stage) Known() bool {
	if s == StageCancelled {
		return true
	}
	_, ok := stageOrder[s]
	return ok
}

// Terminal reports whether no further transitions are possible
func (s Stage) Terminal() bool { return s == StageDelivered || s == StageCancelled }

// CanTransition reports whether next is a legal successor of s.
// Forward lifecycle moves one step at a time; cancelled is reachable from
// any non-terminal state. Informational only: the engine never mutates stages
func (s Stage) CanTransition(next Stage) bool {
	if s.Terminal() {
		return false
	}
	if next == StageCancelled {
		return true
	}
	from, okFrom := stageOrder[s]
	to, okTo := stageOrder[next]
	if !okFrom || !okTo {
		return false
	}
	return to == from+1
}

// stageToStatus is the fixed UI mapping. Lossy by design: ready and delivered
// both collapse to completed
var stageToStatus = map[Stage]Status{
	StageReceived:      StatusPending,
	StageDiagnosis:     StatusInProgress,
	StageAwaitingParts: StatusWaitingParts,
	StageInRepair:      StatusInProgress,
	StageQualityCheck:  StatusOnHold,
	StageReady:         StatusCompleted,
	StageDelivered:     StatusCompleted,
	StageCancelled:     StatusCancelled,
}

// statusToStage is the reverse lookup. Not an inverse of stageToStatus:
// completed maps back to ready only, and in_progress to diagnosis
var statusToStage = map[Status]Stage{
	StatusPending:      StageReceived,
	StatusInProgress:   StageDiagnosis,
	StatusWaitingParts: StageAwaitingParts,
	StatusOnHold:       StageQualityCheck,
	StatusCompleted:    StageReady,
	StatusCancelled:    StageCancelled,
}

// StageStatus maps a stage to its UI status. Total: unrecognized stages fall
// back to pending, the start of the simplified vocabulary
func StageStatus(s Stage) Status {
	if st, ok := stageToStatus[s]; ok {
		return st
	}
	return StatusPending
}

// StatusStage maps a UI status back to a stage. Total: unrecognized statuses
// fall back to received. Round-tripping through both maps is lossy
func StatusStage(s Status) Stage {
	if st, ok := statusToStage[s]; ok {
		return st
	}
	return StageReceived
}
