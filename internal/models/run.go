package models

// RunState is the terminal state of one invocation.
type RunState string

const (
	StateCompleted RunState = "completed"
	StateNoOp      RunState = "no-op"
	StateFailed    RunState = "failed"
)

// StepFailure records a failure that was logged and discarded.
type StepFailure struct {
	Step string
	Err  error
}

type RunResult struct {
	State       RunState
	Reason      string
	IssueNumber int
	TicketID    int64
	Status      CaseStatus
	Rep         string
	Comment     string
	Discarded   []StepFailure
}

func (r *RunResult) Discard(step string, err error) {
	r.Discarded = append(r.Discarded, StepFailure{Step: step, Err: err})
}
