package essay

// Phase tracks where a submission is in its lifecycle. Rejected and
// Failed both return to Idle without clearing the visitor's text;
// Success carries the analysis result into the result view.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseValidating  Phase = "validating"
	PhaseRejected    Phase = "rejected"
	PhaseSubmitting  Phase = "submitting"
	PhaseSuccess     Phase = "success"
	PhaseRateLimited Phase = "rate_limited"
	PhaseFailed      Phase = "failed"
)

// Terminal reports whether the phase ends a submission attempt.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseRejected, PhaseSuccess, PhaseRateLimited, PhaseFailed:
		return true
	}
	return false
}
