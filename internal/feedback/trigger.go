package feedback

import "time"

// TriggerSource identifies where in the product a prompt check was
// initiated. Each source carries its own delay before the check becomes
// eligible, and whether it bypasses the policy gates.
type TriggerSource string

const (
	// TriggerResultView fires after a successful essay analysis, once
	// the visitor has had time to read their scores.
	TriggerResultView TriggerSource = "result_view"

	// TriggerFeatureUse fires after other notable feature usage.
	TriggerFeatureUse TriggerSource = "feature_use"

	// TriggerPageLeave fires on navigation-away signals.
	TriggerPageLeave TriggerSource = "page_leave"

	// TriggerManual is the operator-forced check used for testing the
	// prompt in a live deployment. It bypasses every gate.
	TriggerManual TriggerSource = "manual"
)

// Delay returns how long after the initiating event the check becomes
// eligible for evaluation.
func (s TriggerSource) Delay() time.Duration {
	switch s {
	case TriggerResultView:
		return 5 * time.Second
	case TriggerFeatureUse:
		return 3 * time.Second
	default:
		return 0
	}
}

// Forced reports whether the source bypasses the eligibility and
// probability gates.
func (s TriggerSource) Forced() bool {
	return s == TriggerManual
}

// Valid reports whether s is a known trigger source.
func (s TriggerSource) Valid() bool {
	switch s {
	case TriggerResultView, TriggerFeatureUse, TriggerPageLeave, TriggerManual:
		return true
	}
	return false
}

// PendingTrigger is a deferred prompt check recorded in the visitor's
// session. The original product armed a timer in the page; here the
// record is evaluated on the next page render at or after EligibleAt,
// which also means a trigger armed by a page the visitor immediately
// leaves simply never fires against stale state.
type PendingTrigger struct {
	Source TriggerSource `json:"source"`

	// EligibleAt is the epoch-millisecond time from which the check
	// may be evaluated.
	EligibleAt int64 `json:"eligibleAt"`
}
