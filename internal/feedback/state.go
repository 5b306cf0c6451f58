// Package feedback implements the feedback prompt policy: when to ask a
// visitor for product feedback without pestering them, and how the
// persisted policy state transitions on show, dismiss, and submit.
package feedback

// State is the persisted feedback policy record for one visitor.
// It is the sole source of truth for prompt eligibility; there is no
// server-side mirror.
type State struct {
	// HasShown is true once a prompt has ever been displayed.
	HasShown bool `json:"hasShown"`

	// LastShown is the epoch-millisecond time of the most recent
	// display, 0 when never shown.
	LastShown int64 `json:"lastShown"`

	// DismissCount is how many times the visitor closed the prompt
	// without submitting. Never decreases except via Reset.
	DismissCount int `json:"dismissCount"`

	// HasSubmitted is true once the visitor has submitted feedback.
	// It is sticky: once set it never reverts.
	HasSubmitted bool `json:"hasSubmitted"`
}

// DefaultState returns the record created on first read when no state
// has been persisted yet.
func DefaultState() State {
	return State{}
}

// Submission is one feedback form entry. It is delivered once and not
// persisted locally.
type Submission struct {
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=500"`
	UserEmail string `json:"userEmail,omitempty" validate:"omitempty,email"`
}
