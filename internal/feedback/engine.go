package feedback

import (
	"math/rand"
	"time"
)

// Policy constants. MaxDismissals and the cooldown are hard product
// rules; the display probability is tunable through config because the
// upstream product never recorded a rationale for the 30% figure.
const (
	// MaxDismissals is the hard cap on how many times the prompt may
	// be dismissed before it is never shown again.
	MaxDismissals = 3

	// Cooldown is the minimum time between two prompt displays.
	Cooldown = 7 * 24 * time.Hour

	// MinSessionTime is the minimum dwell time in a browsing session
	// before the prompt may ever be shown.
	MinSessionTime = 30 * time.Second

	// DefaultShowProbability is the probabilistic gate applied on top
	// of eligibility.
	DefaultShowProbability = 0.3
)

// Engine evaluates the feedback prompt policy. The clock and random
// source are injectable for tests; production code uses time.Now and
// math/rand.
type Engine struct {
	probability float64
	now         func() time.Time
	rand        func() float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand overrides the engine's random source. The function must
// return values in [0,1).
func WithRand(rand func() float64) Option {
	return func(e *Engine) { e.rand = rand }
}

// NewEngine creates an Engine with the given display probability.
// Probabilities outside (0,1] fall back to the default gate.
func NewEngine(probability float64, opts ...Option) *Engine {
	if probability <= 0 || probability > 1 {
		probability = DefaultShowProbability
	}
	e := &Engine{
		probability: probability,
		now:         time.Now,
		rand:        rand.Float64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ShouldShow reports whether the prompt is eligible to be shown.
// Four disqualifying gates are evaluated in order; any one forces false:
//  1. feedback was already submitted
//  2. the dismissal cap was reached
//  3. the cooldown window since the last display has not elapsed
//  4. the browsing session is younger than the minimum dwell time
func (e *Engine) ShouldShow(state State, sessionStart, now time.Time) bool {
	if state.HasSubmitted {
		return false
	}
	if state.DismissCount >= MaxDismissals {
		return false
	}
	if state.LastShown != 0 && now.Sub(time.UnixMilli(state.LastShown)) < Cooldown {
		return false
	}
	if now.Sub(sessionStart) < MinSessionTime {
		return false
	}
	return true
}

// TriggerCheck decides whether to open the prompt now. When forceShow
// is set the prompt always opens. Otherwise it opens only when
// ShouldShow passes AND a uniform draw lands under the display
// probability; eligibility is necessary but not sufficient.
// On open, the returned state is stamped with HasShown and LastShown;
// on no-open the state is returned unchanged.
func (e *Engine) TriggerCheck(state State, forceShow bool, sessionStart, now time.Time) (bool, State) {
	if !forceShow {
		if !e.ShouldShow(state, sessionStart, now) {
			return false, state
		}
		if e.rand() >= e.probability {
			return false, state
		}
	}
	state.HasShown = true
	state.LastShown = now.UnixMilli()
	return true, state
}

// Dismiss records one dismissal. Only DismissCount changes.
func (e *Engine) Dismiss(state State) State {
	state.DismissCount++
	return state
}

// Submitted marks feedback as submitted. The flag is sticky even when
// delivery of the submission failed, so a dropped network call never
// causes repeated prompting.
func (e *Engine) Submitted(state State) State {
	state.HasSubmitted = true
	return state
}

// Reset restores the default record regardless of prior state. The
// caller is expected to erase the persisted copy as well.
func (e *Engine) Reset() State {
	return DefaultState()
}
