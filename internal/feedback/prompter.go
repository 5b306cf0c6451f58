package feedback

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"bandly/internal/observability"
	"bandly/internal/statestore"
)

// Delivery is a submission plus the contextual metadata attached at
// delivery time.
type Delivery struct {
	Submission
	Timestamp int64  `json:"timestamp"`
	UserAgent string `json:"userAgent"`
	URL       string `json:"url"`
}

// Sender delivers a feedback submission to the scoring API.
type Sender interface {
	SendFeedback(ctx context.Context, token string, delivery Delivery) error
}

// Prompter glues the policy engine to the visitor's session: it records
// deferred trigger checks, evaluates them on later renders, and applies
// the dismiss/submit transitions with persistence.
type Prompter struct {
	store  *statestore.Store
	engine *Engine
	sender Sender
	logger *observability.Logger
	now    func() time.Time
}

// NewPrompter creates a Prompter.
func NewPrompter(store *statestore.Store, engine *Engine, sender Sender, logger *observability.Logger) *Prompter {
	return &Prompter{
		store:  store,
		engine: engine,
		sender: sender,
		logger: logger,
		now:    time.Now,
	}
}

// SessionStart returns the start time of the visitor's browsing
// session, initializing it on first call.
func (p *Prompter) SessionStart(c *gin.Context) time.Time {
	if ms, ok := p.store.GetInt64(c, statestore.KeySessionStart); ok {
		return time.UnixMilli(ms)
	}
	now := p.now()
	p.store.PutInt64(c, statestore.KeySessionStart, now.UnixMilli())
	return now
}

// State returns the visitor's current feedback policy state, falling
// back to the default record when none is persisted or the persisted
// copy is corrupted.
func (p *Prompter) State(c *gin.Context) State {
	state := DefaultState()
	p.store.GetJSON(c, statestore.KeyFeedbackState, &state)
	return state
}

// Record arms a deferred prompt check for the given source. A later
// render at or after the source's delay evaluates it. Only one check is
// pending at a time; a new one replaces the old.
func (p *Prompter) Record(c *gin.Context, source TriggerSource) {
	if !source.Valid() {
		p.logger.Warn(c.Request.Context(), "Ignoring unknown feedback trigger source", map[string]interface{}{
			"source": string(source),
		})
		return
	}
	pending := PendingTrigger{
		Source:     source,
		EligibleAt: p.now().Add(source.Delay()).UnixMilli(),
	}
	p.store.PutJSON(c, statestore.KeyPendingTrigger, pending)
}

// Evaluate runs the pending prompt check, if any and if its delay has
// elapsed. Returns true when the prompt should be opened on this
// render. A check whose delay has not yet elapsed stays pending.
func (p *Prompter) Evaluate(c *gin.Context) bool {
	var pending PendingTrigger
	if !p.store.GetJSON(c, statestore.KeyPendingTrigger, &pending) {
		return false
	}

	now := p.now()
	if now.UnixMilli() < pending.EligibleAt {
		return false
	}
	p.store.Delete(c, statestore.KeyPendingTrigger)

	sessionStart := p.SessionStart(c)
	state := p.State(c)

	ctx, span := observability.TraceFeedbackFunction(c.Request.Context(), "Evaluate",
		observability.AttributeTriggerSource(string(pending.Source)))
	defer span.End()

	open, next := p.engine.TriggerCheck(state, pending.Source.Forced(), sessionStart, now)
	if open {
		p.store.PutJSON(c, statestore.KeyFeedbackState, next)
		p.logger.Info(ctx, "Opening feedback prompt", map[string]interface{}{
			"source":        string(pending.Source),
			"dismiss_count": next.DismissCount,
		})
	}
	return open
}

// Dismiss records that the visitor closed the prompt without
// submitting.
func (p *Prompter) Dismiss(c *gin.Context) {
	state := p.engine.Dismiss(p.State(c))
	p.store.PutJSON(c, statestore.KeyFeedbackState, state)
}

// Submit delivers the submission to the scoring API and marks the
// visitor as having submitted. Delivery failure is logged and otherwise
// ignored: the submitted flag is set either way so the visitor is never
// re-prompted over a transient network fault.
func (p *Prompter) Submit(c *gin.Context, token string, sub Submission) {
	delivery := Delivery{
		Submission: sub,
		Timestamp:  p.now().UnixMilli(),
		UserAgent:  c.Request.UserAgent(),
		URL:        pageURL(c),
	}

	ctx, span := observability.TraceFeedbackFunction(c.Request.Context(), "Submit")
	defer span.End()

	if err := p.sender.SendFeedback(ctx, token, delivery); err != nil {
		p.logger.Warn(ctx, "Feedback delivery failed; keeping submission sticky", map[string]interface{}{
			"error": err.Error(),
		})
	}

	state := p.engine.Submitted(p.State(c))
	p.store.PutJSON(c, statestore.KeyFeedbackState, state)
}

// Reset erases the persisted policy state and any pending trigger,
// restoring the default record. Exposed only through debug tooling.
func (p *Prompter) Reset(c *gin.Context) {
	p.store.Delete(c, statestore.KeyFeedbackState)
	p.store.Delete(c, statestore.KeyPendingTrigger)
}

// pageURL reports the page the visitor was on when the form posted,
// preferring the referring page over the form endpoint itself.
func pageURL(c *gin.Context) string {
	if ref := c.Request.Referer(); ref != "" {
		return ref
	}
	return c.Request.URL.String()
}
