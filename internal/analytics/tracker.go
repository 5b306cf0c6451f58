// Package analytics posts usage events to the scoring API. Tracking is
// strictly best-effort: a failed or slow event post never affects page
// rendering, and failures are logged at debug level only.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"bandly/internal/config"
	"bandly/internal/observability"
	"bandly/internal/statestore"
)

// trackTimeout bounds a single event post independently of the page
// request that spawned it.
const trackTimeout = 5 * time.Second

// Event is one usage event.
type Event struct {
	Name       string                 `json:"event"`
	Path       string                 `json:"path"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Timestamp  int64                  `json:"timestamp"`
}

// Tracker posts events tagged with an anonymous per-browsing-session ID.
type Tracker struct {
	enabled    bool
	httpClient *http.Client
	endpoint   string
	store      *statestore.Store
	logger     *observability.Logger
	now        func() time.Time
}

// NewTracker creates a Tracker posting to the configured API.
func NewTracker(cfg *config.Config, store *statestore.Store, logger *observability.Logger) *Tracker {
	return &Tracker{
		enabled: cfg.Analytics.Enabled,
		httpClient: &http.Client{
			Timeout: trackTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
			),
		},
		endpoint: cfg.APIBaseURL() + "/api/analytics/event",
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// SessionID returns the visitor's anonymous analytics session ID,
// generating one when absent. The ID carries no account identity.
func (t *Tracker) SessionID(c *gin.Context) string {
	if id, ok := t.store.GetString(c, statestore.KeyAnalyticsSession); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	t.store.PutString(c, statestore.KeyAnalyticsSession, id)
	return id
}

// Track posts an event in the background. It must be called from a
// request handler; the session ID is resolved before the handler
// returns, then delivery happens off the request goroutine.
func (t *Tracker) Track(c *gin.Context, name string, properties map[string]interface{}) {
	if !t.enabled {
		return
	}

	event := Event{
		Name:       name,
		Path:       c.Request.URL.Path,
		Properties: properties,
		Timestamp:  t.now().UnixMilli(),
	}
	sessionID := t.SessionID(c)

	go t.post(sessionID, event)
}

func (t *Tracker) post(sessionID string, event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
	defer cancel()

	data, err := json.Marshal(event)
	if err != nil {
		t.logger.Debug(ctx, "Dropping analytics event", map[string]interface{}{"error": err.Error()})
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(data))
	if err != nil {
		t.logger.Debug(ctx, "Dropping analytics event", map[string]interface{}{"error": err.Error()})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.Debug(ctx, "Analytics event delivery failed", map[string]interface{}{"error": err.Error()})
		return
	}
	_ = resp.Body.Close()
}
