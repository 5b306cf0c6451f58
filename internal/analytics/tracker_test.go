package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandly/internal/config"
	"bandly/internal/observability"
	"bandly/internal/statestore"
)

type capturedEvent struct {
	sessionID string
	event     Event
}

func newTrackerHarness(t *testing.T, enabled bool) (*gin.Engine, *Tracker, func() []capturedEvent) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var mu sync.Mutex
	var events []capturedEvent
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		mu.Lock()
		events = append(events, capturedEvent{sessionID: r.Header.Get("X-Session-ID"), event: ev})
		mu.Unlock()
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		API:       config.APIConfig{BaseURL: upstream.URL},
		Analytics: config.AnalyticsConfig{Enabled: enabled},
		IsTest:    true,
	}
	store := statestore.New(observability.NewLogger(nil))
	tracker := NewTracker(cfg, store, observability.NewLogger(nil))

	r := gin.New()
	r.Use(sessions.Sessions("test-session", cookie.NewStore([]byte("test-secret"))))

	snapshot := func() []capturedEvent {
		mu.Lock()
		defer mu.Unlock()
		out := make([]capturedEvent, len(events))
		copy(out, events)
		return out
	}
	return r, tracker, snapshot
}

func waitForEvents(t *testing.T, snapshot func() []capturedEvent, want int) []capturedEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := snapshot(); len(got) >= want {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d analytics events, got %d", want, len(snapshot()))
	return nil
}

func TestTracker_PostsEventWithSessionID(t *testing.T) {
	router, tracker, snapshot := newTrackerHarness(t, true)

	router.GET("/analyze", func(c *gin.Context) {
		tracker.Track(c, "essay_submitted", map[string]interface{}{"taskType": "task2"})
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/analyze", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	events := waitForEvents(t, snapshot, 1)
	assert.Equal(t, "essay_submitted", events[0].event.Name)
	assert.Equal(t, "/analyze", events[0].event.Path)
	assert.NotEmpty(t, events[0].sessionID)
}

func TestTracker_DisabledPostsNothing(t *testing.T) {
	router, tracker, snapshot := newTrackerHarness(t, false)

	router.GET("/page", func(c *gin.Context) {
		tracker.Track(c, "page_view", nil)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/page", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, snapshot())
}

func TestTracker_SessionIDStableWithinSession(t *testing.T) {
	router, tracker, _ := newTrackerHarness(t, true)

	router.GET("/id", func(c *gin.Context) {
		first := tracker.SessionID(c)
		second := tracker.SessionID(c)
		assert.Equal(t, first, second)
		assert.Len(t, first, 36) // uuid format
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
