package feedback

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandly/internal/observability"
	"bandly/internal/statestore"
)

type recordingSender struct {
	calls      []Delivery
	tokens     []string
	returnsErr error
}

func (s *recordingSender) SendFeedback(_ context.Context, token string, d Delivery) error {
	s.calls = append(s.calls, d)
	s.tokens = append(s.tokens, token)
	return s.returnsErr
}

type prompterHarness struct {
	router   *gin.Engine
	prompter *Prompter
	sender   *recordingSender
	store    *statestore.Store
	clock    time.Time
}

func newPrompterHarness(t *testing.T, randVal float64) *prompterHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &prompterHarness{
		sender: &recordingSender{},
		clock:  time.UnixMilli(1_700_000_000_000),
	}

	logger := observability.NewLogger(nil)
	h.store = statestore.New(logger)
	engine := NewEngine(DefaultShowProbability,
		WithClock(func() time.Time { return h.clock }),
		WithRand(func() float64 { return randVal }),
	)
	h.prompter = NewPrompter(h.store, engine, h.sender, logger)
	h.prompter.now = func() time.Time { return h.clock }

	h.router = gin.New()
	h.router.Use(sessions.Sessions("test-session", cookie.NewStore([]byte("test-secret"))))
	return h
}

// run serves one request through fn, carrying session cookies between calls.
func (h *prompterHarness) run(t *testing.T, cookies []*http.Cookie, fn gin.HandlerFunc) []*http.Cookie {
	t.Helper()
	h.router.GET("/step", fn)
	defer func() { h.router = h.rebuildRouter() }()

	req, _ := http.NewRequest("GET", "/step", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	res := w.Result()
	if got := res.Cookies(); len(got) > 0 {
		return got
	}
	return cookies
}

func (h *prompterHarness) rebuildRouter() *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("test-session", cookie.NewStore([]byte("test-secret"))))
	return r
}

func TestPrompter_RecordArmsDelayedCheck(t *testing.T) {
	h := newPrompterHarness(t, 0)

	var cookies []*http.Cookie
	cookies = h.run(t, nil, func(c *gin.Context) {
		h.prompter.Record(c, TriggerResultView)
		c.Status(http.StatusOK)
	})

	// Check is not yet eligible before the 5s result-view delay.
	h.clock = h.clock.Add(4 * time.Second)
	cookies = h.run(t, cookies, func(c *gin.Context) {
		assert.False(t, h.prompter.Evaluate(c))
		c.Status(http.StatusOK)
	})

	// After the delay, with the dwell-time gate still closed, the check
	// is consumed without opening.
	h.clock = h.clock.Add(2 * time.Second)
	cookies = h.run(t, cookies, func(c *gin.Context) {
		assert.False(t, h.prompter.Evaluate(c))
		c.Status(http.StatusOK)
	})

	// Consumed: nothing pending on the next render either.
	h.run(t, cookies, func(c *gin.Context) {
		assert.False(t, h.prompter.Evaluate(c))
		c.Status(http.StatusOK)
	})
}

func TestPrompter_OpensAfterDelayAndDwellTime(t *testing.T) {
	h := newPrompterHarness(t, 0) // draw always under the threshold

	// First request pins the session start.
	var cookies []*http.Cookie
	cookies = h.run(t, nil, func(c *gin.Context) {
		h.prompter.SessionStart(c)
		c.Status(http.StatusOK)
	})

	// Dwell past the minimum, then arm and evaluate a result-view check.
	h.clock = h.clock.Add(time.Minute)
	cookies = h.run(t, cookies, func(c *gin.Context) {
		h.prompter.Record(c, TriggerResultView)
		c.Status(http.StatusOK)
	})

	h.clock = h.clock.Add(5 * time.Second)
	h.run(t, cookies, func(c *gin.Context) {
		assert.True(t, h.prompter.Evaluate(c))

		state := h.prompter.State(c)
		assert.True(t, state.HasShown)
		assert.Equal(t, h.clock.UnixMilli(), state.LastShown)
		c.Status(http.StatusOK)
	})
}

func TestPrompter_ManualTriggerBypassesGates(t *testing.T) {
	h := newPrompterHarness(t, 0.99) // unlucky draw

	h.run(t, nil, func(c *gin.Context) {
		// Zero dwell time, fresh session: a manual check still opens.
		h.prompter.Record(c, TriggerManual)
		assert.True(t, h.prompter.Evaluate(c))
		c.Status(http.StatusOK)
	})
}

func TestPrompter_SubmitStickyOnDeliveryFailure(t *testing.T) {
	h := newPrompterHarness(t, 0)
	h.sender.returnsErr = errors.New("upstream unreachable")

	h.run(t, nil, func(c *gin.Context) {
		h.prompter.Submit(c, "", Submission{Rating: 4, Comment: "nice"})

		state := h.prompter.State(c)
		assert.True(t, state.HasSubmitted)
		c.Status(http.StatusOK)
	})

	require.Len(t, h.sender.calls, 1)
	assert.Equal(t, 4, h.sender.calls[0].Rating)
	assert.Equal(t, h.clock.UnixMilli(), h.sender.calls[0].Timestamp)
}

func TestPrompter_SubmitAttachesMetadataAndToken(t *testing.T) {
	h := newPrompterHarness(t, 0)

	h.router.GET("/page", func(c *gin.Context) {
		h.prompter.Submit(c, "jwt-abc", Submission{Rating: 5, UserEmail: "a@b.test"})
		c.Status(http.StatusOK)
	})
	req, _ := http.NewRequest("GET", "/page", nil)
	req.Header.Set("User-Agent", "test-agent/1.0")
	req.Header.Set("Referer", "https://bandly.test/result/abc123")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, h.sender.calls, 1)
	d := h.sender.calls[0]
	assert.Equal(t, "test-agent/1.0", d.UserAgent)
	assert.Equal(t, "https://bandly.test/result/abc123", d.URL)
	assert.Equal(t, "jwt-abc", h.sender.tokens[0])
}

func TestPrompter_DismissPersistsIncrement(t *testing.T) {
	h := newPrompterHarness(t, 0)

	var cookies []*http.Cookie
	cookies = h.run(t, nil, func(c *gin.Context) {
		h.prompter.Dismiss(c)
		c.Status(http.StatusOK)
	})

	h.run(t, cookies, func(c *gin.Context) {
		h.prompter.Dismiss(c)
		state := h.prompter.State(c)
		assert.Equal(t, 2, state.DismissCount)
		c.Status(http.StatusOK)
	})
}

func TestPrompter_ResetErasesStateAndPending(t *testing.T) {
	h := newPrompterHarness(t, 0)

	h.run(t, nil, func(c *gin.Context) {
		h.prompter.Dismiss(c)
		h.prompter.Record(c, TriggerManual)

		h.prompter.Reset(c)

		assert.Equal(t, DefaultState(), h.prompter.State(c))
		assert.False(t, h.prompter.Evaluate(c))
		c.Status(http.StatusOK)
	})
}

func TestPrompter_UnknownSourceIgnored(t *testing.T) {
	h := newPrompterHarness(t, 0)

	h.run(t, nil, func(c *gin.Context) {
		h.prompter.Record(c, TriggerSource("bogus"))
		h.prompter.Record(c, TriggerManual)
		// Only the manual record survives; it opens immediately.
		assert.True(t, h.prompter.Evaluate(c))
		c.Status(http.StatusOK)
	})
}
