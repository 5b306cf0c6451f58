package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandly/internal/observability"
	"bandly/internal/statestore"
)

func setupSessionTestRouter() (*gin.Engine, *Manager) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test-session", store))
	mgr := NewManager(statestore.New(observability.NewLogger(nil)))
	return r, mgr
}

func TestManager_TokenLifecycle(t *testing.T) {
	router, mgr := setupSessionTestRouter()

	router.GET("/lifecycle", func(c *gin.Context) {
		_, ok := mgr.Token(c)
		assert.False(t, ok)

		mgr.SetToken(c, "jwt-token")
		token, ok := mgr.Token(c)
		assert.True(t, ok)
		assert.Equal(t, "jwt-token", token)

		mgr.Clear(c)
		_, ok = mgr.Token(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/lifecycle", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestManager_EmptyTokenTreatedAsAbsent(t *testing.T) {
	router, mgr := setupSessionTestRouter()

	router.GET("/check", func(c *gin.Context) {
		mgr.SetToken(c, "")
		_, ok := mgr.Token(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/check", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestManager_SubscribersNotified(t *testing.T) {
	router, mgr := setupSessionTestRouter()

	var events []string
	mgr.Subscribe(func(_ *gin.Context, token string) {
		events = append(events, token)
	})

	router.GET("/notify", func(c *gin.Context) {
		mgr.SetToken(c, "first")
		mgr.SetToken(c, "second")
		mgr.Clear(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/notify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"first", "second", ""}, events)
}
