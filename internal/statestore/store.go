// Package statestore provides a small typed key-value layer over the
// cookie-backed session. All per-visitor state the application persists
// between requests (auth token, feedback prompt state, analytics session,
// pending trigger records) goes through this package.
//
// Writes are best-effort: a value that cannot be saved is logged and
// dropped, never surfaced to the visitor. Reads of corrupted values
// behave as if the key were absent. Multi-key updates are not atomic;
// callers that care about ordering must write the authoritative key last.
package statestore

import (
	"encoding/json"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"bandly/internal/observability"
)

// Session keys. These are stable names; renaming one orphans the value
// in existing visitor cookies.
const (
	// KeyToken holds the bearer token for the scoring API.
	KeyToken = "token"

	// KeyFeedbackState holds the serialized feedback prompt state.
	KeyFeedbackState = "bandly_feedback_state"

	// KeyPendingTrigger holds a serialized pending feedback trigger record.
	KeyPendingTrigger = "bandly_feedback_pending"

	// KeyAnalyticsSession holds the anonymous analytics session ID.
	KeyAnalyticsSession = "analytics_session_id"

	// KeySessionStart holds the epoch-millisecond time of the first request
	// in this browser session. Used for the minimum-session-time gate.
	KeySessionStart = "session_start"

	// KeyFlashResult holds a one-shot serialized analysis result carried
	// across the redirect from the analyze form to the result page.
	KeyFlashResult = "flash_result"
)

// Store reads and writes typed values in the current request's session.
type Store struct {
	logger *observability.Logger
}

// New creates a Store that logs persistence failures through the given logger.
func New(logger *observability.Logger) *Store {
	return &Store{logger: logger}
}

// GetString returns the string stored under key, or ("", false) when the
// key is absent or holds a non-string value.
func (s *Store) GetString(c *gin.Context, key string) (string, bool) {
	session := sessions.Default(c)
	raw := session.Get(key)
	if raw == nil {
		return "", false
	}
	val, ok := raw.(string)
	if !ok {
		return "", false
	}
	return val, true
}

// PutString stores a string under key. Save failures are logged and swallowed.
func (s *Store) PutString(c *gin.Context, key, value string) {
	session := sessions.Default(c)
	session.Set(key, value)
	s.save(c, session, key)
}

// GetInt64 returns the int64 stored under key, or (0, false) when the key
// is absent or holds an incompatible value.
func (s *Store) GetInt64(c *gin.Context, key string) (int64, bool) {
	session := sessions.Default(c)
	raw := session.Get(key)
	if raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// PutInt64 stores an int64 under key. Save failures are logged and swallowed.
func (s *Store) PutInt64(c *gin.Context, key string, value int64) {
	session := sessions.Default(c)
	session.Set(key, value)
	s.save(c, session, key)
}

// GetJSON unmarshals the JSON document stored under key into dest.
// Returns false when the key is absent or the stored document is corrupted;
// dest is left untouched in that case.
func (s *Store) GetJSON(c *gin.Context, key string, dest interface{}) bool {
	raw, ok := s.GetString(c, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn(c.Request.Context(), "Discarding corrupted session value", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return true
}

// PutJSON marshals value to JSON and stores it under key.
// Marshal and save failures are logged and swallowed.
func (s *Store) PutJSON(c *gin.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn(c.Request.Context(), "Failed to serialize session value", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	s.PutString(c, key, string(data))
}

// Delete removes key from the session. Save failures are logged and swallowed.
func (s *Store) Delete(c *gin.Context, key string) {
	session := sessions.Default(c)
	session.Delete(key)
	s.save(c, session, key)
}

// TakeJSON reads the JSON document stored under key into dest and deletes
// the key in the same pass. Used for one-shot flash values.
func (s *Store) TakeJSON(c *gin.Context, key string, dest interface{}) bool {
	ok := s.GetJSON(c, key, dest)
	if ok {
		s.Delete(c, key)
	}
	return ok
}

func (s *Store) save(c *gin.Context, session sessions.Session, key string) {
	if err := session.Save(); err != nil {
		// State persistence is best-effort; the visitor keeps working
		// with whatever was last saved.
		s.logger.Warn(c.Request.Context(), "Failed to persist session state", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
