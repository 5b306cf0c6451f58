package essay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordCount(t *testing.T) {
	assert.Equal(t, 3, WordCount("  one   two  three "))
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t  "))
	assert.Equal(t, 2, WordCount("hello\nworld"))
}

func TestValidate_Bounds(t *testing.T) {
	valid, reason := Validate(149)
	assert.False(t, valid)
	assert.Contains(t, reason, "too short")

	valid, reason = Validate(150)
	assert.True(t, valid)
	assert.Empty(t, reason)

	valid, _ = Validate(320)
	assert.True(t, valid)

	valid, reason = Validate(321)
	assert.False(t, valid)
	assert.Contains(t, reason, "too long")
}

func TestValidate_RealText(t *testing.T) {
	text := strings.Repeat("word ", 200)
	valid, _ := Validate(WordCount(text))
	assert.True(t, valid)

	short := strings.Repeat("word ", 100)
	valid, reason := Validate(WordCount(short))
	assert.False(t, valid)
	assert.Contains(t, reason, "too short")
}

func TestParseTaskType(t *testing.T) {
	assert.Equal(t, TaskType1, ParseTaskType("task1"))
	assert.Equal(t, TaskType1, ParseTaskType(" TASK1 "))
	assert.Equal(t, TaskType2, ParseTaskType("task2"))
	assert.Equal(t, TaskType2, ParseTaskType(""))
	assert.Equal(t, TaskType2, ParseTaskType("essay"))
}

func TestPhase_Terminal(t *testing.T) {
	assert.True(t, PhaseSuccess.Terminal())
	assert.True(t, PhaseRateLimited.Terminal())
	assert.True(t, PhaseRejected.Terminal())
	assert.True(t, PhaseFailed.Terminal())
	assert.False(t, PhaseIdle.Terminal())
	assert.False(t, PhaseSubmitting.Terminal())
	assert.False(t, PhaseValidating.Terminal())
}
