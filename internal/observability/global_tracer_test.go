package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceFunction_ReturnsUsableSpan(t *testing.T) {
	ctx, span := TraceHandlerFunction(context.Background(), "AnalyzeSubmit")
	require.NotNil(t, span)
	require.NotNil(t, ctx)
	span.SetAttributes(AttributePhase("success"))
	span.End()
}

func TestAttributeHelpers_Keys(t *testing.T) {
	assert.Equal(t, "essay.task_type", string(AttributeTaskType("task2").Key))
	assert.Equal(t, "essay.word_count", string(AttributeWordCount(200).Key))
	assert.Equal(t, "essay.phase", string(AttributePhase("rejected").Key))
	assert.Equal(t, "rejected", AttributePhase("rejected").Value.AsString())
	assert.Equal(t, "report.public_id", string(AttributePublicID("abc").Key))
	assert.Equal(t, "feedback.trigger_source", string(AttributeTriggerSource("manual").Key))
}
