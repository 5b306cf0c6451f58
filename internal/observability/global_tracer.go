package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var globalTracer trace.Tracer

// InitGlobalTracer initializes the global tracer for the application.
func InitGlobalTracer() {
	globalTracer = otel.Tracer("bandly-web")
}

// GetGlobalTracer returns the global tracer instance for the application.
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		// Fallback to default tracer if not initialized
		globalTracer = otel.Tracer("bandly-web")
	}
	return globalTracer
}

// TraceFunction starts a new span with a descriptive name for the given service and function.
func TraceFunction(ctx context.Context, serviceName, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := GetGlobalTracer()
	spanName := fmt.Sprintf("%s.%s", serviceName, functionName)
	return tracer.Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// TraceHandlerFunction starts a new span for a page or form handler.
func TraceHandlerFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "handler", functionName, attributes...)
}

// TraceAPIFunction starts a new span for a scoring API client call.
func TraceAPIFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "api", functionName, attributes...)
}

// TraceFeedbackFunction starts a new span for a feedback policy evaluation.
func TraceFeedbackFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "feedback", functionName, attributes...)
}

// AttributeTaskType returns a tracing attribute for an essay task type.
func AttributeTaskType(taskType string) attribute.KeyValue {
	return attribute.String("essay.task_type", taskType)
}

// AttributeWordCount returns a tracing attribute for an essay word count.
func AttributeWordCount(count int) attribute.KeyValue {
	return attribute.Int("essay.word_count", count)
}

// AttributePhase returns a tracing attribute for the terminal phase of
// an essay submission.
func AttributePhase(phase string) attribute.KeyValue {
	return attribute.String("essay.phase", phase)
}

// AttributePublicID returns a tracing attribute for a report public ID.
func AttributePublicID(id string) attribute.KeyValue {
	return attribute.String("report.public_id", id)
}

// AttributeTriggerSource returns a tracing attribute for a feedback trigger source.
func AttributeTriggerSource(source string) attribute.KeyValue {
	return attribute.String("feedback.trigger_source", source)
}

// AttributeStatusCode returns a tracing attribute for an upstream HTTP status code.
func AttributeStatusCode(code int) attribute.KeyValue {
	return attribute.Int("http.status_code", code)
}
