package api

import (
	"context"
	"net/http"

	"bandly/internal/feedback"
	"bandly/internal/observability"
)

// SendFeedback delivers a feedback submission with its contextual
// metadata. Callers treat this as fire-and-forget; the prompt policy
// marks the visitor as submitted whether or not delivery worked.
func (c *Client) SendFeedback(ctx context.Context, token string, delivery feedback.Delivery) (err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "SendFeedback")
	defer observability.FinishSpan(span, &err)

	return c.doJSON(ctx, http.MethodPost, "/api/feedback", token, delivery, nil)
}
