package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"bandly/internal/observability"
	contextutils "bandly/internal/utils"
)

// GetReport retrieves a shared analysis result by its public ID. No
// auth is required; the ID itself is the capability.
func (c *Client) GetReport(ctx context.Context, publicID string) (result0 *AnalysisResult, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "GetReport",
		observability.AttributePublicID(publicID))
	defer observability.FinishSpan(span, &err)

	var result AnalysisResult
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports/"+url.PathEscape(publicID), "", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetReportPDF retrieves the PDF export of a report. The bytes are
// opaque; rendering happens server-side.
func (c *Client) GetReportPDF(ctx context.Context, publicID string) (result0 []byte, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "GetReportPDF",
		observability.AttributePublicID(publicID))
	defer observability.FinishSpan(span, &err)

	resp, err := c.do(ctx, http.MethodGet, "/api/reports/"+url.PathEscape(publicID)+"/pdf", "", nil)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(ctx, resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, c.remoteError(resp.StatusCode, raw)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to read PDF response")
	}
	return pdf, nil
}

// GetDashboard fetches the authenticated user's activity summary.
func (c *Client) GetDashboard(ctx context.Context, token string) (result0 *DashboardSummary, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "GetDashboard")
	defer observability.FinishSpan(span, &err)

	var summary DashboardSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/dashboard", token, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetHistory fetches the authenticated user's past analyses.
func (c *Client) GetHistory(ctx context.Context, token string) (result0 []HistoryEntry, err error) {
	ctx, span := observability.TraceAPIFunction(ctx, "GetHistory")
	defer observability.FinishSpan(span, &err)

	var entries []HistoryEntry
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/history", token, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
