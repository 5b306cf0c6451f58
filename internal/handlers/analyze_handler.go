package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bandly/internal/api"
	"bandly/internal/essay"
	"bandly/internal/feedback"
	"bandly/internal/observability"
	"bandly/internal/statestore"
)

// AnalyzeForm renders the essay submission form.
func (h *Handler) AnalyzeForm(c *gin.Context) {
	h.tracker.Track(c, "analyze_form_viewed", nil)
	c.HTML(http.StatusOK, "analyze", h.pageData(c, "Check your IELTS essay", gin.H{
		"TaskType": string(essay.TaskType2),
		"MinWords": essay.MinWords,
		"MaxWords": essay.MaxWords,
	}))
}

// AnalyzeSubmit validates the essay locally, submits it for scoring,
// and routes the outcome: success flashes the result into the session
// and redirects to the result view; rejection, rate-limiting, and
// failures re-render the form with the visitor's text intact.
func (h *Handler) AnalyzeSubmit(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "AnalyzeSubmit")
	defer span.End()

	text := c.PostForm("text")
	taskType := essay.ParseTaskType(c.PostForm("taskType"))

	wordCount := essay.WordCount(text)
	span.SetAttributes(
		observability.AttributeTaskType(string(taskType)),
		observability.AttributeWordCount(wordCount),
	)

	// Local precondition; an out-of-range essay never reaches the API.
	if valid, reason := essay.Validate(wordCount); !valid {
		span.SetAttributes(observability.AttributePhase(string(essay.PhaseRejected)))
		c.HTML(http.StatusOK, "analyze", h.analyzeFormData(c, text, taskType, wordCount, gin.H{
			"ValidationError": reason,
		}))
		return
	}

	token, _ := h.sessions.Token(c)

	outcome, err := h.client.AnalyzeEssay(ctx, token, api.AnalyzeRequest{
		Text:     text,
		TaskType: string(taskType),
	})
	if err != nil {
		// Transport failure: generic notification, no automatic retry.
		span.SetAttributes(observability.AttributePhase(string(essay.PhaseFailed)))
		h.logger.Error(ctx, "Essay analysis request failed", err, nil)
		c.HTML(http.StatusOK, "analyze", h.analyzeFormData(c, text, taskType, wordCount, gin.H{
			"NetworkError": true,
		}))
		return
	}

	switch {
	case outcome.RateLimit != nil:
		// Recoverable and user-visible. suggestLogin selects the
		// account-invitation variant of the notice.
		span.SetAttributes(observability.AttributePhase(string(essay.PhaseRateLimited)))
		h.tracker.Track(c, "analyze_rate_limited", map[string]interface{}{
			"userType":     outcome.RateLimit.UserType,
			"suggestLogin": outcome.RateLimit.SuggestLogin,
		})
		c.HTML(http.StatusOK, "analyze", h.analyzeFormData(c, text, taskType, wordCount, gin.H{
			"RateLimited": outcome.RateLimit,
		}))

	case outcome.Remote != nil:
		span.SetAttributes(observability.AttributePhase(string(essay.PhaseFailed)))
		c.HTML(http.StatusOK, "analyze", h.analyzeFormData(c, text, taskType, wordCount, gin.H{
			"ServerError": outcome.Remote.Message,
		}))

	default:
		span.SetAttributes(observability.AttributePhase(string(essay.PhaseSuccess)))
		h.store.PutJSON(c, statestore.KeyFlashResult, outcome.Result)
		h.prompter.Record(c, feedback.TriggerResultView)
		h.tracker.Track(c, "essay_analyzed", map[string]interface{}{
			"taskType":  string(taskType),
			"wordCount": wordCount,
			"overall":   outcome.Result.Overall,
		})
		c.Redirect(http.StatusSeeOther, "/result")
	}
}

// analyzeFormData rebuilds the form page data with the visitor's text
// preserved.
func (h *Handler) analyzeFormData(c *gin.Context, text string, taskType essay.TaskType, wordCount int, extra gin.H) gin.H {
	data := gin.H{
		"Text":      text,
		"TaskType":  string(taskType),
		"WordCount": wordCount,
		"MinWords":  essay.MinWords,
		"MaxWords":  essay.MaxWords,
	}
	for k, v := range extra {
		data[k] = v
	}
	return h.pageData(c, "Check your IELTS essay", data)
}

// Result renders the analysis carried over from a successful
// submission. The record is one-shot: a refresh or direct visit goes
// back to the form, the shareable copy lives at /report/:publicId.
func (h *Handler) Result(c *gin.Context) {
	var result api.AnalysisResult
	if !h.store.TakeJSON(c, statestore.KeyFlashResult, &result) {
		c.Redirect(http.StatusFound, "/analyze")
		return
	}

	c.HTML(http.StatusOK, "result", h.pageData(c, "Your band scores", gin.H{
		"Result": &result,
	}))
}

// Report renders a shared analysis fetched by its public ID.
func (h *Handler) Report(c *gin.Context) {
	publicID := c.Param("publicId")

	result, err := h.client.GetReport(c.Request.Context(), publicID)
	if err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	h.tracker.Track(c, "report_viewed", map[string]interface{}{"publicId": publicID})
	c.HTML(http.StatusOK, "report", h.pageData(c, "Band score report", gin.H{
		"Result":   result,
		"PublicID": publicID,
	}))
}

// ReportPDF streams the server-rendered PDF export of a report.
func (h *Handler) ReportPDF(c *gin.Context) {
	publicID := c.Param("publicId")

	pdf, err := h.client.GetReportPDF(c.Request.Context(), publicID)
	if err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bandly-report-`+publicID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
