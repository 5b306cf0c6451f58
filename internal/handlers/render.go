package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"bandly/internal/version"
	contextutils "bandly/internal/utils"
)

//go:embed templates
var templateFS embed.FS

// loadTemplates parses every embedded page and partial template.
func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html", "templates/partials/*.html"))
}

// pageData assembles the fields every page template expects, then
// merges in the page-specific ones. The feedback prompt decision is
// made here so any rendered page can surface a due prompt.
func (h *Handler) pageData(c *gin.Context, title string, data gin.H) gin.H {
	out := gin.H{
		"Title":              title,
		"Authed":             false,
		"ShowFeedbackPrompt": h.prompter.Evaluate(c),
		"Version":            version.Version,
	}
	if _, ok := h.sessions.Token(c); ok {
		out["Authed"] = true
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// renderError renders the shared error page with a visitor-safe
// message. Upstream details stay in the logs and the span.
func (h *Handler) renderError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
		h.logger.Error(c.Request.Context(), "Page render failed", err, map[string]interface{}{
			"http.path": c.Request.URL.Path,
		})
	}
	c.HTML(status, "error", h.pageData(c, "Something went wrong", gin.H{
		"Message": message,
		"Status":  status,
	}))
}

// renderUpstreamError maps a scoring-API error onto the right page
// response: auth failures drop the session and bounce to login, a
// missing record is a 404, anything else is a 502.
func (h *Handler) renderUpstreamError(c *gin.Context, err error) {
	switch {
	case contextutils.IsError(err, contextutils.ErrUnauthorized), contextutils.IsError(err, contextutils.ErrForbidden):
		h.sessions.Clear(c)
		c.Redirect(http.StatusFound, "/login")
	case contextutils.IsError(err, contextutils.ErrRecordNotFound):
		h.renderError(c, http.StatusNotFound, "We couldn't find that report.", nil)
	default:
		h.renderError(c, http.StatusBadGateway, "The scoring service is temporarily unavailable. Please try again shortly.", err)
	}
}
