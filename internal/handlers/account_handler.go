package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bandly/internal/api"
	"bandly/internal/middleware"
	"bandly/internal/observability"
	contextutils "bandly/internal/utils"
)

// Dashboard renders the authenticated activity summary.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "Dashboard")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	summary, err := h.client.GetDashboard(ctx, token)
	if err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard", h.pageData(c, "Dashboard", gin.H{
		"Summary": summary,
	}))
}

// History renders the visitor's past analyses.
func (h *Handler) History(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "History")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	entries, err := h.client.GetHistory(ctx, token)
	if err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	c.HTML(http.StatusOK, "history", h.pageData(c, "Essay history", gin.H{
		"Entries": entries,
	}))
}

// ProfileForm renders the account settings page.
func (h *Handler) ProfileForm(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "ProfileForm")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	profile, err := h.client.GetProfile(ctx, token)
	if err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	c.HTML(http.StatusOK, "profile", h.pageData(c, "Your profile", gin.H{
		"Profile": profile,
	}))
}

// ProfileUpdate saves the account's name and email.
func (h *Handler) ProfileUpdate(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "ProfileUpdate")
	defer span.End()

	token, _ := middleware.TokenFromContext(c)

	updated := api.Profile{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
	}

	if updated.Email != "" && !contextutils.IsValidEmail(updated.Email) {
		c.HTML(http.StatusOK, "profile", h.pageData(c, "Your profile", gin.H{
			"Profile": &updated,
			"Error":   "Please enter a valid email address.",
		}))
		return
	}

	if err := h.client.UpdateProfile(ctx, token, updated); err != nil {
		h.renderUpstreamError(c, err)
		return
	}

	c.HTML(http.StatusOK, "profile", h.pageData(c, "Your profile", gin.H{
		"Profile": &updated,
		"Saved":   true,
	}))
}
