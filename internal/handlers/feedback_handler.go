package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bandly/internal/feedback"
	contextutils "bandly/internal/utils"
)

// FeedbackDismiss records that the visitor closed the prompt without
// submitting.
func (h *Handler) FeedbackDismiss(c *gin.Context) {
	h.prompter.Dismiss(c)
	h.redirectBack(c)
}

// FeedbackSubmit delivers the visitor's feedback. The visitor always
// sees the thank-you state; delivery problems stay in the logs.
func (h *Handler) FeedbackSubmit(c *gin.Context) {
	rating, _ := strconv.Atoi(c.PostForm("rating"))
	sub := feedback.Submission{
		Rating:    rating,
		Comment:   c.PostForm("comment"),
		UserEmail: c.PostForm("userEmail"),
	}

	if err := contextutils.ValidateStruct(sub); err != nil {
		// A malformed submission is dropped without marking the
		// visitor as submitted; the form enforces these bounds.
		h.logger.Warn(c.Request.Context(), "Rejecting malformed feedback submission", map[string]interface{}{
			"error": err.Error(),
		})
		h.redirectBack(c)
		return
	}

	token, _ := h.sessions.Token(c)
	h.prompter.Submit(c, token, sub)
	h.tracker.Track(c, "feedback_submitted", map[string]interface{}{"rating": sub.Rating})
	h.redirectBack(c)
}

// FeedbackPageLeave arms the page-leave prompt check. Sent by a beacon
// as the visitor navigates away; evaluated on their next render.
func (h *Handler) FeedbackPageLeave(c *gin.Context) {
	h.prompter.Record(c, feedback.TriggerPageLeave)
	c.Status(http.StatusNoContent)
}

// FeedbackForce arms a forced prompt check. Debug builds only.
func (h *Handler) FeedbackForce(c *gin.Context) {
	h.prompter.Record(c, feedback.TriggerManual)
	c.JSON(http.StatusOK, gin.H{"status": "armed"})
}

// FeedbackReset erases the visitor's prompt policy state. Debug builds only.
func (h *Handler) FeedbackReset(c *gin.Context) {
	h.prompter.Reset(c)
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// redirectBack returns the visitor to the page they acted from.
func (h *Handler) redirectBack(c *gin.Context) {
	target := c.Request.Referer()
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusSeeOther, target)
}
