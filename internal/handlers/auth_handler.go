package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bandly/internal/api"
	"bandly/internal/observability"
	contextutils "bandly/internal/utils"
)

// LoginForm renders the login page.
func (h *Handler) LoginForm(c *gin.Context) {
	if _, ok := h.sessions.Token(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	data := gin.H{}
	if c.Query("created") == "1" {
		data["Notice"] = "Account created. Please log in."
	}
	c.HTML(http.StatusOK, "login", h.pageData(c, "Log in", data))
}

// Login exchanges the submitted credentials for a bearer token and
// stores it in the session.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "Login")
	defer span.End()

	creds := api.Credentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	token, err := h.client.Login(ctx, creds)
	if err != nil {
		status := http.StatusOK
		message := "Login failed. Please try again."
		switch {
		case contextutils.IsError(err, contextutils.ErrInvalidCredentials),
			contextutils.IsError(err, contextutils.ErrValidationFailed):
			message = "Invalid email or password."
		default:
			h.logger.Error(ctx, "Login request failed", err, nil)
			message = "We couldn't reach the server. Please try again shortly."
		}
		c.HTML(status, "login", h.pageData(c, "Log in", gin.H{
			"Error": message,
			"Email": creds.Email,
		}))
		return
	}

	h.sessions.SetToken(c, token.Token)
	h.tracker.Track(c, "logged_in", nil)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// SignupForm renders the account creation page.
func (h *Handler) SignupForm(c *gin.Context) {
	if _, ok := h.sessions.Token(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "signup", h.pageData(c, "Create an account", gin.H{}))
}

// Signup creates an account. The API issues no token on signup, so the
// visitor is sent to the login form with a confirmation notice.
func (h *Handler) Signup(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "Signup")
	defer span.End()

	creds := api.Credentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Name:     c.PostForm("name"),
	}

	if err := h.client.Signup(ctx, creds); err != nil {
		message := "Signup failed. Please try again."
		switch {
		case contextutils.IsError(err, contextutils.ErrValidationFailed):
			message = "Please use a valid email and a password of at least 8 characters."
		case contextutils.IsError(err, contextutils.ErrRecordExists):
			message = "An account with that email already exists."
		default:
			h.logger.Error(ctx, "Signup request failed", err, nil)
			message = "We couldn't reach the server. Please try again shortly."
		}
		c.HTML(http.StatusOK, "signup", h.pageData(c, "Create an account", gin.H{
			"Error": message,
			"Email": creds.Email,
			"Name":  creds.Name,
		}))
		return
	}

	h.tracker.Track(c, "signed_up", nil)
	c.Redirect(http.StatusSeeOther, "/login?created=1")
}

// Logout clears the session token.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}
