package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"bandly/internal/analytics"
	"bandly/internal/config"
	"bandly/internal/feedback"
	"bandly/internal/middleware"
	"bandly/internal/observability"
	"bandly/internal/session"
	"bandly/internal/statestore"
	"bandly/internal/version"
)

// NewRouter creates the web router with all middleware and routes.
func NewRouter(
	cfg *config.Config,
	client APIClient,
	logger *observability.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// HTTP request logging through the observability logger
	router.Use(func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		fields := map[string]interface{}{
			"http.method":      c.Request.Method,
			"http.path":        c.Request.URL.Path,
			"http.status_code": statusCode,
			"http.latency_ms":  latency.Milliseconds(),
			"http.client_ip":   c.ClientIP(),
			"http.user_agent":  c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			fields["http.error"] = c.Errors.String()
		}

		switch {
		case statusCode >= 500:
			logger.Error(c.Request.Context(), "HTTP request failed", nil, fields)
		case statusCode >= 400:
			logger.Warn(c.Request.Context(), "HTTP request warning", fields)
		default:
			logger.Info(c.Request.Context(), "HTTP request", fields)
		}
	})

	// Health check endpoint (defined before any middleware)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "web"})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":   "web",
			"version":   version.Version,
			"commit":    version.Commit,
			"buildTime": version.BuildTime,
		})
	})

	// OpenTelemetry middleware for HTTP tracing with automatic error attributes
	router.Use(observability.GinMiddlewareWithErrorHandling(cfg.OpenTelemetry.ServiceName))

	router.RedirectTrailingSlash = false

	// CORS only matters for the beacon endpoints; pages are same-origin
	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:" + cfg.Server.Port}
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Requested-With"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Session middleware; the cookie session is the durable per-visitor
	// store for the token, feedback state, and pending triggers
	store := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	sessionOpts := sessions.Options{
		Path:     config.SessionPath,
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: config.SessionHTTPOnly,
		Secure:   config.SessionSecure,
	}
	if cfg.Server.Debug {
		sessionOpts.SameSite = http.SameSiteDefaultMode
	} else {
		sessionOpts.SameSite = http.SameSiteLaxMode
		sessionOpts.Secure = true
	}
	store.Options(sessionOpts)
	router.Use(sessions.Sessions(config.SessionName, store))

	// Security middleware
	secureConfig := secure.DefaultConfig()
	secureConfig.SSLRedirect = false
	secureConfig.ContentSecurityPolicy = config.DefaultCSP
	router.Use(secure.New(secureConfig))

	router.SetHTMLTemplate(loadTemplates())

	// Shared dependencies
	kv := statestore.New(logger)
	sessionManager := session.NewManager(kv)
	engine := feedback.NewEngine(cfg.ShowProbability())

	prompter := feedback.NewPrompter(kv, engine, client, logger)
	tracker := analytics.NewTracker(cfg, kv, logger)

	// A login or logout changes who the visitor is, so the analytics
	// session starts over with a fresh id.
	sessionManager.Subscribe(func(c *gin.Context, _ string) {
		kv.Delete(c, statestore.KeyAnalyticsSession)
	})

	h := NewHandler(cfg, client, kv, sessionManager, prompter, tracker, logger)

	// Public pages
	router.GET("/", h.Home)
	router.GET("/analyze", h.AnalyzeForm)
	router.POST("/analyze", h.AnalyzeSubmit)
	router.GET("/result", h.Result)
	router.GET("/report/:publicId", h.Report)
	router.GET("/report/:publicId/pdf", h.ReportPDF)
	router.GET("/blog", h.BlogIndex)
	router.GET("/blog/:slug", h.BlogPost)

	// Auth pages
	router.GET("/login", h.LoginForm)
	router.POST("/login", h.Login)
	router.GET("/signup", h.SignupForm)
	router.POST("/signup", h.Signup)
	router.POST("/logout", h.Logout)

	// Feedback prompt endpoints
	router.POST("/feedback/dismiss", h.FeedbackDismiss)
	router.POST("/feedback/submit", h.FeedbackSubmit)
	router.POST("/feedback/pageleave", h.FeedbackPageLeave)

	// Authenticated pages
	authed := router.Group("")
	authed.Use(middleware.RequireAuth(sessionManager))
	{
		authed.GET("/dashboard", h.Dashboard)
		authed.GET("/history", h.History)
		authed.GET("/profile", h.ProfileForm)
		authed.POST("/profile", h.ProfileUpdate)
	}

	// Back-office
	admin := router.Group("/sidigi")
	admin.Use(middleware.RequireAdmin(sessionManager, client))
	{
		admin.GET("", h.AdminDashboard)
		admin.GET("/users", h.AdminUsers)
		admin.POST("/users/:id", h.AdminUserUpdate)
		admin.POST("/users/:id/delete", h.AdminUserDelete)
		admin.GET("/blog", h.AdminBlog)
		admin.POST("/blog", h.AdminBlogCreate)
		admin.POST("/blog/:id", h.AdminBlogUpdate)
		admin.POST("/blog/:id/delete", h.AdminBlogDelete)
		admin.GET("/prompts", h.AdminPrompts)
		admin.POST("/prompts", h.AdminPromptCreate)
		admin.POST("/prompts/:id", h.AdminPromptUpdate)
		admin.POST("/prompts/:id/delete", h.AdminPromptDelete)
	}

	// Live prompt testing hooks, debug builds only
	if cfg.Server.Debug {
		debug := router.Group("/debug/feedback")
		{
			debug.POST("/force", h.FeedbackForce)
			debug.POST("/reset", h.FeedbackReset)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		h.renderError(c, http.StatusNotFound, "That page doesn't exist.", nil)
	})

	return router
}
