// Package handlers renders the BandLy web pages and translates form
// submissions into scoring-API calls. Pages are server-rendered; all
// business state lives upstream or in the visitor's session.
package handlers

import (
	"context"

	"bandly/internal/analytics"
	"bandly/internal/api"
	"bandly/internal/config"
	"bandly/internal/feedback"
	"bandly/internal/observability"
	"bandly/internal/session"
	"bandly/internal/statestore"
)

// APIClient is the scoring-API surface the handlers depend on.
// *api.Client implements it; tests substitute fakes. It embeds
// feedback.Sender so the prompter can deliver submissions through the
// same client.
type APIClient interface {
	feedback.Sender

	AnalyzeEssay(ctx context.Context, token string, request api.AnalyzeRequest) (*api.AnalyzeOutcome, error)

	Login(ctx context.Context, creds api.Credentials) (*api.TokenResponse, error)
	Signup(ctx context.Context, creds api.Credentials) error
	GetProfile(ctx context.Context, token string) (*api.Profile, error)
	UpdateProfile(ctx context.Context, token string, profile api.Profile) error

	GetReport(ctx context.Context, publicID string) (*api.AnalysisResult, error)
	GetReportPDF(ctx context.Context, publicID string) ([]byte, error)
	GetDashboard(ctx context.Context, token string) (*api.DashboardSummary, error)
	GetHistory(ctx context.Context, token string) ([]api.HistoryEntry, error)

	GetAdminStats(ctx context.Context, token string) (*api.AdminStats, error)
	ListUsers(ctx context.Context, token string) ([]api.AdminUser, error)
	UpdateUser(ctx context.Context, token string, user api.AdminUser) error
	DeleteUser(ctx context.Context, token, userID string) error
	ListBlogPosts(ctx context.Context, token string) ([]api.BlogPost, error)
	CreateBlogPost(ctx context.Context, token string, post api.BlogPost) (*api.BlogPost, error)
	UpdateBlogPost(ctx context.Context, token string, post api.BlogPost) error
	DeleteBlogPost(ctx context.Context, token, postID string) error
	ListPromptTemplates(ctx context.Context, token string) ([]api.PromptTemplate, error)
	CreatePromptTemplate(ctx context.Context, token string, prompt api.PromptTemplate) (*api.PromptTemplate, error)
	UpdatePromptTemplate(ctx context.Context, token string, prompt api.PromptTemplate) error
	DeletePromptTemplate(ctx context.Context, token, promptID string) error

	Health(ctx context.Context) error
}

// Handler carries the shared dependencies for all page handlers.
type Handler struct {
	cfg      *config.Config
	client   APIClient
	store    *statestore.Store
	sessions *session.Manager
	prompter *feedback.Prompter
	tracker  *analytics.Tracker
	logger   *observability.Logger
}

// NewHandler creates the page handler set.
func NewHandler(
	cfg *config.Config,
	client APIClient,
	store *statestore.Store,
	sessions *session.Manager,
	prompter *feedback.Prompter,
	tracker *analytics.Tracker,
	logger *observability.Logger,
) *Handler {
	return &Handler{
		cfg:      cfg,
		client:   client,
		store:    store,
		sessions: sessions,
		prompter: prompter,
		tracker:  tracker,
		logger:   logger,
	}
}
