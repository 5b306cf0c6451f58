package handlers

import (
	"context"
	"sync"

	"bandly/internal/api"
	"bandly/internal/feedback"
)

// fakeClient implements APIClient for handler tests. Every call is
// counted so tests can assert which upstream calls were (not) made.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	analyzeOutcome *api.AnalyzeOutcome
	analyzeErr     error
	lastAnalyze    api.AnalyzeRequest
	lastToken      string

	loginResp *api.TokenResponse
	loginErr  error
	signupErr error

	profile    *api.Profile
	profileErr error

	report    *api.AnalysisResult
	reportErr error

	dashboard *api.DashboardSummary
	history   []api.HistoryEntry

	stats   *api.AdminStats
	users   []api.AdminUser
	posts   []api.BlogPost
	prompts []api.PromptTemplate

	feedbackErr   error
	lastDelivery  feedback.Delivery
	deliveryToken string
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: map[string]int{}}
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeClient) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) AnalyzeEssay(_ context.Context, token string, request api.AnalyzeRequest) (*api.AnalyzeOutcome, error) {
	f.record("AnalyzeEssay")
	f.mu.Lock()
	f.lastAnalyze = request
	f.lastToken = token
	f.mu.Unlock()
	return f.analyzeOutcome, f.analyzeErr
}

func (f *fakeClient) Login(_ context.Context, _ api.Credentials) (*api.TokenResponse, error) {
	f.record("Login")
	return f.loginResp, f.loginErr
}

func (f *fakeClient) Signup(_ context.Context, _ api.Credentials) error {
	f.record("Signup")
	return f.signupErr
}

func (f *fakeClient) GetProfile(_ context.Context, _ string) (*api.Profile, error) {
	f.record("GetProfile")
	return f.profile, f.profileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, _ string, _ api.Profile) error {
	f.record("UpdateProfile")
	return f.profileErr
}

func (f *fakeClient) GetReport(_ context.Context, _ string) (*api.AnalysisResult, error) {
	f.record("GetReport")
	return f.report, f.reportErr
}

func (f *fakeClient) GetReportPDF(_ context.Context, _ string) ([]byte, error) {
	f.record("GetReportPDF")
	return []byte("%PDF-1.4"), f.reportErr
}

func (f *fakeClient) GetDashboard(_ context.Context, _ string) (*api.DashboardSummary, error) {
	f.record("GetDashboard")
	return f.dashboard, nil
}

func (f *fakeClient) GetHistory(_ context.Context, _ string) ([]api.HistoryEntry, error) {
	f.record("GetHistory")
	return f.history, nil
}

func (f *fakeClient) GetAdminStats(_ context.Context, _ string) (*api.AdminStats, error) {
	f.record("GetAdminStats")
	return f.stats, nil
}

func (f *fakeClient) ListUsers(_ context.Context, _ string) ([]api.AdminUser, error) {
	f.record("ListUsers")
	return f.users, nil
}

func (f *fakeClient) UpdateUser(_ context.Context, _ string, _ api.AdminUser) error {
	f.record("UpdateUser")
	return nil
}

func (f *fakeClient) DeleteUser(_ context.Context, _, _ string) error {
	f.record("DeleteUser")
	return nil
}

func (f *fakeClient) ListBlogPosts(_ context.Context, _ string) ([]api.BlogPost, error) {
	f.record("ListBlogPosts")
	return f.posts, nil
}

func (f *fakeClient) CreateBlogPost(_ context.Context, _ string, post api.BlogPost) (*api.BlogPost, error) {
	f.record("CreateBlogPost")
	return &post, nil
}

func (f *fakeClient) UpdateBlogPost(_ context.Context, _ string, _ api.BlogPost) error {
	f.record("UpdateBlogPost")
	return nil
}

func (f *fakeClient) DeleteBlogPost(_ context.Context, _, _ string) error {
	f.record("DeleteBlogPost")
	return nil
}

func (f *fakeClient) ListPromptTemplates(_ context.Context, _ string) ([]api.PromptTemplate, error) {
	f.record("ListPromptTemplates")
	return f.prompts, nil
}

func (f *fakeClient) CreatePromptTemplate(_ context.Context, _ string, prompt api.PromptTemplate) (*api.PromptTemplate, error) {
	f.record("CreatePromptTemplate")
	return &prompt, nil
}

func (f *fakeClient) UpdatePromptTemplate(_ context.Context, _ string, _ api.PromptTemplate) error {
	f.record("UpdatePromptTemplate")
	return nil
}

func (f *fakeClient) DeletePromptTemplate(_ context.Context, _, _ string) error {
	f.record("DeletePromptTemplate")
	return nil
}

func (f *fakeClient) SendFeedback(_ context.Context, token string, delivery feedback.Delivery) error {
	f.record("SendFeedback")
	f.mu.Lock()
	f.lastDelivery = delivery
	f.deliveryToken = token
	f.mu.Unlock()
	return f.feedbackErr
}

func (f *fakeClient) Health(_ context.Context) error {
	f.record("Health")
	return nil
}
