// Package api is the typed HTTP client for the BandLy scoring API. The
// front-end owns no scoring, persistence, or auth logic; everything it
// shows is fetched through this package, and every response shape is
// decoded explicitly at this boundary.
package api

import "fmt"

// AnalyzeRequest is the body sent to the essay analysis endpoint.
type AnalyzeRequest struct {
	Text     string `json:"text"`
	TaskType string `json:"taskType"`
}

// Bands are the four IELTS writing sub-scores, each 0-9.
type Bands struct {
	TA  float64 `json:"ta"`
	CC  float64 `json:"cc"`
	LR  float64 `json:"lr"`
	GRA float64 `json:"gra"`
}

// AnalysisResult is a scored essay as returned by the API. The
// front-end never mutates it.
type AnalysisResult struct {
	PublicID  string  `json:"publicId"`
	Overall   float64 `json:"overall"`
	Bands     Bands   `json:"bands"`
	CEFR      string  `json:"cefr"`
	Feedback  string  `json:"feedback"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// RateLimitInfo is the body of a 429 from the analysis endpoint. The
// quota numbers are server-owned; the front-end only displays them.
type RateLimitInfo struct {
	Error        string `json:"error"`
	Limit        int    `json:"limit"`
	Used         int    `json:"used"`
	Remaining    int    `json:"remaining"`
	ResetTime    string `json:"resetTime"`
	Message      string `json:"message"`
	UserType     string `json:"userType"`
	SuggestLogin bool   `json:"suggestLogin"`
}

// RemoteError is a non-2xx, non-429 response from the API, carrying
// the server's message verbatim when it sent one.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// AnalyzeOutcome is the discriminated result of an analysis request.
// Exactly one field is non-nil. Transport failures are reported as a
// plain error instead, never as an outcome.
type AnalyzeOutcome struct {
	// Result is set on a 2xx response.
	Result *AnalysisResult

	// RateLimit is set on a 429. This is a recoverable, user-visible
	// condition, not an error.
	RateLimit *RateLimitInfo

	// Remote is set on any other non-2xx status.
	Remote *RemoteError
}

// Credentials is the body for login and signup.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name,omitempty"`
}

// TokenResponse carries the bearer token issued on login or signup.
type TokenResponse struct {
	Token string `json:"token"`
}

// Profile is the authenticated user's account record.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == "admin"
}

// HistoryEntry is one past analysis in the user's history listing.
type HistoryEntry struct {
	PublicID  string  `json:"publicId"`
	TaskType  string  `json:"taskType"`
	Overall   float64 `json:"overall"`
	CEFR      string  `json:"cefr"`
	WordCount int     `json:"wordCount"`
	CreatedAt string  `json:"createdAt"`
}

// DashboardSummary aggregates the user's scoring activity.
type DashboardSummary struct {
	TotalEssays  int            `json:"totalEssays"`
	AverageBand  float64        `json:"averageBand"`
	BestBand     float64        `json:"bestBand"`
	Remaining    int            `json:"remaining"`
	RecentScores []HistoryEntry `json:"recentScores"`
}

// AdminStats is the back-office overview.
type AdminStats struct {
	TotalUsers    int `json:"totalUsers"`
	TotalEssays   int `json:"totalEssays"`
	TotalFeedback int `json:"totalFeedback"`
	PostsCount    int `json:"postsCount"`
}

// AdminUser is one account row in the back-office user listing.
type AdminUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	EssayUsed int    `json:"essayUsed"`
	CreatedAt string `json:"createdAt"`
}

// BlogPost is a blog entry managed through the back-office.
type BlogPost struct {
	ID        string `json:"id,omitempty"`
	Slug      string `json:"slug"`
	Title     string `json:"title" validate:"required"`
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// PromptTemplate is an AI prompt template managed through the
// back-office. Template execution happens server-side only.
type PromptTemplate struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name" validate:"required"`
	TaskType  string `json:"taskType"`
	Body      string `json:"body" validate:"required"`
	Active    bool   `json:"active"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
