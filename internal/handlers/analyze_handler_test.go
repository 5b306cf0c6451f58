package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandly/internal/api"
	"bandly/internal/config"
	"bandly/internal/observability"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:          "3000",
			SessionSecret: "test-secret",
			Debug:         true,
		},
		API:    config.APIConfig{BaseURL: "http://unused.test"},
		IsTest: true,
	}
}

func newHandlerHarness(t *testing.T) (*gin.Engine, *fakeClient) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	client := newFakeClient()
	router := NewRouter(testConfig(), client, observability.NewLogger(nil))
	return router, client
}

func postForm(router *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPage(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func essayOfWords(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func successOutcome() *api.AnalyzeOutcome {
	return &api.AnalyzeOutcome{Result: &api.AnalysisResult{
		PublicID: "abc123",
		Overall:  6.5,
		CEFR:     "B1",
		Bands:    api.Bands{TA: 6, CC: 6, LR: 7, GRA: 6},
		Feedback: "Develop your examples further.",
	}}
}

func TestAnalyzeForm_GuardsAgainstDoubleSubmit(t *testing.T) {
	router, _ := newHandlerHarness(t)

	w := getPage(router, "/analyze", nil)
	require.Equal(t, http.StatusOK, w.Code)
	// Submitting disables the button so a slow analysis cannot be
	// posted twice from the same form.
	assert.Contains(t, w.Body.String(), "b.disabled=true")
}

func TestAnalyzeSubmit_TooShortRejectedWithoutNetworkCall(t *testing.T) {
	router, client := newHandlerHarness(t)

	w := postForm(router, "/analyze", url.Values{
		"text":     {essayOfWords(100)},
		"taskType": {"task2"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "too short")
	// The visitor's text is preserved in the re-rendered form.
	assert.Contains(t, w.Body.String(), "word word")
	assert.Zero(t, client.callCount("AnalyzeEssay"), "local rejection must not reach the API")
}

func TestAnalyzeSubmit_TooLongRejected(t *testing.T) {
	router, client := newHandlerHarness(t)

	w := postForm(router, "/analyze", url.Values{
		"text":     {essayOfWords(321)},
		"taskType": {"task2"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "too long")
	assert.Zero(t, client.callCount("AnalyzeEssay"))
}

func TestAnalyzeSubmit_SuccessRedirectsToResult(t *testing.T) {
	router, client := newHandlerHarness(t)
	client.analyzeOutcome = successOutcome()

	w := postForm(router, "/analyze", url.Values{
		"text":     {essayOfWords(200)},
		"taskType": {"task2"},
	}, nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/result", w.Header().Get("Location"))
	assert.Equal(t, 1, client.callCount("AnalyzeEssay"))
	assert.Equal(t, "task2", client.lastAnalyze.TaskType)
	assert.Empty(t, client.lastToken, "anonymous submission carries no token")

	// The result view renders the exact payload carried over.
	res := getPage(router, "/result", w.Result().Cookies())
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "6.5")
	assert.Contains(t, body, "B1")
	assert.Contains(t, body, "abc123")
	assert.Contains(t, body, "Develop your examples further.")
}

func TestResult_IsOneShot(t *testing.T) {
	router, client := newHandlerHarness(t)
	client.analyzeOutcome = successOutcome()

	w := postForm(router, "/analyze", url.Values{
		"text":     {essayOfWords(200)},
		"taskType": {"task2"},
	}, nil)
	cookies := w.Result().Cookies()

	first := getPage(router, "/result", cookies)
	require.Equal(t, http.StatusOK, first.Code)

	// The flash was consumed; a refresh goes back to the form.
	second := getPage(router, "/result", first.Result().Cookies())
	require.Equal(t, http.StatusFound, second.Code)
	assert.Equal(t, "/analyze", second.Header().Get("Location"))
}

func TestAnalyzeSubmit_RateLimitSuggestLoginVariant(t *testing.T) {
	router, client := newHandlerHarness(t)
	client.analyzeOutcome = &api.AnalyzeOutcome{RateLimit: &api.RateLimitInfo{
		Message:      "Daily limit reached.",
		UserType:     "anonymous",
		Remaining:    0,
		SuggestLogin: true,
	}}

	w := postForm(router, "/analyze", url.Values{
		"text":     {essayOfWords(200)},
		"taskType": {"task2"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Create a free account", "suggestLogin selects the account-invitation variant")
	assert.Contains(t, body, "Daily limit reached.")
}

func TestAnalyzeSubmit_RateLimitPlainVariant(t *testing.T) {
	router, client := newHandlerHarness(t)
	client.analyzeOutcome = &api.AnalyzeOutcome{RateLimit: &api.RateLimitInfo{
		Message:      "Quota exhausted.",
		UserType:     "authenticated",
		SuggestLogin: false,
	}}

	w := postForm(router, "/analyze", url.Values{
		"text":     {essayOfWords(200)},
		"taskType": {"task2"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "Create a free account")
	assert.Contains(t, body, "try again later")
}

func TestAnalyzeSubmit_ServerErrorMessageVerbatim(t *testing.T) {
	router, client := newHandlerHarness(t)
	client.analyzeOutcome = &api.AnalyzeOutcome{Remote: &api.RemoteError{
		StatusCode: http.StatusBadGateway,
		Message:    "scoring model overloaded",
	}}

	w := postForm(router, "/analyze", url.Values{
		"text":     {essayOfWords(200)},
		"taskType": {"task2"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scoring model overloaded")
}

func TestAnalyzeSubmit_NetworkErrorNotice(t *testing.T) {
	router, client := newHandlerHarness(t)
	client.analyzeErr = assert.AnError

	w := postForm(router, "/analyze", url.Values{
		"text":     {essayOfWords(200)},
		"taskType": {"task2"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Network error")
	// Text preserved for manual retry.
	assert.Contains(t, w.Body.String(), "word word")
}

func TestReport_RendersFetchedResult(t *testing.T) {
	router, client := newHandlerHarness(t)
	client.report = successOutcome().Result

	w := getPage(router, "/report/abc123", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "6.5")
	assert.Equal(t, 1, client.callCount("GetReport"))
}

func TestReportPDF_SetsDownloadHeaders(t *testing.T) {
	router, _ := newHandlerHarness(t)

	w := getPage(router, "/report/abc123/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bandly-report-abc123.pdf")
}
