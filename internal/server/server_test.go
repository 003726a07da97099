package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/classifier"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/grammar"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const resumeText = `Jane Doe
jane.doe@example.com

Experience
Acme Corp, Senior Engineer, 2022 - Present
Built data pipelines in Python and SQL.

Skills
Python, SQL, leadership
`

type fakeFetcher struct {
	page *fetch.Page
	err  error
	urls []string
}

func (f *fakeFetcher) JobDescription(_ context.Context, url string) (*fetch.Page, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

// newTestServer creates a server with rate limiting disabled unless limits is given.
func newTestServer(t *testing.T, fetcher ingestion.PageFetcher, limits *ratelimit.Config) *Server {
	t.Helper()
	if limits == nil {
		limits = &ratelimit.Config{Enabled: false}
	}
	s := New(Config{Port: 0, RateLimit: limits}, pipeline.NewAnalyzer(), fetcher, zerolog.Nop())
	t.Cleanup(s.Close)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func multipartRequest(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDPropagated(t *testing.T) {
	s := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestAnalyze_Text(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/analyze", AnalyzeRequest{
		Text:           resumeText,
		JobDescription: "Python engineer with Kubernetes experience",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report types.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.NotEmpty(t, report.ID)
	require.NotNil(t, report.Identity.Email)
	assert.Equal(t, "jane.doe@example.com", *report.Identity.Email)
	require.Len(t, report.Sections, 2)
	assert.Equal(t, "experience", report.Sections[0].Label)
	assert.Equal(t, "skills", report.Sections[1].Label)
	assert.Nil(t, report.ATS, "inline text has no file to check")
	require.NotNil(t, report.Match)
	assert.Contains(t, report.Match.MissingKeywords, "kubernetes")
}

func TestAnalyze_Upload(t *testing.T) {
	s := newTestServer(t, nil, nil)

	req := multipartRequest(t, "resume.txt", resumeText, map[string]string{"job_description": "Go developer"})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report types.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "resume.txt", report.Source)
	require.NotNil(t, report.ATS)
	assert.Equal(t, ".txt", report.ATS.Extension)
	assert.False(t, report.ATS.FileOK)
	assert.NotNil(t, report.Match)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name: "blank text",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"text":"   "}`))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "text is required",
		},
		{
			name: "malformed JSON",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"text":`))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "malformed JSON body",
		},
		{
			name: "invalid job URL",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"text":"Skills\nGo","job_url":"not a url"}`))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "job_url must be a valid URL",
		},
		{
			name: "unsupported upload",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "resume.exe", "MZ", nil)
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  "unsupported file type: .exe",
		},
		{
			name: "undecodable upload",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "resume.pdf", "not a pdf", nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "failed to decode pdf",
		},
		{
			name: "missing file part",
			request: func(t *testing.T) *http.Request {
				var buf bytes.Buffer
				mw := multipart.NewWriter(&buf)
				require.NoError(t, mw.WriteField("job_description", "Go"))
				require.NoError(t, mw.Close())
				req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
				req.Header.Set("Content-Type", mw.FormDataContentType())
				return req
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "file is required",
		},
	}

	s := newTestServer(t, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, tt.request(t))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, errorBody(t, w), tt.wantError)
		})
	}
}

func TestAnalyze_BodyTooLarge(t *testing.T) {
	s := New(Config{MaxUploadBytes: 16, RateLimit: &ratelimit.Config{}}, nil, nil, zerolog.Nop())
	t.Cleanup(s.Close)

	body := `{"text":"` + strings.Repeat("a", 64) + `"}`
	w := doJSON(t, s.Handler(), http.MethodPost, "/analyze", json.RawMessage(body))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMatch_Inline(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/match", MatchRequest{
		Resume:         "python sql data pipelines",
		JobDescription: "python sql kubernetes",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Greater(t, result.Score, 0.0)
	assert.Equal(t, []string{"kubernetes"}, result.MissingKeywords)
	assert.Equal(t, []string{"Include the keyword 'kubernetes' if relevant."}, result.Suggestions)
}

func TestMatch_JobURL(t *testing.T) {
	fetcher := &fakeFetcher{page: &fetch.Page{
		URL:      "https://boards.greenhouse.io/acme/jobs/1",
		Platform: fetch.Platform("greenhouse"),
		Text:     "python terraform",
	}}
	s := newTestServer(t, fetcher, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/match", MatchRequest{
		Resume: "python sql",
		JobURL: "https://boards.greenhouse.io/acme/jobs/1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, []string{"terraform"}, result.MissingKeywords)
	assert.Equal(t, []string{"https://boards.greenhouse.io/acme/jobs/1"}, fetcher.urls)
}

func TestMatch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		fetcher    ingestion.PageFetcher
		body       MatchRequest
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing resume",
			body:       MatchRequest{JobDescription: "python"},
			wantStatus: http.StatusBadRequest,
			wantError:  "resume is required",
		},
		{
			name:       "missing job description and URL",
			body:       MatchRequest{Resume: "python"},
			wantStatus: http.StatusBadRequest,
			wantError:  "job_description is required",
		},
		{
			name:       "URL without fetcher",
			body:       MatchRequest{Resume: "python", JobURL: "https://example.com/job"},
			wantStatus: http.StatusBadRequest,
			wantError:  "job_url is not supported",
		},
		{
			name: "fetch failure",
			fetcher: &fakeFetcher{err: &fetch.Error{
				URL:     "https://example.com/job",
				Message: "HTTP 404",
			}},
			body:       MatchRequest{Resume: "python", JobURL: "https://example.com/job"},
			wantStatus: http.StatusBadGateway,
			wantError:  "HTTP 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.fetcher, nil)

			w := doJSON(t, s.Handler(), http.MethodPost, "/match", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, errorBody(t, w), tt.wantError)
		})
	}
}

func TestSections(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/sections", SectionsRequest{
		Text: "Intro line\r\nEducation\r\nBSc Computer Science\r\nSkills\r\nGo",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp SectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"education", "skills"}, resp.Labels)
	assert.Equal(t, "BSc Computer Science", resp.Sections["education"])
	assert.Equal(t, "Go", resp.Sections["skills"])
}

func TestSections_NoHeaders(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/sections", SectionsRequest{Text: "just some words"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp SectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Labels)
	assert.Empty(t, resp.Sections)
}

func TestRateLimit(t *testing.T) {
	limits := &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []ratelimit.Rule{
			{Route: "POST /sections", Limit: 1, Window: time.Minute, Burst: 1},
		},
		Unlimited: []string{"GET /health"},
	}
	s := newTestServer(t, nil, limits)
	h := s.Handler()

	first := doJSON(t, h, http.MethodPost, "/sections", SectionsRequest{Text: "Skills\nGo"})
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := doJSON(t, h, http.MethodPost, "/sections", SectionsRequest{Text: "Skills\nGo"})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "rate_limit_exceeded")

	health := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := doJSON(t, s.Handler(), http.MethodGet, "/analyze", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unsupported file", &ingestion.UnsupportedFileTypeError{Extension: ".exe"}, http.StatusUnsupportedMediaType},
		{"wrapped unsupported file", &pipeline.StepError{Step: pipeline.StepExtract, Cause: &ingestion.UnsupportedFileTypeError{Extension: ".png"}}, http.StatusUnsupportedMediaType},
		{"extraction", &pipeline.StepError{Step: pipeline.StepExtract, Cause: &ingestion.ExtractionError{Path: "a.pdf", Message: "bad"}}, http.StatusUnprocessableEntity},
		{"input", &pipeline.InputError{Message: "empty"}, http.StatusBadRequest},
		{"request", &RequestError{Message: "bad"}, http.StatusBadRequest},
		{"validation", newValidator().Struct(SectionsRequest{}), http.StatusBadRequest},
		{"model", &classifier.ModelError{Message: "no classes"}, http.StatusBadGateway},
		{"grammar", &pipeline.StepError{Step: pipeline.StepGrammar, Cause: &grammar.ServiceError{Message: "down", StatusCode: 503}}, http.StatusBadGateway},
		{"fetch", fmt.Errorf("failed to fetch job description: %w", &fetch.Error{URL: "u", Message: "m"}), http.StatusBadGateway},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestRequestError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &RequestError{Message: "malformed JSON body", Cause: cause}

	assert.Equal(t, "invalid request: malformed JSON body: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid request: bad", (&RequestError{Message: "bad"}).Error())
}

func TestErrorMessage_Validation(t *testing.T) {
	err := newValidator().Struct(MatchRequest{JobURL: "nope"})

	msg := errorMessage(err)
	assert.Contains(t, msg, "resume is required")
	assert.Contains(t, msg, "job_url must be a valid URL")
}
