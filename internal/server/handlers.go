package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/ranking"
)

// AnalyzeRequest represents the JSON request body for /analyze. Multipart
// requests send the resume as the "file" part and the other fields as form
// values.
type AnalyzeRequest struct {
	Text           string `json:"text" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
}

// MatchRequest represents the request body for /match
type MatchRequest struct {
	Resume         string `json:"resume" validate:"required"`
	JobDescription string `json:"job_description,omitempty" validate:"required_without=JobURL"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
}

// SectionsRequest represents the request body for /sections
type SectionsRequest struct {
	Text string `json:"text" validate:"required"`
}

// SectionsResponse represents the response for /sections
type SectionsResponse struct {
	Labels   []string          `json:"labels"`
	Sections map[string]string `json:"sections"`
}

// handleAnalyze runs a full analysis on inline text or an uploaded file.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	var (
		in  pipeline.Input
		err error
	)
	if isMultipart(r) {
		in, err = s.uploadInput(r)
	} else {
		in, err = s.textInput(r)
	}
	if err != nil {
		s.failRequest(w, r, err)
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), in)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) textInput(r *http.Request) (pipeline.Input, error) {
	var req AnalyzeRequest
	if err := s.decode(r, &req); err != nil {
		return pipeline.Input{}, err
	}

	jd, err := s.jobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		return pipeline.Input{}, err
	}
	return pipeline.Input{Text: req.Text, JobDescription: jd}, nil
}

func (s *Server) uploadInput(r *http.Request) (pipeline.Input, error) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pipeline.Input{}, err
		}
		return pipeline.Input{}, &RequestError{Message: "malformed multipart form", Cause: err}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return pipeline.Input{}, &RequestError{Message: "file is required", Cause: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return pipeline.Input{}, &RequestError{Message: "failed to read upload", Cause: err}
	}

	jd, err := s.jobDescription(r.Context(), r.FormValue("job_description"), strings.TrimSpace(r.FormValue("job_url")))
	if err != nil {
		return pipeline.Input{}, err
	}

	return pipeline.Input{
		Path:           filepath.Base(header.Filename),
		Data:           data,
		JobDescription: jd,
	}, nil
}

// handleMatch scores a resume against a job description given inline or by URL.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	var req MatchRequest
	if err := s.decode(r, &req); err != nil {
		s.failRequest(w, r, err)
		return
	}

	jd, err := s.jobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ranking.MatchResumeToJob(req.Resume, jd))
}

// handleSections segments text into labeled sections.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	var req SectionsRequest
	if err := s.decode(r, &req); err != nil {
		s.failRequest(w, r, err)
		return
	}

	sections := s.analyzer.Sections(ingestion.NormalizeLineEndings(req.Text))
	s.jsonResponse(w, http.StatusOK, SectionsResponse{
		Labels:   sections.Labels(),
		Sections: sections.Map(),
	})
}

// decode reads a JSON body into dst, trims its string fields and validates it.
func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &RequestError{Message: "malformed JSON body", Cause: err}
	}

	switch req := dst.(type) {
	case *AnalyzeRequest:
		req.JobURL = strings.TrimSpace(req.JobURL)
		if strings.TrimSpace(req.Text) == "" {
			req.Text = ""
		}
	case *MatchRequest:
		req.JobURL = strings.TrimSpace(req.JobURL)
		if strings.TrimSpace(req.Resume) == "" {
			req.Resume = ""
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			req.JobDescription = ""
		}
	case *SectionsRequest:
		if strings.TrimSpace(req.Text) == "" {
			req.Text = ""
		}
	}

	return s.validate.Struct(dst)
}

// jobDescription returns the inline description, or fetches jobURL when the
// inline text is blank. Both empty yields an empty description.
func (s *Server) jobDescription(ctx context.Context, inline, jobURL string) (string, error) {
	if strings.TrimSpace(inline) != "" || jobURL == "" {
		return inline, nil
	}
	if s.fetcher == nil {
		return "", &RequestError{Message: "job_url is not supported by this server; send job_description"}
	}

	text, meta, err := ingestion.JobDescriptionFromURL(ctx, s.fetcher, jobURL)
	if err != nil {
		return "", err
	}
	zerolog.Ctx(ctx).Debug().
		Str("url", jobURL).
		Str("platform", meta.Platform).
		Bool("rendered", meta.Rendered).
		Msg("fetched job description")
	return text, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
