package server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/classifier"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/grammar"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
)

// RequestError indicates a malformed request body or form.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid request: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unsupported *ingestion.UnsupportedFileTypeError
		extraction  *ingestion.ExtractionError
		input       *pipeline.InputError
		request     *RequestError
		invalid     validator.ValidationErrors
		model       *classifier.ModelError
		service     *grammar.ServiceError
		fetchErr    *fetch.Error
		step        *pipeline.StepError
		tooLarge    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	case errors.As(err, &input), errors.As(err, &request), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &model), errors.As(err, &service), errors.As(err, &fetchErr), errors.As(err, &step):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage renders err for a response body. Validation failures are
// listed per field, using the field's JSON name.
func errorMessage(err error) string {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err.Error()
	}

	parts := make([]string, 0, len(invalid))
	for _, fe := range invalid {
		switch fe.Tag() {
		case "required", "required_without":
			parts = append(parts, fe.Field()+" is required")
		case "url":
			parts = append(parts, fe.Field()+" must be a valid URL")
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
