package errors

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/mcp-assist/customtools/internal/domain/customtools"
	"github.com/mcp-assist/customtools/internal/domain/plugins"
)

type ErrorKind string

const (
	ErrorKindAuth     ErrorKind = "auth"
	ErrorKindConfig   ErrorKind = "config"
	ErrorKindTimeout  ErrorKind = "timeout"
	ErrorKindHTTP     ErrorKind = "http"
	ErrorKindScript   ErrorKind = "script"
	ErrorKindNotFound ErrorKind = "not-found"
	ErrorKindOther    ErrorKind = "other"
)

type ClassifiedError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Hint    string    `json:"hint,omitempty"` // User-friendly suggestion
	Raw     error     `json:"-"`
}

func (e ClassifiedError) Error() string {
	return e.Message
}

func (e ClassifiedError) Unwrap() error {
	return e.Raw
}

func Classify(err error) ClassifiedError {
	if err == nil {
		return ClassifiedError{}
	}

	var classified ClassifiedError
	if stderrors.As(err, &classified) {
		return classified
	}

	msg := strings.ToLower(err.Error())

	switch {
	case stderrors.Is(err, customtools.ErrUnknownTool):
		return ClassifiedError{
			Kind:    ErrorKindNotFound,
			Message: err.Error(),
			Hint:    "Run 'customtools list' to see enabled tools, or 'customtools status' to see plugins that failed to load.",
			Raw:     err,
		}
	case stderrors.Is(err, plugins.ErrMissingAPIKey) || strings.Contains(msg, "http 401") || strings.Contains(msg, "http 403") || strings.Contains(msg, "unauthorized"):
		return ClassifiedError{
			Kind:    ErrorKindAuth,
			Message: err.Error(),
			Hint:    "Set BRAVE_API_KEY or brave_api_key in the options file.",
			Raw:     err,
		}
	case stderrors.Is(err, plugins.ErrMissingOption) || stderrors.Is(err, customtools.ErrNoFactory):
		return ClassifiedError{
			Kind:    ErrorKindConfig,
			Message: err.Error(),
			Hint:    "Check enabled_tools in the config file and the plugin options.",
			Raw:     err,
		}
	case stderrors.Is(err, context.DeadlineExceeded) || strings.Contains(msg, "timeout"):
		return ClassifiedError{
			Kind:    ErrorKindTimeout,
			Message: err.Error(),
			Hint:    "The call took too long. Try again or raise --timeout.",
			Raw:     err,
		}
	case strings.Contains(msg, "script error"):
		return ClassifiedError{
			Kind:    ErrorKindScript,
			Message: err.Error(),
			Hint:    "The JavaScript threw an exception. Check the script.",
			Raw:     err,
		}
	case strings.Contains(msg, "http"):
		return ClassifiedError{
			Kind:    ErrorKindHTTP,
			Message: err.Error(),
			Hint:    "An HTTP error occurred while the tool contacted a remote service.",
			Raw:     err,
		}
	default:
		return ClassifiedError{
			Kind:    ErrorKindOther,
			Message: err.Error(),
			Hint:    "An unexpected error occurred.",
			Raw:     err,
		}
	}
}
