package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Third-Party API & LLM Specific Errors
var (
	ErrRateLimitExceeded      = errors.New("rate limit exceeded")
	ErrModelOverloaded        = errors.New("model overloaded")
	ErrContentPolicyViolation = errors.New("content policy violation")
	ErrInvalidAPIKey          = errors.New("invalid API key")
	ErrServiceUnavailable     = errors.New("service unavailable")
	ErrGenerationTimeout      = errors.New("generation timed out")
	ErrUnusableGeneration     = errors.New("unusable generated document")
	ErrUploadFailed           = errors.New("upload failed")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// LLM Service Specific Error Constructors
func NewRateLimitError(service string, retryAfter time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("%s rate limit exceeded, retry after %v", service, retryAfter),
		Field:      "rate_limit",
	}
}

func NewModelOverloadedError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrModelOverloaded,
		Details:    fmt.Sprintf("%s model is overloaded", service),
		Cause:      cause,
	}
}

func NewInvalidAPIKeyError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrInvalidAPIKey,
		Details:    fmt.Sprintf("The configured %s API key was rejected", service),
		Field:      "api_key",
	}
}

func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is unavailable", service),
		Cause:      cause,
	}
}

// NewGenerationTimeoutError surfaces a distinct timeout outcome rather than
// an opaque upstream failure.
func NewGenerationTimeoutError(timeout time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusGatewayTimeout,
		err:        ErrGenerationTimeout,
		Details:    fmt.Sprintf("Design generation exceeded %v", timeout),
		Field:      "timeout",
	}
}

// NewUnusableGenerationError reports a model response that did not contain a
// usable HTML document. The previously stored document is left untouched.
func NewUnusableGenerationError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUnusableGeneration,
		Details:    reason,
		Field:      "generated_html",
	}
}

func NewUploadFailedError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUploadFailed,
		Details:    "Failed to store uploaded file",
		Cause:      cause,
	}
}

// Configuration Error Constructors
func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Required configuration %s is not set", key),
		Field:      key,
	}
}

func NewConfigInvalidError(key, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Configuration %s is invalid: %s", key, reason),
		Field:      key,
	}
}

// Error Type Checkers
func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

func IsGenerationTimeoutError(err error) bool {
	return errors.Is(err, ErrGenerationTimeout)
}

func IsUnusableGenerationError(err error) bool {
	return errors.Is(err, ErrUnusableGeneration)
}

func IsServiceUnavailableError(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

func IsConfigMissingError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
