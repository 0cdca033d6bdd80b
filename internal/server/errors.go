package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	customerdomain "github.com/smallbiznis/backoffice/internal/customer/domain"
	"github.com/smallbiznis/backoffice/internal/observability/tracing"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	promotiondomain "github.com/smallbiznis/backoffice/internal/promotion/domain"
	uploaddomain "github.com/smallbiznis/backoffice/internal/upload/domain"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

// errorClass maps a family of sentinel errors onto one structured envelope.
type errorClass struct {
	status  int
	kind    string
	message string
	matches []error
}

var errorClasses = []errorClass{
	{
		status: http.StatusUnauthorized, kind: "unauthorized", message: "unauthorized",
		matches: []error{
			ErrUnauthorized,
			productdomain.ErrUnauthenticated,
			authdomain.ErrInvalidCredentials,
			authdomain.ErrInvalidSession,
			authdomain.ErrSessionNotFound,
			authdomain.ErrSessionExpired,
			authdomain.ErrSessionRevoked,
		},
	},
	{
		status: http.StatusConflict, kind: "conflict", message: "conflict",
		matches: []error{
			authdomain.ErrUserExists,
			promotiondomain.ErrCodeExists,
			productdomain.ErrCodeConflict,
			categorydomain.ErrInUse,
		},
	},
	{
		status: http.StatusNotFound, kind: "not_found", message: "not found",
		matches: []error{
			authdomain.ErrUserNotFound,
			categorydomain.ErrNotFound,
			customerdomain.ErrNotFound,
			productdomain.ErrNotFound,
			promotiondomain.ErrNotFound,
			gorm.ErrRecordNotFound,
		},
	},
	{
		status: http.StatusRequestEntityTooLarge, kind: "payload_too_large", message: "file too large",
		matches: []error{uploaddomain.ErrTooLarge},
	},
	{
		status: http.StatusUnsupportedMediaType, kind: "unsupported_media_type", message: "only image uploads are accepted",
		matches: []error{uploaddomain.ErrUnsupportedType},
	},
	{
		status: http.StatusTooManyRequests, kind: "rate_limited", message: "too many requests",
		matches: []error{ErrTooManyRequests},
	},
	{
		status: http.StatusServiceUnavailable, kind: "service_unavailable", message: "service unavailable",
		matches: []error{ErrServiceUnavailable},
	},
}

var internalErrorPayload = errorPayload{Type: "internal_error", Message: "internal server error"}

// ErrorHandlingMiddleware renders the structured envelope for handlers that
// abort through AbortWithError without writing a body.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		if last == nil {
			return
		}

		status, payload := mapError(last.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	recordSpanError(c, err)
	_ = c.Error(err)
	c.Abort()
}

// respondError writes a resource envelope and keeps err on the context so the
// request log and trace carry it.
func respondError(c *gin.Context, status int, body any, err error) {
	if err != nil {
		recordSpanError(c, err)
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}

func recordSpanError(c *gin.Context, err error) {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		return
	}
	safe := tracing.SafeError(err)
	span.RecordError(safe)
	span.SetStatus(codes.Error, safe.Error())
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{Errors: []ValidationError{{Field: field, Code: code, Message: message}}}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, internalErrorPayload
	}

	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}
	if isValidationError(err) {
		code := validationCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{{
				Field:   strings.TrimPrefix(code, "invalid_"),
				Code:    code,
				Message: validationMessage(code),
			}},
		}
	}

	for _, class := range errorClasses {
		for _, target := range class.matches {
			if errors.Is(err, target) {
				return class.status, errorPayload{Type: class.kind, Message: class.message}
			}
		}
	}
	return http.StatusInternalServerError, internalErrorPayload
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, authdomain.ErrWeakPassword) ||
		errors.Is(err, uploaddomain.ErrEmptyFile) ||
		isCategoryValidationError(err) ||
		isCustomerValidationError(err) ||
		isProductValidationError(err) ||
		isPromotionValidationError(err)
}

func validationCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "weak_password":
		return "password must be at least 8 characters"
	case "empty_file":
		return "file is empty"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog feeds the request logger's error_type and error_code.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	if len(payload.Errors) > 0 {
		return payload.Type, payload.Errors[0].Code
	}
	if err == nil {
		return payload.Type, ""
	}
	return payload.Type, err.Error()
}
