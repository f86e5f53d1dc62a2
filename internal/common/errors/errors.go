package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"requirement-extractor/internal/extraction"
	"requirement-extractor/internal/store/apps"
)

type ErrorCode string

const (
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrCodeAuth                ErrorCode = "AUTH_ERROR"
	ErrCodeRateLimited         ErrorCode = "RATE_LIMITED"
	ErrCodeRemoteUnavailable   ErrorCode = "REMOTE_UNAVAILABLE"
	ErrCodeMalformedResponse   ErrorCode = "MALFORMED_RESPONSE"
	ErrCodeExtractionFailed    ErrorCode = "EXTRACTION_FAILED"
	ErrCodeKeywordTableInvalid ErrorCode = "KEYWORD_TABLE_INVALID"

	ErrCodeAppValidationFailed ErrorCode = "APP_VALIDATION_FAILED"
	ErrCodeDuplicateApp        ErrorCode = "DUPLICATE_APP"
	ErrCodeAppNotFound         ErrorCode = "APP_NOT_FOUND"
	ErrCodeInvalidAppID        ErrorCode = "INVALID_APP_ID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid app description", details, false)
}

func NewExtractionFailedError(err error) *StandardError {
	return newError(ErrCodeExtractionFailed, "Requirement extraction failed", err.Error(), true)
}

func NewKeywordTableInvalidError(details string) *StandardError {
	return newError(ErrCodeKeywordTableInvalid, "Keyword table is invalid", details, false)
}

func NewAppValidationFailedError(details string) *StandardError {
	return newError(ErrCodeAppValidationFailed, "App data validation failed", details, false)
}

func NewDuplicateAppError(appName string) *StandardError {
	return newError(ErrCodeDuplicateApp, "An app with this name already exists", fmt.Sprintf("appName: %s", appName), false)
}

func NewAppNotFoundError(id string) *StandardError {
	return newError(ErrCodeAppNotFound, "App not found", fmt.Sprintf("appId: %s", id), false)
}

func NewInvalidAppIDError(id string) *StandardError {
	return newError(ErrCodeInvalidAppID, "Invalid app ID format", fmt.Sprintf("appId: %s", id), false)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err.Error(), true)
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true)
}

func NewSearchQueryFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// FromExtractionError maps the extraction sentinels onto StandardError. Remote
// failures only surface here when a caller bypasses the orchestrator fallback.
func FromExtractionError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	switch ErrorCode(extraction.ErrorCode(err)) {
	case ErrCodeInvalidInput:
		return NewInvalidInputError(err.Error())
	case ErrCodeAuth:
		return newError(ErrCodeAuth, "Remote provider rejected credentials", err.Error(), false)
	case ErrCodeRateLimited:
		return newError(ErrCodeRateLimited, "Remote provider rate limit reached", err.Error(), true)
	case ErrCodeRemoteUnavailable:
		return newError(ErrCodeRemoteUnavailable, "Remote provider unavailable", err.Error(), true)
	case ErrCodeMalformedResponse:
		return newError(ErrCodeMalformedResponse, "Remote provider returned an invalid response", err.Error(), true)
	}
	return NewExtractionFailedError(err)
}

// FromAppStoreError maps app store sentinels onto StandardError. Anything
// else is treated as a database failure.
func FromAppStoreError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	switch {
	case errors.Is(err, apps.ErrInvalidApp):
		return NewAppValidationFailedError(err.Error())
	case errors.Is(err, apps.ErrDuplicateApp):
		return newError(ErrCodeDuplicateApp, "An app with this name already exists", err.Error(), false)
	case errors.Is(err, apps.ErrAppNotFound):
		return newError(ErrCodeAppNotFound, "App not found", err.Error(), false)
	}
	return NewDatabaseInsertFailedError(err)
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:        "INVALID_INPUT",
	ErrCodeKeywordTableInvalid: "KEYWORD_TABLE_INVALID",
	ErrCodeAppValidationFailed: "APP_VALIDATION_FAILED",
	ErrCodeDuplicateApp:        "DUPLICATE_APP",
	ErrCodeAppNotFound:         "APP_NOT_FOUND",
	ErrCodeInvalidAppID:        "INVALID_APP_ID",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeExtractionFailed:
		return 3

	case ErrCodeRemoteUnavailable,
		ErrCodeRateLimited,
		ErrCodeMalformedResponse:
		return 2

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// HTTPStatus is the response status the API uses for code.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeAppValidationFailed, ErrCodeInvalidAppID:
		return http.StatusBadRequest
	case ErrCodeAppNotFound:
		return http.StatusNotFound
	case ErrCodeDuplicateApp:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeRemoteUnavailable, ErrCodeDatabaseConnectionFailed, ErrCodeElasticsearchConnectionFailed:
		return http.StatusServiceUnavailable
	case ErrCodeAuth, ErrCodeMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "REMOTE") || strings.Contains(codeStr, "RATE") ||
		strings.Contains(codeStr, "AUTH") || strings.Contains(codeStr, "MALFORMED"):
		return "AI"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") ||
		strings.Contains(codeStr, "DUPLICATE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "APP"):
		return "APP"
	default:
		return "OTHER"
	}
}
