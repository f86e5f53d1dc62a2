package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"requirement-extractor/internal/extraction"
	"requirement-extractor/internal/store/apps"
)

func TestFromExtractionError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		retryable bool
	}{
		{"invalid input", fmt.Errorf("%w: empty", extraction.ErrInvalidInput), ErrCodeInvalidInput, false},
		{"auth", fmt.Errorf("%w: 401", extraction.ErrAuth), ErrCodeAuth, false},
		{"rate limited", fmt.Errorf("%w: 429", extraction.ErrRateLimited), ErrCodeRateLimited, true},
		{"unavailable", fmt.Errorf("%w: 503", extraction.ErrRemoteUnavailable), ErrCodeRemoteUnavailable, true},
		{"deadline", context.DeadlineExceeded, ErrCodeRemoteUnavailable, true},
		{"malformed", fmt.Errorf("%w: prose", extraction.ErrMalformedResponse), ErrCodeMalformedResponse, true},
		{"unknown", fmt.Errorf("boom"), ErrCodeExtractionFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdErr := FromExtractionError(tt.err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
			assert.Equal(t, tt.err.Error(), stdErr.Details)
		})
	}
}

func TestFromExtractionError_PassesThroughStandardError(t *testing.T) {
	original := NewDuplicateAppError("Shop")
	wrapped := fmt.Errorf("save: %w", original)

	assert.Same(t, original, FromExtractionError(wrapped))
}

func TestFromAppStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
		status   int
	}{
		{"validation", fmt.Errorf("%w: appName: too short", apps.ErrInvalidApp), ErrCodeAppValidationFailed, http.StatusBadRequest},
		{"duplicate", fmt.Errorf("%w: Shop", apps.ErrDuplicateApp), ErrCodeDuplicateApp, http.StatusConflict},
		{"not found", fmt.Errorf("%w: 42", apps.ErrAppNotFound), ErrCodeAppNotFound, http.StatusNotFound},
		{"database", fmt.Errorf("insert app: connection reset"), ErrCodeDatabaseInsertFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdErr := FromAppStoreError(tt.err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.status, HTTPStatus(stdErr.Code))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeAppValidationFailed, http.StatusBadRequest},
		{ErrCodeInvalidAppID, http.StatusBadRequest},
		{ErrCodeAppNotFound, http.StatusNotFound},
		{ErrCodeDuplicateApp, http.StatusConflict},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeDatabaseConnectionFailed, http.StatusServiceUnavailable},
		{ErrCodeQueryExecutionFailed, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("business error is not retried", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewInvalidInputError("description is required"))

		assert.Equal(t, "INVALID_INPUT", bpmnErr.Code)
		assert.False(t, bpmnErr.Retryable)
		assert.Equal(t, 0, bpmnErr.Retries)

		vars := bpmnErr.ToErrorVariables()
		assert.Equal(t, "INVALID_INPUT", vars["errorCode"])
		assert.Equal(t, "INVALID_INPUT", vars["originalErrorCode"])
		assert.NotEmpty(t, vars["timestamp"])
	})

	t.Run("technical error keeps retries", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewDatabaseInsertFailedError(fmt.Errorf("connection reset")))

		assert.Equal(t, "DATABASE_INSERT_FAILED", bpmnErr.Code)
		assert.True(t, bpmnErr.Retryable)
		assert.Equal(t, 3, bpmnErr.Retries)
	})

	t.Run("duplicate maps to its BPMN code", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewDuplicateAppError("Shop"))
		assert.Equal(t, "DUPLICATE_APP", bpmnErr.Code)
		assert.Equal(t, 0, bpmnErr.Retries)
	})
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchQueryFailed))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeRemoteUnavailable))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeAuth))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeDuplicateApp))
	assert.Equal(t, "APP", GetErrorCategory(ErrCodeAppNotFound))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
	assert.True(t, IsRetryableErrorCode(ErrCodeQueryExecutionFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeAppNotFound))
}
