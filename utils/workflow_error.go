package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode classifies a booking workflow failure.
type ErrorCode string

const (
	CodeInvalidFormat          ErrorCode = "INVALID_FORMAT"
	CodeNotFound               ErrorCode = "NOT_FOUND"
	CodeValidationIncomplete   ErrorCode = "VALIDATION_INCOMPLETE"
	CodeNetworkFailure         ErrorCode = "NETWORK_FAILURE"
	CodePaymentTimeout         ErrorCode = "PAYMENT_TIMEOUT"
	CodeAuthenticationRequired ErrorCode = "AUTHENTICATION_REQUIRED"
	CodeInvalidTransition      ErrorCode = "INVALID_TRANSITION"
	CodeSubmissionInProgress   ErrorCode = "SUBMISSION_IN_PROGRESS"
	CodePaymentActive          ErrorCode = "PAYMENT_ACTIVE"
	CodeSessionNotFound        ErrorCode = "SESSION_NOT_FOUND"
)

// WorkflowError is the single error type surfaced by the booking workflow.
type WorkflowError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	// Fields names the missing draft fields for CodeValidationIncomplete.
	Fields []string
	// StagingKey is set for CodeAuthenticationRequired.
	StagingKey string
	Err        error
}

func (e *WorkflowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// AsWorkflowError extracts a *WorkflowError from err's chain.
func AsWorkflowError(err error) (*WorkflowError, bool) {
	var wfErr *WorkflowError
	if errors.As(err, &wfErr) {
		return wfErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given workflow code.
func HasCode(err error, code ErrorCode) bool {
	wfErr, ok := AsWorkflowError(err)
	return ok && wfErr.Code == code
}

func NewInvalidFormat(msg string) error {
	return &WorkflowError{Code: CodeInvalidFormat, Message: msg}
}

func NewNotFound(msg string) error {
	return &WorkflowError{Code: CodeNotFound, Message: msg}
}

func NewValidationIncomplete(missing []string) error {
	return &WorkflowError{
		Code:    CodeValidationIncomplete,
		Message: "missing required fields: " + strings.Join(missing, ", "),
		Fields:  missing,
	}
}

func NewNetworkFailure(msg string, cause error) error {
	return &WorkflowError{Code: CodeNetworkFailure, Message: msg, Retryable: true, Err: cause}
}

func NewPaymentTimeout(sessionID string) error {
	return &WorkflowError{
		Code:    CodePaymentTimeout,
		Message: fmt.Sprintf("payment %s not confirmed yet, check your dashboard in a few minutes", sessionID),
	}
}

func NewAuthenticationRequired(stagingKey string) error {
	return &WorkflowError{
		Code:       CodeAuthenticationRequired,
		Message:    "please login or create an account to continue",
		StagingKey: stagingKey,
	}
}

func NewInvalidTransition(from, event string) error {
	return &WorkflowError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot apply %s in state %s", event, from),
	}
}

func NewSubmissionInProgress() error {
	return &WorkflowError{Code: CodeSubmissionInProgress, Message: "booking submission already in progress"}
}

func NewPaymentActive(paymentID string) error {
	return &WorkflowError{
		Code:    CodePaymentActive,
		Message: fmt.Sprintf("payment %s is already active for this booking", paymentID),
	}
}

func NewSessionNotFound(sessionID string) error {
	return &WorkflowError{
		Code:    CodeSessionNotFound,
		Message: fmt.Sprintf("booking session %s not found or expired", sessionID),
	}
}

// HTTPStatus maps a workflow code to the response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case CodeInvalidFormat, CodeValidationIncomplete:
		return http.StatusUnprocessableEntity
	case CodeNotFound, CodeSessionNotFound:
		return http.StatusNotFound
	case CodeAuthenticationRequired:
		return http.StatusUnauthorized
	case CodeInvalidTransition, CodeSubmissionInProgress, CodePaymentActive:
		return http.StatusConflict
	case CodePaymentTimeout:
		return http.StatusAccepted
	case CodeNetworkFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
