package types

import (
	"net/http"
	"strings"
)

// Error codes are stable and grouped by category; callers pick an HTTP
// status from the code alone.
const (
	CodeSystemError      = "1000"
	CodeStorageError     = "1001"
	CodePersistenceError = "1002"
	CodeInvalidInput     = "1003"
	CodeNotFound         = "1004"
	CodeConflict         = "1005"
	CodeComparisonFailed = "1006"
)

const (
	CauseSystemError                = "SYSTEM_ERROR"
	CauseStorageError               = "STORAGE_ERROR"
	CausePersistenceError           = "PERSISTENCE_ERROR"
	CauseInvalidRequestBody         = "INVALID_REQUEST_BODY"
	CauseInvalidSubmissionType      = "INVALID_SUBMISSION_TYPE"
	CauseInvalidPayload             = "INVALID_PAYLOAD"
	CauseInvalidSubmissionData      = "INVALID_SUBMISSION_DATA"
	CauseSubmissionNotFound         = "SUBMISSION_NOT_FOUND"
	CauseApprovedSubmissionNotFound = "APPROVED_SUBMISSION_NOT_FOUND"
	CauseSelfieDoesNotExist         = "SELFIE_DOES_NOT_EXIST"
	CauseNFCDoesNotExist            = "NFC_DOES_NOT_EXIST"
	CauseSubmissionAlreadyProcessed = "SUBMISSION_ALREADY_PROCESSED"
	CauseFaceMatchFailed            = "FACE_MATCH_FAILED"
)

type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"
	CategoryConflict   ErrorCategory = "conflict"
	CategoryUpstream   ErrorCategory = "upstream"
	CategorySystem     ErrorCategory = "system"
)

// APIError is one machine-readable failure.
type APIError struct {
	Entity string `json:"entity"`
	Code   string `json:"code"`
	Cause  string `json:"cause"`
	Detail string `json:"detail,omitempty"`
}

func (e APIError) Category() ErrorCategory {
	switch e.Code {
	case CodeInvalidInput:
		return CategoryValidation
	case CodeNotFound:
		return CategoryNotFound
	case CodeConflict:
		return CategoryConflict
	case CodeComparisonFailed:
		return CategoryUpstream
	}
	return CategorySystem
}

// APIErrors is the error list every failing operation returns. It is never
// empty when returned as an error.
type APIErrors []APIError

func (e APIErrors) Error() string {
	causes := make([]string, 0, len(e))
	for _, err := range e {
		causes = append(causes, err.Code+":"+err.Cause)
	}
	return strings.Join(causes, ", ")
}

// Category returns the category of the first error.
func (e APIErrors) Category() ErrorCategory {
	if len(e) == 0 {
		return CategorySystem
	}
	return e[0].Category()
}

// HTTPStatus maps the category of the first error to a response status.
func (e APIErrors) HTTPStatus() int {
	switch e.Category() {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusUnprocessableEntity
	case CategoryConflict:
		return http.StatusConflict
	case CategoryUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Errors  APIErrors `json:"errors,omitempty"`
}
