package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeValidation         ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeDatabaseError      ErrorCode = "COMMON_007"
	ErrCodeCacheError         ErrorCode = "COMMON_008"
	ErrCodeStorageError       ErrorCode = "COMMON_009"
	ErrCodeMessagingError     ErrorCode = "COMMON_010"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_011"

	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("UNKNOWN")
)

// Docking module error codes
const (
	// ErrCodeEmptyDataset is the one parse condition that must reach the
	// caller: the merge produced zero usable poses ("no valid poses").
	ErrCodeEmptyDataset ErrorCode = "DOCK_001"

	ErrCodeAnalysisNotFound ErrorCode = "DOCK_002"
	ErrCodeUploadTooLarge   ErrorCode = "DOCK_003"
	ErrCodeModelOutOfRange  ErrorCode = "DOCK_004"
)

// Aliases used by factory functions.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
)

// httpStatusByCode maps error codes to the HTTP status the API layer returns.
var httpStatusByCode = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeStorageError:       http.StatusInternalServerError,
	ErrCodeMessagingError:     http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeEmptyDataset:       http.StatusUnprocessableEntity,
	ErrCodeAnalysisNotFound:   http.StatusNotFound,
	ErrCodeUploadTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeModelOutOfRange:    http.StatusBadRequest,
}

// HTTPStatus returns the HTTP status code associated with c.
// Unknown codes map to 500 so that unclassified failures stay masked.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := httpStatusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}
