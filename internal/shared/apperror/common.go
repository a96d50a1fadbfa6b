package apperror

import "net/http"

// Generic fallbacks for errors that carry no domain meaning of their own.
// Feature packages define their own sentinels in their errors subpackage.
var (
	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)
