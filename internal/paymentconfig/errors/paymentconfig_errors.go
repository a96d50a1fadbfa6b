package paymentconfigerrors

import (
	"net/http"

	"schoolpay/internal/shared/apperror"
)

var (
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidAcademicYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid academic year, expected YYYY-YYYY with consecutive years",
		http.StatusBadRequest,
	)
	ErrInvalidScheduleWindow = apperror.New(
		apperror.CodeInvalidInput,
		"payment schedule window is invalid",
		http.StatusBadRequest,
	)
	ErrInvalidGracePeriod = apperror.New(
		apperror.CodeInvalidInput,
		"grace period must be between 0 and 90 days",
		http.StatusBadRequest,
	)
	ErrUnknownGrade = apperror.New(
		apperror.CodeInvalidInput,
		"grade amounts contain a grade outside the catalogue",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"configured amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"payment configuration not found for this academic year",
		http.StatusNotFound,
	)
)
