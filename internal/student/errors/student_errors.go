package studenterrors

import (
	"net/http"

	"schoolpay/internal/shared/apperror"
)

var (
	ErrInvalidSchoolID = apperror.RequiredField("schoolId")
	ErrInvalidFullName = apperror.RequiredField("fullName")
	ErrInvalidGrade    = apperror.New(
		apperror.CodeInvalidInput,
		"grade is not part of the configured catalogue",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.InvalidField("enrolledAt")

	ErrStudentNotFound = apperror.New(
		apperror.CodeNotFound,
		"student not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"email already registered for another student",
		http.StatusConflict,
	)
)
