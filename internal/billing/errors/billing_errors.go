package billingerrors

import (
	"net/http"

	"schoolpay/internal/shared/apperror"
)

// Validation failures: the request itself is malformed. The record is never
// touched when one of these is returned.
var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be positive",
		http.StatusBadRequest,
	)
	ErrInvalidMonthIndex = apperror.New(
		apperror.CodeInvalidInput,
		"month index is outside the payment schedule",
		http.StatusBadRequest,
	)
	ErrInvalidMethod = apperror.New(
		apperror.CodeInvalidInput,
		"unknown payment method",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"discount percentage must be between 1 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidDiscountType = apperror.New(
		apperror.CodeInvalidInput,
		"discount type must be monthly or annual",
		http.StatusBadRequest,
	)
	ErrInvalidTransportZone = apperror.New(
		apperror.CodeInvalidInput,
		"transport zone must be close or far",
		http.StatusBadRequest,
	)
)

// Domain conflicts: the request is well formed but the record's current
// state forbids it. Callers can tell these apart from validation errors by
// their codes.
var (
	ErrDiscountAlreadyApplied = apperror.New(
		"DISCOUNT_ALREADY_APPLIED",
		"a discount is already active on this record",
		http.StatusConflict,
	)
	ErrNoDiscountToRemove = apperror.New(
		"NO_DISCOUNT_TO_REMOVE",
		"no active discount on this record",
		http.StatusConflict,
	)
	ErrAlreadyPaid = apperror.New(
		"ALREADY_PAID",
		"this payment is already fully settled",
		http.StatusConflict,
	)
	ErrNotApplicable = apperror.New(
		"NOT_APPLICABLE",
		"this component is not active for the student",
		http.StatusConflict,
	)
	ErrAmountExceedsRemaining = apperror.New(
		"AMOUNT_EXCEEDS_REMAINING",
		"amount exceeds the remaining scheduled amount for this month",
		http.StatusConflict,
	)
	ErrWrongPaymentType = apperror.New(
		apperror.CodeInvalidState,
		"operation does not match the record's payment type",
		http.StatusConflict,
	)
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"no payment record for this student and academic year",
		http.StatusNotFound,
	)
	ErrRecordAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a payment record already exists for this student and academic year",
		http.StatusConflict,
	)
	ErrRecordModified = apperror.New(
		apperror.CodeConflict,
		"the record was modified concurrently, retry the operation",
		http.StatusConflict,
	)
	ErrGradeNotPriced = apperror.New(
		"GRADE_NOT_PRICED",
		"the configuration has no tuition amount for this grade",
		http.StatusUnprocessableEntity,
	)
)
