package billing

import (
	"errors"
	"strings"

	billingerrors "schoolpay/internal/billing/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return billingerrors.ErrRecordNotFound
	}
	if errors.Is(err, ErrVersionMismatch) {
		return billingerrors.ErrRecordModified
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_record_student_year" {
			return billingerrors.ErrRecordAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_record_student_year") {
		return billingerrors.ErrRecordAlreadyExists
	}

	return err
}
