package counter

import (
	"context"

	"gorm.io/gorm"
)

// Counter types handed out per school. Receipt numbers must be gapless-ish
// and strictly increasing within a school, so the increment is done in SQL.
const (
	TypeReceiptNumber = "receipt_number"
	TypeInvoiceNumber = "invoice_number"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, schoolID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, schoolID string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT-and-increment so concurrent recordings per school never
	// hand out the same number.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO school_counters (school_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (school_id, counter_type) DO UPDATE
		SET last_value = school_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, schoolID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
