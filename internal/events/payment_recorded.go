package events

import "time"

const PaymentRecordedTopic = "billing.payment.recorded.v1"

// PaymentRecordedEvent is emitted through the outbox after any successful
// payment-recording operation, so read models (dashboard caches, exports)
// can refresh without polling.
type PaymentRecordedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	SchoolID     string    `json:"school_id"`
	StudentID    string    `json:"student_id"`
	AcademicYear string    `json:"academic_year"`
	Component    string    `json:"component"`
	Type         string    `json:"type"`
	Amount       int64     `json:"amount"`
	OccurredAt   time.Time `json:"occurred_at"`
}
