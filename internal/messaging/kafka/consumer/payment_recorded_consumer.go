package consumer

import (
	"context"
	"encoding/json"

	"schoolpay/internal/dashboard"
	"schoolpay/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePaymentRecorded drops the cached dashboard for the affected
// school+year whenever a payment lands, so the next dashboard read rebuilds
// from fresh record snapshots.
func ConsumePaymentRecorded(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payment_recorded")
	log.Info("payment recorded consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payment recorded consumer stopped")
				return
			}
			log.Error("fetch payment recorded message failed", zap.Error(err))
			continue
		}

		var event events.PaymentRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payment_recorded event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		cacheKey := dashboard.CacheKey(event.SchoolID, event.AcademicYear)
		if err := rdb.Del(ctx, cacheKey).Err(); err != nil {
			log.Error("invalidate dashboard cache failed",
				zap.String("key", cacheKey),
				zap.Error(err),
			)
			// Leave the message uncommitted; it will be retried.
			continue
		}

		log.Info("dashboard cache invalidated",
			zap.String("school_id", event.SchoolID),
			zap.String("academic_year", event.AcademicYear),
			zap.String("component", event.Component),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payment recorded message failed", zap.Error(err))
		}
	}
}
