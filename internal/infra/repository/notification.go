package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/pgconv"
)

// NotificationRepository writes outbox jobs for an external dispatcher
// process. Delivery is not this service's concern.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Enqueue(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notification_jobs (kind, topic, payload, run_at)
		VALUES ($1, $2, $3, $4)`,
		kind, topic, payload, pgconv.TimeToPgtype(runAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
