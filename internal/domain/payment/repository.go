package payment

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// SyncMissing backfills unpaid payment rows for every pending or active
	// enrollment that has none, returning the number of rows created.
	SyncMissing(ctx context.Context) (int64, error)
	GetUnpaidByEnrollment(ctx context.Context, enrollmentID string) (*Detail, error)
	MarkPaid(ctx context.Context, paymentID string, paidAt time.Time, cardLastDigits, transactionID string) (*Payment, error)
	CreateNotification(ctx context.Context, userID, notificationType, title, message, relatedID string) error
	ListParentStatus(ctx context.Context, parentID string) ([]StatusRow, error)
	ListParentHistory(ctx context.Context, parentID string, limit int) ([]HistoryRow, error)
	OwnerStats(ctx context.Context, ownerID string) (*Stats, error)
}
