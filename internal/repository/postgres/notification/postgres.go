package notification

import (
	"context"

	notificationdomain "nursery-app-go/internal/domain/notification"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]notificationdomain.Notification, error) {
	var notifications []notificationdomain.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *PostgresRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) MarkRead(ctx context.Context, notificationID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	return res.RowsAffected > 0, res.Error
}

func (r *PostgresRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *PostgresRepository) Delete(ctx context.Context, notificationID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Delete(&notificationdomain.Notification{}, "id = ?", notificationID)
	return res.RowsAffected > 0, res.Error
}
