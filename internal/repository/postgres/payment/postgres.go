package payment

import (
	"context"
	"errors"
	"time"

	paymentdomain "nursery-app-go/internal/domain/payment"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(paymentdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) SyncMissing(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO payments (enrollment_id, parent_id, nursery_id, child_id, amount, payment_status, description)
		SELECT
			e.id,
			c.parent_id,
			e.nursery_id,
			e.child_id,
			COALESCE(n.price_per_month, 100.00),
			'unpaid',
			'Monthly fee for ' || c.name || ' at ' || n.name
		FROM enrollments e
		JOIN nurseries n ON e.nursery_id = n.id
		JOIN children c ON e.child_id = c.id
		WHERE e.status IN ('pending', 'active')
		AND NOT EXISTS (
			SELECT 1 FROM payments p WHERE p.enrollment_id = e.id
		)
		ON CONFLICT (enrollment_id) DO NOTHING`)
	return res.RowsAffected, res.Error
}

func (r *PostgresRepository) GetUnpaidByEnrollment(ctx context.Context, enrollmentID string) (*paymentdomain.Detail, error) {
	type row struct {
		paymentdomain.Payment
		OwnerID string `gorm:"column:owner_id"`
	}

	var result row
	res := r.db.WithContext(ctx).Raw(`
		SELECT p.*, n.owner_id
		FROM payments p
		JOIN enrollments e ON p.enrollment_id = e.id
		JOIN nurseries n ON e.nursery_id = n.id
		WHERE p.enrollment_id = ? AND p.payment_status = 'unpaid'`, enrollmentID).Scan(&result)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, paymentdomain.ErrPaymentNotFound
	}

	return &paymentdomain.Detail{Payment: result.Payment, OwnerID: result.OwnerID}, nil
}

func (r *PostgresRepository) MarkPaid(ctx context.Context, paymentID string, paidAt time.Time, cardLastDigits, transactionID string) (*paymentdomain.Payment, error) {
	res := r.db.WithContext(ctx).
		Model(&paymentdomain.Payment{}).
		Where("id = ? AND payment_status = ?", paymentID, paymentdomain.StatusUnpaid).
		Updates(map[string]interface{}{
			"payment_status":   paymentdomain.StatusPaid,
			"payment_date":     paidAt,
			"card_last_digits": cardLastDigits,
			"transaction_id":   transactionID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, paymentdomain.ErrPaymentNotFound
	}

	var updated paymentdomain.Payment
	if err := r.db.WithContext(ctx).First(&updated, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paymentdomain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *PostgresRepository) CreateNotification(ctx context.Context, userID, notificationType, title, message, relatedID string) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO notifications (user_id, type, title, message, related_id)
		VALUES (?, ?, ?, ?, ?)`,
		userID, notificationType, title, message, relatedID,
	).Error
}

func (r *PostgresRepository) ListParentStatus(ctx context.Context, parentID string) ([]paymentdomain.StatusRow, error) {
	type row struct {
		ID           string                      `gorm:"column:id"`
		EnrollmentID string                      `gorm:"column:enrollment_id"`
		Amount       float64                     `gorm:"column:amount"`
		Status       paymentdomain.PaymentStatus `gorm:"column:payment_status"`
		PaymentDate  *time.Time                  `gorm:"column:payment_date"`
		ChildName    string                      `gorm:"column:child_name"`
		NurseryID    string                      `gorm:"column:nursery_id"`
		NurseryName  string                      `gorm:"column:nursery_name"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.enrollment_id, p.amount, p.payment_status, p.payment_date,
		       c.name AS child_name, n.id AS nursery_id, n.name AS nursery_name
		FROM payments p
		JOIN enrollments e ON p.enrollment_id = e.id
		JOIN children c ON e.child_id = c.id
		JOIN nurseries n ON p.nursery_id = n.id
		WHERE p.parent_id = ? AND e.status IN ('pending', 'active')
		ORDER BY c.name`, parentID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]paymentdomain.StatusRow, 0, len(rows))
	for _, item := range rows {
		result = append(result, paymentdomain.StatusRow{
			ID:           item.ID,
			EnrollmentID: item.EnrollmentID,
			Amount:       item.Amount,
			Status:       item.Status,
			PaymentDate:  item.PaymentDate,
			ChildName:    item.ChildName,
			NurseryID:    item.NurseryID,
			NurseryName:  item.NurseryName,
		})
	}
	return result, nil
}

func (r *PostgresRepository) ListParentHistory(ctx context.Context, parentID string, limit int) ([]paymentdomain.HistoryRow, error) {
	type row struct {
		ID             string                      `gorm:"column:id"`
		Amount         float64                     `gorm:"column:amount"`
		Status         paymentdomain.PaymentStatus `gorm:"column:payment_status"`
		PaymentDate    *time.Time                  `gorm:"column:payment_date"`
		CardLastDigits *string                     `gorm:"column:card_last_digits"`
		ChildName      string                      `gorm:"column:child_name"`
		NurseryName    string                      `gorm:"column:nursery_name"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.amount, p.payment_status, p.payment_date, p.card_last_digits,
		       c.name AS child_name, n.name AS nursery_name
		FROM payments p
		JOIN enrollments e ON p.enrollment_id = e.id
		JOIN children c ON e.child_id = c.id
		JOIN nurseries n ON p.nursery_id = n.id
		WHERE p.parent_id = ?
		ORDER BY p.payment_date DESC NULLS LAST
		LIMIT ?`, parentID, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]paymentdomain.HistoryRow, 0, len(rows))
	for _, item := range rows {
		result = append(result, paymentdomain.HistoryRow{
			ID:             item.ID,
			Amount:         item.Amount,
			Status:         item.Status,
			PaymentDate:    item.PaymentDate,
			CardLastDigits: item.CardLastDigits,
			ChildName:      item.ChildName,
			NurseryName:    item.NurseryName,
		})
	}
	return result, nil
}

func (r *PostgresRepository) OwnerStats(ctx context.Context, ownerID string) (*paymentdomain.Stats, error) {
	type row struct {
		TotalEnrollments int64   `gorm:"column:total_enrollments"`
		TotalExpected    float64 `gorm:"column:total_expected"`
		TotalReceived    float64 `gorm:"column:total_received"`
		TotalPending     float64 `gorm:"column:total_pending"`
		PaidCount        int64   `gorm:"column:paid_count"`
		UnpaidCount      int64   `gorm:"column:unpaid_count"`
	}

	var result row
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_enrollments,
			COALESCE(SUM(p.amount), 0) AS total_expected,
			COALESCE(SUM(CASE WHEN p.payment_status = 'paid' THEN p.amount ELSE 0 END), 0) AS total_received,
			COALESCE(SUM(CASE WHEN p.payment_status = 'unpaid' THEN p.amount ELSE 0 END), 0) AS total_pending,
			COUNT(CASE WHEN p.payment_status = 'paid' THEN 1 END) AS paid_count,
			COUNT(CASE WHEN p.payment_status = 'unpaid' THEN 1 END) AS unpaid_count
		FROM payments p
		JOIN nurseries n ON p.nursery_id = n.id
		JOIN enrollments e ON p.enrollment_id = e.id
		WHERE n.owner_id = ? AND e.status IN ('pending', 'active')`, ownerID).Scan(&result).Error; err != nil {
		return nil, err
	}

	return &paymentdomain.Stats{
		TotalEnrollments: result.TotalEnrollments,
		TotalExpected:    result.TotalExpected,
		TotalReceived:    result.TotalReceived,
		TotalPending:     result.TotalPending,
		PaidCount:        result.PaidCount,
		UnpaidCount:      result.UnpaidCount,
	}, nil
}
