package enrollment

import (
	"context"
	"errors"
	"time"

	enrollmentdomain "nursery-app-go/internal/domain/enrollment"
	"nursery-app-go/internal/domain/identity"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(enrollmentdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) NurseryExists(ctx context.Context, nurseryID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("nurseries").
		Where("id = ?", nurseryID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) CreateParent(ctx context.Context, account *identity.ParentAccount) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO users (id, email, password_hash, user_type, name, phone)
		VALUES (?, ?, ?, ?, ?, ?)`,
		account.ID, account.Email, account.PasswordHash, account.UserType, account.Name, account.Phone,
	).Error
}

func (r *PostgresRepository) CreateChild(ctx context.Context, child *enrollmentdomain.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

func (r *PostgresRepository) CreateEnrollment(ctx context.Context, enrollment *enrollmentdomain.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *PostgresRepository) GetDetail(ctx context.Context, enrollmentID string) (*enrollmentdomain.Detail, error) {
	type row struct {
		ID          string                   `gorm:"column:id"`
		NurseryID   string                   `gorm:"column:nursery_id"`
		Status      enrollmentdomain.Status  `gorm:"column:status"`
		ParentID    string                   `gorm:"column:parent_id"`
		ChildName   string                   `gorm:"column:child_name"`
		NurseryName string                   `gorm:"column:nursery_name"`
	}

	var result row
	res := r.db.WithContext(ctx).Raw(`
		SELECT e.id, e.nursery_id, e.status, c.parent_id,
		       c.name AS child_name, n.name AS nursery_name
		FROM enrollments e
		JOIN children c ON e.child_id = c.id
		JOIN nurseries n ON e.nursery_id = n.id
		WHERE e.id = ?`, enrollmentID).Scan(&result)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, enrollmentdomain.ErrEnrollmentNotFound
	}

	return &enrollmentdomain.Detail{
		ID:          result.ID,
		NurseryID:   result.NurseryID,
		Status:      result.Status,
		ParentID:    result.ParentID,
		ChildName:   result.ChildName,
		NurseryName: result.NurseryName,
	}, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, enrollmentID string, status enrollmentdomain.Status) (*enrollmentdomain.Enrollment, error) {
	res := r.db.WithContext(ctx).
		Model(&enrollmentdomain.Enrollment{}).
		Where("id = ?", enrollmentID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, enrollmentdomain.ErrEnrollmentNotFound
	}

	var enr enrollmentdomain.Enrollment
	if err := r.db.WithContext(ctx).First(&enr, "id = ?", enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, enrollmentdomain.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enr, nil
}

func (r *PostgresRepository) DecrementSpots(ctx context.Context, nurseryID string) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE nurseries
		SET available_spots = available_spots - 1
		WHERE id = ? AND available_spots > 0`, nurseryID)
	return res.RowsAffected > 0, res.Error
}

func (r *PostgresRepository) IncrementSpots(ctx context.Context, nurseryID string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE nurseries
		SET available_spots = available_spots + 1
		WHERE id = ?`, nurseryID).Error
}

func (r *PostgresRepository) EnsurePayment(ctx context.Context, enrollmentID string) (bool, error) {
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
		WHERE e.id = ?
		ON CONFLICT (enrollment_id) DO NOTHING`, enrollmentID)
	return res.RowsAffected > 0, res.Error
}

func (r *PostgresRepository) CreateNotification(ctx context.Context, userID, notificationType, title, message, relatedID string) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO notifications (user_id, type, title, message, related_id)
		VALUES (?, ?, ?, ?, ?)`,
		userID, notificationType, title, message, relatedID,
	).Error
}

type summaryRow struct {
	EnrollmentID   string                  `gorm:"column:enrollment_id"`
	StartDate      time.Time               `gorm:"column:start_date"`
	Status         enrollmentdomain.Status `gorm:"column:status"`
	CreatedAt      time.Time               `gorm:"column:created_at"`
	ChildID        string                  `gorm:"column:child_id"`
	ChildName      string                  `gorm:"column:child_name"`
	DateOfBirth    time.Time               `gorm:"column:date_of_birth"`
	Age            int                     `gorm:"column:age"`
	ParentID       string                  `gorm:"column:parent_id"`
	ParentName     string                  `gorm:"column:parent_name"`
	ParentPhone    string                  `gorm:"column:parent_phone"`
	ParentEmail    string                  `gorm:"column:parent_email"`
	NurseryID      string                  `gorm:"column:nursery_id"`
	NurseryName    string                  `gorm:"column:nursery_name"`
	Description    string                  `gorm:"column:description"`
	Address        string                  `gorm:"column:address"`
	City           string                  `gorm:"column:city"`
	PostalCode     string                  `gorm:"column:postal_code"`
	NurseryPhone   string                  `gorm:"column:nursery_phone"`
	NurseryEmail   string                  `gorm:"column:nursery_email"`
	Hours          string                  `gorm:"column:hours"`
	PricePerMonth  float64                 `gorm:"column:price_per_month"`
	TotalSpots     int                     `gorm:"column:total_spots"`
	AvailableSpots int                     `gorm:"column:available_spots"`
	AgeRange       string                  `gorm:"column:age_range"`
	Rating         float64                 `gorm:"column:rating"`
	ReviewCount    int                     `gorm:"column:review_count"`
	PhotoURL       string                  `gorm:"column:photo_url"`
}

const summarySelect = `
	SELECT
		e.id AS enrollment_id, e.start_date, e.status, e.created_at,
		c.id AS child_id, c.name AS child_name, c.date_of_birth, c.age,
		u.id AS parent_id, u.name AS parent_name, u.phone AS parent_phone, u.email AS parent_email,
		n.id AS nursery_id, n.name AS nursery_name, n.description, n.address, n.city,
		n.postal_code, n.phone AS nursery_phone, n.email AS nursery_email, n.hours,
		COALESCE(n.price_per_month, 0) AS price_per_month, n.total_spots, n.available_spots,
		n.age_range, n.rating, n.review_count, n.photo_url
	FROM enrollments e
	JOIN children c ON e.child_id = c.id
	JOIN users u ON c.parent_id = u.id
	JOIN nurseries n ON e.nursery_id = n.id`

func (r *PostgresRepository) ListAll(ctx context.Context) ([]enrollmentdomain.Summary, error) {
	var rows []summaryRow
	if err := r.db.WithContext(ctx).
		Raw(summarySelect + " ORDER BY e.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toSummaries(rows, true), nil
}

func (r *PostgresRepository) ListByNursery(ctx context.Context, nurseryID string) ([]enrollmentdomain.Summary, error) {
	var rows []summaryRow
	if err := r.db.WithContext(ctx).
		Raw(summarySelect+" WHERE e.nursery_id = ? ORDER BY e.created_at DESC", nurseryID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toSummaries(rows, false), nil
}

func (r *PostgresRepository) ListByParent(ctx context.Context, parentID string) ([]enrollmentdomain.Summary, error) {
	var rows []summaryRow
	if err := r.db.WithContext(ctx).
		Raw(summarySelect+" WHERE c.parent_id = ? ORDER BY e.created_at DESC", parentID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toSummaries(rows, true), nil
}

func toSummaries(rows []summaryRow, includeNursery bool) []enrollmentdomain.Summary {
	summaries := make([]enrollmentdomain.Summary, 0, len(rows))
	for _, row := range rows {
		summary := enrollmentdomain.Summary{
			ID:        row.EnrollmentID,
			StartDate: row.StartDate,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
			Child: enrollmentdomain.ChildInfo{
				ID:        row.ChildID,
				Name:      row.ChildName,
				BirthDate: row.DateOfBirth,
				Age:       row.Age,
			},
			Parent: enrollmentdomain.ParentInfo{
				ID:    row.ParentID,
				Name:  row.ParentName,
				Phone: row.ParentPhone,
				Email: row.ParentEmail,
			},
		}
		if includeNursery {
			summary.Nursery = &enrollmentdomain.NurseryInfo{
				ID:             row.NurseryID,
				Name:           row.NurseryName,
				Description:    row.Description,
				Address:        row.Address,
				City:           row.City,
				PostalCode:     row.PostalCode,
				Phone:          row.NurseryPhone,
				Email:          row.NurseryEmail,
				Hours:          row.Hours,
				PricePerMonth:  row.PricePerMonth,
				TotalSpots:     row.TotalSpots,
				AvailableSpots: row.AvailableSpots,
				AgeRange:       row.AgeRange,
				Rating:         row.Rating,
				ReviewCount:    row.ReviewCount,
				PhotoURL:       row.PhotoURL,
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
