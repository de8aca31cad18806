package nursery

import (
	"context"
	"errors"

	nurserydomain "nursery-app-go/internal/domain/nursery"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, nurseryID string) (*nurserydomain.Nursery, error) {
	var n nurserydomain.Nursery
	if err := r.db.WithContext(ctx).First(&n, "id = ?", nurseryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nurserydomain.ErrNurseryNotFound
		}
		return nil, err
	}
	return &n, nil
}
