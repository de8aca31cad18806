package nursery

import "context"

type Repository interface {
	GetByID(ctx context.Context, nurseryID string) (*Nursery, error)
}
