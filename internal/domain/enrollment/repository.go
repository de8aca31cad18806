package enrollment

import (
	"context"

	"nursery-app-go/internal/domain/identity"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	NurseryExists(ctx context.Context, nurseryID string) (bool, error)
	CreateParent(ctx context.Context, account *identity.ParentAccount) error
	CreateChild(ctx context.Context, child *Child) error
	CreateEnrollment(ctx context.Context, enrollment *Enrollment) error
	GetDetail(ctx context.Context, enrollmentID string) (*Detail, error)
	UpdateStatus(ctx context.Context, enrollmentID string, status Status) (*Enrollment, error)
	// DecrementSpots takes one spot from the nursery, guarded so the count
	// never goes negative. It reports whether a spot was actually taken.
	DecrementSpots(ctx context.Context, nurseryID string) (bool, error)
	IncrementSpots(ctx context.Context, nurseryID string) error
	// EnsurePayment inserts the unpaid payment row for an enrollment unless
	// one already exists. It reports whether a row was created.
	EnsurePayment(ctx context.Context, enrollmentID string) (bool, error)
	CreateNotification(ctx context.Context, userID, notificationType, title, message, relatedID string) error
	ListAll(ctx context.Context) ([]Summary, error)
	ListByNursery(ctx context.Context, nurseryID string) ([]Summary, error)
	ListByParent(ctx context.Context, parentID string) ([]Summary, error)
}
