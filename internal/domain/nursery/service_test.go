package nursery

import (
	"context"
	"errors"
	"testing"
)

type fakeNurseryRepo struct {
	nurseries map[string]*Nursery
}

func (r *fakeNurseryRepo) GetByID(ctx context.Context, nurseryID string) (*Nursery, error) {
	n, ok := r.nurseries[nurseryID]
	if !ok {
		return nil, ErrNurseryNotFound
	}
	return n, nil
}

func TestAvailability(t *testing.T) {
	price := 450.0
	repo := &fakeNurseryRepo{nurseries: map[string]*Nursery{
		"nur-1": {ID: "nur-1", TotalSpots: 20, AvailableSpots: 7, PricePerMonth: &price},
	}}
	service := NewService(repo)

	availability, err := service.Availability(context.Background(), "nur-1")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if availability.EnrolledCount != 13 {
		t.Errorf("enrolled count = %d, want 13", availability.EnrolledCount)
	}
	if availability.PricePerMonth == nil || *availability.PricePerMonth != 450 {
		t.Errorf("price = %v, want 450", availability.PricePerMonth)
	}
}

func TestAvailabilityUnknownNursery(t *testing.T) {
	service := NewService(&fakeNurseryRepo{nurseries: map[string]*Nursery{}})

	if _, err := service.Availability(context.Background(), "missing"); !errors.Is(err, ErrNurseryNotFound) {
		t.Fatalf("expected ErrNurseryNotFound, got %v", err)
	}
}
