package nursery

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Availability(ctx context.Context, nurseryID string) (*Availability, error) {
	n, err := s.repo.GetByID(ctx, nurseryID)
	if err != nil {
		return nil, err
	}

	return &Availability{
		NurseryID:      n.ID,
		TotalSpots:     n.TotalSpots,
		AvailableSpots: n.AvailableSpots,
		EnrolledCount:  n.TotalSpots - n.AvailableSpots,
		PricePerMonth:  n.PricePerMonth,
	}, nil
}
