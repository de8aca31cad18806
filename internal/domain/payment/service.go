package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Sync backfills missing payment rows. Safe to call repeatedly: the unique
// constraint on enrollment_id guarantees a second run creates nothing.
func (s *Service) Sync(ctx context.Context) (int64, error) {
	return s.repo.SyncMissing(ctx)
}

// Process marks the unpaid payment of an enrollment as paid. There is no
// payment gateway behind this: the card is only checked for presence, the
// last four digits are kept and the rest is discarded.
func (s *Service) Process(ctx context.Context, input ProcessInput) (*ProcessResult, error) {
	cardNumber := strings.TrimSpace(input.CardNumber)
	if input.EnrollmentID == "" || cardNumber == "" || strings.TrimSpace(input.ExpiryDate) == "" || strings.TrimSpace(input.CVV) == "" {
		return nil, fmt.Errorf("missing required fields")
	}

	transactionID, err := newTransactionID()
	if err != nil {
		return nil, err
	}

	lastDigits := cardNumber
	if len(lastDigits) > 4 {
		lastDigits = lastDigits[len(lastDigits)-4:]
	}

	var result ProcessResult
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		detail, err := tx.GetUnpaidByEnrollment(ctx, input.EnrollmentID)
		if err != nil {
			return err
		}

		updated, err := tx.MarkPaid(ctx, detail.ID, time.Now().UTC(), lastDigits, transactionID)
		if err != nil {
			return err
		}

		message := fmt.Sprintf("Nouveau paiement reçu pour l'inscription #%s", input.EnrollmentID)
		if err := tx.CreateNotification(ctx, detail.OwnerID, "payment", "Paiement reçu", message, updated.ID); err != nil {
			return err
		}

		result = ProcessResult{Payment: *updated, TransactionID: transactionID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) ParentStatus(ctx context.Context, parentID string) (*ParentStatus, error) {
	rows, err := s.repo.ListParentStatus(ctx, parentID)
	if err != nil {
		return nil, err
	}

	status := ParentStatus{Pending: []StatusRow{}, Paid: []StatusRow{}}
	for _, row := range rows {
		if row.Status == StatusPaid {
			status.Paid = append(status.Paid, row)
		} else {
			status.Pending = append(status.Pending, row)
		}
	}
	return &status, nil
}

func (s *Service) ParentHistory(ctx context.Context, parentID string, limit int) ([]HistoryRow, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.ListParentHistory(ctx, parentID, limit)
}

func (s *Service) OwnerStats(ctx context.Context, ownerID string) (*Stats, error) {
	stats, err := s.repo.OwnerStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if stats.TotalExpected > 0 {
		stats.PaymentPercentage = stats.TotalReceived / stats.TotalExpected * 100
	}
	return stats, nil
}

func newTransactionID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
