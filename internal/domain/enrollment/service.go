package enrollment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nursery-app-go/internal/domain/identity"
	"nursery-app-go/pkg/logger"
	"github.com/google/uuid"
)

// ParentProvisioner issues placeholder accounts for parents enrolling
// without an existing user. Credential issuance stays out of this service;
// the provisioned account is persisted inside the enrollment transaction.
type ParentProvisioner interface {
	NewParentAccount(name, phone string) identity.ParentAccount
}

type Service struct {
	repo     Repository
	identity ParentProvisioner
	log      logger.Logger
}

func NewService(repo Repository, provisioner ParentProvisioner, log logger.Logger) *Service {
	return &Service{repo: repo, identity: provisioner, log: log}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	childName := strings.TrimSpace(input.ChildName)
	if childName == "" {
		return nil, fmt.Errorf("child name is required")
	}
	if input.NurseryID == "" {
		return nil, fmt.Errorf("nursery id is required")
	}
	if input.ParentID == "" && strings.TrimSpace(input.ParentName) == "" {
		return nil, fmt.Errorf("parent id or parent name is required")
	}

	age := AgeFromBirthDate(input.BirthDate, time.Now().UTC())

	var result CreateResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.NurseryExists(ctx, input.NurseryID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNurseryNotFound
		}

		parentID := input.ParentID
		if parentID == "" {
			account := s.identity.NewParentAccount(input.ParentName, input.ParentPhone)
			if err := tx.CreateParent(ctx, &account); err != nil {
				return err
			}
			parentID = account.ID
		}

		child := Child{
			ID:          uuid.NewString(),
			ParentID:    parentID,
			Name:        childName,
			Age:         age,
			DateOfBirth: input.BirthDate,
		}
		if notes := strings.TrimSpace(input.Notes); notes != "" {
			child.MedicalNotes = &notes
		}
		if err := tx.CreateChild(ctx, &child); err != nil {
			return err
		}

		enr := Enrollment{
			ID:        uuid.NewString(),
			ChildID:   child.ID,
			NurseryID: input.NurseryID,
			Status:    StatusPending,
			StartDate: input.StartDate,
		}
		if err := tx.CreateEnrollment(ctx, &enr); err != nil {
			return err
		}

		if _, err := tx.EnsurePayment(ctx, enr.ID); err != nil {
			return err
		}

		result = CreateResult{
			EnrollmentID: enr.ID,
			ChildID:      child.ID,
			ParentID:     parentID,
			NurseryID:    input.NurseryID,
			CreatedAt:    enr.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Accept moves a pending enrollment to active, takes one spot from the
// nursery, makes sure the unpaid payment row exists and notifies the parent.
// Accept is the only operation that allocates capacity.
func (s *Service) Accept(ctx context.Context, enrollmentID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		detail, err := tx.GetDetail(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if detail.Status != StatusPending {
			return ErrEnrollmentNotPending
		}

		if _, err := tx.UpdateStatus(ctx, enrollmentID, StatusActive); err != nil {
			return err
		}

		taken, err := tx.DecrementSpots(ctx, detail.NurseryID)
		if err != nil {
			return err
		}
		if !taken {
			// Accepts past capacity still go through; the no-op update is
			// only surfaced in the logs.
			s.log.Warn("enrollment: accepted with no available spots",
				"enrollment_id", enrollmentID, "nursery_id", detail.NurseryID)
		}

		if _, err := tx.EnsurePayment(ctx, enrollmentID); err != nil {
			return err
		}

		message := fmt.Sprintf("L'inscription de %s à %s a été acceptée!", detail.ChildName, detail.NurseryName)
		return tx.CreateNotification(ctx, detail.ParentID,
			"enrollment_accepted", "Inscription Acceptée", message, enrollmentID)
	})
}

// Cancel rejects a pending enrollment or cancels an active one. A spot is
// returned to the nursery only when the enrollment was active, since only
// accepted enrollments took one.
func (s *Service) Cancel(ctx context.Context, enrollmentID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		detail, err := tx.GetDetail(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if detail.Status != StatusPending && detail.Status != StatusActive {
			return ErrEnrollmentNotCancellable
		}

		if _, err := tx.UpdateStatus(ctx, enrollmentID, StatusCancelled); err != nil {
			return err
		}

		if detail.Status == StatusActive {
			if err := tx.IncrementSpots(ctx, detail.NurseryID); err != nil {
				return err
			}
		}

		notificationType := "enrollment_cancelled"
		title := "Inscription Annulée"
		message := fmt.Sprintf("L'inscription de %s à %s a été annulée.", detail.ChildName, detail.NurseryName)
		if detail.Status == StatusPending {
			notificationType = "enrollment_rejected"
			title = "Inscription Rejetée"
			message = fmt.Sprintf("L'inscription de %s à %s a été rejetée.", detail.ChildName, detail.NurseryName)
		}

		return tx.CreateNotification(ctx, detail.ParentID, notificationType, title, message, enrollmentID)
	})
}

// SetStatus is the administrative status override. Moving to active creates
// the payment row if missing but does not touch available_spots; capacity is
// allocated by Accept only.
func (s *Service) SetStatus(ctx context.Context, enrollmentID string, status Status) (*Enrollment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var updated *Enrollment
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		enr, err := tx.UpdateStatus(ctx, enrollmentID, status)
		if err != nil {
			return err
		}
		if status == StatusActive {
			if _, err := tx.EnsurePayment(ctx, enrollmentID); err != nil {
				return err
			}
		}
		updated = enr
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Summary, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByNursery(ctx context.Context, nurseryID string) ([]Summary, error) {
	return s.repo.ListByNursery(ctx, nurseryID)
}

func (s *Service) ListByParent(ctx context.Context, parentID string) ([]Summary, error) {
	return s.repo.ListByParent(ctx, parentID)
}
