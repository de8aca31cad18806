package payment

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakePaymentRepo struct {
	payments      map[string]*Payment
	owners        map[string]string
	statusRows    []StatusRow
	historyRows   []HistoryRow
	stats         Stats
	syncCreated   int64
	syncCalls     int
	historyLimit  int
	notifications []struct {
		UserID, Type, Title, Message, RelatedID string
	}
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[string]*Payment),
		owners:   make(map[string]string),
	}
}

func (r *fakePaymentRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakePaymentRepo) SyncMissing(ctx context.Context) (int64, error) {
	r.syncCalls++
	if r.syncCalls == 1 {
		return r.syncCreated, nil
	}
	return 0, nil
}

func (r *fakePaymentRepo) GetUnpaidByEnrollment(ctx context.Context, enrollmentID string) (*Detail, error) {
	for _, p := range r.payments {
		if p.EnrollmentID == enrollmentID && p.PaymentStatus == StatusUnpaid {
			return &Detail{Payment: *p, OwnerID: r.owners[p.NurseryID]}, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (r *fakePaymentRepo) MarkPaid(ctx context.Context, paymentID string, paidAt time.Time, cardLastDigits, transactionID string) (*Payment, error) {
	p, ok := r.payments[paymentID]
	if !ok || p.PaymentStatus != StatusUnpaid {
		return nil, ErrPaymentNotFound
	}
	p.PaymentStatus = StatusPaid
	p.PaymentDate = &paidAt
	p.CardLastDigits = &cardLastDigits
	p.TransactionID = &transactionID
	return p, nil
}

func (r *fakePaymentRepo) CreateNotification(ctx context.Context, userID, notificationType, title, message, relatedID string) error {
	r.notifications = append(r.notifications, struct {
		UserID, Type, Title, Message, RelatedID string
	}{userID, notificationType, title, message, relatedID})
	return nil
}

func (r *fakePaymentRepo) ListParentStatus(ctx context.Context, parentID string) ([]StatusRow, error) {
	return r.statusRows, nil
}

func (r *fakePaymentRepo) ListParentHistory(ctx context.Context, parentID string, limit int) ([]HistoryRow, error) {
	r.historyLimit = limit
	if limit < len(r.historyRows) {
		return r.historyRows[:limit], nil
	}
	return r.historyRows, nil
}

func (r *fakePaymentRepo) OwnerStats(ctx context.Context, ownerID string) (*Stats, error) {
	stats := r.stats
	return &stats, nil
}

func addUnpaidPayment(repo *fakePaymentRepo, paymentID, enrollmentID, nurseryID, ownerID string) {
	repo.payments[paymentID] = &Payment{
		ID:            paymentID,
		EnrollmentID:  enrollmentID,
		NurseryID:     nurseryID,
		Amount:        350,
		PaymentStatus: StatusUnpaid,
	}
	repo.owners[nurseryID] = ownerID
}

func TestSyncIsIdempotent(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.syncCreated = 3
	service := NewService(repo)

	created, err := service.Sync(context.Background())
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if created != 3 {
		t.Errorf("first sync created %d, want 3", created)
	}

	created, err = service.Sync(context.Background())
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if created != 0 {
		t.Errorf("second sync created %d, want 0", created)
	}
}

func TestProcessMarksPaidAndNotifiesOwner(t *testing.T) {
	repo := newFakePaymentRepo()
	addUnpaidPayment(repo, "pay-1", "enr-1", "nur-1", "owner-1")
	service := NewService(repo)

	result, err := service.Process(context.Background(), ProcessInput{
		EnrollmentID: "enr-1",
		CardNumber:   "4242424242424242",
		ExpiryDate:   "12/27",
		CVV:          "123",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if result.Payment.PaymentStatus != StatusPaid {
		t.Errorf("status = %q, want paid", result.Payment.PaymentStatus)
	}
	if result.Payment.CardLastDigits == nil || *result.Payment.CardLastDigits != "4242" {
		t.Errorf("card last digits = %v, want 4242", result.Payment.CardLastDigits)
	}
	if len(result.TransactionID) != 32 {
		t.Errorf("transaction id length = %d, want 32 hex chars", len(result.TransactionID))
	}
	if result.Payment.PaymentDate == nil {
		t.Error("payment date not set")
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.notifications))
	}
	notif := repo.notifications[0]
	if notif.UserID != "owner-1" {
		t.Errorf("notification user = %q, want owner-1", notif.UserID)
	}
	if notif.Type != "payment" || notif.Title != "Paiement reçu" {
		t.Errorf("notification = %q/%q, want payment/Paiement reçu", notif.Type, notif.Title)
	}
	if notif.RelatedID != "pay-1" {
		t.Errorf("notification related id = %q, want pay-1", notif.RelatedID)
	}
}

func TestProcessAlreadyPaid(t *testing.T) {
	repo := newFakePaymentRepo()
	addUnpaidPayment(repo, "pay-1", "enr-1", "nur-1", "owner-1")
	repo.payments["pay-1"].PaymentStatus = StatusPaid
	service := NewService(repo)

	_, err := service.Process(context.Background(), ProcessInput{
		EnrollmentID: "enr-1",
		CardNumber:   "4242424242424242",
		ExpiryDate:   "12/27",
		CVV:          "123",
	})
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
	if len(repo.notifications) != 0 {
		t.Errorf("expected no notifications, got %d", len(repo.notifications))
	}
}

func TestProcessMissingFields(t *testing.T) {
	repo := newFakePaymentRepo()
	addUnpaidPayment(repo, "pay-1", "enr-1", "nur-1", "owner-1")
	service := NewService(repo)

	inputs := []ProcessInput{
		{CardNumber: "4242424242424242", ExpiryDate: "12/27", CVV: "123"},
		{EnrollmentID: "enr-1", ExpiryDate: "12/27", CVV: "123"},
		{EnrollmentID: "enr-1", CardNumber: "4242424242424242", CVV: "123"},
		{EnrollmentID: "enr-1", CardNumber: "4242424242424242", ExpiryDate: "12/27"},
		{EnrollmentID: "enr-1", CardNumber: "   ", ExpiryDate: "12/27", CVV: "123"},
	}
	for i, input := range inputs {
		if _, err := service.Process(context.Background(), input); err == nil {
			t.Errorf("input %d: expected error for missing fields", i)
		}
	}
	if repo.payments["pay-1"].PaymentStatus != StatusUnpaid {
		t.Error("payment must stay unpaid when validation fails")
	}
}

func TestProcessShortCardNumber(t *testing.T) {
	repo := newFakePaymentRepo()
	addUnpaidPayment(repo, "pay-1", "enr-1", "nur-1", "owner-1")
	service := NewService(repo)

	result, err := service.Process(context.Background(), ProcessInput{
		EnrollmentID: "enr-1",
		CardNumber:   "424",
		ExpiryDate:   "12/27",
		CVV:          "123",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Payment.CardLastDigits == nil || *result.Payment.CardLastDigits != "424" {
		t.Errorf("card last digits = %v, want 424", result.Payment.CardLastDigits)
	}
}

func TestParentStatusSplitsPaidAndPending(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.statusRows = []StatusRow{
		{ID: "pay-1", Status: StatusPaid, Amount: 350},
		{ID: "pay-2", Status: StatusUnpaid, Amount: 100},
		{ID: "pay-3", Status: StatusUnpaid, Amount: 200},
	}
	service := NewService(repo)

	status, err := service.ParentStatus(context.Background(), "parent-1")
	if err != nil {
		t.Fatalf("parent status: %v", err)
	}
	if len(status.Paid) != 1 || len(status.Pending) != 2 {
		t.Errorf("paid/pending = %d/%d, want 1/2", len(status.Paid), len(status.Pending))
	}
}

func TestParentStatusEmpty(t *testing.T) {
	repo := newFakePaymentRepo()
	service := NewService(repo)

	status, err := service.ParentStatus(context.Background(), "parent-1")
	if err != nil {
		t.Fatalf("parent status: %v", err)
	}
	// Both buckets serialize as [] rather than null.
	if status.Paid == nil || status.Pending == nil {
		t.Error("expected empty slices, got nil")
	}
}

func TestParentHistoryDefaultLimit(t *testing.T) {
	repo := newFakePaymentRepo()
	service := NewService(repo)

	if _, err := service.ParentHistory(context.Background(), "parent-1", 0); err != nil {
		t.Fatalf("parent history: %v", err)
	}
	if repo.historyLimit != 100 {
		t.Errorf("limit = %d, want default 100", repo.historyLimit)
	}

	if _, err := service.ParentHistory(context.Background(), "parent-1", 10); err != nil {
		t.Fatalf("parent history: %v", err)
	}
	if repo.historyLimit != 10 {
		t.Errorf("limit = %d, want 10", repo.historyLimit)
	}
}

func TestOwnerStatsPercentage(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.stats = Stats{
		TotalEnrollments: 4,
		TotalExpected:    1000,
		TotalReceived:    250,
		TotalPending:     750,
		PaidCount:        1,
		UnpaidCount:      3,
	}
	service := NewService(repo)

	stats, err := service.OwnerStats(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("owner stats: %v", err)
	}
	if stats.PaymentPercentage != 25 {
		t.Errorf("payment percentage = %v, want 25", stats.PaymentPercentage)
	}
}

func TestOwnerStatsZeroExpected(t *testing.T) {
	repo := newFakePaymentRepo()
	service := NewService(repo)

	stats, err := service.OwnerStats(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("owner stats: %v", err)
	}
	if stats.PaymentPercentage != 0 {
		t.Errorf("payment percentage = %v, want 0", stats.PaymentPercentage)
	}
}
