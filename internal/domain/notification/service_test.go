package notification

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeNotificationRepo struct {
	notifications map[string]*Notification
	listLimit     int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*Notification)}
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error) {
	r.listLimit = limit
	var out []Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, notificationID string) (bool, error) {
	n, ok := r.notifications[notificationID]
	if !ok {
		return false, nil
	}
	n.IsRead = true
	return true, nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, notificationID string) (bool, error) {
	if _, ok := r.notifications[notificationID]; !ok {
		return false, nil
	}
	delete(r.notifications, notificationID)
	return true, nil
}

func addNotification(repo *fakeNotificationRepo, id, userID string, read bool) {
	repo.notifications[id] = &Notification{
		ID:      id,
		UserID:  userID,
		Type:    "enrollment_accepted",
		Title:   "Inscription Acceptée",
		Message: "Votre inscription a été acceptée",
		IsRead:  read,
		SentAt:  time.Now().UTC(),
	}
}

func TestListByUserCapsFeed(t *testing.T) {
	repo := newFakeNotificationRepo()
	addNotification(repo, "n1", "user-1", false)
	service := NewService(repo)

	items, err := service.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 notification, got %d", len(items))
	}
	if repo.listLimit != 50 {
		t.Errorf("feed limit = %d, want 50", repo.listLimit)
	}
}

func TestCountUnread(t *testing.T) {
	repo := newFakeNotificationRepo()
	addNotification(repo, "n1", "user-1", false)
	addNotification(repo, "n2", "user-1", true)
	addNotification(repo, "n3", "user-2", false)
	service := NewService(repo)

	count, err := service.CountUnread(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	if count != 1 {
		t.Errorf("unread = %d, want 1", count)
	}
}

func TestMarkRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	addNotification(repo, "n1", "user-1", false)
	service := NewService(repo)

	if err := service.MarkRead(context.Background(), "n1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !repo.notifications["n1"].IsRead {
		t.Error("notification should be read")
	}

	if err := service.MarkRead(context.Background(), "missing"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	addNotification(repo, "n1", "user-1", false)
	addNotification(repo, "n2", "user-1", false)
	addNotification(repo, "n3", "user-1", true)
	service := NewService(repo)

	count, err := service.MarkAllRead(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if count != 2 {
		t.Errorf("marked %d, want 2", count)
	}
}

func TestDelete(t *testing.T) {
	repo := newFakeNotificationRepo()
	addNotification(repo, "n1", "user-1", false)
	service := NewService(repo)

	if err := service.Delete(context.Background(), "n1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.notifications["n1"]; ok {
		t.Error("notification should be gone")
	}

	if err := service.Delete(context.Background(), "n1"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}
