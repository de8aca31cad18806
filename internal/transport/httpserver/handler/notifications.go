package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	notificationdomain "nursery-app-go/internal/domain/notification"
	"github.com/go-chi/chi/v5"
)

type notificationPayload struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	RelatedID *string   `json:"relatedId"`
	SentAt    time.Time `json:"sentAt"`
}

type notificationListResponse struct {
	Success       bool                  `json:"success"`
	Notifications []notificationPayload `json:"notifications"`
}

type unreadCountResponse struct {
	Success     bool  `json:"success"`
	UnreadCount int64 `json:"unreadCount"`
}

type markAllReadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	notifications, err := h.Notifications.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.InternalError("notifications.list: failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	payload := make([]notificationPayload, 0, len(notifications))
	for _, n := range notifications {
		payload = append(payload, notificationPayload{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			RelatedID: n.RelatedID,
			SentAt:    n.SentAt,
		})
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Success: true, Notifications: payload})
}

func (h *Handlers) UnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	count, err := h.Notifications.CountUnread(r.Context(), userID)
	if err != nil {
		h.log.InternalError("notifications.unread_count: failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch unread count")
		return
	}

	writeJSON(w, http.StatusOK, unreadCountResponse{Success: true, UnreadCount: count})
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationID")

	if err := h.Notifications.MarkRead(r.Context(), notificationID); err != nil {
		if errors.Is(err, notificationdomain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "Notification not found")
			return
		}
		h.log.InternalError("notifications.mark_read: failed", err, "notification_id", notificationID)
		writeError(w, http.StatusInternalServerError, "Failed to mark notification as read")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Notification marked as read"})
}

func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	count, err := h.Notifications.MarkAllRead(r.Context(), userID)
	if err != nil {
		h.log.InternalError("notifications.mark_all_read: failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to mark notifications as read")
		return
	}

	writeJSON(w, http.StatusOK, markAllReadResponse{
		Success: true,
		Message: fmt.Sprintf("%d notifications marked as read", count),
		Count:   count,
	})
}

func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationID")

	if err := h.Notifications.Delete(r.Context(), notificationID); err != nil {
		if errors.Is(err, notificationdomain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "Notification not found")
			return
		}
		h.log.InternalError("notifications.delete: failed", err, "notification_id", notificationID)
		writeError(w, http.StatusInternalServerError, "Failed to delete notification")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Notification deleted"})
}
