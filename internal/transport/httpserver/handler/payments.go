package handler

import (
	"errors"
	"net/http"
	"time"

	paymentdomain "nursery-app-go/internal/domain/payment"
	"nursery-app-go/internal/metrics"
	"github.com/go-chi/chi/v5"
)

type processPaymentRequest struct {
	EnrollmentID string `json:"enrollmentId" validate:"required,uuid"`
	CardNumber   string `json:"cardNumber" validate:"required,min=12"`
	ExpiryDate   string `json:"expiryDate" validate:"required"`
	CVV          string `json:"cvv" validate:"required,min=3,max=4"`
}

type syncPaymentsResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	PaymentsCreated int64  `json:"paymentsCreated"`
}

type paymentPayload struct {
	ID             string     `json:"id"`
	EnrollmentID   string     `json:"enrollmentId"`
	Amount         float64    `json:"amount"`
	PaymentStatus  string     `json:"paymentStatus"`
	PaymentDate    *time.Time `json:"paymentDate"`
	CardLastDigits *string    `json:"cardLastDigits"`
}

type processPaymentResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Payment       paymentPayload `json:"payment"`
	TransactionID string         `json:"transactionId"`
}

type paymentStatusRowPayload struct {
	ID           string     `json:"id"`
	EnrollmentID string     `json:"enrollmentId"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"paymentStatus"`
	PaymentDate  *time.Time `json:"paymentDate"`
	ChildName    string     `json:"childName"`
	NurseryID    string     `json:"nurseryId"`
	NurseryName  string     `json:"nurseryName"`
}

type parentPaymentStatusResponse struct {
	Success         bool                      `json:"success"`
	PendingPayments []paymentStatusRowPayload `json:"pendingPayments"`
	PaidPayments    []paymentStatusRowPayload `json:"paidPayments"`
	TotalPending    int                       `json:"totalPending"`
	TotalPaid       int                       `json:"totalPaid"`
}

type paymentHistoryRowPayload struct {
	ID             string     `json:"id"`
	Amount         float64    `json:"amount"`
	Status         string     `json:"paymentStatus"`
	PaymentDate    *time.Time `json:"paymentDate"`
	CardLastDigits *string    `json:"cardLastDigits"`
	ChildName      string     `json:"childName"`
	NurseryName    string     `json:"nurseryName"`
}

type parentPaymentHistoryResponse struct {
	Success  bool                       `json:"success"`
	Payments []paymentHistoryRowPayload `json:"payments"`
}

type ownerStatsPayload struct {
	TotalEnrollments  int64   `json:"totalEnrollments"`
	TotalExpected     float64 `json:"totalExpected"`
	TotalReceived     float64 `json:"totalReceived"`
	TotalPending      float64 `json:"totalPending"`
	PaidCount         int64   `json:"paidCount"`
	UnpaidCount       int64   `json:"unpaidCount"`
	PaymentPercentage float64 `json:"paymentPercentage"`
}

type ownerStatsResponse struct {
	Success bool              `json:"success"`
	Stats   ownerStatsPayload `json:"stats"`
}

func (h *Handlers) SyncPayments(w http.ResponseWriter, r *http.Request) {
	created, err := h.Payments.Sync(r.Context())
	if err != nil {
		h.log.InternalError("payments.sync: failed", err)
		writeError(w, http.StatusInternalServerError, "Failed to sync payments")
		return
	}

	metrics.PaymentsSynced.Add(float64(created))
	writeJSON(w, http.StatusOK, syncPaymentsResponse{
		Success:         true,
		Message:         "Payments synced",
		PaymentsCreated: created,
	})
}

func (h *Handlers) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req processPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := h.Payments.Process(r.Context(), paymentdomain.ProcessInput{
		EnrollmentID: req.EnrollmentID,
		CardNumber:   req.CardNumber,
		ExpiryDate:   req.ExpiryDate,
		CVV:          req.CVV,
	})
	if err != nil {
		if errors.Is(err, paymentdomain.ErrPaymentNotFound) {
			h.log.BusinessError("payments.process: not found or paid", err, "enrollment_id", req.EnrollmentID)
			writeError(w, http.StatusNotFound, "Payment not found or already paid")
			return
		}
		h.log.InternalError("payments.process: failed", err, "enrollment_id", req.EnrollmentID)
		writeError(w, http.StatusInternalServerError, "Failed to process payment")
		return
	}

	metrics.PaymentsProcessed.Inc()
	writeJSON(w, http.StatusOK, processPaymentResponse{
		Success: true,
		Message: "Payment processed successfully",
		Payment: paymentPayload{
			ID:             result.Payment.ID,
			EnrollmentID:   result.Payment.EnrollmentID,
			Amount:         result.Payment.Amount,
			PaymentStatus:  string(result.Payment.PaymentStatus),
			PaymentDate:    result.Payment.PaymentDate,
			CardLastDigits: result.Payment.CardLastDigits,
		},
		TransactionID: result.TransactionID,
	})
}

func (h *Handlers) ParentPaymentStatus(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "parentID")

	status, err := h.Payments.ParentStatus(r.Context(), parentID)
	if err != nil {
		h.log.InternalError("payments.parent_status: failed", err, "parent_id", parentID)
		writeError(w, http.StatusInternalServerError, "Failed to get payment status")
		return
	}

	writeJSON(w, http.StatusOK, parentPaymentStatusResponse{
		Success:         true,
		PendingPayments: toStatusRowPayloads(status.Pending),
		PaidPayments:    toStatusRowPayloads(status.Paid),
		TotalPending:    len(status.Pending),
		TotalPaid:       len(status.Paid),
	})
}

func (h *Handlers) ParentPaymentHistory(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "parentID")

	limit, err := parseIntParam(r.URL.Query().Get("limit"), 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	rows, err := h.Payments.ParentHistory(r.Context(), parentID, limit)
	if err != nil {
		h.log.InternalError("payments.parent_history: failed", err, "parent_id", parentID)
		writeError(w, http.StatusInternalServerError, "Failed to get payment history")
		return
	}

	payload := make([]paymentHistoryRowPayload, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, paymentHistoryRowPayload{
			ID:             row.ID,
			Amount:         row.Amount,
			Status:         string(row.Status),
			PaymentDate:    row.PaymentDate,
			CardLastDigits: row.CardLastDigits,
			ChildName:      row.ChildName,
			NurseryName:    row.NurseryName,
		})
	}
	writeJSON(w, http.StatusOK, parentPaymentHistoryResponse{Success: true, Payments: payload})
}

func (h *Handlers) OwnerPaymentStats(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	stats, err := h.Payments.OwnerStats(r.Context(), ownerID)
	if err != nil {
		h.log.InternalError("payments.owner_stats: failed", err, "owner_id", ownerID)
		writeError(w, http.StatusInternalServerError, "Failed to get statistics")
		return
	}

	writeJSON(w, http.StatusOK, ownerStatsResponse{
		Success: true,
		Stats: ownerStatsPayload{
			TotalEnrollments:  stats.TotalEnrollments,
			TotalExpected:     stats.TotalExpected,
			TotalReceived:     stats.TotalReceived,
			TotalPending:      stats.TotalPending,
			PaidCount:         stats.PaidCount,
			UnpaidCount:       stats.UnpaidCount,
			PaymentPercentage: stats.PaymentPercentage,
		},
	})
}

func toStatusRowPayloads(rows []paymentdomain.StatusRow) []paymentStatusRowPayload {
	payload := make([]paymentStatusRowPayload, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, paymentStatusRowPayload{
			ID:           row.ID,
			EnrollmentID: row.EnrollmentID,
			Amount:       row.Amount,
			Status:       string(row.Status),
			PaymentDate:  row.PaymentDate,
			ChildName:    row.ChildName,
			NurseryID:    row.NurseryID,
			NurseryName:  row.NurseryName,
		})
	}
	return payload
}
