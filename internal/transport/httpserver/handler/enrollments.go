package handler

import (
	"errors"
	"net/http"
	"time"

	enrollmentdomain "nursery-app-go/internal/domain/enrollment"
	"nursery-app-go/internal/metrics"
	"github.com/go-chi/chi/v5"
)

type createEnrollmentRequest struct {
	ChildName   string `json:"childName" validate:"required"`
	BirthDate   string `json:"birthDate" validate:"required"`
	NurseryID   string `json:"nurseryId" validate:"required,uuid"`
	StartDate   string `json:"startDate" validate:"required"`
	ParentID    string `json:"parentId" validate:"omitempty,uuid"`
	ParentName  string `json:"parentName" validate:"required_without=ParentID"`
	ParentPhone string `json:"parentPhone"`
	Notes       string `json:"notes"`
}

type patchStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type createdEnrollmentPayload struct {
	ID        string    `json:"id"`
	ChildID   string    `json:"childId"`
	ParentID  string    `json:"parentId"`
	NurseryID string    `json:"nurseryId"`
	CreatedAt time.Time `json:"createdAt"`
}

type createEnrollmentResponse struct {
	Success    bool                     `json:"success"`
	Enrollment createdEnrollmentPayload `json:"enrollment"`
}

type patchedEnrollmentPayload struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type patchStatusResponse struct {
	Success    bool                     `json:"success"`
	Enrollment patchedEnrollmentPayload `json:"enrollment"`
}

type childPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	Age       int    `json:"age"`
}

type parentPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type nurseryPayload struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	PostalCode     string  `json:"postalCode"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Hours          string  `json:"hours"`
	Price          float64 `json:"price"`
	TotalSpots     int     `json:"totalSpots"`
	AvailableSpots int     `json:"availableSpots"`
	AgeRange       string  `json:"ageRange"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"reviewCount"`
	PhotoURL       string  `json:"photoUrl"`
}

type enrollmentSummaryPayload struct {
	EnrollmentID string          `json:"enrollmentId"`
	StartDate    string          `json:"startDate"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	Child        childPayload    `json:"child"`
	Parent       parentPayload   `json:"parent"`
	Nursery      *nurseryPayload `json:"nursery,omitempty"`
}

type enrollmentListResponse struct {
	Success     bool                       `json:"success"`
	Count       int                        `json:"count"`
	Enrollments []enrollmentSummaryPayload `json:"enrollments"`
}

func (h *Handlers) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var req createEnrollmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	birthDate, err := parseDateRequired(req.BirthDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid birthDate, expected YYYY-MM-DD")
		return
	}
	startDate, err := parseDateRequired(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD")
		return
	}

	result, err := h.Enrollments.Create(r.Context(), enrollmentdomain.CreateInput{
		ChildName:   req.ChildName,
		BirthDate:   birthDate,
		NurseryID:   req.NurseryID,
		StartDate:   startDate,
		ParentID:    req.ParentID,
		ParentName:  req.ParentName,
		ParentPhone: req.ParentPhone,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, enrollmentdomain.ErrNurseryNotFound) {
			h.log.BusinessError("enrollments.create: nursery not found", err, "nursery_id", req.NurseryID)
			writeError(w, http.StatusNotFound, "Nursery not found")
			return
		}
		h.log.InternalError("enrollments.create: failed", err, "nursery_id", req.NurseryID)
		writeError(w, http.StatusInternalServerError, "Failed to create enrollment")
		return
	}

	metrics.EnrollmentsCreated.Inc()
	writeJSON(w, http.StatusCreated, createEnrollmentResponse{
		Success: true,
		Enrollment: createdEnrollmentPayload{
			ID:        result.EnrollmentID,
			ChildID:   result.ChildID,
			ParentID:  result.ParentID,
			NurseryID: result.NurseryID,
			CreatedAt: result.CreatedAt,
		},
	})
}

func (h *Handlers) AcceptEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID := chi.URLParam(r, "enrollmentID")

	if err := h.Enrollments.Accept(r.Context(), enrollmentID); err != nil {
		switch {
		case errors.Is(err, enrollmentdomain.ErrEnrollmentNotFound):
			writeError(w, http.StatusNotFound, "Enrollment not found")
		case errors.Is(err, enrollmentdomain.ErrEnrollmentNotPending):
			h.log.BusinessError("enrollments.accept: not pending", err, "enrollment_id", enrollmentID)
			writeError(w, http.StatusBadRequest, "Enrollment is not pending")
		default:
			h.log.InternalError("enrollments.accept: failed", err, "enrollment_id", enrollmentID)
			writeError(w, http.StatusInternalServerError, "Failed to accept enrollment")
		}
		return
	}

	metrics.EnrollmentTransitions.WithLabelValues("accept").Inc()
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Enrollment accepted successfully"})
}

func (h *Handlers) RejectEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID := chi.URLParam(r, "enrollmentID")

	if err := h.Enrollments.Cancel(r.Context(), enrollmentID); err != nil {
		switch {
		case errors.Is(err, enrollmentdomain.ErrEnrollmentNotFound):
			writeError(w, http.StatusNotFound, "Enrollment not found")
		case errors.Is(err, enrollmentdomain.ErrEnrollmentNotCancellable):
			h.log.BusinessError("enrollments.reject: not cancellable", err, "enrollment_id", enrollmentID)
			writeError(w, http.StatusBadRequest, "Cannot cancel this enrollment status")
		default:
			h.log.InternalError("enrollments.reject: failed", err, "enrollment_id", enrollmentID)
			writeError(w, http.StatusInternalServerError, "Failed to reject enrollment")
		}
		return
	}

	metrics.EnrollmentTransitions.WithLabelValues("cancel").Inc()
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Enrollment cancelled successfully"})
}

func (h *Handlers) PatchEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	enrollmentID := chi.URLParam(r, "enrollmentID")

	var req patchStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Enrollments.SetStatus(r.Context(), enrollmentID, enrollmentdomain.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, enrollmentdomain.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status. Must be one of: pending, active, completed, cancelled")
		case errors.Is(err, enrollmentdomain.ErrEnrollmentNotFound):
			writeError(w, http.StatusNotFound, "Enrollment not found")
		default:
			h.log.InternalError("enrollments.patch_status: failed", err, "enrollment_id", enrollmentID)
			writeError(w, http.StatusInternalServerError, "Failed to update enrollment status")
		}
		return
	}

	metrics.EnrollmentTransitions.WithLabelValues("patch_" + req.Status).Inc()
	writeJSON(w, http.StatusOK, patchStatusResponse{
		Success: true,
		Enrollment: patchedEnrollmentPayload{
			ID:        updated.ID,
			Status:    string(updated.Status),
			UpdatedAt: updated.UpdatedAt,
		},
	})
}

func (h *Handlers) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Enrollments.ListAll(r.Context())
	if err != nil {
		h.log.InternalError("enrollments.list: failed", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch enrollments")
		return
	}
	writeEnrollmentList(w, summaries)
}

func (h *Handlers) ListEnrollmentsByNursery(w http.ResponseWriter, r *http.Request) {
	nurseryID := chi.URLParam(r, "nurseryID")

	summaries, err := h.Enrollments.ListByNursery(r.Context(), nurseryID)
	if err != nil {
		h.log.InternalError("enrollments.list_by_nursery: failed", err, "nursery_id", nurseryID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch enrollments")
		return
	}
	writeEnrollmentList(w, summaries)
}

func (h *Handlers) ListEnrollmentsByParent(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "parentID")

	summaries, err := h.Enrollments.ListByParent(r.Context(), parentID)
	if err != nil {
		h.log.InternalError("enrollments.list_by_parent: failed", err, "parent_id", parentID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch parent enrollments")
		return
	}
	writeEnrollmentList(w, summaries)
}

func writeEnrollmentList(w http.ResponseWriter, summaries []enrollmentdomain.Summary) {
	payload := make([]enrollmentSummaryPayload, 0, len(summaries))
	for _, summary := range summaries {
		payload = append(payload, toEnrollmentSummaryPayload(summary))
	}
	writeJSON(w, http.StatusOK, enrollmentListResponse{
		Success:     true,
		Count:       len(payload),
		Enrollments: payload,
	})
}

func toEnrollmentSummaryPayload(summary enrollmentdomain.Summary) enrollmentSummaryPayload {
	result := enrollmentSummaryPayload{
		EnrollmentID: summary.ID,
		StartDate:    summary.StartDate.Format("2006-01-02"),
		Status:       string(summary.Status),
		CreatedAt:    summary.CreatedAt,
		Child: childPayload{
			ID:        summary.Child.ID,
			Name:      summary.Child.Name,
			BirthDate: summary.Child.BirthDate.Format("2006-01-02"),
			Age:       summary.Child.Age,
		},
		Parent: parentPayload{
			ID:    summary.Parent.ID,
			Name:  summary.Parent.Name,
			Phone: summary.Parent.Phone,
			Email: summary.Parent.Email,
		},
	}
	if summary.Nursery != nil {
		result.Nursery = &nurseryPayload{
			ID:             summary.Nursery.ID,
			Name:           summary.Nursery.Name,
			Description:    summary.Nursery.Description,
			Address:        summary.Nursery.Address,
			City:           summary.Nursery.City,
			PostalCode:     summary.Nursery.PostalCode,
			Phone:          summary.Nursery.Phone,
			Email:          summary.Nursery.Email,
			Hours:          summary.Nursery.Hours,
			Price:          summary.Nursery.PricePerMonth,
			TotalSpots:     summary.Nursery.TotalSpots,
			AvailableSpots: summary.Nursery.AvailableSpots,
			AgeRange:       summary.Nursery.AgeRange,
			Rating:         summary.Nursery.Rating,
			ReviewCount:    summary.Nursery.ReviewCount,
			PhotoURL:       summary.Nursery.PhotoURL,
		}
	}
	return result
}
