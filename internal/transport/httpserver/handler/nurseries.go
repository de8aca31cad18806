package handler

import (
	"errors"
	"net/http"

	nurserydomain "nursery-app-go/internal/domain/nursery"
	"github.com/go-chi/chi/v5"
)

type availabilityPayload struct {
	NurseryID      string   `json:"nurseryId"`
	TotalSpots     int      `json:"totalSpots"`
	AvailableSpots int      `json:"availableSpots"`
	EnrolledCount  int      `json:"enrolledCount"`
	PricePerMonth  *float64 `json:"pricePerMonth"`
}

type availabilityResponse struct {
	Success      bool                `json:"success"`
	Availability availabilityPayload `json:"availability"`
}

func (h *Handlers) NurseryAvailability(w http.ResponseWriter, r *http.Request) {
	nurseryID := chi.URLParam(r, "nurseryID")

	availability, err := h.Nurseries.Availability(r.Context(), nurseryID)
	if err != nil {
		if errors.Is(err, nurserydomain.ErrNurseryNotFound) {
			writeError(w, http.StatusNotFound, "Nursery not found")
			return
		}
		h.log.InternalError("nurseries.availability: failed", err, "nursery_id", nurseryID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch availability")
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{
		Success: true,
		Availability: availabilityPayload{
			NurseryID:      availability.NurseryID,
			TotalSpots:     availability.TotalSpots,
			AvailableSpots: availability.AvailableSpots,
			EnrolledCount:  availability.EnrolledCount,
			PricePerMonth:  availability.PricePerMonth,
		},
	})
}
