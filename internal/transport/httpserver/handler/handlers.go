package handler

import (
	"net/http"

	enrollmentdomain "nursery-app-go/internal/domain/enrollment"
	notificationdomain "nursery-app-go/internal/domain/notification"
	nurserydomain "nursery-app-go/internal/domain/nursery"
	paymentdomain "nursery-app-go/internal/domain/payment"
	"nursery-app-go/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	Enrollments   *enrollmentdomain.Service
	Payments      *paymentdomain.Service
	Notifications *notificationdomain.Service
	Nurseries     *nurserydomain.Service
	validate      *validator.Validate
	log           logger.Logger
}

func New(
	enrollments *enrollmentdomain.Service,
	payments *paymentdomain.Service,
	notifications *notificationdomain.Service,
	nurseries *nurserydomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Enrollments:   enrollments,
		Payments:      payments,
		Notifications: notifications,
		Nurseries:     nurseries,
		validate:      validator.New(),
		log:           log,
	}
}

type healthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Success: true, Status: "ok"})
}
