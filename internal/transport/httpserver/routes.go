package httpserver

import (
	"net/http"
	"time"

	"nursery-app-go/internal/config"
	"nursery-app-go/internal/transport/httpserver/handler"
	"nursery-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/enrollments", func(r chi.Router) {
			r.Post("/", handlers.CreateEnrollment)
			r.Get("/", handlers.ListEnrollments)
			r.Get("/nursery/{nurseryID}", handlers.ListEnrollmentsByNursery)
			r.Get("/parent/{parentID}", handlers.ListEnrollmentsByParent)
			r.Post("/{enrollmentID}/accept", handlers.AcceptEnrollment)
			r.Post("/{enrollmentID}/reject", handlers.RejectEnrollment)
			r.Patch("/{enrollmentID}/status", handlers.PatchEnrollmentStatus)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/sync", handlers.SyncPayments)
			r.Post("/process", handlers.ProcessPayment)
			r.Get("/parent/{parentID}/status", handlers.ParentPaymentStatus)
			r.Get("/parent/{parentID}/history", handlers.ParentPaymentHistory)
			r.Get("/owner/{ownerID}/stats", handlers.OwnerPaymentStats)
		})

		r.Get("/nurseries/{nurseryID}/availability", handlers.NurseryAvailability)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/{userID}", handlers.ListNotifications)
			r.Get("/{userID}/unread-count", handlers.UnreadNotificationCount)
			r.Post("/{notificationID}/read", handlers.MarkNotificationRead)
			r.Post("/user/{userID}/read-all", handlers.MarkAllNotificationsRead)
			r.Delete("/{notificationID}", handlers.DeleteNotification)
		})
	})

	return r
}
