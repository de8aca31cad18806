package app

import (
	"net/http"

	"nursery-app-go/internal/config"
	"nursery-app-go/internal/db"
	enrollmentdomain "nursery-app-go/internal/domain/enrollment"
	"nursery-app-go/internal/domain/identity"
	notificationdomain "nursery-app-go/internal/domain/notification"
	nurserydomain "nursery-app-go/internal/domain/nursery"
	paymentdomain "nursery-app-go/internal/domain/payment"
	enrollmentrepo "nursery-app-go/internal/repository/postgres/enrollment"
	notificationrepo "nursery-app-go/internal/repository/postgres/notification"
	nurseryrepo "nursery-app-go/internal/repository/postgres/nursery"
	paymentrepo "nursery-app-go/internal/repository/postgres/payment"
	"nursery-app-go/internal/transport/httpserver"
	"nursery-app-go/internal/transport/httpserver/handler"
	"nursery-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn, cfg.MigrationsDir, log); err != nil {
		return nil, err
	}

	enrollments := enrollmentdomain.NewService(
		enrollmentrepo.NewPostgres(dbConn),
		identity.NewProvisioner(),
		log,
	)
	payments := paymentdomain.NewService(paymentrepo.NewPostgres(dbConn))
	notifications := notificationdomain.NewService(notificationrepo.NewPostgres(dbConn))
	nurseries := nurserydomain.NewService(nurseryrepo.NewPostgres(dbConn))

	handlers := handler.New(enrollments, payments, notifications, nurseries, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
