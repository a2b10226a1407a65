// Package app wires configuration, backends, services and transports together
// and owns their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rentflow/config"
	"rentflow/cron"
	"rentflow/database"
	billRepo "rentflow/database/repository/bill"
	maintenanceRepo "rentflow/database/repository/maintenance"
	notificationRepo "rentflow/database/repository/notification"
	paymentRepo "rentflow/database/repository/payment"
	roomRepo "rentflow/database/repository/room"
	templateRepo "rentflow/database/repository/template"
	userRepo "rentflow/database/repository/user"
	"rentflow/handlers"
	"rentflow/middleware"
	"rentflow/routes"
	"rentflow/services/billing"
	"rentflow/services/maintenance"
	"rentflow/services/notification"
	"rentflow/services/payment"
	"rentflow/services/room"
	"rentflow/services/storage"
	"rentflow/services/tasks"
	"rentflow/services/user"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	healthEvery     = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App holds every long-lived resource of the process.
type App struct {
	config *config.Config
	logger *zap.Logger

	mongo  *mongo.Client
	redis  *redis.Client
	queue  *asynq.Client
	worker *cron.Worker
	health *utils.HealthMonitor
	server *http.Server
}

func New(cfg *config.Config) *App {
	return &App{config: cfg}
}

// Init connects backends and builds the HTTP server and the job worker.
func (a *App) Init(ctx context.Context) error {
	cfg := a.config
	utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	a.logger = utils.GetLogger()

	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	loc := cfg.Location()

	var err error
	a.mongo, err = database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	db := a.mongo.Database(cfg.DatabaseName)

	a.redis, err = utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
	if err != nil {
		return err
	}
	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
	a.queue = asynq.NewClient(redisOpt)

	if err := utils.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	store, err := storage.NewStorageService(cfg.CloudinaryURL)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// repositories.
	bills := billRepo.NewMongoBillRepo(ctx, db)
	payments := paymentRepo.NewMongoPaymentRepo(ctx, db)
	rooms := roomRepo.NewMongoRoomRepo(ctx, db)
	users := userRepo.NewMongoUserRepo(ctx, db)
	notifications := notificationRepo.NewMongoNotificationRepo(ctx, db)
	templates := templateRepo.NewMongoTemplateRepo(ctx, db)
	tickets := maintenanceRepo.NewMongoMaintenanceRepo(ctx, db)
	tx := database.NewTransactor(a.mongo)

	// services.
	notifOpts, mailer, err := a.channels(ctx)
	if err != nil {
		return err
	}
	notifier, err := notification.NewDefaultNotificationService(notifications, users, templates, loc, a.logger, notifOpts...)
	if err != nil {
		return err
	}

	issuer := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	revoked := utils.NewRedisTokenStore(a.redis)
	userService, err := user.NewDefaultUserService(users, issuer, revoked, a.logger)
	if err != nil {
		return err
	}
	if err := userService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	rates := billing.NewRates(cfg.WaterRate, cfg.ElectricityRate, cfg.BillDueDay)
	billingService, err := billing.NewDefaultBillingService(bills, rooms, notifier, rates, loc, a.logger)
	if err != nil {
		return err
	}
	paymentService, err := payment.NewDefaultPaymentService(payment.Deps{
		Payments: payments,
		Bills:    bills,
		Users:    users,
		Rooms:    rooms,
		Storage:  store,
		Notifier: notifier,
		Tx:       tx,
		Location: loc,
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}
	roomService, err := room.NewDefaultRoomService(rooms, users, store, tx, a.logger)
	if err != nil {
		return err
	}
	maintenanceService, err := maintenance.NewDefaultMaintenanceService(tickets, users, notifier, a.logger)
	if err != nil {
		return err
	}

	// jobs.
	jobs := tasks.NewJobs(bills, notifications, rooms, notifier, loc, a.logger)
	a.worker = cron.NewWorker(redisOpt, jobs, mailer, cron.Schedule{
		Reminder: cfg.CronReminder,
		Overdue:  cfg.CronOverdue,
		Cleanup:  cfg.CronCleanup,
	}, loc, a.logger)

	a.health = utils.NewHealthMonitor(a.redis, a.mongo)

	// http.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(utils.RequestLogger(a.logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	hb := &handlers.HandlerBundle{
		Auth:          handlers.NewAuthHandler(userService),
		Bills:         handlers.NewBillHandler(billingService),
		Payments:      handlers.NewPaymentHandler(paymentService),
		Notifications: handlers.NewNotificationHandler(notifier),
		Maintenance:   handlers.NewMaintenanceHandler(maintenanceService),
		Admin:         handlers.NewAdminHandler(roomService, userService, notifier),
	}
	routes.RegisterRoutes(router, hb, middleware.JWTAuthMiddleware(issuer, revoked), a.health)

	a.server = &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// channels builds the optional email and push senders. The returned mailer is
// nil when email is disabled.
func (a *App) channels(ctx context.Context) ([]notification.Option, *notification.Mailer, error) {
	cfg := a.config
	var opts []notification.Option
	var mailer *notification.Mailer

	if cfg.EmailEnabled {
		if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
			return nil, nil, errors.New("EMAIL_ENABLED requires SMTP_HOST and SMTP_FROM")
		}
		mailer = notification.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
		opts = append(opts, notification.WithEmail(tasks.NewEmailQueue(a.queue)))
	} else {
		a.logger.Info("email channel disabled")
	}

	if cfg.FirebaseCredentials != "" {
		client, err := utils.NewFCMClient(ctx, cfg.FirebaseCredentials)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, notification.WithPush(notification.NewFCMSender(client)))
	} else {
		a.logger.Info("push channel disabled")
	}
	return opts, mailer, nil
}

// Run serves HTTP and processes jobs until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	a.health.Start(ctx, healthEvery)

	if err := a.worker.Start(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// Shutdown stops accepting requests, drains the worker and closes backends.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if a.worker != nil {
		a.worker.Shutdown()
	}
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.logger != nil {
		a.logger.Info("server stopped gracefully")
		_ = a.logger.Sync()
	}
	return errors.Join(errs...)
}
