package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/analysis"
	httpapi "github.com/aussiebroadwan/cnap/internal/cnap/http"
	"github.com/aussiebroadwan/cnap/internal/cnap/mailbox"
	"github.com/aussiebroadwan/cnap/internal/cnap/metrics"
	"github.com/aussiebroadwan/cnap/internal/cnap/notify"
	"github.com/aussiebroadwan/cnap/internal/cnap/service"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/internal/cnap/store/drivers/postgres"
	"github.com/aussiebroadwan/cnap/internal/cnap/store/drivers/sqlite"
	"github.com/aussiebroadwan/cnap/pkg/jwtx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application owns the facility service and everything it runs: the HTTP
// API, the mail poller and the background approval jobs.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	mailbox  mailbox.Mailbox
	metrics  *metrics.Metrics
	notifier *notify.Notifier
	verifier *jwtx.HS256

	// Services
	accountService  *service.AccountService
	pipelineService *service.PipelineService
	recordsService  *service.RecordsService
	poller          *service.Poller
	dispatcher      *service.AsyncDispatcher

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New builds an Application from cfg. Nothing runs until Run.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "cnap",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics:    metrics.New(),
		dispatcher: &service.AsyncDispatcher{},
	}

	verifier, err := jwtx.NewHS256([]byte(cfg.StaffTokenSecret), cfg.StaffTokenIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize staff token verifier: %w", err)
	}
	app.verifier = verifier

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initMailbox(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the poller and the HTTP server and blocks until a shutdown
// signal or a server failure.
func (app *Application) Run() error {
	app.poller.Start()

	app.logger.Info("cnap service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"mailbox", app.mailbox.Server(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting requests, lets the current poll run and any
// dispatched approvals finish, then closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down cnap service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.poller.Stop()

	if err := app.dispatcher.Wait(ctx); err != nil {
		app.logger.Warn("approval jobs still running at shutdown", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("cnap service stopped")
	return nil
}

// Handler exposes the routed API, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Store exposes the open store, mainly for in-process tests.
func (app *Application) Store() store.Store { return app.db }

// Poller exposes the mail poller so tests can drive single runs.
func (app *Application) Poller() *service.Poller { return app.poller }

// initDatabase opens the configured driver and applies migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initMailbox(ctx context.Context) error {
	var (
		mb  mailbox.Mailbox
		err error
	)
	switch app.cfg.MailboxDriver {
	case "s3":
		mb, err = mailbox.NewS3Mailbox(ctx, mailbox.S3Config{
			Bucket:          app.cfg.MailboxS3Bucket,
			Prefix:          app.cfg.MailboxS3Prefix,
			Folder:          app.cfg.MailFolder,
			Region:          app.cfg.MailboxS3Region,
			Endpoint:        app.cfg.MailboxS3Endpoint,
			PathStyle:       app.cfg.MailboxS3Path,
			AccessKeyID:     app.cfg.MailboxS3KeyID,
			SecretAccessKey: app.cfg.MailboxS3SecretKey,
		})
	default:
		mb, err = mailbox.NewDirMailbox(app.cfg.MailboxDir, app.cfg.MailFolder)
	}
	if err != nil {
		return fmt.Errorf("failed to open mailbox: %w", err)
	}
	app.mailbox = mb
	return nil
}

func (app *Application) mailer() notify.Mailer {
	if app.cfg.SMTPAddr == "" {
		app.logger.Warn("CNAP_SMTP_ADDR not set, outbound mail is logged only")
		return notify.LogMailer{}
	}
	return notify.NewSMTPMailer(notify.SMTPConfig{
		Addr:     app.cfg.SMTPAddr,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.MailFrom,
	})
}

// initServices wires the workflows to their collaborators.
func (app *Application) initServices() {
	app.notifier = notify.NewNotifier(app.mailer(), notify.Config{
		From:          app.cfg.MailFrom,
		Facility:      app.cfg.FacilityName,
		StaffEmails:   app.cfg.StaffEmails,
		TestAddresses: app.cfg.TestAddresses,
	})

	app.accountService = &service.AccountService{
		Store:    app.db,
		Notifier: app.notifier,
		Links:    notify.Links{BaseURL: app.cfg.PublicBaseURL},
		Metrics:  app.metrics,
	}
	app.pipelineService = &service.PipelineService{
		Store:    app.db,
		Notifier: app.notifier,
		Projects: analysis.NewClient(app.cfg.AnalysisAPIURL, app.cfg.AnalysisAPIToken),
		Metrics:  app.metrics,
	}
	app.recordsService = &service.RecordsService{Store: app.db}

	app.poller = &service.Poller{
		Store:     app.db,
		Mailbox:   app.mailbox,
		Accounts:  app.accountService,
		Pipelines: app.pipelineService,
		Notifier:  app.notifier,
		Metrics:   app.metrics,
		Logger:    app.logger,
		AccountQuery: mailbox.Query{
			To:      app.cfg.FacilityAddress,
			Subject: app.cfg.AccountSubject,
		},
		PipelineQuery: mailbox.Query{
			To:      app.cfg.FacilityAddress,
			Subject: app.cfg.PipelineSubject,
		},
		Interval: app.cfg.PollInterval,
		Workers:  app.cfg.PollWorkers,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)

	router.AccountService = app.accountService
	router.RecordsService = app.recordsService
	router.Dispatcher = app.dispatcher
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
