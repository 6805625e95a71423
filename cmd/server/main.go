package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	bookingapp "github.com/smbc/backend/internal/application/booking"
	ledgerapp "github.com/smbc/backend/internal/application/ledger"
	reportapp "github.com/smbc/backend/internal/application/report"
	"github.com/smbc/backend/internal/infrastructure/auth"
	"github.com/smbc/backend/internal/infrastructure/cache"
	"github.com/smbc/backend/internal/infrastructure/config"
	"github.com/smbc/backend/internal/infrastructure/export"
	"github.com/smbc/backend/internal/infrastructure/logger"
	"github.com/smbc/backend/internal/infrastructure/migration"
	"github.com/smbc/backend/internal/infrastructure/persistence"
	"github.com/smbc/backend/internal/infrastructure/printing"
	"github.com/smbc/backend/internal/infrastructure/scheduler"
	"github.com/smbc/backend/internal/infrastructure/storage"
	"github.com/smbc/backend/internal/infrastructure/telemetry"
	"github.com/smbc/backend/internal/interfaces/http/handler"
	"github.com/smbc/backend/internal/interfaces/http/middleware"
	"github.com/smbc/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Ventures Backend API
//	@version		1.0
//	@description	Bookkeeping API for the construction, carenderia and catering ventures

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	if err := config.LoadEnvFiles(); err != nil {
		panic("Failed to load .env: " + err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ventures backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("driver", cfg.Database.Driver),
		zap.String("timezone", cfg.App.Location().String()),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := migrateSchema(ctx, cfg, db, log); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled: true,
			DBName:  cfg.Database.DBName,
		}, log)
		if err := plugin.Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	idempotency := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	defer func() {
		if err := idempotency.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// "today" follows the business timezone, not the host's
	loc := cfg.App.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	// Repositories
	scope := persistence.NewGormTransactionScope(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	wageRepo := persistence.NewGormWageRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	invoiceSeq := persistence.NewGormInvoiceSequence(db.DB)

	// Application services
	recorder := ledgerapp.NewRecordingService(scope.Ledger(), entryRepo, projectRepo, invoiceSeq, log)
	recorder.SetClock(clock)
	projects := ledgerapp.NewProjectService(projectRepo, log)
	activities := ledgerapp.NewActivityService(persistence.NewGormActivityRepository(db.DB), projectRepo, log)

	bookings := bookingapp.NewBookingService(scope.Booking(), bookingRepo, entryRepo, log)
	bookings.SetClock(clock)

	reports := reportapp.NewService(entryRepo, wageRepo, projectRepo, log)
	reports.SetClock(clock)
	reports.SetSpreadsheetWriter(export.NewXLSXWriter(cfg.Report.CompanyName))

	chrome := printing.NewChromedpRenderer(printing.ChromedpConfig{
		DefaultTimeout: cfg.Report.RenderTimeout,
		RemoteURL:      cfg.Report.ChromeURL,
		NoSandbox:      cfg.App.IsProduction(),
		Logger:         log,
	})
	defer func() {
		if err := chrome.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()
	pdf, err := printing.NewReportRenderer(chrome, printing.CompanyInfo{
		Name:    cfg.Report.CompanyName,
		Address: cfg.Report.CompanyAddress,
	}, cfg.Report.RenderTimeout, loc)
	if err != nil {
		log.Fatal("Failed to load report templates", zap.Error(err))
	}
	reports.SetPDFRenderer(pdf)

	if cfg.Archive.Enabled {
		archiver, err := storage.NewS3Archiver(ctx, &cfg.Archive, log)
		if err != nil {
			log.Fatal("Failed to initialize report archive", zap.Error(err))
		}
		reports.SetArchiver(archiver)
		log.Info("Report archiving enabled", zap.String("bucket", archiver.Bucket()))

		monthEndCfg := scheduler.DefaultMonthEndConfig(loc)
		monthEndCfg.Hour = cfg.Archive.MonthEndHour
		monthEnd, err := scheduler.NewMonthEndArchiver(monthEndCfg, reports, log)
		if err != nil {
			log.Fatal("Failed to create month-end archiver", zap.Error(err))
		}
		if err := monthEnd.Start(ctx); err != nil {
			log.Fatal("Failed to start month-end archiver", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := monthEnd.Stop(stopCtx); err != nil {
				log.Warn("Month-end archiver did not stop cleanly", zap.Error(err))
			}
		}()
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := router.New(router.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		CORS: middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		},
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}, router.Deps{
		Logger:      log,
		Tokens:      auth.NewJWTService(cfg.JWT),
		Idempotency: idempotency,
	}, router.Handlers{
		System:   handler.NewSystemHandler(cfg.App.Name, db),
		Ledger:   handler.NewLedgerHandler(recorder, projects),
		Booking:  handler.NewBookingHandler(bookings),
		Report:   handler.NewReportHandler(reports),
		Activity: handler.NewActivityHandler(activities),
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// migrateSchema brings the schema up to date: sqlite from the models,
// PostgreSQL from the embedded SQL migrations
func migrateSchema(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if cfg.Database.Driver == config.DriverSQLite {
		return db.AutoMigrate(ctx)
	}

	m, err := migration.NewFromURL(cfg.Database.DSN(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()
	return m.Up()
}
