package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/mfgerp/backend/internal/application/report"
	"github.com/mfgerp/backend/internal/infrastructure/cache"
	"github.com/mfgerp/backend/internal/infrastructure/config"
	"github.com/mfgerp/backend/internal/infrastructure/logger"
	"github.com/mfgerp/backend/internal/infrastructure/persistence"
	"github.com/mfgerp/backend/internal/infrastructure/printing"
	"github.com/mfgerp/backend/internal/infrastructure/storage"
	"github.com/mfgerp/backend/internal/infrastructure/telemetry"
	"github.com/mfgerp/backend/internal/interfaces/http/handler"
	"github.com/mfgerp/backend/internal/interfaces/http/middleware"
	"github.com/mfgerp/backend/internal/interfaces/http/router"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	_ "github.com/mfgerp/backend/docs" // registers the OpenAPI document
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "balance-sheet:", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logCfg := logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		Service:     cfg.App.Name,
		Environment: cfg.App.Env,
	}

	// Telemetry comes first so the final logger can tee into the OTLP log bridge
	bootLog := logger.New(logCfg)
	obs, err := setupTelemetry(context.Background(), cfg.Telemetry, cfg.App.Env, bootLog)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	log := logger.New(logCfg, obs.logs.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	defer func() {
		_ = log.Sync()
	}()
	defer func() {
		// Flush telemetry last, after the server and database are gone
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = obs.shutdown(ctx, log)
	}()

	log.Info("Starting balance sheet service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("inventory_failure_policy", cfg.Report.InventoryFailurePolicy),
		zap.Bool("cache_enabled", cfg.Report.CacheEnabled),
	)

	// Database with zap-backed GORM logger and the tracing plugin
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.DBTraceEnabled {
		tracingCfg := telemetry.DefaultDBTracingConfig()
		tracingCfg.Enabled = true
		tracingCfg.LogFullSQL = cfg.Telemetry.DBLogFullSQL
		tracingCfg.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
		if err := db.Use(telemetry.NewDBTracingPlugin(tracingCfg, log)); err != nil {
			return fmt.Errorf("install database tracing: %w", err)
		}
	}
	log.Info("Database connected successfully")

	// Repositories
	stockRepo := persistence.NewGormStockRecordRepository(db.DB)
	accountRepo := persistence.NewGormTreasuryAccountRepository(db.DB)
	partyRepo := persistence.NewGormPartyRepository(db.DB)

	// Balance sheet service
	serviceOpts := []reportapp.BalanceSheetOption{
		reportapp.WithInventoryFailurePolicy(reportapp.InventoryFailurePolicy(cfg.Report.InventoryFailurePolicy)),
		reportapp.WithSourceTimeout(cfg.Report.SourceTimeout),
	}

	reportMetrics, err := telemetry.NewReportMetrics(obs.meter.Meter("balance_sheet"))
	if err != nil {
		log.Warn("Report metrics unavailable", zap.Error(err))
	} else {
		serviceOpts = append(serviceOpts, reportapp.WithMetricsRecorder(reportMetrics))
	}

	if cfg.Report.CacheEnabled {
		factory := cache.NewSnapshotCacheFactory(cfg.Redis, cache.WithLogger(log))
		snapshotCache, err := factory.CreateCache(cfg.Report.CacheBackend)
		if err != nil {
			return fmt.Errorf("create balance sheet cache: %w", err)
		}
		defer func() {
			if err := snapshotCache.Close(); err != nil {
				log.Error("Error closing balance sheet cache", zap.Error(err))
			}
		}()
		serviceOpts = append(serviceOpts, reportapp.WithSnapshotCache(snapshotCache, cfg.Report.CacheTTL))
	}

	balanceSheetService := reportapp.NewBalanceSheetService(stockRepo, accountRepo, partyRepo, log, serviceOpts...)

	// Printable and PDF renditions of the balance sheet
	printLocation, err := time.LoadLocation(cfg.Print.TimeZone)
	if err != nil {
		return fmt.Errorf("load print timezone: %w", err)
	}
	sheetTemplate := printing.NewBalanceSheetTemplate(
		printing.WithLanguage(language.Make(cfg.Print.Language)),
		printing.WithCurrencySymbol(cfg.Print.CurrencySymbol),
		printing.WithLocation(printLocation),
		printing.WithCompanyName(cfg.Print.CompanyName),
	)
	var pdfRenderer printing.PDFRenderer
	if cfg.Print.PDFEnabled {
		chrome, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Print.RenderTimeout,
			RemoteURL:      cfg.Print.ChromeRemoteURL,
			ExecPath:       cfg.Print.ChromeExecPath,
			NoSandbox:      cfg.Print.NoSandbox,
			Logger:         log,
		})
		if err != nil {
			return fmt.Errorf("create PDF renderer: %w", err)
		}
		defer func() {
			if err := chrome.Close(); err != nil {
				log.Error("Error closing PDF renderer", zap.Error(err))
			}
		}()
		pdfRenderer = chrome
		log.Info("PDF export enabled", zap.Bool("remote_chrome", cfg.Print.ChromeRemoteURL != ""))
	}
	exporterOpts := []reportapp.ExporterOption{reportapp.WithDocumentLocation(printLocation)}
	if pdfRenderer != nil && cfg.Archive.Enabled {
		archive, err := storage.NewS3DocumentArchive(&cfg.Archive, storage.WithLogger(log))
		if err != nil {
			return fmt.Errorf("create document archive: %w", err)
		}
		bucketCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = archive.EnsureBucket(bucketCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("prepare archive bucket: %w", err)
		}
		exporterOpts = append(exporterOpts, reportapp.WithDocumentArchive(archive))
		log.Info("Balance sheet PDF archive enabled", zap.String("bucket", archive.Bucket()))
	}
	exporter := reportapp.NewBalanceSheetExporter(balanceSheetService, sheetTemplate, pdfRenderer, log, exporterOpts...)

	// HTTP handlers
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql.DB: %w", err)
	}
	healthHandler := handler.NewHealthHandler(sqlDB, telemetry.ServiceVersion)
	balanceSheetHandler := handler.NewBalanceSheetHandler(balanceSheetService)
	exportHandler := handler.NewBalanceSheetExportHandler(exporter)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order:
	// 1. RequestID - generate/propagate request ID
	// 2. Tracing - server span per request
	// 3. Logger - access log and request-scoped logger
	// 4. Recovery - catch panics
	// 5. CORS - cross-origin requests
	// 6. HTTPMetrics - request count, latency, in-flight
	engine.Use(middleware.RequestID())
	tracingCfg := middleware.DefaultTracingConfig()
	tracingCfg.Enabled = cfg.Telemetry.Enabled
	tracingCfg.ServiceName = cfg.Telemetry.ServiceName
	engine.Use(middleware.TracingWithConfig(tracingCfg))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: obs.meter,
		Enabled:       cfg.Telemetry.MetricsEnabled,
	}))

	// Health check endpoint (outside API versioning and tenant resolution)
	engine.GET("/health", healthHandler.Check)

	// Swagger documentation, hidden or IP-restricted per configuration
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// API routes resolve the tenant, then tag spans and profiles with it
	tenantCfg := middleware.DefaultTenantConfig()
	tenantCfg.DefaultTenantID = cfg.App.DefaultTenantID
	tenantCfg.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(
		middleware.TenantMiddlewareWithConfig(tenantCfg),
		middleware.TracingAttributeInjector(),
		middleware.ProfilingWithConfig(middleware.ProfilingConfig{Enabled: cfg.Telemetry.ProfilingEnabled}),
	)
	r.Register(router.NewReportRoutes(balanceSheetHandler, exportHandler))
	r.Setup()
	for _, rt := range r.Routes() {
		log.Debug("Route registered", zap.String("method", rt.Method), zap.String("path", rt.Path))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("Shutting down server...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}
