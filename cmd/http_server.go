package cmd

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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/attendance-management/internal/attendance/postgres"
	"github.com/frahmantamala/attendance-management/internal/attendance/report"
	reportPostgres "github.com/frahmantamala/attendance-management/internal/attendance/report/postgres"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/leave"
	leavePostgres "github.com/frahmantamala/attendance-management/internal/leave/postgres"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/internal/transport/metrics"
	"github.com/frahmantamala/attendance-management/internal/transport/rest"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/frahmantamala/attendance-management/internal/user"
	userPostgres "github.com/frahmantamala/attendance-management/internal/user/postgres"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Bus    *events.EventBus
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := initializeDependencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.DB.Close()

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		deps.Logger.Info("starting HTTP server", "address", addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		deps.Logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		deps.Logger.Error("server shutdown error", "error", err)
	}
	if err := deps.Bus.Drain(shutdownCtx); err != nil {
		deps.Logger.Warn("event handlers still running at shutdown", "error", err)
	}

	deps.Logger.Info("server stopped")
	return nil
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	if _, err := swagger.Load(ctx); err != nil {
		return nil, err
	}

	location, err := cfg.Attendance.Location()
	if err != nil {
		return nil, err
	}
	cutoff, err := cfg.Attendance.Cutoff()
	if err != nil {
		return nil, err
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gdb, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	bus := events.NewEventBus(lg)
	events.RegisterAuditLog(bus, lg)

	var m *metrics.Metrics
	if cfg.Observability.Metrics.Enabled {
		m = metrics.New()
		m.Subscribe(bus)
	}

	hasher := auth.NewBcryptHasher(cfg.Security.BCryptCost)
	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.JWTSecret,
		cfg.Security.JWTRefreshSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	userRepo := userPostgres.NewUserRepository(gdb)
	userService := user.NewService(userRepo, hasher, cfg.Security.AllowAdminSignup, lg)
	authService := auth.NewService(userRepo, tokens, hasher, lg)
	attendanceService := attendance.NewService(
		attendancePostgres.NewAttendanceRepository(gdb),
		attendance.NewSystemClock(location),
		attendance.Policy{Location: location, Cutoff: cutoff},
		bus,
		lg,
	)
	reportService := report.NewService(reportPostgres.NewReportRepository(db), location, lg)
	leaveService := leave.NewService(
		leavePostgres.NewLeaveRepository(gdb),
		leave.ListOrder(cfg.Leave.ListOrder),
		bus,
		lg,
	)

	base := transport.NewBaseHandler(lg)
	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		Logger:            lg,
		DB:                db,
		AuthHandler:       auth.NewHandler(base, authService),
		RBAC:              auth.NewRBACAuthorization(base, lg),
		UserHandler:       user.NewHandler(base, userService),
		AttendanceHandler: attendance.NewHandler(base, attendanceService),
		ReportHandler:     report.NewHandler(base, reportService),
		LeaveHandler:      leave.NewHandler(base, leaveService),
		Metrics:           m,
		MetricsPath:       cfg.Observability.Metrics.Path,
		AllowedOrigins:    cfg.Server.Origins(),
		LoginRateLimit:    cfg.Server.LoginRateLimit,
		Development:       os.Getenv("APP_ENV") != "production",
	})

	lg.Info("dependencies initialized",
		"timezone", location.String(),
		"on_time_cutoff", cfg.Attendance.OnTimeCutoff,
		"leave_list_order", cfg.Leave.ListOrder,
		"metrics_enabled", cfg.Observability.Metrics.Enabled)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Gorm:   gdb,
		Bus:    bus,
		Router: router,
		Logger: lg,
	}, nil
}

// initDB opens the single connection pool shared by sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// initGorm layers gorm over the existing pool. TranslateError maps unique
// violations to gorm.ErrDuplicatedKey for the repositories.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return gdb, nil
}
