package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	"github.com/bizbooks/gl_engine/internal/core/services"
	"github.com/bizbooks/gl_engine/internal/dto"
	"github.com/bizbooks/gl_engine/internal/platform/config"
	"github.com/bizbooks/gl_engine/internal/platform/logging"
	"github.com/bizbooks/gl_engine/internal/repositories/database/pgsql"
	"github.com/bizbooks/gl_engine/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// period_close is the operational entry point for period lifecycle actions:
// closing, reopening and locking fiscal periods. Journal posting itself is a
// library concern consumed by the surrounding application.
func main() {
	var (
		action       = flag.String("action", "close", "lifecycle action: close, open or lock")
		tenantID     = flag.String("tenant", "", "tenant ID")
		companyID    = flag.String("company", "", "company ID")
		periodID     = flag.String("period", "", "fiscal period ID")
		userID       = flag.String("user", "", "acting user ID")
		userRole     = flag.String("role", string(domain.RoleFinanceManager), "acting user role")
		reason       = flag.String("reason", "", "reason for reopen or lock")
		lockType     = flag.String("lock-type", string(domain.LockPosting), "lock type: POSTING, REPORTING or FULL")
		forceClose   = flag.Bool("force", false, "close even when pre-close validation reports errors")
		genReversing = flag.Bool("reversing", true, "generate reversing entries for accrual journals on close")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := logging.AddLoggerToCtx(context.Background(), logger)

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg); err != nil {
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := services.NewServiceContainer(cfg, repos)

	var result any
	switch *action {
	case "close":
		result, err = container.Period.CloseFiscalPeriod(ctx, dto.ClosePeriodInput{
			TenantID:                 *tenantID,
			CompanyID:                *companyID,
			FiscalPeriodID:           *periodID,
			ClosedBy:                 *userID,
			UserRole:                 domain.Role(*userRole),
			CloseDate:                time.Now().UTC(),
			ForceClose:               *forceClose,
			GenerateReversingEntries: *genReversing,
		})
	case "open":
		result, err = container.Period.OpenFiscalPeriod(ctx, dto.OpenPeriodInput{
			TenantID:       *tenantID,
			CompanyID:      *companyID,
			FiscalPeriodID: *periodID,
			OpenedBy:       *userID,
			UserRole:       domain.Role(*userRole),
			OpenReason:     *reason,
		})
	case "lock":
		result, err = container.Period.CreatePeriodLock(ctx, dto.CreatePeriodLockInput{
			TenantID:       *tenantID,
			CompanyID:      *companyID,
			FiscalPeriodID: *periodID,
			LockType:       domain.PeriodLockType(*lockType),
			LockedBy:       *userID,
			UserRole:       domain.Role(*userRole),
			Reason:         *reason,
		})
	default:
		logger.Error("Unknown action", slog.String("action", *action))
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Period operation failed", slog.String("action", *action), slog.String("error", err.Error()))
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("Failed to encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// runMigrations applies all pending "up" migrations through a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", upErr.Error()))
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
