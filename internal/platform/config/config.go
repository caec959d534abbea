package config

import (
	"log"
	"strings"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	IsProduction   bool
	MigrationsPath string

	// BaseCurrency is the default functional currency used when a caller does
	// not supply one on the posting input.
	BaseCurrency string

	// SoD policy knobs. Postings at or above ApprovalThreshold by roles below
	// the manager tier are flagged for approval by one of ApproverRoles.
	ApprovalThreshold decimal.Decimal
	ApproverRoles     []domain.Role
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("BASE_CURRENCY", "MYR")
	viper.SetDefault("SOD_APPROVAL_THRESHOLD", "10000.00")
	viper.SetDefault("SOD_APPROVER_ROLES", "FINANCE_MANAGER,CONTROLLER")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.BaseCurrency = strings.ToUpper(viper.GetString("BASE_CURRENCY"))
	if len(cfg.BaseCurrency) != 3 {
		log.Printf("Warning: Invalid BASE_CURRENCY %q. Defaulting to MYR.\n", cfg.BaseCurrency)
		cfg.BaseCurrency = "MYR"
	}

	thresholdStr := viper.GetString("SOD_APPROVAL_THRESHOLD")
	threshold, err := decimal.NewFromString(thresholdStr)
	if err != nil || threshold.IsNegative() {
		threshold = decimal.RequireFromString("10000.00")
		if thresholdStr != "" {
			log.Printf("Warning: Invalid SOD_APPROVAL_THRESHOLD %q. Defaulting to %s.\n", thresholdStr, threshold.String())
		}
	}
	cfg.ApprovalThreshold = threshold

	for _, role := range strings.Split(viper.GetString("SOD_APPROVER_ROLES"), ",") {
		role = strings.TrimSpace(role)
		if role != "" {
			cfg.ApproverRoles = append(cfg.ApproverRoles, domain.Role(strings.ToUpper(role)))
		}
	}
	if len(cfg.ApproverRoles) == 0 {
		cfg.ApproverRoles = []domain.Role{domain.RoleFinanceManager, domain.RoleController}
	}

	return cfg, nil
}
