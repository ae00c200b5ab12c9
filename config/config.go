// Package config maps environment variables onto typed settings structs.
// Economy numbers are hand-tuned product constants, not derived values, so
// they live here as overridable configuration rather than in the engines.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings for the progression service.
type Config struct {
	// --- Server ---
	Port           int    `envconfig:"PORT" default:"5300"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	GatewayToken   string `envconfig:"GATEWAY_SERVICE_TOKEN"`

	// --- Database ---
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Snapshot archive (R2/S3 export for audit) ---
	ArchiveEnabled         bool   `envconfig:"ARCHIVE_ENABLED" default:"false"`
	ArchiveIntervalMinutes int    `envconfig:"ARCHIVE_INTERVAL_MINUTES" default:"15"`
	CloudflareAccountID    string `envconfig:"CLOUDFLARE_ACCOUNT_ID"`
	R2AccessKeyID          string `envconfig:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret      string `envconfig:"R2_ACCESS_KEY_SECRET"`
	R2BucketName           string `envconfig:"R2_BUCKET_NAME"`

	Economy Economy
}

// Economy collects every tunable number in the gem/XP economy.
type Economy struct {
	// XP granted per completed task by priority, plus the on-time bonus.
	TaskXPLow     int `envconfig:"TASK_XP_LOW" default:"5"`
	TaskXPMedium  int `envconfig:"TASK_XP_MEDIUM" default:"10"`
	TaskXPHigh    int `envconfig:"TASK_XP_HIGH" default:"15"`
	TaskXPUrgent  int `envconfig:"TASK_XP_URGENT" default:"20"`
	OnTimeBonusXP int `envconfig:"ON_TIME_BONUS_XP" default:"5"`

	// Daily login rewards.
	DailyLoginGems   int `envconfig:"DAILY_LOGIN_GEMS" default:"10"`
	StreakBonusGems  int `envconfig:"STREAK_BONUS_GEMS" default:"50"`
	StreakBonusEvery int `envconfig:"STREAK_BONUS_EVERY" default:"7"`

	// Streak protection.
	MaxFreezes             int `envconfig:"MAX_FREEZES" default:"2"`
	RepairWindowHours      int `envconfig:"REPAIR_WINDOW_HOURS" default:"48"`
	RepairBaseCost         int `envconfig:"REPAIR_BASE_COST" default:"500"`
	RepairCostPerStreakDay int `envconfig:"REPAIR_COST_PER_STREAK_DAY" default:"10"`
}

// Load reads the full configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}
	return &cfg, nil
}

// DefaultEconomy returns the stock economy numbers. Tests and library
// consumers that skip env loading start from here.
func DefaultEconomy() *Economy {
	return &Economy{
		TaskXPLow:              5,
		TaskXPMedium:           10,
		TaskXPHigh:             15,
		TaskXPUrgent:           20,
		OnTimeBonusXP:          5,
		DailyLoginGems:         10,
		StreakBonusGems:        50,
		StreakBonusEvery:       7,
		MaxFreezes:             2,
		RepairWindowHours:      48,
		RepairBaseCost:         500,
		RepairCostPerStreakDay: 10,
	}
}
