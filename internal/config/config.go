package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	Timezone             string
	DailyNewQuota        int
	SessionLimit         int
	ActivityWindowDays   int
	RollupWindowDays     int
	DashboardDays        int
	StaleSessionMinutes  int
	SweepIntervalMinutes int
	WorkerCount          int
	QueueSize            int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:vokabox.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		Timezone:             envOr("TIMEZONE", "UTC"),
		DailyNewQuota:        envIntOr("DAILY_NEW_QUOTA", 25),
		SessionLimit:         envIntOr("SESSION_LIMIT", 20),
		ActivityWindowDays:   envIntOr("ACTIVITY_WINDOW_DAYS", 7),
		RollupWindowDays:     envIntOr("ROLLUP_WINDOW_DAYS", 30),
		DashboardDays:        envIntOr("DASHBOARD_DAYS", 14),
		StaleSessionMinutes:  envIntOr("STALE_SESSION_MINUTES", 30),
		SweepIntervalMinutes: envIntOr("SWEEP_INTERVAL_MINUTES", 15),
		WorkerCount:          envIntOr("WORKER_COUNT", 2),
		QueueSize:            envIntOr("QUEUE_SIZE", 32),
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a known zone: %w", c.Timezone, err)
	}
	positive := []struct {
		name  string
		value int
	}{
		{"DAILY_NEW_QUOTA", c.DailyNewQuota},
		{"SESSION_LIMIT", c.SessionLimit},
		{"ACTIVITY_WINDOW_DAYS", c.ActivityWindowDays},
		{"ROLLUP_WINDOW_DAYS", c.RollupWindowDays},
		{"DASHBOARD_DAYS", c.DashboardDays},
		{"STALE_SESSION_MINUTES", c.StaleSessionMinutes},
		{"SWEEP_INTERVAL_MINUTES", c.SweepIntervalMinutes},
		{"WORKER_COUNT", c.WorkerCount},
		{"QUEUE_SIZE", c.QueueSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}
	if c.ActivityWindowDays > c.RollupWindowDays {
		return fmt.Errorf("ACTIVITY_WINDOW_DAYS (%d) cannot exceed ROLLUP_WINDOW_DAYS (%d)", c.ActivityWindowDays, c.RollupWindowDays)
	}
	return nil
}

// Location returns the zone that defines calendar-day boundaries.
// Falls back to UTC when Timezone is invalid; Validate reports that case.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
