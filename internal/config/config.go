package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	ChatGatewayAddress string
	BotPIN             string
	TimeZone           string
	ReportHour         int
	ReportMinute       int
	ReminderLead       time.Duration
	ReminderPoll       time.Duration
	ReportPoll         time.Duration
	DuplicateWindow    int
	StatusListLimit    int
	MaxCommentLength   int
	DailyOrderLimit    int
	StoreTimeout       time.Duration
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultTimeZone         = "Local"
	defaultReportTime       = "19:00"
	defaultReminderLead     = 5 * time.Minute
	defaultReminderPoll     = 30 * time.Second
	defaultReportPoll       = time.Minute
	defaultDuplicateWindow  = 10
	defaultStatusListLimit  = 10
	defaultMaxCommentLength = 500
	defaultDailyOrderLimit  = 50
	defaultStoreTimeout     = 3 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		ChatGatewayAddress: getString(lookup, "CHAT_GATEWAY_ADDRESS", ""),
		BotPIN:             getString(lookup, "BOT_PIN", ""),
		TimeZone:           getString(lookup, "TZ_NAME", defaultTimeZone),
		ReminderLead:       getDuration(lookup, "REMINDER_LEAD", defaultReminderLead),
		ReminderPoll:       getDuration(lookup, "REMINDER_POLL_INTERVAL", defaultReminderPoll),
		ReportPoll:         getDuration(lookup, "REPORT_POLL_INTERVAL", defaultReportPoll),
		DuplicateWindow:    getInt(lookup, "DUPLICATE_WINDOW", defaultDuplicateWindow),
		StatusListLimit:    getInt(lookup, "STATUS_LIST_LIMIT", defaultStatusListLimit),
		MaxCommentLength:   getInt(lookup, "MAX_COMMENT_LENGTH", defaultMaxCommentLength),
		DailyOrderLimit:    getInt(lookup, "DAILY_ORDER_LIMIT", defaultDailyOrderLimit),
		StoreTimeout:       getDuration(lookup, "STORE_TIMEOUT", defaultStoreTimeout),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	reportTime := getString(lookup, "REPORT_TIME", defaultReportTime)

	fs := flag.NewFlagSet("nanocrm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reminderLeadStr = cfg.ReminderLead.String()
		reminderPollStr = cfg.ReminderPoll.String()
		reportPollStr   = cfg.ReportPoll.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP gateway listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.ChatGatewayAddress, "g", cfg.ChatGatewayAddress, "Chat gateway base URL for outbound notifications")
	fs.StringVar(&cfg.BotPIN, "pin", cfg.BotPIN, "Workspace access PIN")
	fs.StringVar(&cfg.TimeZone, "tz", cfg.TimeZone, "Local timezone identifier")
	fs.StringVar(&reportTime, "report-time", reportTime, "Daily report trigger time (HH:MM)")
	fs.StringVar(&reminderLeadStr, "reminder-lead", reminderLeadStr, "How far ahead of the stated time reminders fire")
	fs.StringVar(&reminderPollStr, "reminder-poll", reminderPollStr, "Interval between reminder polls")
	fs.StringVar(&reportPollStr, "report-poll", reportPollStr, "Interval between daily report checks")
	fs.IntVar(&cfg.DuplicateWindow, "dup-window", cfg.DuplicateWindow, "Recent orders checked for duplicates")
	fs.IntVar(&cfg.StatusListLimit, "status-limit", cfg.StatusListLimit, "Maximum orders per status listing")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReminderLead, err = time.ParseDuration(reminderLeadStr); err != nil {
		return nil, fmt.Errorf("invalid reminder lead: %w", err)
	}
	if cfg.ReminderPoll, err = time.ParseDuration(reminderPollStr); err != nil {
		return nil, fmt.Errorf("invalid reminder poll interval: %w", err)
	}
	if cfg.ReportPoll, err = time.ParseDuration(reportPollStr); err != nil {
		return nil, fmt.Errorf("invalid report poll interval: %w", err)
	}

	if cfg.ReportHour, cfg.ReportMinute, err = parseClock(reportTime); err != nil {
		return nil, fmt.Errorf("invalid report time: %w", err)
	}

	if cfg.ReminderLead <= 0 {
		cfg.ReminderLead = defaultReminderLead
	}
	if cfg.ReminderPoll <= 0 {
		cfg.ReminderPoll = defaultReminderPoll
	}
	if cfg.ReportPoll <= 0 {
		cfg.ReportPoll = defaultReportPoll
	}
	if cfg.DuplicateWindow <= 0 {
		cfg.DuplicateWindow = defaultDuplicateWindow
	}
	if cfg.StatusListLimit <= 0 {
		cfg.StatusListLimit = defaultStatusListLimit
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if pinFile, ok := lookup("BOT_PIN_FILE"); ok && pinFile != "" {
		content, err := os.ReadFile(pinFile)
		if err != nil {
			return nil, fmt.Errorf("read pin file: %w", err)
		}
		cfg.BotPIN = strings.TrimSpace(string(content))
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}
	if cfg.ChatGatewayAddress == "" {
		return nil, fmt.Errorf("chat gateway address must be provided")
	}
	if cfg.BotPIN == "" {
		return nil, fmt.Errorf("bot PIN must be provided")
	}

	return cfg, nil
}

// Location resolves the configured timezone.
func Location(cfg *Config) (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.TimeZone, err)
	}
	return loc, nil
}

func parseClock(value string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	if hour, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, err
	}
	if minute, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", value)
	}
	return hour, minute, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
