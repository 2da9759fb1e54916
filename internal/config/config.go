package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/honeynil/CreatorMonetizationService/internal/fees"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	PostgresDSN         string
	RedisAddr           string
	KafkaBrokers        []string
	KafkaLedgerTopic    string
	KafkaProcessorTopic string
	KafkaGroupID        string
	JWTSecret           string
	HTTPAddr            string
	LogLevel            string

	GatewayBaseURL string
	GatewayAPIKey  string
	GatewayTimeout time.Duration
	WebhookSecret  string

	FeeSchedule fees.Schedule

	AnalyticsCacheTTL time.Duration
	AnalyticsLocation *time.Location

	OTLPEndpoint string
}

// Load reads .env (if present) and the environment. Only malformed values are
// errors; anything unset falls back to a local-development default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using environment and defaults", "error", err)
	}

	cfg := &Config{
		PostgresDSN:         getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=monetization sslmode=disable"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:        splitList(getEnv("KAFKA_BROKER", "localhost:9092")),
		KafkaLedgerTopic:    getEnv("KAFKA_LEDGER_TOPIC", "ledger-events"),
		KafkaProcessorTopic: getEnv("KAFKA_PROCESSOR_TOPIC", "processor-events"),
		KafkaGroupID:        getEnv("KAFKA_GROUP_ID", "monetization-service"),
		JWTSecret:           getEnv("JWT_SECRET", "supersecret"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		GatewayBaseURL:      getEnv("GATEWAY_BASE_URL", "http://localhost:12111"),
		GatewayAPIKey:       os.Getenv("GATEWAY_API_KEY"),
		WebhookSecret:       os.Getenv("WEBHOOK_SECRET"),
		OTLPEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var err error
	if cfg.GatewayTimeout, err = getDuration("GATEWAY_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.AnalyticsCacheTTL, err = getDuration("ANALYTICS_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	schedule := fees.DefaultSchedule()
	if schedule.Percent, err = getDecimal("PLATFORM_FEE_PERCENT", schedule.Percent); err != nil {
		return nil, err
	}
	if schedule.Minimum, err = getDecimal("PLATFORM_FEE_MINIMUM", schedule.Minimum); err != nil {
		return nil, err
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fee schedule: %w", err)
	}
	cfg.FeeSchedule = schedule

	// Postgres resolves the zone by name in AT TIME ZONE, so the host-relative "Local" is refused.
	tz := getEnv("ANALYTICS_TIMEZONE", "UTC")
	if tz == "Local" {
		return nil, fmt.Errorf("invalid ANALYTICS_TIMEZONE %q: use an IANA zone name such as Europe/Berlin", tz)
	}
	if cfg.AnalyticsLocation, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_TIMEZONE %q: %w", tz, err)
	}

	if cfg.WebhookSecret == "" {
		slog.Warn("WEBHOOK_SECRET is empty, processor webhooks will be rejected")
	}

	slog.Info("config loaded",
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"http_addr", cfg.HTTPAddr,
		"gateway_base_url", cfg.GatewayBaseURL,
		"fee_percent", cfg.FeeSchedule.Percent.String(),
		"fee_minimum", cfg.FeeSchedule.Minimum.StringFixed(2),
		"analytics_timezone", tz,
	)
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func getDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
