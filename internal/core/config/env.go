package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: DOCSCAN_[SECTION]_[KEY] (e.g., DOCSCAN_CHECKER_TIMEOUT).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.DefaultStyle, "DOCSCAN_DEFAULT_STYLE")
	setEnvFloat64(&cfg.MinCoverage, "DOCSCAN_MIN_COVERAGE")
	setEnvBoolPtr(&cfg.ValidationEnabled, "DOCSCAN_VALIDATION_ENABLED")
	setEnvBool(&cfg.IncludeTests, "DOCSCAN_INCLUDE_TESTS")
	setEnvList(&cfg.Paths, "DOCSCAN_PATHS")

	// Checker
	setEnvString(&cfg.Checker.Executable, "DOCSCAN_CHECKER_EXECUTABLE")
	setEnvDuration(&cfg.Checker.Timeout, "DOCSCAN_CHECKER_TIMEOUT")
	setEnvString(&cfg.Checker.Convention, "DOCSCAN_CHECKER_CONVENTION")
	setEnvList(&cfg.Checker.Select, "DOCSCAN_CHECKER_SELECT")
	setEnvList(&cfg.Checker.Ignore, "DOCSCAN_CHECKER_IGNORE")
	setEnvFloat64(&cfg.Checker.Rate, "DOCSCAN_CHECKER_RATE")

	setEnvInt(&cfg.Batch.Workers, "DOCSCAN_BATCH_WORKERS")
	setEnvDuration(&cfg.Watch.Debounce, "DOCSCAN_WATCH_DEBOUNCE")

	// Output
	setEnvString(&cfg.Output.Format, "DOCSCAN_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.File, "DOCSCAN_OUTPUT_FILE")

	// Observability
	setEnvBool(&cfg.Observability.Enabled, "DOCSCAN_OBSERVABILITY_ENABLED")
	setEnvString(&cfg.Observability.Address, "DOCSCAN_OBSERVABILITY_ADDRESS")
	setEnvString(&cfg.Observability.OTLPEndpoint, "DOCSCAN_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvBool(&cfg.Observability.OTLPInsecure, "DOCSCAN_OBSERVABILITY_OTLP_INSECURE")
}

func logOverride(key, val string) {
	slog.Debug("applying env override", "key", key, "value", val)
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		logOverride(key, val)
		*target = val
	}
}

func setEnvList(target *[]string, key string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	logOverride(key, val)
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*target = out
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			logOverride(key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			logOverride(key, val)
			*target = b
		}
	}
}

func setEnvBoolPtr(target **bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			logOverride(key, val)
			*target = &b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			logOverride(key, val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			logOverride(key, val)
			*target = d
		}
	}
}
