package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if u, err := url.Parse(cfg.MealDBBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{"MEALDB_BASE_URL", fmt.Sprintf("invalid URL %q", cfg.MealDBBaseURL)})
	}

	if cfg.SkeletonCount < 0 {
		errs = append(errs, ValidationError{"SKELETON_COUNT", "must not be negative"})
	}
	if cfg.DetailConcurrency < 0 {
		errs = append(errs, ValidationError{"DETAIL_CONCURRENCY", "must not be negative"})
	}
	if cfg.UpstreamTimeout < 0 {
		errs = append(errs, ValidationError{"UPSTREAM_TIMEOUT", "must not be negative"})
	}
	if cfg.SessionTTL <= 0 {
		errs = append(errs, ValidationError{"SESSION_TTL", "must be positive"})
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{"DB_PATH", "required for the sqlite driver"})
		}
	case "postgres":
		errs = append(errs, requirePostgres(cfg)...)
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.Environment == Production {
		// In production, sessions must survive restarts and be shared between replicas
		if !cfg.RedisEnabled() {
			errs = append(errs, ValidationError{"REDIS_URL", "REDIS_URL or REDIS_HOST is required in production"})
		}
		if cfg.DBDriver != "postgres" {
			errs = append(errs, ValidationError{"DB_DRIVER", "postgres is required in production"})
		}
	}

	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		errs = append(errs, ValidationError{"KAFKA_TOPIC", "required when KAFKA_BROKERS is set"})
	}

	return errors.Join(errs...)
}

func requirePostgres(cfg *Config) []error {
	var errs []error
	required := map[string]string{
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_NAME":     cfg.DBName,
		"DB_PASSWORD": cfg.DBPassword,
	}
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME", "DB_PASSWORD"} {
		if required[key] == "" {
			errs = append(errs, ValidationError{key, "required for the postgres driver"})
		}
	}
	return errs
}
