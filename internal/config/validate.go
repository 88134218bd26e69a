package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level)
	}

	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.Practice.validate(); err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	if c.Quiz.MaxActiveTests <= 0 {
		return fmt.Errorf("quiz.max_active_tests must be > 0 (got %d)", c.Quiz.MaxActiveTests)
	}
	if c.Quiz.MaxSize <= 0 {
		return fmt.Errorf("quiz.max_size must be > 0 (got %d)", c.Quiz.MaxSize)
	}
	if err := c.Vocabulary.validate(); err != nil {
		return fmt.Errorf("vocabulary: %w", err)
	}

	return nil
}

func (r *RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}
	if r.RPS <= 0 {
		return fmt.Errorf("rps must be > 0 (got %v)", r.RPS)
	}
	if r.Burst <= 0 {
		return fmt.Errorf("burst must be > 0 (got %d)", r.Burst)
	}
	return nil
}

func (p *PracticeConfig) validate() error {
	if !p.DefaultDirection.IsValid() {
		return fmt.Errorf("default_direction %q is not a known direction", p.DefaultDirection)
	}
	if !p.DefaultOrder.IsValid() {
		return fmt.Errorf("default_order %q is not a known order mode", p.DefaultOrder)
	}
	switch p.SnapshotBackend {
	case SnapshotBackendPostgres:
	case SnapshotBackendFile:
		if p.SnapshotDir == "" {
			return fmt.Errorf("snapshot_dir is required for the file backend")
		}
		if p.SnapshotMaxAge < 0 {
			return fmt.Errorf("snapshot_max_age must not be negative (got %s)", p.SnapshotMaxAge)
		}
	default:
		return fmt.Errorf("snapshot_backend must be %q or %q (got %q)",
			SnapshotBackendPostgres, SnapshotBackendFile, p.SnapshotBackend)
	}
	if p.MaxActiveSessions <= 0 {
		return fmt.Errorf("max_active_sessions must be > 0 (got %d)", p.MaxActiveSessions)
	}
	if p.MaxAnswersPerCheck <= 0 {
		return fmt.Errorf("max_answers_per_check must be > 0 (got %d)", p.MaxAnswersPerCheck)
	}
	return nil
}

func (v *VocabularyConfig) validate() error {
	if v.MaxWordsPerUser <= 0 {
		return fmt.Errorf("max_words_per_user must be > 0 (got %d)", v.MaxWordsPerUser)
	}
	if v.MaxDefinitions <= 0 {
		return fmt.Errorf("max_definitions must be > 0 (got %d)", v.MaxDefinitions)
	}
	if v.MaxImportRows <= 0 {
		return fmt.Errorf("max_import_rows must be > 0 (got %d)", v.MaxImportRows)
	}
	if v.DefaultPageSize <= 0 || v.DefaultPageSize > 200 {
		return fmt.Errorf("default_page_size must be in 1..200 (got %d)", v.DefaultPageSize)
	}
	return nil
}
