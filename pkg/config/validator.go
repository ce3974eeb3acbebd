package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	// App validation
	if c.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}

	validModes := map[string]bool{"development": true, "production": true, "test": true}
	if !validModes[c.App.Mode] {
		errs = append(errs, fmt.Errorf("app.mode must be one of: development, production, test"))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.App.LogLevel] {
		errs = append(errs, fmt.Errorf("app.log_level must be one of: debug, info, warn, error"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, errors.New("database.port must be between 1 and 65535"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if c.Database.MaxConnections <= 0 {
		errs = append(errs, errors.New("database.max_connections must be positive"))
	}

	// Extractor validation
	if c.Extractor.LookbackWindow <= 0 {
		errs = append(errs, errors.New("extractor.lookback_window must be positive"))
	}
	if c.Extractor.SessionGapMinutes <= 0 {
		errs = append(errs, errors.New("extractor.session_gap_minutes must be positive"))
	}
	if c.Extractor.FocusSessionMinutes <= 0 {
		errs = append(errs, errors.New("extractor.focus_session_minutes must be positive"))
	}
	if c.Extractor.NightStartHour < 0 || c.Extractor.NightStartHour > 23 {
		errs = append(errs, errors.New("extractor.night_start_hour must be between 0 and 23"))
	}
	if c.Extractor.NightEndHour < 0 || c.Extractor.NightEndHour > 23 {
		errs = append(errs, errors.New("extractor.night_end_hour must be between 0 and 23"))
	}

	// Categorizer validation
	for i, rule := range c.Categorizer.Rules {
		if rule.Category == "" {
			errs = append(errs, fmt.Errorf("categorizer.rules[%d].category is required", i))
		}
		if len(rule.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("categorizer.rules[%d].keywords must not be empty", i))
		}
	}

	// API validation
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, errors.New("api.port must be between 1 and 65535"))
	}
	if c.App.Mode == "production" && c.API.JWTSecret == "change-me-in-production" {
		errs = append(errs, errors.New("api.jwt_secret must be changed in production"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
