// Package config holds every tunable of the attendance core in typed structs
// with documented defaults. Configuration is layered once at process start
// (defaults -> optional YAML file -> ATTENDLY_ env vars) and never mutated
// during a request.
package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"attendly.io/infrastructure/biometric"
	"attendly.io/infrastructure/geofence"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type FaceConfig struct {
	// DescriptorDimensions is the length of the vectors produced by the
	// upstream extraction model. Registration rejects anything else.
	DescriptorDimensions int `koanf:"descriptor_dimensions"`

	// MatchThreshold is the minimum mapped cosine similarity ([0,1]) for a
	// verification to be accepted.
	MatchThreshold float64 `koanf:"match_threshold"`

	// MinRegistrationConfidence gates enrollment on the extractor's own
	// confidence in the capture.
	MinRegistrationConfidence float64 `koanf:"min_registration_confidence"`

	// QualityThreshold is the minimum capture quality for any verification.
	QualityThreshold float64 `koanf:"quality_threshold"`

	Quality  biometric.QualityWeights `koanf:"quality"`
	Liveness biometric.LivenessConfig `koanf:"liveness"`
}

type AttendanceConfig struct {
	// Timezone the attendance day boundary is computed in.
	Timezone string `koanf:"timezone"`

	// GraceMinutes after shift start within which a check-in still counts
	// as present rather than late.
	GraceMinutes int `koanf:"grace_minutes"`

	// EarlyDepartureMinutes before shift end under which a check-out is
	// flagged early_departure.
	EarlyDepartureMinutes int `koanf:"early_departure_minutes"`

	// BreakDurationMinutes is the unpaid break deducted from worked hours,
	// at most once per day, when the shift is long enough to span it.
	BreakDurationMinutes   int `koanf:"break_duration_minutes"`
	MinimumMinutesForBreak int `koanf:"minimum_minutes_for_break"`

	// RequireLocationVerification can be switched off for deployments
	// without geofenced sites. Per-employee exemptions live on the
	// employee record.
	RequireLocationVerification bool `koanf:"require_location_verification"`

	RequestTimeoutSeconds int `koanf:"request_timeout_seconds"`
}

type ServerConfig struct {
	Port            string   `koanf:"port"`
	AllowedOrigins  []string `koanf:"allowed_origins"`
	RateLimitPerMin float64  `koanf:"rate_limit_per_min"`
}

type Config struct {
	Face       FaceConfig       `koanf:"face"`
	Attendance AttendanceConfig `koanf:"attendance"`
	Geofence   geofence.Config  `koanf:"geofence"`
	Server     ServerConfig     `koanf:"server"`
}

func defaults() *Config {
	return &Config{
		Face: FaceConfig{
			DescriptorDimensions:      128,
			MatchThreshold:            0.85,
			MinRegistrationConfidence: 0.7,
			QualityThreshold:          0.6,
			Quality:                   biometric.DefaultQualityWeights(),
			Liveness:                  biometric.DefaultLivenessConfig(),
		},
		Attendance: AttendanceConfig{
			Timezone:                    "UTC",
			GraceMinutes:                15,
			EarlyDepartureMinutes:       15,
			BreakDurationMinutes:        60,
			MinimumMinutesForBreak:      240,
			RequireLocationVerification: true,
			RequestTimeoutSeconds:       5,
		},
		Geofence: geofence.DefaultConfig(),
		Server: ServerConfig{
			Port:            "8080",
			RateLimitPerMin: 25,
		},
	}
}

var (
	loaded  *Config
	once    sync.Once
	loadErr error
)

// Load layers defaults, the optional YAML file named by ATTENDLY_CONFIG and
// ATTENDLY_-prefixed env vars, in that order of precedence. Subsequent calls
// return the same instance.
func Load() (*Config, error) {
	once.Do(func() {
		loaded, loadErr = load()
	})
	return loaded, loadErr
}

// Get returns the loaded configuration and panics when Load has not run.
// Only request-path code that is unreachable before startup should use it.
func Get() *Config {
	if loaded == nil {
		panic("config.Load has not been called")
	}
	return loaded
}

func load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("ATTENDLY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Double underscore separates path segments so leaf keys keep their
	// single underscores: ATTENDLY_FACE__MATCH_THRESHOLD -> face.match_threshold
	envProvider := env.Provider("ATTENDLY_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "ATTENDLY_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Face.DescriptorDimensions <= 0 {
		return errors.New("face.descriptor_dimensions must be positive")
	}
	if cfg.Face.MatchThreshold <= 0 || cfg.Face.MatchThreshold > 1 {
		return errors.New("face.match_threshold must be in (0,1]")
	}
	if cfg.Geofence.DefaultRadiusMeters <= 0 {
		return errors.New("geofence.default_radius_meters must be positive")
	}
	if _, err := timeLocation(cfg.Attendance.Timezone); err != nil {
		return err
	}
	return nil
}
