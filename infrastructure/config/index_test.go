package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Face.MatchThreshold != 0.85 {
		t.Errorf("expected default match threshold 0.85, got %v", cfg.Face.MatchThreshold)
	}
	if cfg.Attendance.GraceMinutes != 15 {
		t.Errorf("expected default grace minutes 15, got %v", cfg.Attendance.GraceMinutes)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %v", cfg.Server.Port)
	}
}

func TestEnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("ATTENDLY_FACE__MATCH_THRESHOLD", "0.9")
	t.Setenv("ATTENDLY_ATTENDANCE__GRACE_MINUTES", "30")
	t.Setenv("ATTENDLY_SERVER__PORT", "9090")

	cfg, err := load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Face.MatchThreshold != 0.9 {
		t.Errorf("expected overridden match threshold 0.9, got %v", cfg.Face.MatchThreshold)
	}
	if cfg.Attendance.GraceMinutes != 30 {
		t.Errorf("expected overridden grace minutes 30, got %v", cfg.Attendance.GraceMinutes)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected overridden port 9090, got %v", cfg.Server.Port)
	}
}

func TestEnvOverrideLeafWithUnderscores(t *testing.T) {
	t.Setenv("ATTENDLY_FACE__MIN_REGISTRATION_CONFIDENCE", "0.8")

	cfg, err := load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Face.MinRegistrationConfidence != 0.8 {
		t.Errorf("expected overridden registration confidence 0.8, got %v", cfg.Face.MinRegistrationConfidence)
	}
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	t.Setenv("ATTENDLY_FACE__MATCH_THRESHOLD", "1.5")

	if _, err := load(); err == nil {
		t.Fatal("expected a validation error for match threshold 1.5")
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("ATTENDLY_ATTENDANCE__TIMEZONE", "Mars/Olympus_Mons")

	if _, err := load(); err == nil {
		t.Fatal("expected a validation error for an unknown timezone")
	}
}
