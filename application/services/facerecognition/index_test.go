package facerecognition

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"attendly.io/entities"
	"attendly.io/infrastructure/biometric"
	"attendly.io/infrastructure/biometric/types"
	"attendly.io/infrastructure/config"
	"attendly.io/infrastructure/logger"
)

func TestMain(m *testing.M) {
	logger.InitializeLogger()
	m.Run()
}

type memoryDirectory struct {
	inactive map[string]bool
}

func (d *memoryDirectory) IsActive(_ context.Context, employeeID string) (bool, error) {
	return !d.inactive[employeeID], nil
}

type memoryAttemptLogger struct {
	mu       sync.Mutex
	attempts []entities.VerificationLog
}

func (l *memoryAttemptLogger) Record(_ context.Context, attempt entities.VerificationLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts = append(l.attempts, attempt)
	return nil
}

func (l *memoryAttemptLogger) last(t *testing.T) entities.VerificationLog {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.attempts) == 0 {
		t.Fatal("expected at least one audit row")
	}
	return l.attempts[len(l.attempts)-1]
}

type memoryStatsCache struct {
	mu      sync.Mutex
	entries map[string]string
	deletes int
}

func (c *memoryStatsCache) CreateEntry(key string, payload interface{}, _ time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string]string{}
	}
	if s, ok := payload.(string); ok {
		c.entries[key] = s
	}
	return true
}

func (c *memoryStatsCache) FindOne(key string) *string {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return nil
	}
	return &value
}

func (c *memoryStatsCache) DeleteOne(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deletes++
	return true
}

var kioskDevice = types.DeviceMeta{ID: "kiosk-7", Name: "Chrome on Windows 10.0"}

func testFaceConfig() config.FaceConfig {
	return config.FaceConfig{
		DescriptorDimensions:      4,
		MatchThreshold:            0.85,
		MinRegistrationConfidence: 0.7,
		QualityThreshold:          0.6,
		Quality:                   biometric.DefaultQualityWeights(),
		Liveness:                  biometric.DefaultLivenessConfig(),
	}
}

// goodSample reports every capture signal cleanly so quality and liveness
// gates pass and tests exercise the matching path.
func goodSample(descriptor []float64) types.CaptureSample {
	lighting := 1.0
	blur := 0.0
	blink := true
	movement := 0.5
	texture := 1.0
	return types.CaptureSample{
		Descriptor:    descriptor,
		Confidence:    0.95,
		Pose:          &types.Pose{},
		FaceBounds:    &types.FaceBounds{Width: 100, Height: 100},
		LightingScore: &lighting,
		BlurScore:     &blur,
		BlinkDetected: &blink,
		HeadMovement:  &movement,
		TextureScore:  &texture,
	}
}

func newTestService() (*FaceService, *memoryTemplateStore, *memoryAttemptLogger, *memoryStatsCache) {
	store := newMemoryTemplateStore()
	attempts := &memoryAttemptLogger{}
	stats := &memoryStatsCache{}
	service := NewFaceService(NewRegistry(store), &memoryDirectory{inactive: map[string]bool{}}, attempts, stats, testFaceConfig())
	return service, store, attempts, stats
}

func TestRegisterAndVerify(t *testing.T) {
	service, _, attempts, _ := newTestService()
	ctx := context.Background()
	descriptor := []float64{0.1, 0.2, 0.3, 0.4}

	template, err := service.Register(ctx, "emp_1", goodSample(descriptor), kioskDevice)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if template.EmployeeID != "emp_1" {
		t.Errorf("unexpected employee on template: %s", template.EmployeeID)
	}
	if row := attempts.last(t); row.Action != entities.ActionRegister {
		t.Errorf("expected register audit row, got %s", row.Action)
	}
	row := attempts.last(t)
	if row.DeviceID == nil || *row.DeviceID != kioskDevice.ID {
		t.Errorf("expected audit row device id %q, got %v", kioskDevice.ID, row.DeviceID)
	}
	if row.DeviceName == nil || *row.DeviceName != kioskDevice.Name {
		t.Errorf("expected audit row device name %q, got %v", kioskDevice.Name, row.DeviceName)
	}

	result, err := service.Verify(ctx, "emp_1", goodSample(descriptor), kioskDevice)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Verdict != types.VerdictAccepted {
		t.Fatalf("expected accepted, got %s (%s)", result.Verdict, result.Reason)
	}
	if result.MatchedEmployeeID == nil || *result.MatchedEmployeeID != "emp_1" {
		t.Error("expected matched employee to be set on acceptance")
	}
	if row := attempts.last(t); row.Action != entities.ActionVerifySuccess {
		t.Errorf("expected verify_success audit row, got %s", row.Action)
	}
	if row := attempts.last(t); row.DeviceID == nil || *row.DeviceID != kioskDevice.ID {
		t.Errorf("expected verification audit row to carry device id %q, got %v", kioskDevice.ID, row.DeviceID)
	}
}

func TestAuditRowsOmitUnknownDevice(t *testing.T) {
	service, _, attempts, _ := newTestService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "emp_1", goodSample([]float64{0.1, 0.2, 0.3, 0.4}), types.DeviceMeta{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if row := attempts.last(t); row.DeviceID != nil || row.DeviceName != nil {
		t.Errorf("expected nil device fields when no device reported, got %v/%v", row.DeviceID, row.DeviceName)
	}
}

func TestRegisterValidation(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	lowConfidence := goodSample([]float64{0.1, 0.2, 0.3, 0.4})
	lowConfidence.Confidence = 0.5

	cases := []struct {
		name    string
		sample  types.CaptureSample
		wantErr error
	}{
		{"wrong dimensionality", goodSample([]float64{0.1, 0.2}), ErrInvalidDescriptor},
		{"confidence below floor", lowConfidence, ErrLowConfidence},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := service.Register(ctx, "emp_1", c.sample, kioskDevice); !errors.Is(err, c.wantErr) {
				t.Errorf("got %v, want %v", err, c.wantErr)
			}
		})
	}
}

func TestRegisterTwiceConflicts(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()
	sample := goodSample([]float64{0.1, 0.2, 0.3, 0.4})

	if _, err := service.Register(ctx, "emp_1", sample, kioskDevice); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := service.Register(ctx, "emp_1", sample, kioskDevice); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("got %v, want ErrAlreadyRegistered", err)
	}
}

func TestUpdateTemplate(t *testing.T) {
	service, _, _, stats := newTestService()
	ctx := context.Background()

	if _, err := service.UpdateTemplate(ctx, "emp_1", goodSample([]float64{0.1, 0.2, 0.3, 0.4}), kioskDevice); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("update before register: got %v, want ErrNotRegistered", err)
	}

	if _, err := service.Register(ctx, "emp_1", goodSample([]float64{0.1, 0.2, 0.3, 0.4}), kioskDevice); err != nil {
		t.Fatalf("Register: %v", err)
	}
	stats.mu.Lock()
	stats.deletes = 0
	stats.mu.Unlock()

	replacement := []float64{0.4, 0.3, 0.2, 0.1}
	updated, err := service.UpdateTemplate(ctx, "emp_1", goodSample(replacement), kioskDevice)
	if err != nil {
		t.Fatalf("UpdateTemplate: %v", err)
	}
	if updated.UpdateCount != 1 {
		t.Errorf("expected update count 1, got %d", updated.UpdateCount)
	}

	// the new descriptor must be live immediately
	result, err := service.Verify(ctx, "emp_1", goodSample(replacement), kioskDevice)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Verdict != types.VerdictAccepted {
		t.Errorf("expected replacement descriptor to verify, got %s (%s)", result.Verdict, result.Reason)
	}

	stats.mu.Lock()
	deletes := stats.deletes
	stats.mu.Unlock()
	if deletes == 0 {
		t.Error("expected template update to invalidate cached statistics")
	}
}

func TestDeleteTemplate(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()
	descriptor := []float64{0.1, 0.2, 0.3, 0.4}

	if err := service.DeleteTemplate(ctx, "emp_1", kioskDevice); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("delete before register: got %v, want ErrNotRegistered", err)
	}

	if _, err := service.Register(ctx, "emp_1", goodSample(descriptor), kioskDevice); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := service.DeleteTemplate(ctx, "emp_1", kioskDevice); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}

	result, err := service.Verify(ctx, "emp_1", goodSample(descriptor), kioskDevice)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Verdict != types.VerdictNoMatch || result.Reason != types.ReasonNotRegistered {
		t.Errorf("expected no_match/not_registered after deletion, got %s/%s", result.Verdict, result.Reason)
	}
}

func TestVerifySoftRejections(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()
	descriptor := []float64{0.1, 0.2, 0.3, 0.4}
	if _, err := service.Register(ctx, "emp_1", goodSample(descriptor), kioskDevice); err != nil {
		t.Fatalf("Register: %v", err)
	}

	lowQuality := types.CaptureSample{Descriptor: descriptor, Confidence: 0.4}

	noBlink := goodSample(descriptor)
	blink := false
	texture := 0.9
	noBlink.BlinkDetected = &blink
	noBlink.TextureScore = &texture

	mismatch := goodSample([]float64{-0.4, 0.1, -0.3, 0.2})

	cases := []struct {
		name        string
		employeeID  string
		sample      types.CaptureSample
		wantVerdict types.Verdict
		wantReason  types.Reason
	}{
		{"low quality wins over liveness", "emp_1", lowQuality, types.VerdictRejected, types.ReasonLowQuality},
		{"liveness failure", "emp_1", noBlink, types.VerdictRejected, types.ReasonLivenessFailed},
		{"below match threshold", "emp_1", mismatch, types.VerdictRejected, types.ReasonBelowThreshold},
		{"unregistered employee", "emp_2", goodSample(descriptor), types.VerdictNoMatch, types.ReasonNotRegistered},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := service.Verify(ctx, c.employeeID, c.sample, kioskDevice)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if result.Verdict != c.wantVerdict || result.Reason != c.wantReason {
				t.Errorf("got %s/%s, want %s/%s", result.Verdict, result.Reason, c.wantVerdict, c.wantReason)
			}
			if result.MatchedEmployeeID != nil {
				t.Error("rejections must not carry a matched employee")
			}
		})
	}
}

func TestVerifyInactiveEmployee(t *testing.T) {
	store := newMemoryTemplateStore()
	directory := &memoryDirectory{inactive: map[string]bool{"emp_1": true}}
	service := NewFaceService(NewRegistry(store), directory, &memoryAttemptLogger{}, nil, testFaceConfig())
	ctx := context.Background()

	result, err := service.Verify(ctx, "emp_1", goodSample([]float64{0.1, 0.2, 0.3, 0.4}), kioskDevice)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Verdict != types.VerdictRejected || result.Reason != types.ReasonEmployeeInactive {
		t.Errorf("got %s/%s, want rejected/employee_inactive", result.Verdict, result.Reason)
	}
}

func TestIdentifyMatchesBestTemplate(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "emp_1", goodSample([]float64{1, 0, 0, 0}), kioskDevice); err != nil {
		t.Fatalf("Register emp_1: %v", err)
	}
	if _, err := service.Register(ctx, "emp_2", goodSample([]float64{0, 1, 0, 0}), kioskDevice); err != nil {
		t.Fatalf("Register emp_2: %v", err)
	}

	result, err := service.Identify(ctx, goodSample([]float64{0, 0.99, 0.01, 0}), kioskDevice)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if result.Verdict != types.VerdictAccepted {
		t.Fatalf("expected accepted, got %s (%s)", result.Verdict, result.Reason)
	}
	if result.MatchedEmployeeID == nil || *result.MatchedEmployeeID != "emp_2" {
		t.Errorf("expected emp_2, got %v", result.MatchedEmployeeID)
	}
}

func TestIdentifyTieGoesToFirstRegistered(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()
	descriptor := []float64{0.5, 0.5, 0.5, 0.5}

	// identical descriptors, registered in order
	if _, err := service.Register(ctx, "emp_first", goodSample(descriptor), kioskDevice); err != nil {
		t.Fatalf("Register emp_first: %v", err)
	}
	if _, err := service.Register(ctx, "emp_second", goodSample(descriptor), kioskDevice); err != nil {
		t.Fatalf("Register emp_second: %v", err)
	}

	result, err := service.Identify(ctx, goodSample(descriptor), kioskDevice)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if result.MatchedEmployeeID == nil || *result.MatchedEmployeeID != "emp_first" {
		t.Errorf("tie should go to the first registered employee, got %v", result.MatchedEmployeeID)
	}
}

func TestIdentifyNoMatch(t *testing.T) {
	service, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "emp_1", goodSample([]float64{1, 0, 0, 0}), kioskDevice); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := service.Identify(ctx, goodSample([]float64{-1, 0.01, 0, 0}), kioskDevice)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if result.Verdict != types.VerdictNoMatch {
		t.Errorf("expected no_match, got %s", result.Verdict)
	}
	if result.MatchedEmployeeID != nil {
		t.Error("no_match must not carry an employee")
	}
}
