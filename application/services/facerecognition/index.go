package facerecognition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendly.io/application/utils"
	"attendly.io/entities"
	"attendly.io/infrastructure/biometric"
	"attendly.io/infrastructure/biometric/types"
	"attendly.io/infrastructure/config"
	"attendly.io/infrastructure/logger"
	"attendly.io/infrastructure/metrics"
)

var (
	// ErrInvalidDescriptor means the descriptor length does not match the
	// configured model dimensionality. Never retried.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrLowConfidence rejects an enrollment whose extraction confidence is
	// below the registration floor.
	ErrLowConfidence = errors.New("capture confidence too low for registration")

	// ErrAlreadyRegistered means the employee has a template; use Update.
	ErrAlreadyRegistered = errors.New("employee already has a registered face")

	// ErrNotRegistered means no template exists for the employee.
	ErrNotRegistered = errors.New("employee has no registered face")
)

// EmployeeDirectory is the slice of the employee collaborator this service
// needs: whether an employee may verify at all.
type EmployeeDirectory interface {
	IsActive(ctx context.Context, employeeID string) (bool, error)
}

// AttemptLogger is the audit sink. Failures are logged, never propagated:
// compliance logging must not break a verification.
type AttemptLogger interface {
	Record(ctx context.Context, attempt entities.VerificationLog) error
}

// StatsCache invalidates and serves the derived statistics entry.
type StatsCache interface {
	CreateEntry(key string, payload interface{}, ttl time.Duration) bool
	FindOne(key string) *string
	DeleteOne(key string) bool
}

// FaceService orchestrates template registration and 1:1 / 1:N face
// verification. It owns no attendance state; it only produces verdicts.
type FaceService struct {
	registry  *Registry
	directory EmployeeDirectory
	attempts  AttemptLogger
	stats     StatsCache
	cfg       config.FaceConfig
}

// Service is the process-wide instance, assembled in startUp.
var Service *FaceService

func NewFaceService(registry *Registry, directory EmployeeDirectory, attempts AttemptLogger, stats StatsCache, cfg config.FaceConfig) *FaceService {
	return &FaceService{
		registry:  registry,
		directory: directory,
		attempts:  attempts,
		stats:     stats,
		cfg:       cfg,
	}
}

func (s *FaceService) validateDescriptor(descriptor []float64) error {
	if len(descriptor) != s.cfg.DescriptorDimensions {
		return fmt.Errorf("%w: expected %d dimensions, got %d", ErrInvalidDescriptor, s.cfg.DescriptorDimensions, len(descriptor))
	}
	return nil
}

// Register enrolls an employee's face. The descriptor must match the
// configured dimensionality and the capture confidence must clear the
// registration floor; nothing is stored otherwise.
func (s *FaceService) Register(ctx context.Context, employeeID string, sample types.CaptureSample, device types.DeviceMeta) (*entities.FaceTemplate, error) {
	if err := s.validateDescriptor(sample.Descriptor); err != nil {
		return nil, err
	}
	if sample.Confidence < s.cfg.MinRegistrationConfidence {
		return nil, fmt.Errorf("%w: %.2f < %.2f", ErrLowConfidence, sample.Confidence, s.cfg.MinRegistrationConfidence)
	}

	existing, err := s.registry.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	template := entities.FaceTemplate{
		EmployeeID:   employeeID,
		Descriptor:   sample.Descriptor,
		Confidence:   sample.Confidence,
		QualityScore: biometric.ScoreQuality(sample, s.cfg.Quality),
	}
	saved, err := s.registry.Put(ctx, template)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	s.recordAttempt(ctx, device, entities.VerificationLog{
		EmployeeID:   &employeeID,
		Action:       entities.ActionRegister,
		QualityScore: saved.QualityScore,
	})
	return saved, nil
}

// UpdateTemplate replaces an existing enrollment, keeping the registration
// order slot and bumping the update counter.
func (s *FaceService) UpdateTemplate(ctx context.Context, employeeID string, sample types.CaptureSample, device types.DeviceMeta) (*entities.FaceTemplate, error) {
	if err := s.validateDescriptor(sample.Descriptor); err != nil {
		return nil, err
	}
	if sample.Confidence < s.cfg.MinRegistrationConfidence {
		return nil, fmt.Errorf("%w: %.2f < %.2f", ErrLowConfidence, sample.Confidence, s.cfg.MinRegistrationConfidence)
	}

	existing, err := s.registry.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotRegistered
	}

	template := *existing
	template.Descriptor = sample.Descriptor
	template.Confidence = sample.Confidence
	template.QualityScore = biometric.ScoreQuality(sample, s.cfg.Quality)
	template.UpdateCount = existing.UpdateCount + 1

	saved, err := s.registry.Put(ctx, template)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	s.recordAttempt(ctx, device, entities.VerificationLog{
		EmployeeID:   &employeeID,
		Action:       entities.ActionUpdate,
		QualityScore: saved.QualityScore,
	})
	return saved, nil
}

// DeleteTemplate removes an enrollment and invalidates the cache.
func (s *FaceService) DeleteTemplate(ctx context.Context, employeeID string, device types.DeviceMeta) error {
	existing, err := s.registry.Get(ctx, employeeID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotRegistered
	}
	if err := s.registry.Remove(ctx, employeeID); err != nil {
		return err
	}

	s.invalidateStats()
	s.recordAttempt(ctx, device, entities.VerificationLog{
		EmployeeID: &employeeID,
		Action:     entities.ActionDelete,
	})
	return nil
}

// Verify matches a capture against a known employee's template. Soft
// outcomes (inactive, low quality, not live, below threshold) come back as
// verdicts, not errors; only malformed input errors.
func (s *FaceService) Verify(ctx context.Context, employeeID string, sample types.CaptureSample, device types.DeviceMeta) (*types.VerificationResult, error) {
	if err := s.validateDescriptor(sample.Descriptor); err != nil {
		return nil, err
	}

	active, err := s.directory.IsActive(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !active {
		return s.conclude(ctx, &employeeID, device, &types.VerificationResult{
			Verdict: types.VerdictRejected,
			Reason:  types.ReasonEmployeeInactive,
		}), nil
	}

	result, gated := s.gateCapture(sample)
	if gated {
		return s.conclude(ctx, &employeeID, device, result), nil
	}

	template, err := s.registry.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		result.Verdict = types.VerdictNoMatch
		result.Reason = types.ReasonNotRegistered
		return s.conclude(ctx, &employeeID, device, result), nil
	}

	result.Similarity = biometric.Similarity(sample.Descriptor, template.Descriptor)
	if result.Similarity >= s.cfg.MatchThreshold {
		result.Verdict = types.VerdictAccepted
		result.Reason = types.ReasonNone
		result.MatchedEmployeeID = &template.EmployeeID
	} else {
		result.Verdict = types.VerdictRejected
		result.Reason = types.ReasonBelowThreshold
	}
	return s.conclude(ctx, &employeeID, device, result), nil
}

// Identify matches a capture against every registered template (kiosk mode,
// identity unknown). The scan walks templates in registration order keeping
// a strictly greater maximum, so when two templates tie the first registered
// wins.
func (s *FaceService) Identify(ctx context.Context, sample types.CaptureSample, device types.DeviceMeta) (*types.VerificationResult, error) {
	if err := s.validateDescriptor(sample.Descriptor); err != nil {
		return nil, err
	}

	result, gated := s.gateCapture(sample)
	if gated {
		return s.conclude(ctx, nil, device, result), nil
	}

	templates, err := s.registry.All(ctx)
	if err != nil {
		return nil, err
	}

	var best *entities.FaceTemplate
	bestSimilarity := 0.0
	for i := range templates {
		similarity := biometric.Similarity(sample.Descriptor, templates[i].Descriptor)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = &templates[i]
		}
	}

	result.Similarity = bestSimilarity
	if best != nil && bestSimilarity >= s.cfg.MatchThreshold {
		result.Verdict = types.VerdictAccepted
		result.Reason = types.ReasonNone
		result.MatchedEmployeeID = &best.EmployeeID
		return s.conclude(ctx, &best.EmployeeID, device, result), nil
	}

	result.Verdict = types.VerdictNoMatch
	result.Reason = types.ReasonBelowThreshold
	return s.conclude(ctx, nil, device, result), nil
}

// gateCapture applies the quality and liveness gates shared by 1:1 and 1:N
// verification. Returns the partially filled result and whether a gate
// already decided the verdict.
func (s *FaceService) gateCapture(sample types.CaptureSample) (*types.VerificationResult, bool) {
	quality := biometric.ScoreQuality(sample, s.cfg.Quality)
	liveness := biometric.ScoreLiveness(sample, s.cfg.Liveness)

	result := &types.VerificationResult{
		QualityScore:  quality,
		IsLive:        liveness.IsLive,
		LivenessScore: liveness.Score,
	}

	if quality < s.cfg.QualityThreshold {
		result.Verdict = types.VerdictRejected
		result.Reason = types.ReasonLowQuality
		return result, true
	}
	if !liveness.IsLive {
		result.Verdict = types.VerdictRejected
		result.Reason = types.ReasonLivenessFailed
		return result, true
	}
	return result, false
}

// conclude records the attempt in the audit sink and metrics, then returns
// the result unchanged.
func (s *FaceService) conclude(ctx context.Context, employeeID *string, device types.DeviceMeta, result *types.VerificationResult) *types.VerificationResult {
	action := entities.ActionVerifyFailed
	if result.Verdict == types.VerdictAccepted {
		action = entities.ActionVerifySuccess
	}
	s.recordAttempt(ctx, device, entities.VerificationLog{
		EmployeeID:    employeeID,
		Action:        action,
		Verdict:       string(result.Verdict),
		Reason:        string(result.Reason),
		Similarity:    result.Similarity,
		QualityScore:  result.QualityScore,
		LivenessScore: result.LivenessScore,
	})
	metrics.RecordVerification(string(result.Verdict), string(result.Reason))
	return result
}

func (s *FaceService) recordAttempt(ctx context.Context, device types.DeviceMeta, attempt entities.VerificationLog) {
	if s.attempts == nil {
		return
	}
	if device.ID != "" {
		attempt.DeviceID = utils.GetStringPointer(device.ID)
	}
	if device.Name != "" {
		attempt.DeviceName = utils.GetStringPointer(device.Name)
	}
	if err := s.attempts.Record(ctx, attempt); err != nil {
		logger.Error("failed to write verification log", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "action",
			Data: attempt.Action,
		})
	}
}

func (s *FaceService) invalidateStats() {
	if s.stats == nil {
		return
	}
	s.stats.DeleteOne(statisticsCacheKey)
}
