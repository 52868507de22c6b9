package biometric

import (
	"math"

	"attendly.io/infrastructure/biometric/types"
)

// QualityWeights controls how much each capture signal contributes to the
// overall quality score. Weights should sum to 1; the score is clamped to
// [0,1] regardless.
type QualityWeights struct {
	Confidence float64 `koanf:"confidence"`
	FaceSize   float64 `koanf:"face_size"`
	Pose       float64 `koanf:"pose"`
	Lighting   float64 `koanf:"lighting"`
	Blur       float64 `koanf:"blur"`

	// FaceAreaNormalizer is the pixel area at which a face bounding box is
	// considered full-size. Smaller boxes score proportionally lower.
	FaceAreaNormalizer float64 `koanf:"face_area_normalizer"`
}

// DefaultQualityWeights mirrors the tuning the recognition model was
// validated against.
func DefaultQualityWeights() QualityWeights {
	return QualityWeights{
		Confidence:         0.3,
		FaceSize:           0.2,
		Pose:               0.2,
		Lighting:           0.15,
		Blur:               0.15,
		FaceAreaNormalizer: 10000,
	}
}

type LivenessConfig struct {
	Threshold float64 `koanf:"threshold"`

	// Penalty multipliers applied when a signal indicates a possible spoof.
	MissingBlinkPenalty      float64 `koanf:"missing_blink_penalty"`
	StaticHeadPenalty        float64 `koanf:"static_head_penalty"`
	FlatExpressionPenalty    float64 `koanf:"flat_expression_penalty"`
	MinHeadMovementMagnitude float64 `koanf:"min_head_movement_magnitude"`
}

func DefaultLivenessConfig() LivenessConfig {
	return LivenessConfig{
		Threshold:                0.8,
		MissingBlinkPenalty:      0.7,
		StaticHeadPenalty:        0.8,
		FlatExpressionPenalty:    0.9,
		MinHeadMovementMagnitude: 0.1,
	}
}

// ScoreQuality combines extraction confidence, relative face size, pose
// deviation from frontal, lighting and sharpness into a single [0,1] score.
// Signals the client did not report simply contribute nothing, matching how
// the capture SDKs degrade on older devices.
func ScoreQuality(sample types.CaptureSample, weights QualityWeights) float64 {
	score := sample.Confidence * weights.Confidence

	if sample.FaceBounds != nil {
		faceArea := sample.FaceBounds.Width * sample.FaceBounds.Height
		sizeScore := math.Min(faceArea/weights.FaceAreaNormalizer, 1.0)
		score += sizeScore * weights.FaceSize
	}

	if sample.Pose != nil {
		poseScore := 1.0 - (math.Abs(sample.Pose.Yaw)+math.Abs(sample.Pose.Pitch))/180
		score += math.Max(poseScore, 0) * weights.Pose
	}

	if sample.LightingScore != nil {
		score += *sample.LightingScore * weights.Lighting
	}

	if sample.BlurScore != nil {
		score += (1.0 - *sample.BlurScore) * weights.Blur
	}

	return math.Max(0, math.Min(score, 1.0))
}

// ScoreLiveness estimates whether the capture came from a live person.
// It starts from a perfect score and applies multiplicative penalties for
// each anti-spoof signal that is absent or flat, then folds in the
// texture/anti-spoof score when reported.
func ScoreLiveness(sample types.CaptureSample, cfg LivenessConfig) types.LivenessResult {
	score := 1.0

	if sample.BlinkDetected != nil && !*sample.BlinkDetected {
		score *= cfg.MissingBlinkPenalty
	}

	if sample.HeadMovement != nil && *sample.HeadMovement <= cfg.MinHeadMovementMagnitude {
		score *= cfg.StaticHeadPenalty
	}

	if sample.Expressions != nil {
		hasExpression := false
		for _, intensity := range sample.Expressions {
			if intensity > 0.5 {
				hasExpression = true
				break
			}
		}
		if !hasExpression {
			score *= cfg.FlatExpressionPenalty
		}
	}

	if sample.TextureScore != nil {
		score *= math.Min(*sample.TextureScore, 1.0)
	}

	return types.LivenessResult{
		IsLive: score >= cfg.Threshold,
		Score:  score,
	}
}
