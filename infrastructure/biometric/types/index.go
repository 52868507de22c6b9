package types

// Verdict is the outcome class of a verification attempt.
type Verdict string

const (
	VerdictAccepted Verdict = "accepted"
	VerdictRejected Verdict = "rejected"
	VerdictNoMatch  Verdict = "no_match"
)

// Reason qualifies a non-accepted verdict.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonEmployeeInactive Reason = "employee_inactive"
	ReasonLowQuality       Reason = "low_quality"
	ReasonLivenessFailed   Reason = "liveness_failed"
	ReasonNotRegistered    Reason = "not_registered"
	ReasonBelowThreshold   Reason = "below_threshold"
)

type Pose struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

type FaceBounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CaptureSample is the transient input of one verification or registration
// attempt. The descriptor comes from the upstream extraction model; the rest
// is capture metadata reported by the client scorer. Optional signals are
// pointers so "not reported" is distinguishable from zero.
type CaptureSample struct {
	Descriptor    []float64          `json:"descriptor" validate:"required,descriptor"`
	Confidence    float64            `json:"confidence" validate:"min=0,max=1"`
	Pose          *Pose              `json:"pose"`
	FaceBounds    *FaceBounds        `json:"faceBounds"`
	LightingScore *float64           `json:"lightingScore"`
	BlurScore     *float64           `json:"blurScore"`
	BlinkDetected *bool              `json:"blinkDetected"`
	HeadMovement  *float64           `json:"headMovement"`
	Expressions   map[string]float64 `json:"expressions"`
	TextureScore  *float64           `json:"textureScore"`
}

// DeviceMeta identifies the capture device, extracted from the request
// headers by middleware. It rides along to the audit trail and never
// participates in matching.
type DeviceMeta struct {
	ID   string
	Name string
}

type LivenessResult struct {
	IsLive bool    `json:"isLive"`
	Score  float64 `json:"score"`
}

// VerificationResult is produced exactly once per attempt and never mutated.
type VerificationResult struct {
	MatchedEmployeeID *string `json:"matchedEmployeeID"`
	Similarity        float64 `json:"similarity"`
	QualityScore      float64 `json:"qualityScore"`
	IsLive            bool    `json:"isLive"`
	LivenessScore     float64 `json:"livenessScore"`
	Verdict           Verdict `json:"verdict"`
	Reason            Reason  `json:"reason"`
}
