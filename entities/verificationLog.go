package entities

import (
	"time"

	"github.com/google/uuid"
)

// VerificationAction distinguishes what produced a log row.
type VerificationAction string

const (
	ActionRegister      VerificationAction = "register"
	ActionUpdate        VerificationAction = "update"
	ActionDelete        VerificationAction = "delete"
	ActionVerifySuccess VerificationAction = "verify_success"
	ActionVerifyFailed  VerificationAction = "verify_failed"
)

// VerificationLog is the append-only audit row written for every
// registration and verification attempt. Compliance reads it; nothing in
// the matching path ever does.
type VerificationLog struct {
	EmployeeID *string            `bson:"employeeID" json:"employeeID"`
	Action     VerificationAction `bson:"action" json:"action"`

	Verdict       string  `bson:"verdict" json:"verdict"`
	Reason        string  `bson:"reason" json:"reason"`
	Similarity    float64 `bson:"similarity" json:"similarity"`
	QualityScore  float64 `bson:"qualityScore" json:"qualityScore"`
	LivenessScore float64 `bson:"livenessScore" json:"livenessScore"`

	DeviceID   *string `bson:"deviceID" json:"deviceID"`
	DeviceName *string `bson:"deviceName" json:"deviceName"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func (model VerificationLog) ParseModel() any {
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
		if model.ID == "" {
			model.ID = uuid.NewString()
		}
	}
	return &model
}
