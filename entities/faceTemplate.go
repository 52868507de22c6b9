package entities

import (
	"time"

	"attendly.io/application/utils"
)

// FaceTemplate is the registered descriptor for an employee. One template
// per employee, enforced by a unique index on employeeID.
type FaceTemplate struct {
	EmployeeID string    `bson:"employeeID" json:"employeeID"`
	Descriptor []float64 `bson:"descriptor" json:"-"`

	// Confidence the extraction model reported at enrollment time.
	Confidence   float64 `bson:"confidence" json:"confidence"`
	QualityScore float64 `bson:"qualityScore" json:"qualityScore"`
	Algorithm    string  `bson:"algorithm" json:"algorithm"`
	ModelVersion string  `bson:"modelVersion" json:"modelVersion"`

	UpdateCount  int       `bson:"updateCount" json:"updateCount"`
	RegisteredAt time.Time `bson:"registeredAt" json:"registeredAt"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model FaceTemplate) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	if model.RegisteredAt.IsZero() {
		model.RegisteredAt = now
	}
	model.UpdatedAt = now
	return &model
}
