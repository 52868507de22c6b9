package entities

import (
	"time"

	"attendly.io/application/utils"
	"attendly.io/infrastructure/geofence"
)

// WorkSchedule is the expected shift for an employee, in "15:04" wall-clock
// strings interpreted in the configured attendance timezone.
type WorkSchedule struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// This represents an employee enrolled on the platform. The attendance core
// reads identity, active status, assigned site and schedule; everything else
// about an employee lives in the wider HR system.
type Employee struct {
	FirstName string  `bson:"firstName" json:"firstName"`
	LastName  string  `bson:"lastName" json:"lastName"`
	Email     *string `bson:"email" json:"email,omitempty"`

	Active bool `bson:"active" json:"active"`

	// Location is the site the employee is geofenced against. Nil means no
	// location restriction applies.
	Location *geofence.Location `bson:"location" json:"location"`

	// LocationVerificationDisabled exempts this employee from geofence
	// checks, e.g. field staff.
	LocationVerificationDisabled bool `bson:"locationVerificationDisabled" json:"locationVerificationDisabled"`

	Schedule *WorkSchedule `bson:"schedule" json:"schedule"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model Employee) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
