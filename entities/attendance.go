package entities

import (
	"time"

	"attendly.io/application/utils"
	"attendly.io/infrastructure/geofence"
)

// AttendanceStatus is the derived state of a day's record.
type AttendanceStatus string

const (
	StatusPresent        AttendanceStatus = "present"
	StatusLate           AttendanceStatus = "late"
	StatusEarlyDeparture AttendanceStatus = "early_departure"
	StatusIncomplete     AttendanceStatus = "incomplete"
	StatusAbsent         AttendanceStatus = "absent"
)

// AttendanceEvent is one half of a day's record: the check-in or check-out.
type AttendanceEvent struct {
	Time           time.Time          `bson:"time" json:"time"`
	Location       *geofence.GeoPoint `bson:"location" json:"location"`
	FaceConfidence *float64           `bson:"faceConfidence" json:"faceConfidence"`
}

// Attendance is one row per (employeeID, date). Date is the calendar day in
// the configured attendance timezone, formatted 2006-01-02; the pair carries
// a unique compound index so two concurrent check-ins can never both insert.
type Attendance struct {
	EmployeeID string `bson:"employeeID" json:"employeeID"`
	Date       string `bson:"date" json:"date"`

	CheckIn  *AttendanceEvent `bson:"checkIn" json:"checkIn"`
	CheckOut *AttendanceEvent `bson:"checkOut" json:"checkOut"`

	Status        AttendanceStatus `bson:"status" json:"status"`
	WorkedHours   *float64         `bson:"workedHours" json:"workedHours"`
	OvertimeHours *float64         `bson:"overtimeHours" json:"overtimeHours"`

	IsManualEntry     bool    `bson:"isManualEntry" json:"isManualEntry"`
	ManualEntryReason *string `bson:"manualEntryReason" json:"manualEntryReason"`
	ManualEntryBy     *string `bson:"manualEntryBy" json:"manualEntryBy"`

	LocationVerified bool           `bson:"locationVerified" json:"locationVerified"`
	Metadata         map[string]any `bson:"metadata" json:"metadata"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model Attendance) ParseModel() any {
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
