package dto

import (
	"time"

	"attendly.io/infrastructure/biometric/types"
	"attendly.io/infrastructure/geofence"
)

// CheckInRequest commits a face-verified, geofenced check-in.
type CheckInRequest struct {
	EmployeeID string              `json:"employeeID" validate:"required"`
	Sample     types.CaptureSample `json:"sample" validate:"required"`
	Location   *geofence.GeoPoint  `json:"location"`
}

// CheckOutRequest commits the matching check-out.
type CheckOutRequest struct {
	EmployeeID string              `json:"employeeID" validate:"required"`
	Sample     types.CaptureSample `json:"sample" validate:"required"`
	Location   *geofence.GeoPoint  `json:"location"`
}

// ManualEntryRequest records an approver-backed entry without biometric or
// geofence checks. The approver comes from the auth token, not the payload.
type ManualEntryRequest struct {
	EmployeeID string    `json:"employeeID" validate:"required"`
	Kind       string    `json:"kind" validate:"required,oneof=check_in check_out"`
	Timestamp  time.Time `json:"timestamp" validate:"required"`
	Reason     string    `json:"reason" validate:"required,min=3"`
}

// AttendanceQueryRequest filters history and statistics lookups.
type AttendanceQueryRequest struct {
	EmployeeID string `form:"employeeID" validate:"required"`
	DateFrom   string `form:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	Status     string `form:"status" validate:"omitempty,oneof=present late early_departure incomplete absent"`
}
