package dto

import "attendly.io/infrastructure/biometric/types"

// FaceRegistrationRequest enrolls or updates an employee's face template.
type FaceRegistrationRequest struct {
	EmployeeID string              `json:"employeeID" validate:"required"`
	Sample     types.CaptureSample `json:"sample" validate:"required"`
}

// FaceVerificationRequest verifies a capture against a known employee.
type FaceVerificationRequest struct {
	EmployeeID string              `json:"employeeID" validate:"required"`
	Sample     types.CaptureSample `json:"sample" validate:"required"`
}

// FaceIdentificationRequest matches a capture against every enrolled
// template (kiosk mode).
type FaceIdentificationRequest struct {
	Sample types.CaptureSample `json:"sample" validate:"required"`
}

// FaceBatchIdentificationRequest identifies a list of captures in one call,
// e.g. a kiosk replaying attempts buffered while offline.
type FaceBatchIdentificationRequest struct {
	Samples []types.CaptureSample `json:"samples" validate:"required,min=1,dive"`
}

// FaceDeletionRequest removes an employee's enrollment.
type FaceDeletionRequest struct {
	EmployeeID string `json:"employeeID" validate:"required"`
}
