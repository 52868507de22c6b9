package controller

import (
	"errors"
	"net/http"

	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	"attendly.io/application/services/facerecognition"
	"attendly.io/infrastructure/biometric/types"
	server_response "attendly.io/infrastructure/serverResponse"
	"attendly.io/infrastructure/validator"
)

// deviceMeta carries the middleware-captured device identity into the
// audit trail.
func deviceMeta(deviceID string, deviceName string) types.DeviceMeta {
	return types.DeviceMeta{ID: deviceID, Name: deviceName}
}

// RegisterFace enrolls an employee's face template.
func RegisterFace(ctx *interfaces.ApplicationContext[dto.FaceRegistrationRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	template, err := facerecognition.Service.Register(reqCtx, ctx.Body.EmployeeID, ctx.Body.Sample, deviceMeta(ctx.DeviceID, ctx.DeviceName))
	if err != nil {
		respondFaceServiceError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "face registered", template, nil)
}

// UpdateFace replaces an existing enrollment.
func UpdateFace(ctx *interfaces.ApplicationContext[dto.FaceRegistrationRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	template, err := facerecognition.Service.UpdateTemplate(reqCtx, ctx.Body.EmployeeID, ctx.Body.Sample, deviceMeta(ctx.DeviceID, ctx.DeviceName))
	if err != nil {
		respondFaceServiceError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face template updated", template, nil)
}

// DeleteFace removes an enrollment.
func DeleteFace(ctx *interfaces.ApplicationContext[dto.FaceDeletionRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	if err := facerecognition.Service.DeleteTemplate(reqCtx, ctx.Body.EmployeeID, deviceMeta(ctx.DeviceID, ctx.DeviceName)); err != nil {
		respondFaceServiceError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face template deleted", nil, nil)
}

// VerifyFace runs a 1:1 verification and returns the verdict. Soft
// rejections are ordinary responses, not errors.
func VerifyFace(ctx *interfaces.ApplicationContext[dto.FaceVerificationRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	result, err := facerecognition.Service.Verify(reqCtx, ctx.Body.EmployeeID, ctx.Body.Sample, deviceMeta(ctx.DeviceID, ctx.DeviceName))
	if err != nil {
		respondFaceServiceError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "verification completed", result, nil)
}

// IdentifyFace runs a 1:N identification against every enrolled template.
func IdentifyFace(ctx *interfaces.ApplicationContext[dto.FaceIdentificationRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	result, err := facerecognition.Service.Identify(reqCtx, ctx.Body.Sample, deviceMeta(ctx.DeviceID, ctx.DeviceName))
	if err != nil {
		respondFaceServiceError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "identification completed", result, nil)
}

// IdentifyFaceBatch identifies a list of buffered captures in one call.
// Each sample succeeds or fails on its own.
func IdentifyFaceBatch(ctx *interfaces.ApplicationContext[dto.FaceBatchIdentificationRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	results, err := facerecognition.Service.IdentifyBatch(reqCtx, ctx.Body.Samples, deviceMeta(ctx.DeviceID, ctx.DeviceName))
	if err != nil {
		respondFaceServiceError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "batch identification completed", results, nil)
}

// FaceStatistics reports enrollment coverage and recent accuracy.
func FaceStatistics(ctx *interfaces.ApplicationContext[any]) {
	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	stats, err := facerecognition.Service.GetStatistics(reqCtx)
	if err != nil {
		apperrors.UnavailableError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face recognition statistics", stats, nil)
}

func respondFaceServiceError(ctx interface{}, err error) {
	switch {
	case errors.Is(err, facerecognition.ErrInvalidDescriptor),
		errors.Is(err, facerecognition.ErrLowConfidence):
		apperrors.ClientError(ctx, err.Error(), nil)
	case errors.Is(err, facerecognition.ErrAlreadyRegistered):
		apperrors.ConflictError(ctx, err.Error())
	case errors.Is(err, facerecognition.ErrNotRegistered):
		apperrors.NotFoundError(ctx, err.Error())
	default:
		apperrors.UnavailableError(ctx, err)
	}
}
