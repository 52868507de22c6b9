package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	"attendly.io/application/services/attendance"
	"attendly.io/application/services/facerecognition"
	"attendly.io/entities"
	"attendly.io/infrastructure/config"
	server_response "attendly.io/infrastructure/serverResponse"
	"attendly.io/infrastructure/validator"
	"github.com/gin-gonic/gin"
)

// requestCtx derives the engine's bounded context from the gin request.
// The store write is the single commit point; when the deadline fires the
// request fails whole with no partial attendance state.
func requestCtx(raw interface{}) (context.Context, context.CancelFunc) {
	parent := context.Background()
	if ginCtx, ok := raw.(*gin.Context); ok {
		parent = ginCtx.Request.Context()
	}
	timeout := time.Duration(config.Get().Attendance.RequestTimeoutSeconds) * time.Second
	return context.WithTimeout(parent, timeout)
}

// CheckIn verifies the capture, validates the geofence and commits the
// day's check-in.
func CheckIn(ctx *interfaces.ApplicationContext[dto.CheckInRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	verification, err := facerecognition.Service.Verify(reqCtx, ctx.Body.EmployeeID, ctx.Body.Sample, deviceMeta(ctx.DeviceID, ctx.DeviceName))
	if err != nil {
		respondFaceServiceError(ctx.Ctx, err)
		return
	}

	record, err := attendance.Service.CheckIn(reqCtx, ctx.Body.EmployeeID, verification, ctx.Body.Location)
	if err != nil {
		respondAttendanceError(ctx.Ctx, err, verification)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "checked in", record, nil)
}

// CheckOut verifies the capture and commits the day's check-out.
func CheckOut(ctx *interfaces.ApplicationContext[dto.CheckOutRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	verification, err := facerecognition.Service.Verify(reqCtx, ctx.Body.EmployeeID, ctx.Body.Sample, deviceMeta(ctx.DeviceID, ctx.DeviceName))
	if err != nil {
		respondFaceServiceError(ctx.Ctx, err)
		return
	}

	record, err := attendance.Service.CheckOut(reqCtx, ctx.Body.EmployeeID, verification, ctx.Body.Location)
	if err != nil {
		respondAttendanceError(ctx.Ctx, err, verification)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "checked out", record, nil)
}

// ManualEntry records an approver-backed check-in or check-out without
// biometric or geofence checks.
func ManualEntry(ctx *interfaces.ApplicationContext[dto.ManualEntryRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	approverID, _ := ctx.GetContextData("ApproverID").(string)
	if approverID == "" {
		apperrors.AuthenticationError(ctx.Ctx, "approver identity missing")
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	record, err := attendance.Service.ManualEntry(
		reqCtx,
		ctx.Body.EmployeeID,
		attendance.ManualKind(ctx.Body.Kind),
		ctx.Body.Timestamp,
		ctx.Body.Reason,
		approverID,
	)
	if err != nil {
		respondAttendanceError(ctx.Ctx, err, nil)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "manual entry recorded", record, nil)
}

// AttendanceStatus reports today's snapshot for an employee.
func AttendanceStatus(ctx *interfaces.ApplicationContext[dto.AttendanceQueryRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	status, err := attendance.Service.Status(reqCtx, ctx.Body.EmployeeID)
	if err != nil {
		apperrors.UnavailableError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance status", status, nil)
}

// AttendanceHistory lists an employee's records, newest first.
func AttendanceHistory(ctx *interfaces.ApplicationContext[dto.AttendanceQueryRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	records, err := attendance.Service.History(reqCtx, ctx.Body.EmployeeID, attendance.HistoryFilter{
		DateFrom: ctx.Body.DateFrom,
		DateTo:   ctx.Body.DateTo,
		Status:   entities.AttendanceStatus(ctx.Body.Status),
	})
	if err != nil {
		apperrors.UnavailableError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance history", records, nil)
}

// AttendanceStatistics aggregates an employee's attendance over a range.
func AttendanceStatistics(ctx *interfaces.ApplicationContext[dto.AttendanceQueryRequest]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	reqCtx, cancel := requestCtx(ctx.Ctx)
	defer cancel()
	stats, err := attendance.Service.Statistics(reqCtx, ctx.Body.EmployeeID, attendance.HistoryFilter{
		DateFrom: ctx.Body.DateFrom,
		DateTo:   ctx.Body.DateTo,
		Status:   entities.AttendanceStatus(ctx.Body.Status),
	})
	if err != nil {
		apperrors.UnavailableError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance statistics", stats, nil)
}

func respondAttendanceError(ctx interface{}, err error, verification interface{}) {
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		apperrors.ConflictError(ctx, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn):
		apperrors.ConflictError(ctx, err.Error())
	case errors.Is(err, attendance.ErrEmployeeInactive):
		apperrors.VerificationRejected(ctx, err.Error(), verification)
	case errors.Is(err, attendance.ErrVerificationFailed):
		apperrors.VerificationRejected(ctx, err.Error(), verification)
	case errors.Is(err, attendance.ErrOutOfGeofence):
		apperrors.VerificationRejected(ctx, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		apperrors.TimeoutError(ctx)
	default:
		apperrors.UnavailableError(ctx, err)
	}
}
