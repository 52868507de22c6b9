package routev1

import (
	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/controller"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	middlewares "attendly.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func AttendanceRouter(router *gin.RouterGroup) {
	attendanceRouter := router.Group("/attendance")
	{
		attendanceRouter.POST("/check-in", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CheckInRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CheckIn(&interfaces.ApplicationContext[dto.CheckInRequest]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		attendanceRouter.POST("/check-out", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CheckOutRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CheckOut(&interfaces.ApplicationContext[dto.CheckOutRequest]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		attendanceRouter.POST("/manual", middlewares.ApproverAuthMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ManualEntryRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ManualEntry(&interfaces.ApplicationContext[dto.ManualEntryRequest]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
			})
		})

		attendanceRouter.GET("/status", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var query dto.AttendanceQueryRequest
			if err := ctx.ShouldBindQuery(&query); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.AttendanceStatus(&interfaces.ApplicationContext[dto.AttendanceQueryRequest]{
				Ctx:      ctx,
				Body:     &query,
				Keys:     ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
			})
		})

		attendanceRouter.GET("/history", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var query dto.AttendanceQueryRequest
			if err := ctx.ShouldBindQuery(&query); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.AttendanceHistory(&interfaces.ApplicationContext[dto.AttendanceQueryRequest]{
				Ctx:      ctx,
				Body:     &query,
				Keys:     ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
			})
		})

		attendanceRouter.GET("/statistics", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var query dto.AttendanceQueryRequest
			if err := ctx.ShouldBindQuery(&query); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.AttendanceStatistics(&interfaces.ApplicationContext[dto.AttendanceQueryRequest]{
				Ctx:      ctx,
				Body:     &query,
				Keys:     ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
			})
		})
	}
}
