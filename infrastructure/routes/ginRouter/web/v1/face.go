package routev1

import (
	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/controller"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	"github.com/gin-gonic/gin"
)

func FaceRouter(router *gin.RouterGroup) {
	faceRouter := router.Group("/faces")
	{
		faceRouter.POST("/register", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceRegistrationRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.RegisterFace(&interfaces.ApplicationContext[dto.FaceRegistrationRequest]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		faceRouter.PUT("/template", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceRegistrationRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateFace(&interfaces.ApplicationContext[dto.FaceRegistrationRequest]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		faceRouter.DELETE("/template", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceDeletionRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.DeleteFace(&interfaces.ApplicationContext[dto.FaceDeletionRequest]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
			})
		})

		faceRouter.POST("/verify", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceVerificationRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyFace(&interfaces.ApplicationContext[dto.FaceVerificationRequest]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		faceRouter.POST("/identify", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceIdentificationRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.IdentifyFace(&interfaces.ApplicationContext[dto.FaceIdentificationRequest]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		faceRouter.POST("/identify/batch", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceBatchIdentificationRequest
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.IdentifyFaceBatch(&interfaces.ApplicationContext[dto.FaceBatchIdentificationRequest]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
				UserAgent:  appContext.UserAgent,
			})
		})

		faceRouter.GET("/statistics", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FaceStatistics(&interfaces.ApplicationContext[any]{
				Ctx:        ctx,
				Keys:       ctx.Keys,
				DeviceID:   appContext.DeviceID,
				DeviceName: appContext.DeviceName,
			})
		})
	}
}
