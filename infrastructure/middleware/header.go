package middlewares

import (
	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/interfaces"
	"attendly.io/infrastructure/useragent"
	"github.com/gin-gonic/gin"
)

// UserAgentMiddleware captures the device identity headers every request
// must carry. The device metadata ends up on verification audit rows.
func UserAgentMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		agent := ctx.GetHeader("User-Agent")
		if agent == "" {
			apperrors.ClientError(ctx, "user agent header missing", nil)
			return
		}
		deviceID := ctx.GetHeader("X-Device-Id")
		if deviceID == "" {
			apperrors.MalformedHeader(ctx)
			return
		}

		agentDetails := useragent.Parse(agent)
		appContext := &interfaces.ApplicationContext[any]{
			Ctx:        ctx,
			Keys:       ctx.Keys,
			Header:     ctx.Request.Header,
			DeviceID:   deviceID,
			DeviceName: agentDetails.DisplayName(),
			UserAgent:  agent,
		}
		ctx.Set("AppContext", appContext)
		ctx.Next()
	}
}
