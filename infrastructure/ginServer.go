package infrastructure

import (
	"fmt"
	"net/http"
	"os"
	"time"

	apperrors "attendly.io/application/appErrors"
	"attendly.io/infrastructure/config"
	"attendly.io/infrastructure/logger"
	"attendly.io/infrastructure/metrics"
	middlewares "attendly.io/infrastructure/middleware"
	ratelimit "attendly.io/infrastructure/ratelimit"
	webRoutev1 "attendly.io/infrastructure/routes/ginRouter/web/v1"
	server_response "attendly.io/infrastructure/serverResponse"
	startup "attendly.io/infrastructure/startUp"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ginServer struct{}

func (s *ginServer) Start() {
	startup.StartServices()
	defer startup.CleanUpServices()

	server := gin.Default()
	serverCfg := config.Get().Server
	corsConfig := cors.Config{
		AllowOrigins:     serverCfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-Id", "User-Agent"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	server.Use(cors.New(corsConfig))
	server.Use(ratelimit.TokenBucketPerIP())

	server.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := server.Group("/api")
	v1.Use(middlewares.UserAgentMiddleware())

	routerV1 := v1.Group("/v1")
	{
		webRoutev1.FaceRouter(routerV1)
		webRoutev1.AttendanceRouter(routerV1)
	}

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil)
	})

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL))
	})

	port := serverCfg.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	logger.Info(fmt.Sprintf("Server starting on PORT %s", port))
	server.Run(fmt.Sprintf(":%s", port))
}
