package middlewares

import (
	"os"
	"strings"

	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var approverRoles = []string{"admin", "hr"}

// ApproverAuthMiddleware guards the manual-entry route. It validates the
// bearer token and stashes the approver's identity for the audit fields.
func ApproverAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.AuthenticationError(ctx, "missing authorization token")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
		})
		if err != nil || !token.Valid {
			apperrors.AuthenticationError(ctx, "invalid authorization token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			apperrors.AuthenticationError(ctx, "invalid authorization token")
			return
		}
		approverID, _ := claims["sub"].(string)
		if approverID == "" {
			apperrors.AuthenticationError(ctx, "token has no subject")
			return
		}
		role, _ := claims["role"].(string)
		if !utils.HasItemString(&approverRoles, role) {
			apperrors.AuthenticationError(ctx, "approver role required")
			return
		}

		ctx.Set("ApproverID", approverID)
		ctx.Next()
	}
}
