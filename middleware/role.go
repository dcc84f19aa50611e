package middleware

import (
	"net/http"
	"strings"

	"bookingops/models"
	"bookingops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxRole    = "role"
	ctxSubject = "subject"
)

// RoleAuthMiddleware verifies the bearer role token and lets only the allowed roles through.
func RoleAuthMiddleware(secret []byte, allowed ...models.AuditRole) gin.HandlerFunc {
	permitted := make(map[models.AuditRole]bool, len(allowed))
	for _, r := range allowed {
		permitted[r] = true
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ParseRoleToken(secret, tokenString)
		if err != nil {
			utils.GetLogger().Debug("Rejected role token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid token"})
			return
		}

		role := models.AuditRole(claims.Role)
		if !permitted[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Message: "Forbidden",
				Details: "role " + claims.Role + " may not access this resource",
			})
			return
		}

		c.Set(ctxRole, role)
		c.Set(ctxSubject, claims.Subject)
		c.Next()
	}
}

// RoleFromContext returns the role resolved by RoleAuthMiddleware.
func RoleFromContext(c *gin.Context) (models.AuditRole, bool) {
	v, ok := c.Get(ctxRole)
	if !ok {
		return "", false
	}
	role, ok := v.(models.AuditRole)
	return role, ok
}
