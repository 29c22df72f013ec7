package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var middlewareTracer = otel.Tracer("auth-middleware")

// Gin context keys set by RequireAuth.
const (
	UserIDKey    = "user_id"
	UsernameKey  = "username"
	UserRolesKey = "user_roles"
	ClaimsKey    = "claims"
)

// ExtractBearerToken returns the token of a "Bearer <token>" header value.
func ExtractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireAuth is a Gin middleware that validates JWT tokens
func RequireAuth(jwtManager *JWTManager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := middlewareTracer.Start(c.Request.Context(), "auth.require_auth_gin")
		defer span.End()

		header := c.GetHeader("Authorization")
		if header == "" {
			span.SetAttributes(attribute.Bool("auth.token_present", false))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header", "code": "UNAUTHORIZED"})
			return
		}

		token := ExtractBearerToken(header)
		if token == "" {
			span.SetAttributes(attribute.Bool("auth.token_present", false))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format", "code": "UNAUTHORIZED"})
			return
		}
		span.SetAttributes(attribute.Bool("auth.token_present", true))

		claims, err := jwtManager.ValidateToken(ctx, token)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("auth.token_valid", false))
			log.Warn("invalid token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "UNAUTHORIZED"})
			return
		}

		span.SetAttributes(
			attribute.Bool("auth.token_valid", true),
			attribute.String("user.id", claims.UserID),
			attribute.String("user.username", claims.Username),
		)

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(UserRolesKey, claims.Roles)
		c.Set(ClaimsKey, claims)

		log.Debug("user authenticated",
			zap.String("user_id", claims.UserID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)

		c.Next()
	}
}

// RequireRole is a Gin middleware that checks if authenticated user has required role.
// Must run after RequireAuth.
func RequireRole(role string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := middlewareTracer.Start(c.Request.Context(), "auth.require_role_gin")
		defer span.End()

		span.SetAttributes(attribute.String("required.role", role))

		rolesValue, exists := c.Get(UserRolesKey)
		if !exists {
			span.SetAttributes(attribute.Bool("auth.role_authorized", false))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User roles not found"})
			return
		}

		roles, ok := rolesValue.([]string)
		if !ok {
			span.SetAttributes(attribute.Bool("auth.role_authorized", false))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid user roles"})
			return
		}

		for _, userRole := range roles {
			if userRole == role {
				span.SetAttributes(attribute.Bool("auth.role_authorized", true))
				c.Next()
				return
			}
		}

		userID, _ := c.Get(UserIDKey)
		span.SetAttributes(attribute.Bool("auth.role_authorized", false))
		log.Warn("insufficient permissions", zap.Any("user_id", userID), zap.String("required_role", role))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
