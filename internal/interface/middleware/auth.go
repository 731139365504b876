package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/votiy-api/pkg/helpers"
	"github.com/oksasatya/votiy-api/pkg/response"
)

// Gin context keys set by Auth.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Auth requires a valid bearer token and puts its claims in the Gin context.
// Tokens are stateless; nothing is looked up server side.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Access token required", nil)
			return
		}
		claims, err := jwt.Verify(token)
		switch {
		case err == nil:
		case errors.Is(err, helpers.ErrTokenExpired):
			response.Error(c, http.StatusUnauthorized, "Token expired", nil)
			return
		case errors.Is(err, helpers.ErrTokenInvalid):
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			return
		default:
			response.Error(c, http.StatusInternalServerError, "Token verification failed", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuth sets the claims when a valid token is present and never rejects.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.Verify(token); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxUserEmailKey, claims.Email)
			}
		}
		c.Next()
	}
}
