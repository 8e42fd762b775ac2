package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"veriflow.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AccountIDKey is the context key for the authenticated account ID
	AccountIDKey = "accountId"
	// AccountEmailKey is the context key for the authenticated account email
	AccountEmailKey = "accountEmail"
)

// AuthMiddleware creates a new authentication middleware
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			log.Printf("[AuthMiddleware] Request to %s failed: Authorization header is missing", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			log.Printf("[AuthMiddleware] Request to %s failed: Invalid authorization format", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("[AuthMiddleware] Request to %s failed: %v", c.Request.URL.Path, err)
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		c.Set(AccountEmailKey, claims.Email)

		c.Next()
	}
}

// GetAccountID gets the authenticated account ID from context
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return accountID.(uuid.UUID), true
}

// GetAccountEmail gets the authenticated account email from context
func GetAccountEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(AccountEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}
