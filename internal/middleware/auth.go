package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"eballot/internal/auth"
	"eballot/internal/models"
)

const claimsKey = "claims"

// verifyBearer parses and verifies the Authorization header. On failure
// it aborts the request with a 401 and reports false; it never advances
// the handler chain, so callers stay in control of c.Next().
func verifyBearer(c *gin.Context, tokens *auth.TokenManager) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
		return nil, false
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	claims, err := tokens.Verify(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return nil, false
	}
	return claims, true
}

// RequireAuth ensures a valid bearer token is present and stores the
// verified claims in the request context for downstream handlers.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyBearer(c, tokens)
		if !ok {
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin ensures the token is valid and the caller has the admin
// role. A flat role-equality check, nothing more.
func RequireAdmin(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyBearer(c, tokens)
		if !ok {
			return
		}
		if claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Insufficient permissions"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom extracts the verified claims placed by RequireAuth.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
