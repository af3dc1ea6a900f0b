package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/utils"
)

const (
	ContextUsername = "username"
	ContextRole     = "role"
	ContextToken    = "token"
)

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// AuthMiddleware requires a valid, non-revoked admin token.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, err)
			return
		}
		if claims.Role != models.RoleAdmin {
			utils.AbortError(c, http.StatusForbidden, errors.New("you do not have permission"))
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}

// AdminGate applies AuthMiddleware only when required is set. Without it
// staff routes stay open.
func AdminGate(required bool, tokens *utils.TokenManager) gin.HandlerFunc {
	if !required {
		return func(c *gin.Context) { c.Next() }
	}
	return AuthMiddleware(tokens)
}
