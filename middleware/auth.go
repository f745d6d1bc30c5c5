package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"totalhub-web/utils"
)

const tokenContextKey = "authToken"

// LoginPath is where unauthenticated dashboard callers are sent.
const LoginPath = "/auth/login"

// RequireAuth guards the dashboard API. The bearer token comes from the
// session cookie or the Authorization header; a missing or invalid token
// answers 401 with a login redirect hint. Only signature and expiry are
// checked here — authorization policy stays with the backend, which sees
// the same token on every forwarded call.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.JSONRedirect(c, http.StatusUnauthorized, "authentication required", LoginPath)
			c.Abort()
			return
		}

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			utils.JSONRedirect(c, http.StatusUnauthorized, "session expired", LoginPath)
			c.Abort()
			return
		}

		c.Set(tokenContextKey, token)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// TokenFromContext is the request-scoped token accessor handed to every
// backend-calling operation. Empty outside an authenticated request.
func TokenFromContext(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}
