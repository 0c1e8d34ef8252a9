package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/team-maroon/recipify/pkg/response"
)

const userIDKey = "user_id"

type claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// IssueToken signs a JWT carrying the user id.
func IssueToken(secret, userID string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	})
	return token.SignedString([]byte(secret))
}

// Auth requires a valid bearer token and stores the viewer id on the context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := parseBearer(c, secret)
		if id == "" {
			response.Unauthorized(c, "authentication required")
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// OptionalAuth stores the viewer id when a valid token is present and lets
// anonymous requests through. Read-only views take the viewer as optional.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := parseBearer(c, secret); id != "" {
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

// UserID returns the authenticated viewer id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func parseBearer(c *gin.Context, secret string) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	var cl claims
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), &cl, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return cl.UserID
}
