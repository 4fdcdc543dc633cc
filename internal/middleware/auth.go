package middleware

import (
	"net/http"
	"strings"

	"lmsplatform/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"

	// AccessCookie carries the access token for browser pages.
	AccessCookie = "access_token"
)

type Authenticator interface {
	Authenticate(accessToken string) (domain.Identity, error)
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, auth) {
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth records the caller when a valid token is present and lets the
// handler decide what to do otherwise.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, auth)
		c.Next()
	}
}

// Identity returns the caller stored by RequireAuth or OptionalAuth.
func Identity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}

func authenticate(c *gin.Context, auth Authenticator) bool {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		token, _ = c.Cookie(AccessCookie)
	}
	if token == "" {
		return false
	}

	id, err := auth.Authenticate(token)
	if err != nil {
		return false
	}
	c.Set(identityKey, id)
	return true
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
