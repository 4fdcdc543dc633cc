package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lmsplatform/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type staticAuth struct {
	token string
	id    domain.Identity
}

func (a staticAuth) Authenticate(token string) (domain.Identity, error) {
	if token != a.token {
		return domain.Identity{}, errors.New("bad token")
	}
	return a.id, nil
}

func newAuthRouter(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireAuth(auth), func(c *gin.Context) {
		id, _ := Identity(c)
		c.String(http.StatusOK, id.UserID.String())
	})
	r.GET("/page", OptionalAuth(auth), func(c *gin.Context) {
		if _, ok := Identity(c); !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, "known")
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	auth := staticAuth{token: "good", id: domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}}
	r := newAuthRouter(auth)

	cases := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"bearer", "Bearer good", "", http.StatusOK},
		{"cookie", "", "good", http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", "", http.StatusUnauthorized},
		{"bad token", "Bearer bad", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, auth.id.UserID.String(), w.Body.String())
			} else {
				assert.Equal(t, "Unauthorized", w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthRouter(staticAuth{token: "good", id: domain.Identity{UserID: uuid.New(), Role: domain.RoleAdmin}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, "anonymous", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "known", w.Body.String())
}
