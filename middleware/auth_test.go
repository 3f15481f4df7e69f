package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/community-board/api-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticParser map[string]uint

func (p staticParser) ParseAccess(raw string) (uint, error) {
	if id, ok := p[raw]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

func newAuthRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		c.String(http.StatusOK, utils.ActorID(c))
	})
	return r
}

func get(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter(AuthMiddleware(staticParser{"good": 42}))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "Invalid token format"},
		{"no token", "Bearer ", http.StatusUnauthorized, "Invalid token format"},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer good", http.StatusOK, "42"},
		{"lower case scheme", "bearer good", http.StatusOK, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthRouter(OptionalAuth(staticParser{"good": 7}))

	w := get(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Body.String())

	w = get(r, "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"errorCode":"UNAUTHORIZED"`)
}
