package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kama_account_client/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	ok  bool
	err error
}

func (s stubValidator) ValidateTokenID(ctx context.Context, userID, tokenID string) (bool, error) {
	return s.ok, s.err
}

func newAuthEngine(v TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/me", JWTAuth(v), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID)+"/"+c.GetString(ContextTokenID))
	})
	return engine
}

func serve(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	jwt.Init("middleware-test", 5)
	token, tokenID, err := jwt.GenerateToken("U_TEST")
	require.NoError(t, err)

	w := serve(newAuthEngine(stubValidator{ok: true}), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "U_TEST/"+tokenID, w.Body.String())

	tests := []struct {
		name   string
		v      TokenValidator
		header string
		status int
	}{
		{name: "missing header", v: stubValidator{ok: true}, header: "", status: http.StatusUnauthorized},
		{name: "not bearer", v: stubValidator{ok: true}, header: "Token " + token, status: http.StatusUnauthorized},
		{name: "garbage", v: stubValidator{ok: true}, header: "Bearer x.y.z", status: http.StatusUnauthorized},
		{name: "superseded", v: stubValidator{ok: false}, header: "Bearer " + token, status: http.StatusUnauthorized},
		{name: "cache error", v: stubValidator{err: errors.New("redis down")}, header: "Bearer " + token, status: http.StatusOK},
		{name: "no validator", v: nil, header: "Bearer " + token, status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newAuthEngine(tt.v), tt.header)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestTlsHandler_Redirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(TlsHandler("example.com", 8443))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://example.com:8443/ping", w.Header().Get("Location"))
}
