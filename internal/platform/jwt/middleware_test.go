package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// newProtectedRouter wires AuthRequired in front of a probe handler that
// reports the user identifier stored in the context.
func newProtectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString(ContextUserID)})
	})
	return r
}

func signedToken(t *testing.T, secret string, expiration time.Duration) string {
	t.Helper()

	signed, err := NewGenerator(secret, expiration).GenerateToken("uid-1", "a@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return signed
}

func TestAuthRequired(t *testing.T) {
	const secret = "test-secret"

	t.Run("valid token passes and exposes the stable identifier", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)
		router := newProtectedRouter()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, time.Minute))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		if body := w.Body.String(); body != `{"uid":"uid-1"}` {
			t.Errorf("unexpected body: %s", body)
		}
	})

	t.Run("missing header is 401", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)
		router := newProtectedRouter()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("non-bearer scheme is 401", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)
		router := newProtectedRouter()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("token signed with another secret is 401", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)
		router := newProtectedRouter()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", time.Minute))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("expired token is 401", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)
		router := newProtectedRouter()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, -time.Minute))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("non-HMAC algorithm is rejected", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, secret)
		router := newProtectedRouter()

		// alg=none token with valid-looking claims
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "uid-1",
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("unset secret is a server error", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, "")
		router := newProtectedRouter()

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, time.Minute))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
	})
}
