package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carbonx/carbonx-api/internal/auth"
	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func newAuthRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := auth.NewService(testSecret)
	svc.RegisterAPICredentials("key-1", "secret-1")
	token, err := svc.GenerateToken(auth.Credentials{APIKey: "key-1", APISecret: "secret-1"})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	router := gin.New()
	router.Use(JWTAuth(testSecret))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("clientID"))
	})

	return router, token.Token
}

func doAuthRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthSetsClientIDFromClaims(t *testing.T) {
	router, token := newAuthRouter(t)

	w := doAuthRequest(router, "Bearer "+token)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != "key-1" {
		t.Errorf("clientID = %q, want %q", got, "key-1")
	}
}

func TestJWTAuthRejectsNonBearerScheme(t *testing.T) {
	router, token := newAuthRouter(t)

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"basic scheme", "Basic " + token},
		{"token only", token},
		{"extra parts", "Bearer " + token + " extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doAuthRequest(router, tt.authorization)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestJWTAuthAcceptsLowercaseScheme(t *testing.T) {
	router, token := newAuthRouter(t)

	w := doAuthRequest(router, "bearer "+token)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestJWTAuthRejectsForgedToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	forger := auth.NewService("different-secret")
	forger.RegisterAPICredentials("key-1", "secret-1")
	forged, err := forger.GenerateToken(auth.Credentials{APIKey: "key-1", APISecret: "secret-1"})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	w := doAuthRequest(router, "Bearer "+forged.Token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401: %s", w.Code, w.Body.String())
	}
}
