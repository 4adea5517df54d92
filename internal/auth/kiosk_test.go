package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestKioskTokenRoundTrip(t *testing.T) {
	token, exp, err := IssueKioskToken("library-door", "qrattend-kiosk", "secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueKioskToken() = %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %s already passed", exp)
	}
	claims, err := ParseKioskToken(token, "secret", "qrattend-kiosk")
	if err != nil {
		t.Fatalf("ParseKioskToken() = %v", err)
	}
	if claims.Kiosk != "library-door" {
		t.Fatalf("kiosk = %q", claims.Kiosk)
	}

	if _, err := ParseKioskToken(token, "other-secret", "qrattend-kiosk"); err == nil {
		t.Fatal("expected signature failure")
	}
	if _, err := ParseKioskToken(token, "secret", "someone-else"); err == nil {
		t.Fatal("expected issuer mismatch")
	}
}

func TestKioskTokenExpired(t *testing.T) {
	token, _, err := IssueKioskToken("gate", "iss", "secret", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseKioskToken(token, "secret", "iss"); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestKioskAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", KioskAuth("secret", "iss"), func(c *gin.Context) {
		claims := c.MustGet(ClaimsKey).(KioskClaims)
		c.String(http.StatusOK, claims.Kiosk)
	})

	token, _, err := IssueKioskToken("gate", "iss", "secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]struct {
		header string
		status int
	}{
		"missing": {"", http.StatusUnauthorized},
		"garbage": {"Bearer nope", http.StatusUnauthorized},
		"valid":   {"Bearer " + token, http.StatusOK},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}
