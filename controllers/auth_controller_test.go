package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/azleep/azleep-api/utils"
)

func TestMain(m *testing.M) {
	// Config refuses to load without a signing secret.
	os.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func registerRequest(body string, remoteIP string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remoteIP + ":51234"
	ctx.Request = req
	return w, ctx
}

func TestRegisterThrottledRequestKeepsEmailCode(t *testing.T) {
	const ip = "203.0.113.9"
	const email = "night@example.com"
	const code = "429135"

	utils.SaveCode(email, code, 10*time.Minute)
	utils.RegistrationBan(ip)

	w, ctx := registerRequest(
		`{"username":"nightowl","email":"`+email+`","password":"deep-sleep","confirm":"deep-sleep","code":"`+code+`"}`,
		ip,
	)
	NewAuthController(nil).Register(ctx)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	// The throttled attempt must not have burned the code.
	if !utils.VerifyAndConsumeCode(email, code) {
		t.Error("rejected registration should leave the email code usable")
	}
}

func TestRegisterRejectsBadUsername(t *testing.T) {
	for _, username := range []string{"ab", "has space", "emoji☾name"} {
		w, ctx := registerRequest(
			`{"username":"`+username+`","email":"a@b.c","password":"deep-sleep","confirm":"deep-sleep","code":"000000"}`,
			"203.0.113.77",
		)
		NewAuthController(nil).Register(ctx)
		if w.Code != http.StatusBadRequest {
			t.Errorf("username %q: status = %d, want %d", username, w.Code, http.StatusBadRequest)
		}
	}
}
