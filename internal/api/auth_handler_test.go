package api

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"jobvault/internal/auth"
	"jobvault/internal/database"
)

func newTestAuthService(t *testing.T) *auth.AuthService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	svc, err := auth.NewAuthService(privPEM, pubPEM, 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func newAuthTestHandler(t *testing.T, db *gorm.DB) *AuthHandler {
	t.Helper()
	// Unreachable address: rate limiting degrades open when Redis errors.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	return &AuthHandler{
		db:                    db,
		authService:           newTestAuthService(t),
		redis:                 rdb,
		loginRateLimitPerHour: 10,
	}
}

func seedCredentialedUser(t *testing.T, db *gorm.DB, username, password string, mustChange bool) uint {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := database.User{Username: username, PasswordHash: hashed, MustChangePassword: mustChange}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func postJSON(t *testing.T, path, payload string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestLoginReportsMustChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	seedCredentialedUser(t, db, "alice", "initial-pass-1", true)
	h := newAuthTestHandler(t, db)

	c, w := postJSON(t, "/api/auth/login", `{"username":"alice","password":"initial-pass-1"}`)
	h.Login(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var body tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.AccessToken == "" {
		t.Fatal("access token missing")
	}
	if !body.MustChangePassword {
		t.Fatal("must_change_password not surfaced for a bootstrapped account")
	}
}

func TestLoginWithoutForcedChangeReportsFalse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	seedCredentialedUser(t, db, "bob", "initial-pass-1", false)
	h := newAuthTestHandler(t, db)

	c, w := postJSON(t, "/api/auth/login", `{"username":"bob","password":"initial-pass-1"}`)
	h.Login(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var body tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.MustChangePassword {
		t.Fatal("must_change_password set for a regular account")
	}
}

func TestChangePasswordClearsForcedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	userID := seedCredentialedUser(t, db, "alice", "initial-pass-1", true)
	h := newAuthTestHandler(t, db)

	payload := `{"current_password":"initial-pass-1","new_password":"rotated-pass-2","confirm_password":"rotated-pass-2"}`
	c, w := postJSON(t, "/api/auth/change-password", payload)
	c.Set("userID", userID)
	h.ChangePassword(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var body tokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.MustChangePassword {
		t.Fatal("flag must clear after a successful change")
	}

	var user database.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.MustChangePassword {
		t.Fatal("flag still set in storage")
	}
	if !auth.CheckPasswordHash("rotated-pass-2", user.PasswordHash) {
		t.Fatal("new password does not verify")
	}
	if auth.CheckPasswordHash("initial-pass-1", user.PasswordHash) {
		t.Fatal("old password still verifies")
	}
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	userID := seedCredentialedUser(t, db, "alice", "initial-pass-1", true)
	h := newAuthTestHandler(t, db)

	payload := `{"current_password":"wrong-pass-99","new_password":"rotated-pass-2","confirm_password":"rotated-pass-2"}`
	c, w := postJSON(t, "/api/auth/change-password", payload)
	c.Set("userID", userID)
	h.ChangePassword(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var user database.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !user.MustChangePassword {
		t.Fatal("flag cleared by a rejected change")
	}
	if !auth.CheckPasswordHash("initial-pass-1", user.PasswordHash) {
		t.Fatal("password changed by a rejected request")
	}
}
