package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/account-service/internal/events"
	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/repositories"
	redisrepo "github.com/SAP-F-2025/account-service/internal/repositories/redis"
	"github.com/SAP-F-2025/account-service/internal/services"
	"github.com/SAP-F-2025/account-service/internal/utils"
	"github.com/SAP-F-2025/account-service/internal/validator"
)

func newTestRouter(t *testing.T) (*gin.Engine, repositories.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	repo := redisrepo.NewRepository(client, "")

	slogLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	logger := utils.NewSlogLogger(slogLogger)
	publisher := events.NewMockEventPublisher(slogLogger)
	v := validator.New()

	serviceManager := services.NewServiceManager(repo, slogLogger, v, publisher, 0)
	handlerManager := NewHandlerManager(serviceManager, v, logger, repo)

	router := gin.New()
	SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func teacherPayload(email string) map[string]string {
	return map[string]string{
		"firstName":   "Madina",
		"lastName":    "Saidova",
		"email":       email,
		"phoneNumber": "+99894 555 66 77",
		"password":    "pw-1",
		"region":      "Khorezm",
		"city":        "Urgench",
		"school":      "School 1",
		"grade":       "8",
	}
}

func TestAuthRoutes_SignUpFlow(t *testing.T) {
	router, repo := newTestRouter(t)

	t.Run("SignUp_Teacher", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/teachers/sign-up", teacherPayload("m@example.com"))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var result models.RegisterResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}
		if !result.Success || result.Role != models.RoleTeacher || result.RedirectTo != "/verify-account" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("SignUp_Duplicate_Is_200_With_Failure", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/teachers/sign-up", teacherPayload("m@example.com"))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var result models.RegisterResult
		_ = json.Unmarshal(w.Body.Bytes(), &result)
		if result.Success || result.Message != "Email already in use" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("Malformed_Payload_Is_400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/teachers/sign-up", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Verify_And_SignIn", func(t *testing.T) {
		account, err := repo.Teachers().FindByEmail(context.Background(), "m@example.com")
		if err != nil {
			t.Fatalf("expected registered account: %v", err)
		}

		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/verify", map[string]string{
			"email":            "m@example.com",
			"role":             "teacher",
			"verificationCode": account.VerificationCode,
		})
		var verifyResult models.VerifyResult
		_ = json.Unmarshal(w.Body.Bytes(), &verifyResult)
		if !verifyResult.Success || verifyResult.RedirectTo != "/sign-in" {
			t.Fatalf("unexpected verify result %+v", verifyResult)
		}

		w = doJSON(t, router, http.MethodPost, "/api/v1/auth/sign-in", map[string]string{
			"email":    "m@example.com",
			"password": "pw-1",
		})
		var signInResult models.SignInResult
		_ = json.Unmarshal(w.Body.Bytes(), &signInResult)
		if !signInResult.Success || signInResult.Role != models.RoleTeacher {
			t.Fatalf("unexpected sign-in result %+v", signInResult)
		}

		// A successful sign-in opens the session.
		authenticated, err := repo.Sessions().IsAuthenticated(context.Background())
		if err != nil {
			t.Fatalf("failed to read session flag: %v", err)
		}
		if !authenticated {
			t.Error("expected the authenticated flag after sign-in")
		}
	})

	t.Run("Session_And_SignOut", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/auth/session", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 session, got %d", w.Code)
		}

		w = doJSON(t, router, http.MethodPost, "/api/v1/auth/sign-out", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 sign-out, got %d", w.Code)
		}

		w = doJSON(t, router, http.MethodGet, "/api/v1/auth/session", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 after sign-out, got %d", w.Code)
		}
	})
}

func TestAuthRoutes_UnverifiedSignIn(t *testing.T) {
	router, repo := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/auth/teachers/sign-up", teacherPayload("p@example.com"))
	account, err := repo.Teachers().FindByEmail(context.Background(), "p@example.com")
	if err != nil {
		t.Fatalf("expected registered account: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/sign-in", map[string]string{
		"email":    "p@example.com",
		"password": "pw-1",
	})
	var result models.SignInResult
	_ = json.Unmarshal(w.Body.Bytes(), &result)
	if result.Success {
		t.Fatal("unverified sign-in must fail")
	}
	if result.VerificationCode != account.VerificationCode {
		t.Errorf("expected recovery code %q, got %q", account.VerificationCode, result.VerificationCode)
	}

	authenticated, _ := repo.Sessions().IsAuthenticated(context.Background())
	if authenticated {
		t.Error("failed sign-in must not open a session")
	}
}

func TestDirectoryRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/auth/teachers/sign-up", teacherPayload("dir@example.com"))

	t.Run("Listing_Is_Sanitized", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/teachers", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var page services.DirectoryPage
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			t.Fatalf("failed to decode page: %v", err)
		}
		if page.Total != 1 || len(page.Profiles) != 1 {
			t.Fatalf("unexpected page %+v", page)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("password")) ||
			bytes.Contains(w.Body.Bytes(), []byte("verificationCode")) {
			t.Error("directory listing must not expose credentials or codes")
		}
	})

	t.Run("Export_Requires_Session", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/teachers/export", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 without a session, got %d", w.Code)
		}
	})

	t.Run("Health", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/health", nil)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})
}
