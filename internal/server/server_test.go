package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/safetravel/safetravel/internal/config"
	"github.com/safetravel/safetravel/internal/logging"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Config{
		AppName:   "SafeTravel",
		AppEnv:    "test",
		Port:      "0",
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}

	srv, err := New(cfg, nil, nil, logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, body, bearer string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := srv.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func TestRegisterLoginMe(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodPost, "/api/auth/register",
		`{"name":"Ann","email":"ann@x.com","password":"pw123"}`, "")
	if status != http.StatusOK {
		t.Fatalf("register: expected 200 got %d (%v)", status, body)
	}
	if body["message"] != "User registered successfully" || body["email"] != "ann@x.com" {
		t.Fatalf("unexpected register body %v", body)
	}

	status, body = doJSON(t, srv, http.MethodPost, "/api/auth/login",
		`{"email":"ann@x.com","password":"pw123"}`, "")
	if status != http.StatusOK {
		t.Fatalf("login: expected 200 got %d (%v)", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" || body["email"] != "ann@x.com" || body["name"] != "Ann" {
		t.Fatalf("unexpected login body %v", body)
	}

	status, body = doJSON(t, srv, http.MethodGet, "/api/user/me", "", token)
	if status != http.StatusOK {
		t.Fatalf("me: expected 200 got %d (%v)", status, body)
	}
	if body["email"] != "ann@x.com" || body["name"] != "Ann" || body["message"] != "This is a protected endpoint" {
		t.Fatalf("unexpected me body %v", body)
	}
}

func TestRegisterValidationAndConflict(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodPost, "/api/auth/register",
		`{"email":"ann@x.com","password":"pw123"}`, "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name got %d", status)
	}
	if body["error"] == "" {
		t.Fatalf("expected error payload got %v", body)
	}

	status, _ = doJSON(t, srv, http.MethodPost, "/api/auth/register",
		`{"name":"Ann","email":"ann@x.com","password":"pw123"}`, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200 got %d", status)
	}

	status, body = doJSON(t, srv, http.MethodPost, "/api/auth/register",
		`{"name":"Imposter","email":"ann@x.com","password":"other"}`, "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email got %d", status)
	}
	if body["error"] != "email already registered" {
		t.Fatalf("unexpected conflict body %v", body)
	}
}

func TestLoginFailuresShareOnePayload(t *testing.T) {
	srv := newTestServer(t)

	if status, _ := doJSON(t, srv, http.MethodPost, "/api/auth/register",
		`{"name":"Ann","email":"ann@x.com","password":"pw123"}`, ""); status != http.StatusOK {
		t.Fatalf("register: expected 200 got %d", status)
	}

	wrongStatus, wrongBody := doJSON(t, srv, http.MethodPost, "/api/auth/login",
		`{"email":"ann@x.com","password":"nope"}`, "")
	ghostStatus, ghostBody := doJSON(t, srv, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@x.com","password":"pw123"}`, "")

	if wrongStatus != http.StatusUnauthorized || ghostStatus != http.StatusUnauthorized {
		t.Fatalf("expected 401/401 got %d/%d", wrongStatus, ghostStatus)
	}
	if wrongBody["error"] != ghostBody["error"] {
		t.Fatalf("failure payloads must match: %v vs %v", wrongBody, ghostBody)
	}
}

func TestProtectedEndpointRejectsBadTokens(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodGet, "/api/user/me", "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", status)
	}
	if body["error"] == nil {
		t.Fatalf("expected JSON error payload got %v", body)
	}

	status, _ = doJSON(t, srv, http.MethodGet, "/api/user/me", "", "garbage.token.here")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token got %d", status)
	}
}

func TestJourneyLifecycle(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodPost, "/api/journeys/start", "", "")
	if status != http.StatusOK {
		t.Fatalf("start: expected 200 got %d (%v)", status, body)
	}
	if body["status"] != "ACTIVE" {
		t.Fatalf("expected ACTIVE got %v", body["status"])
	}
	journeyID, _ := body["journeyId"].(string)
	if journeyID == "" {
		t.Fatalf("expected journeyId got %v", body)
	}
	if _, err := time.Parse(time.RFC3339, body["startedAt"].(string)); err != nil {
		t.Fatalf("startedAt not RFC3339: %v", err)
	}

	status, body = doJSON(t, srv, http.MethodGet, "/api/journeys/"+journeyID, "", "")
	if status != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", status)
	}
	if body["userName"] != "Guest" {
		t.Fatalf("expected Guest got %v", body["userName"])
	}

	status, body = doJSON(t, srv, http.MethodPost, "/api/journeys/"+journeyID+"/end", "", "")
	if status != http.StatusOK {
		t.Fatalf("end: expected 200 got %d (%v)", status, body)
	}
	if body["status"] != "ENDED" {
		t.Fatalf("expected ENDED got %v", body["status"])
	}

	status, _ = doJSON(t, srv, http.MethodPost, "/api/journeys/"+journeyID+"/end", "", "")
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for double end got %d", status)
	}

	status, _ = doJSON(t, srv, http.MethodGet, "/api/journeys/00000000-0000-0000-0000-000000000000", "", "")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown journey got %d", status)
	}
}

func TestJourneyStartWithUserName(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodPost, "/api/journeys/start", `{"userName":"Ann"}`, "")
	if status != http.StatusOK {
		t.Fatalf("start: expected 200 got %d (%v)", status, body)
	}
	journeyID, _ := body["journeyId"].(string)

	status, body = doJSON(t, srv, http.MethodGet, "/api/journeys/"+journeyID, "", "")
	if status != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", status)
	}
	if body["userName"] != "Ann" {
		t.Fatalf("expected Ann got %v", body["userName"])
	}
}
