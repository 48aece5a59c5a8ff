package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// okHandler records whether the downstream handler ran and which userID
// the middleware injected into the context.
type okHandler struct {
	called bool
	userID string
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.userID, _ = UserIDFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

// doRequest runs a request with the given Authorization header through
// RequireAuth and returns the recorder plus the downstream handler.
func doRequest(t *testing.T, ts *TokenService, authHeader string) (*httptest.ResponseRecorder, *okHandler) {
	t.Helper()

	next := &okHandler{}
	mw := RequireAuth(ts)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/resume/my-resumes", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	return rr, next
}

// =========================================================================
// REJECTION TESTS — downstream handler must NEVER run
// =========================================================================

func TestRequireAuth_MissingHeader(t *testing.T) {
	ts := newTestTokenService(t)

	rr, next := doRequest(t, ts, "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if next.called {
		t.Error("downstream handler was invoked without a token")
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.Generate("user-123")

	cases := []struct {
		name   string
		header string
	}{
		{"no scheme", token},
		{"wrong scheme", "Basic " + token},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, next := doRequest(t, ts, tc.header)
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
			}
			if next.called {
				t.Error("downstream handler was invoked with a malformed header")
			}
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)
	expired, _ := ts.GenerateWithDuration("user-123", -1*time.Minute)

	rr, next := doRequest(t, ts, "Bearer "+expired)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if next.called {
		t.Error("downstream handler was invoked with an expired token")
	}
}

// =========================================================================
// ACCEPTANCE TESTS
// =========================================================================

func TestRequireAuth_ValidToken(t *testing.T) {
	ts := newTestTokenService(t)
	token, err := ts.Generate("user-abc")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	rr, next := doRequest(t, ts, "Bearer "+token)
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !next.called {
		t.Fatal("downstream handler was not invoked for a valid token")
	}
	if next.userID != "user-abc" {
		t.Errorf("injected userID = %q, want %q", next.userID, "user-abc")
	}
}

func TestRequireAuth_LowercaseScheme(t *testing.T) {
	// RFC 7235: the auth scheme is case-insensitive, so "bearer" must work.
	ts := newTestTokenService(t)
	token, _ := ts.Generate("user-abc")

	rr, _ := doRequest(t, ts, "bearer "+token)
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestUserIDFromContext_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if id, ok := UserIDFromContext(req.Context()); ok || id != "" {
		t.Errorf("UserIDFromContext() = (%q, %v), want (\"\", false)", id, ok)
	}
}
