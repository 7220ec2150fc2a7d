package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"Helmholtz/internal/repo"
)

type memUsers struct {
	mu     sync.Mutex
	nextID int
	byName map[string]struct {
		id   int
		hash string
	}
}

func newMemUsers() *memUsers {
	return &memUsers{byName: map[string]struct {
		id   int
		hash string
	}{}}
}

func (m *memUsers) CreateUser(_ context.Context, login, _, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[login]; ok {
		return 0, repo.ErrUserExists
	}
	m.nextID++
	m.byName[login] = struct {
		id   int
		hash string
	}{m.nextID, password}
	return m.nextID, nil
}

func (m *memUsers) GetByLogin(_ context.Context, login string) (int, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.hash, nil
}

func newEnv() *Authenv {
	return &Authenv{JWTkey: []byte("test-key"), Repo: newMemUsers()}
}

func TestTokenRoundTrip(t *testing.T) {
	env := newEnv()
	token, expires, err := env.IssueToken(42, "coil")
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(expires) < 29*24*time.Hour {
		t.Errorf("expires = %v, want about 30 days", expires)
	}
	claims, err := env.ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 || claims.Login != "coil" {
		t.Errorf("claims = %+v", claims)
	}

	other := &Authenv{JWTkey: []byte("other-key")}
	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign key error = %v, want ErrInvalidToken", err)
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 42,
		Login:  "coil",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString(env.JWTkey)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestParseTokenRejectsOtherMethods(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Login: "x"})
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newEnv().ParseToken(s); err == nil {
		t.Error("unsigned token accepted")
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv()
	token, _, err := env.IssueToken(9, "coil")
	if err != nil {
		t.Fatal(err)
	}
	var gotID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
	})
	h := env.AuthMiddleware(next)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		want   int
		wantID int
	}{
		{name: "no token", setup: func(*http.Request) {}, want: http.StatusUnauthorized},
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, want: http.StatusOK, wantID: 9},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookieName, Value: token}) }, want: http.StatusOK, wantID: 9},
		{name: "garbage", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = 0
			r := httptest.NewRequest("GET", "/", nil)
			tt.setup(r)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			if w.Code != tt.want || gotID != tt.wantID {
				t.Errorf("status = %d, id = %d, want %d, %d", w.Code, gotID, tt.want, tt.wantID)
			}
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv()

	post := func(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest("POST", "/", strings.NewReader(body)))
		return w
	}

	w := post(env.RegisterHandler, `{"login":"coil","email":"c@example.com","password":"secret1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}
	var tok TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tok); err != nil {
		t.Fatal(err)
	}
	if _, err := env.ParseToken(tok.Token); err != nil {
		t.Errorf("register token invalid: %v", err)
	}

	tests := []struct {
		name string
		h    http.HandlerFunc
		body string
		want int
	}{
		{"duplicate", env.RegisterHandler, `{"login":"coil","email":"c@example.com","password":"secret1"}`, http.StatusConflict},
		{"short password", env.RegisterHandler, `{"login":"b","email":"b@example.com","password":"123"}`, http.StatusBadRequest},
		{"missing email", env.RegisterHandler, `{"login":"b","password":"secret1"}`, http.StatusBadRequest},
		{"login ok", env.AuthHandler, `{"login":"coil","password":"secret1"}`, http.StatusOK},
		{"wrong password", env.AuthHandler, `{"login":"coil","password":"secret2"}`, http.StatusUnauthorized},
		{"unknown user", env.AuthHandler, `{"login":"nobody","password":"secret1"}`, http.StatusUnauthorized},
		{"malformed", env.AuthHandler, `{"login":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := post(tt.h, tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(0, 2)
	h := l.LimitMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:" + string(rune('1'+i)) + "000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.2:1000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("other ip status = %d, want 200", w.Code)
	}
}
