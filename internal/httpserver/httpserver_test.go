package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"llm-telegram-relay/internal/middleware"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type recordingLogger struct {
	mockLogger
	mu    sync.Mutex
	infos []string
}

func (r *recordingLogger) Infof(ctx context.Context, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

type stubChatHandler struct{}

func (stubChatHandler) Chat(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"reply": "stub"}) }

type stubTelegramHandler struct{}

func (stubTelegramHandler) HandleWebhook(c *gin.Context) { c.Status(http.StatusOK) }

func newTestServer(t *testing.T, origins ...string) *HTTPServer {
	t.Helper()
	l := &mockLogger{}
	srv, err := New(l, Config{
		Logger:          l,
		Host:            "127.0.0.1",
		Port:            8080,
		Mode:            gin.TestMode,
		Environment:     "development",
		CORSOrigins:     origins,
		Middleware:      middleware.New(l, "secret"),
		ChatHandler:     stubChatHandler{},
		TelegramHandler: stubTelegramHandler{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func serve(srv *HTTPServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewValidation(t *testing.T) {
	l := &mockLogger{}
	base := Config{
		Mode:            gin.TestMode,
		Port:            8080,
		Middleware:      middleware.New(l, "secret"),
		ChatHandler:     stubChatHandler{},
		TelegramHandler: stubTelegramHandler{},
	}

	if _, err := New(nil, base); err == nil {
		t.Error("expected error without logger")
	}

	noPort := base
	noPort.Port = 0
	if _, err := New(l, noPort); err == nil {
		t.Error("expected error without port")
	}

	noChat := base
	noChat.ChatHandler = nil
	if _, err := New(l, noChat); err == nil {
		t.Error("expected error without chat handler")
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := serve(srv, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), ServiceName) {
			t.Errorf("%s: expected service name in body, got %s", path, w.Body.String())
		}
		if w.Header().Get(middleware.RequestIDHeader) == "" {
			t.Errorf("%s: expected request id header", path)
		}
	}

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "relay_http_requests_total") {
		t.Error("/metrics: expected relay HTTP counter in exposition")
	}
}

func TestDomainRoutes(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Chat requires bearer token", func(t *testing.T) {
		w := serve(srv, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"prompt":"hi"}`)))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("Chat with bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"prompt":"hi"}`))
		req.Header.Set("Authorization", "Bearer secret")
		w := serve(srv, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("Telegram webhook is public", func(t *testing.T) {
		w := serve(srv, httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(`{}`)))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, "https://app.example.com/")

	cases := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:3000", true},
		{"http://127.0.0.1:5173", true},
		{"null", true},
		{"https://app.example.com", true},
		{"https://evil.example.com", false},
		{"http://localhost.evil.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := serve(srv, req)

			got := w.Header().Get("Access-Control-Allow-Origin")
			if tc.allowed && got != tc.origin {
				t.Errorf("expected origin %q to be allowed, got header %q (status %d)", tc.origin, got, w.Code)
			}
			if !tc.allowed && got != "" {
				t.Errorf("expected origin %q to be refused, got header %q", tc.origin, got)
			}
		})
	}
}

func TestCORSStartupLog(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		t.Run(env, func(t *testing.T) {
			l := &recordingLogger{}
			_, err := New(l, Config{
				Logger:          l,
				Host:            "127.0.0.1",
				Port:            8080,
				Mode:            gin.TestMode,
				Environment:     env,
				CORSOrigins:     []string{"https://app.example.com"},
				Middleware:      middleware.New(l, "secret"),
				ChatHandler:     stubChatHandler{},
				TelegramHandler: stubTelegramHandler{},
			})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			var lines []string
			for _, msg := range l.infos {
				if strings.HasPrefix(msg, "CORS:") {
					lines = append(lines, msg)
				}
			}
			if len(lines) != 1 {
				t.Fatalf("expected one CORS line, got %v", lines)
			}
			want := "CORS: local origins plus [https://app.example.com] (environment " + env + ")"
			if lines[0] != want {
				t.Errorf("expected %q, got %q", want, lines[0])
			}
		})
	}
}

func TestIsLocalOrigin(t *testing.T) {
	if !isLocalOrigin("https://localhost") {
		t.Error("https://localhost should be local")
	}
	if isLocalOrigin("ftp://localhost") {
		t.Error("non-http schemes are not allowed")
	}
	if isLocalOrigin("::not a url") {
		t.Error("garbage must not be allowed")
	}
}

func TestAddr(t *testing.T) {
	srv := newTestServer(t)
	if srv.Addr() != "127.0.0.1:8080" {
		t.Errorf("unexpected addr %q", srv.Addr())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l := &mockLogger{}
	srv, err := New(l, Config{
		Logger:          l,
		Host:            "127.0.0.1",
		Port:            freePort(t),
		Mode:            gin.TestMode,
		Middleware:      middleware.New(l, "secret"),
		ChatHandler:     stubChatHandler{},
		TelegramHandler: stubTelegramHandler{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}
