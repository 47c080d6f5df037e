package telegram_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"llm-telegram-relay/internal/relay/delivery/telegram"
	"llm-telegram-relay/internal/relay/usecase"
	"llm-telegram-relay/internal/webhook"
	"llm-telegram-relay/pkg/llmprovider"
	pkgResponse "llm-telegram-relay/pkg/response"
	pkgTelegram "llm-telegram-relay/pkg/telegram"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (m *mockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

func (m *mockProvider) Name() string  { return "mock" }
func (m *mockProvider) Model() string { return "mock-model" }

func (m *mockProvider) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// ── Test Helpers ───────────────────────────────────────────────────────────

type sentMessage struct {
	chatID string
	text   string
}

type fakeBotAPI struct {
	mu       sync.Mutex
	sent     []sentMessage
	failSend bool
}

func (f *fakeBotAPI) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func (f *fakeBotAPI) setFailSend(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSend = fail
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		w.Write([]byte(`{"ok": true, "result": {"id": 1, "is_bot": true, "first_name": "Relay", "username": "relay_bot"}}`))

	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		f.mu.Lock()
		f.sent = append(f.sent, sentMessage{chatID: r.FormValue("chat_id"), text: r.FormValue("text")})
		fail := f.failSend
		f.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"ok": false, "error_code": 403, "description": "Forbidden: bot was blocked by the user"}`))
			return
		}
		w.Write([]byte(`{"ok": true, "result": {"message_id": 9, "date": 0, "chat": {"id": 123, "type": "private"}}}`))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type testEnv struct {
	engine   *gin.Engine
	provider *mockProvider
	botAPI   *fakeBotAPI
}

func newTestEnv(t *testing.T, p *mockProvider, sec webhook.SecurityConfig) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	botAPI := &fakeBotAPI{}
	ts := httptest.NewServer(botAPI)
	t.Cleanup(ts.Close)

	bot, err := pkgTelegram.NewBot(pkgTelegram.Config{Token: "test-token", APIBaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewBot: %v", err)
	}

	l := &mockLogger{}
	uc := usecase.New(l, p, bot)
	h := telegram.New(l, uc, webhook.NewSecurityValidator(sec))

	engine := gin.New()
	engine.POST("/telegram/webhook", h.HandleWebhook)

	return &testEnv{engine: engine, provider: p, botAPI: botAPI}
}

func (e *testEnv) post(body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func updateJSON(updateID int64, chatID int64, text string) string {
	b, _ := json.Marshal(pkgTelegram.Update{
		UpdateID: updateID,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: chatID, Type: "private"},
			From:      &pkgTelegram.User{ID: 456, FirstName: "Ann"},
			Text:      text,
		},
	})
	return string(b)
}

func ackStatus(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		ErrorCode int `json:"error_code"`
		Data      struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid ack body %q: %v", w.Body.String(), err)
	}
	if resp.ErrorCode != 0 {
		t.Errorf("expected error_code 0, got %d", resp.ErrorCode)
	}
	return resp.Data.Status
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHandleWebhook_Success(t *testing.T) {
	env := newTestEnv(t, &mockProvider{reply: "hello there"}, webhook.SecurityConfig{})

	w := env.post(updateJSON(1, 123, "hi"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := ackStatus(t, w); got != "processed" {
		t.Errorf("expected status processed, got %q", got)
	}

	if calls := env.provider.calls(); len(calls) != 1 || calls[0] != "hi" {
		t.Errorf("expected one backend call with %q, got %v", "hi", calls)
	}
	msgs := env.botAPI.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected one sendMessage, got %d", len(msgs))
	}
	if msgs[0].chatID != "123" || msgs[0].text != "hello there" {
		t.Errorf("unexpected message: %+v", msgs[0])
	}
}

func TestHandleWebhook_BadRequest(t *testing.T) {
	cases := map[string]string{
		"not JSON":     `{bad json`,
		"no message":   `{"update_id": 10}`,
		"missing text": `{"update_id": 11, "message": {"message_id": 1, "chat": {"id": 123}}}`,
		"missing chat": `{"update_id": 12, "message": {"message_id": 1, "text": "hi"}}`,
		"chat id zero": `{"update_id": 13, "message": {"message_id": 1, "chat": {"id": 0}, "text": "hi"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, &mockProvider{reply: "unused"}, webhook.SecurityConfig{})

			w := env.post(body, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if len(env.provider.calls()) != 0 {
				t.Error("backend must not be called")
			}
			if len(env.botAPI.messages()) != 0 {
				t.Error("nothing must be sent")
			}
		})
	}
}

func TestHandleWebhook_BackendFailure(t *testing.T) {
	p := &mockProvider{err: &llmprovider.BackendError{Provider: "mock", Kind: llmprovider.KindUpstream, StatusCode: 500, Body: "boom"}}
	env := newTestEnv(t, p, webhook.SecurityConfig{})

	w := env.post(updateJSON(20, 123, "hi"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := ackStatus(t, w); got != "failed" {
		t.Errorf("expected status failed, got %q", got)
	}
	if len(env.botAPI.messages()) != 0 {
		t.Errorf("expected no sendMessage, got %v", env.botAPI.messages())
	}
}

func TestHandleWebhook_TransportFailure(t *testing.T) {
	p := &mockProvider{err: &llmprovider.BackendError{Provider: "mock", Kind: llmprovider.KindTransport, Err: errors.New("connection refused")}}
	env := newTestEnv(t, p, webhook.SecurityConfig{})

	w := env.post(updateJSON(21, 123, "hi"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(env.botAPI.messages()) != 0 {
		t.Error("expected no sendMessage")
	}
}

func TestHandleWebhook_SendFailure(t *testing.T) {
	env := newTestEnv(t, &mockProvider{reply: "hello"}, webhook.SecurityConfig{})
	env.botAPI.setFailSend(true)

	w := env.post(updateJSON(30, 123, "hi"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := ackStatus(t, w); got != "failed" {
		t.Errorf("expected status failed, got %q", got)
	}
	if len(env.botAPI.messages()) != 1 {
		t.Errorf("expected exactly one send attempt, got %d", len(env.botAPI.messages()))
	}
}

func TestHandleWebhook_Duplicate(t *testing.T) {
	env := newTestEnv(t, &mockProvider{reply: "hello"}, webhook.SecurityConfig{})

	first := env.post(updateJSON(40, 123, "hi"), nil)
	second := env.post(updateJSON(40, 123, "hi"), nil)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200 twice, got %d and %d", first.Code, second.Code)
	}
	if got := ackStatus(t, second); got != "duplicate" {
		t.Errorf("expected status duplicate, got %q", got)
	}
	if len(env.provider.calls()) != 1 || len(env.botAPI.messages()) != 1 {
		t.Errorf("redelivery must not be processed again: %d calls, %d sends",
			len(env.provider.calls()), len(env.botAPI.messages()))
	}
}

func TestHandleWebhook_MissingUpdateID(t *testing.T) {
	env := newTestEnv(t, &mockProvider{reply: "hello"}, webhook.SecurityConfig{})

	first := env.post(`{"message": {"message_id": 1, "chat": {"id": 123, "type": "private"}, "text": "first"}}`, nil)
	second := env.post(`{"message": {"message_id": 2, "chat": {"id": 456, "type": "private"}, "text": "second"}}`, nil)

	for i, w := range []*httptest.ResponseRecorder{first, second} {
		if w.Code != http.StatusOK {
			t.Fatalf("update %d: expected 200, got %d", i+1, w.Code)
		}
		if got := ackStatus(t, w); got != "processed" {
			t.Errorf("update %d: expected status processed, got %q", i+1, got)
		}
	}

	calls := env.provider.calls()
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("expected both updates to reach the backend, got %v", calls)
	}
	msgs := env.botAPI.messages()
	if len(msgs) != 2 || msgs[0].chatID != "123" || msgs[1].chatID != "456" {
		t.Errorf("expected a reply to each chat, got %+v", msgs)
	}
}

func TestHandleWebhook_SecretToken(t *testing.T) {
	env := newTestEnv(t, &mockProvider{reply: "hello"}, webhook.SecurityConfig{Secret: "hook-secret"})

	t.Run("Missing", func(t *testing.T) {
		w := env.post(updateJSON(50, 123, "hi"), nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var resp pkgResponse.Resp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("expected JSON body: %v", err)
		}
	})

	t.Run("Wrong", func(t *testing.T) {
		w := env.post(updateJSON(51, 123, "hi"), map[string]string{pkgTelegram.SecretTokenHeader: "nope"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	if len(env.provider.calls()) != 0 {
		t.Fatal("backend must not be called for rejected requests")
	}

	t.Run("Correct", func(t *testing.T) {
		w := env.post(updateJSON(52, 123, "hi"), map[string]string{pkgTelegram.SecretTokenHeader: "hook-secret"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestHandleWebhook_AllowedIPs(t *testing.T) {
	env := newTestEnv(t, &mockProvider{reply: "hello"}, webhook.SecurityConfig{AllowedIPs: []string{"149.154.160.0/20"}})

	w := env.post(updateJSON(60, 123, "hi"), map[string]string{"X-Forwarded-For": "8.8.8.8"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	w = env.post(updateJSON(61, 123, "hi"), map[string]string{"X-Forwarded-For": "149.154.167.50"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
