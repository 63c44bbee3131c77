package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/airdesk"
	httpadapter "github.com/aretw0/airdesk/pkg/adapters/http"
	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/aretw0/airdesk/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newAgent(t *testing.T, opts ...airdesk.Option) *airdesk.Agent {
	t.Helper()
	agent, err := airdesk.New(append([]airdesk.Option{airdesk.WithClock(func() time.Time { return now })}, opts...)...)
	require.NoError(t, err)
	return agent
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/agent_webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestWebhook_Conversation(t *testing.T) {
	h := httpadapter.NewHandler(newAgent(t))

	rr := post(t, h, `{"session_id": "web-1", "user_input": "I need to cancel my booking"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var reply map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
	assert.Contains(t, reply["response_text"], "cancellation")
	assert.Equal(t, []any{}, reply["actions"])
	assert.NotContains(t, reply, "intent_label")

	post(t, h, `{"session_id": "web-1", "user_input": "AB7YZ8"}`)
	rr = post(t, h, `{"session_id": "web-1", "user_input": "Verma"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "INR 10,450")
}

func TestWebhook_StatusReturnsSMSAction(t *testing.T) {
	h := httpadapter.NewHandler(newAgent(t))

	post(t, h, `{"session_id": "web-2", "user_input": "check status"}`)
	post(t, h, `{"session_id": "web-2", "user_input": "ZX1AB2"}`)
	rr := post(t, h, `{"session_id": "web-2", "user_input": "Sharma"}`)

	var reply airdesk.Reply
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
	require.Len(t, reply.Actions, 1)
	assert.Equal(t, domain.ActionSMS, reply.Actions[0].Type)
}

func TestWebhook_Handoff(t *testing.T) {
	h := httpadapter.NewHandler(newAgent(t))

	rr := post(t, h, `{"session_id": "web-3", "user_input": "let me speak to an agent"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var reply airdesk.Reply
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
	assert.Equal(t, "agent_transfer", reply.IntentLabel)
}

func TestWebhook_BadRequests(t *testing.T) {
	h := httpadapter.NewHandler(newAgent(t, airdesk.WithMaxInputSize(16)))

	assert.Equal(t, http.StatusBadRequest, post(t, h, `{not json`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h, `{"session_id": "s", "user_input": "`+strings.Repeat("a", 17)+`"}`).Code)
}

type failingAgent struct{}

func (failingAgent) Handle(context.Context, string, string) (airdesk.Reply, error) {
	return airdesk.Reply{}, errors.New("redis: connection refused")
}

func (failingAgent) Session(context.Context, string) (domain.Session, error) {
	return domain.Session{}, errors.New("redis: connection refused")
}

func TestWebhook_BackendFailure(t *testing.T) {
	h := httpadapter.NewHandler(failingAgent{})

	rr := post(t, h, `{"session_id": "s", "user_input": "hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "redis", "backend details are not leaked")
}

func TestWebhook_MissingSessionIDUsesDefault(t *testing.T) {
	agent := newAgent(t)
	h := httpadapter.NewHandler(agent)

	require.Equal(t, http.StatusOK, post(t, h, `{"user_input": "check status"}`).Code)

	sess, err := agent.Session(context.Background(), airdesk.DefaultSessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.IntentCheckStatus, sess.Intent)
}

func TestGetSession(t *testing.T) {
	h := httpadapter.NewHandler(newAgent(t))
	post(t, h, `{"session_id": "web-4", "user_input": "book a flight from Mumbai"}`)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/web-4", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var sess domain.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, domain.StateAwaitingDestination, sess.State)
	assert.Equal(t, "BOM", sess.Booking.Origin)
}

func TestGetHealth(t *testing.T) {
	h := httpadapter.NewHandler(failingAgent{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	h := httpadapter.NewHandler(failingAgent{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/info", nil))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "airdesk-http", resp["app"])
	assert.Equal(t, airdesk.Version, resp["version"])
}

func TestCORSPreflight(t *testing.T) {
	h := httpadapter.NewHandler(failingAgent{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/agent_webhook", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	h := httpadapter.NewHandler(newAgent(t, airdesk.WithLifecycleHooks(metrics.Hooks())), httpadapter.WithMetrics(reg))
	post(t, h, `{"session_id": "m", "user_input": "talk to a human"}`)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "airdesk_handoffs_total 1")
}

func TestMetricsEndpoint_DisabledByDefault(t *testing.T) {
	h := httpadapter.NewHandler(failingAgent{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSubscribeEvents(t *testing.T) {
	srv := httptest.NewServer(httpadapter.NewHandler(newAgent(t)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?session_id=live", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)
	_, _ = reader.ReadString('\n') // data: connected
	_, _ = reader.ReadString('\n') // blank

	hookResp, err := http.Post(srv.URL+"/agent_webhook", "application/json",
		strings.NewReader(`{"session_id": "live", "user_input": "check status"}`))
	require.NoError(t, err)
	hookResp.Body.Close()

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "data: "))
	assert.Contains(t, line, "What is your PNR?")
}

func TestSubscribeEvents_RequiresSession(t *testing.T) {
	h := httpadapter.NewHandler(failingAgent{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStreamManager(t *testing.T) {
	sm := httpadapter.NewStreamManager()
	ch, cancel := sm.Subscribe("s1")

	sm.Broadcast("s1", "hello")
	sm.Broadcast("s2", "ignored")
	assert.Equal(t, "hello", <-ch)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	sm.Broadcast("s1", "after close")
}
