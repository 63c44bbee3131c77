package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/airdesk"
	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatAgent(t *testing.T) *airdesk.Agent {
	t.Helper()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	agent, err := airdesk.New(airdesk.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return agent
}

func runChat(t *testing.T, agent ChatAgent, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	err := Chat(context.Background(), agent, ChatOptions{
		SessionID: "chat-1",
		In:        strings.NewReader(strings.Join(script, "\n") + "\n"),
		Out:       &out,
		Profile:   termenv.Ascii,
	})
	require.NoError(t, err)
	return out.String()
}

func TestChat_StatusConversation(t *testing.T) {
	out := runChat(t, newChatAgent(t), "flight status please", "ZX1AB2", "Sharma", "exit")

	assert.Contains(t, out, ">>> Session 'chat-1' active.")
	assert.Contains(t, out, "agent> Sure, I can check your flight status. What is your PNR?")
	assert.Contains(t, out, "delayed by 45 minutes")
	assert.Contains(t, out, "  -> sms via ")
	assert.Contains(t, out, "to +919800000001")
	assert.True(t, strings.HasSuffix(out, ">>> Bye!\n"))
}

func TestChat_Commands(t *testing.T) {
	agent := newChatAgent(t)
	out := runChat(t, agent, "/help", "cancel", "/state", "/reset", "/state")

	assert.Contains(t, out, "Commands: /reset, /state, /help, exit")
	assert.Contains(t, out, `"intent":"cancel_booking"`)
	assert.Contains(t, out, ">>> Session 'chat-1' reset.")
	assert.Contains(t, out, ">>> {}")

	sess, err := agent.Session(context.Background(), "chat-1")
	require.NoError(t, err)
	assert.True(t, sess.IsEmpty())
}

func TestChat_Handoff(t *testing.T) {
	out := runChat(t, newChatAgent(t), "get me a human")
	assert.Contains(t, out, "[handoff: agent_transfer]")
}

func TestChat_InputRejectedKeepsGoing(t *testing.T) {
	out := runChat(t, newChatAgent(t), "bad \xff byte", "hello")
	assert.Contains(t, out, ">>> Input rejected:")
	assert.Contains(t, out, "agent> ")
}

type erroringAgent struct{}

func (erroringAgent) Handle(context.Context, string, string) (airdesk.Reply, error) {
	return airdesk.Reply{}, errors.New("store offline")
}

func (erroringAgent) Session(context.Context, string) (domain.Session, error) {
	return domain.Session{}, nil
}

func (erroringAgent) Reset(context.Context, string) error { return nil }

func TestChat_BackendErrorStops(t *testing.T) {
	var out bytes.Buffer
	err := Chat(context.Background(), erroringAgent{}, ChatOptions{
		SessionID: "chat-2",
		In:        strings.NewReader("hello\n"),
		Out:       &out,
		Profile:   termenv.Ascii,
	})
	assert.ErrorContains(t, err, "store offline")
}

func TestChat_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	err := Chat(ctx, newChatAgent(t), ChatOptions{SessionID: "chat-3", In: pr, Out: &out, Profile: termenv.Ascii})
	require.NoError(t, err)
	assert.Contains(t, out.String(), ">>> Interrupted.")
}
