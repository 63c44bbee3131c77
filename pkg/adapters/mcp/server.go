package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/airdesk"
	"github.com/aretw0/airdesk/internal/logging"
	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Agent is the subset of airdesk.Agent the MCP server needs.
type Agent interface {
	Handle(ctx context.Context, sessionID, utterance string) (airdesk.Reply, error)
	Session(ctx context.Context, sessionID string) (domain.Session, error)
	Reset(ctx context.Context, sessionID string) error
}

// Server exposes an Agent as an MCP server.
type Server struct {
	agent     Agent
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(agent Agent, opts ...Option) *Server {
	s := &Server{
		agent:     agent,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("airdesk-mcp", strings.TrimSpace(airdesk.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "addr", addr, "base_url", baseURL)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: send_utterance
	sendTool := mcp.NewTool("send_utterance",
		mcp.WithDescription("Send one customer utterance to the airline assistant and get its reply."),
		mcp.WithString("session_id", mcp.Description("Conversation identifier (defaults to a shared session)")),
		mcp.WithString("user_input", mcp.Required(), mcp.Description("What the customer said")),
		mcp.WithOutputSchema[airdesk.Reply](),
	)
	s.mcpServer.AddTool(sendTool, mcp.NewStructuredToolHandler(s.handleSendUtterance))

	// TOOL: get_session
	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Inspect the stored conversation state of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation identifier")),
	), s.handleGetSession)

	// TOOL: reset_session
	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Forget a conversation and start over."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation identifier")),
	), s.handleResetSession)
}

func (s *Server) handleSendUtterance(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (airdesk.Reply, error) {
	sessionID, _ := args["session_id"].(string)
	input, ok := args["user_input"].(string)
	if !ok {
		return airdesk.Reply{}, errors.New("user_input is required")
	}

	reply, err := s.agent.Handle(ctx, sessionID, input)
	if err != nil {
		if airdesk.IsInputError(err) {
			s.logger.Warn("MCP send_utterance: input rejected", "session_id", sessionID, "err", err)
			return airdesk.Reply{}, fmt.Errorf("input rejected: %w", err)
		}
		s.logger.Error("MCP send_utterance failed", "session_id", sessionID, "err", err)
		return airdesk.Reply{}, errors.New("agent error")
	}
	return reply, nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess, err := s.agent.Session(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(sess)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.agent.Reset(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session %s reset", sessionID)), nil
}
