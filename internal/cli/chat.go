package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/airdesk"
	"github.com/aretw0/airdesk/internal/presentation/tui"
	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/muesli/termenv"
)

// ChatAgent is the part of airdesk.Agent the chat loop drives.
type ChatAgent interface {
	Handle(ctx context.Context, sessionID, utterance string) (airdesk.Reply, error)
	Session(ctx context.Context, sessionID string) (domain.Session, error)
	Reset(ctx context.Context, sessionID string) error
}

// ChatOptions configures an interactive session.
type ChatOptions struct {
	SessionID string
	In        io.Reader
	Out       io.Writer
	// Profile selects terminal colors. termenv.Ascii prints plain text.
	Profile termenv.Profile
	Banner  bool
}

// Chat runs a read-reply loop until the input ends, the user types exit,
// or ctx is cancelled.
//
// Lines starting with a slash are commands: /reset forgets the conversation,
// /state prints the stored session and /help lists the commands.
func Chat(ctx context.Context, agent ChatAgent, opts ChatOptions) error {
	out := opts.Out
	r := tui.NewRenderer(opts.Profile)

	if opts.Banner {
		tui.PrintBanner(out, opts.Profile, strings.TrimSpace(airdesk.Version))
	}
	printSystemMessage(out, "Session '%s' active. Type /help for commands.", opts.SessionID)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(opts.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			readErr <- err
			return
		}
		readErr <- io.EOF
	}()

	for {
		fmt.Fprint(out, r.Prompt())

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			printSystemMessage(out, "Interrupted.")
			return nil
		case err := <-readErr:
			fmt.Fprintln(out)
			if isInterrupted(err) {
				printSystemMessage(out, "Bye!")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		case line = <-lines:
		}

		done, err := chatTurn(ctx, agent, r, opts, strings.TrimSpace(line))
		if err != nil {
			return err
		}
		if done {
			printSystemMessage(out, "Bye!")
			return nil
		}
	}
}

func chatTurn(ctx context.Context, agent ChatAgent, r *tui.Renderer, opts ChatOptions, line string) (bool, error) {
	out := opts.Out

	switch line {
	case "exit", "quit", "/exit", "/quit":
		return true, nil
	case "/help":
		printSystemMessage(out, "Commands: /reset, /state, /help, exit")
		return false, nil
	case "/reset":
		if err := agent.Reset(ctx, opts.SessionID); err != nil {
			return false, fmt.Errorf("reset session: %w", err)
		}
		printSystemMessage(out, "Session '%s' reset.", opts.SessionID)
		return false, nil
	case "/state":
		sess, err := agent.Session(ctx, opts.SessionID)
		if err != nil {
			return false, fmt.Errorf("load session: %w", err)
		}
		data, err := json.Marshal(sess)
		if err != nil {
			return false, err
		}
		printSystemMessage(out, "%s", data)
		return false, nil
	}

	reply, err := agent.Handle(ctx, opts.SessionID, line)
	if err != nil {
		if airdesk.IsInputError(err) {
			printSystemMessage(out, "Input rejected: %v", err)
			return false, nil
		}
		return false, err
	}

	fmt.Fprintln(out, r.Reply(reply.ResponseText))
	for _, a := range reply.Actions {
		fmt.Fprintln(out, r.Action(a))
	}
	if reply.IntentLabel != "" {
		fmt.Fprintln(out, r.Handoff(reply.IntentLabel))
	}
	return false, nil
}
