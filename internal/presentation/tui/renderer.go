package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/airdesk/pkg/domain"
	"github.com/muesli/termenv"
)

// Renderer styles chat output for a terminal color profile.
// termenv.Ascii renders plain text.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer returns a Renderer for profile.
func NewRenderer(profile termenv.Profile) *Renderer {
	return &Renderer{profile: profile}
}

// Prompt is printed before each customer utterance.
func (r *Renderer) Prompt() string {
	return r.profile.String("you> ").Foreground(r.profile.Color("#38bdf8")).Bold().String()
}

// Reply formats the agent's response text.
func (r *Renderer) Reply(text string) string {
	label := r.profile.String("agent>").Foreground(r.profile.Color("#a78bfa")).Bold()
	return fmt.Sprintf("%s %s", label, text)
}

// Handoff marks a transfer to a human agent.
func (r *Renderer) Handoff(label string) string {
	return r.profile.String(fmt.Sprintf("[handoff: %s]", label)).Foreground(r.profile.Color("#fb7185")).String()
}

// Action summarizes one outbound notification on a single line.
func (r *Renderer) Action(a domain.Action) string {
	keys := make([]string, 0, len(a.Payload))
	for k := range a.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, fmt.Sprintf("%s=%v", k, a.Payload[k]))
	}

	head := fmt.Sprintf("  -> %s via %s to %s", a.Type, a.Integration, a.Recipient)
	return r.profile.String(head + " " + strings.Join(fields, " ")).Faint().String()
}
