package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/airdesk/pkg/domain"
)

const idleNode = "idle"

// Overlay marks a session's position on the diagram.
type Overlay struct {
	Intent domain.Intent
	State  domain.State
}

// GenerateMermaid produces a Mermaid flowchart of the dialogue flows.
// Each intent becomes a subgraph of its states in forward order:
// - Idle: ((Circle))
// - Handoff: [[Subroutine]]
// - Flow state: [/Parallelogram/] (every state waits for input)
// With an overlay, states already passed in the session's flow are styled
// visited and the current one current.
func GenerateMermaid(overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", idleNode, idleNode))

	for _, intent := range domain.Intents() {
		states := domain.StatesFor(intent)
		sb.WriteString(fmt.Sprintf("    subgraph %s[\"%s\"]\n", sanitizeMermaidID(string(intent)), intent))
		for _, s := range states {
			sb.WriteString(fmt.Sprintf("        %s[/\"%s\"/]\n", sanitizeMermaidID(string(s)), s))
		}
		sb.WriteString("    end\n")

		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", idleNode, intent, sanitizeMermaidID(string(states[0]))))
		for i := 1; i < len(states); i++ {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(string(states[i-1])), sanitizeMermaidID(string(states[i]))))
		}
		sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", sanitizeMermaidID(string(states[len(states)-1])), idleNode))
	}

	handoff := sanitizeMermaidID(string(domain.IntentAgentTransfer))
	sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", handoff, domain.IntentAgentTransfer))
	sb.WriteString(fmt.Sprintf("    %s -. \"any state\" .-> %s\n", idleNode, handoff))

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		current := idleNode
		if overlay.State != "" && domain.HasState(overlay.Intent, overlay.State) {
			current = sanitizeMermaidID(string(overlay.State))
			for _, s := range domain.StatesFor(overlay.Intent) {
				if s == overlay.State {
					break
				}
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", sanitizeMermaidID(string(s))))
			}
		}
		sb.WriteString(fmt.Sprintf("    class %s current;\n", current))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
