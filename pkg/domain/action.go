package domain

// ActionType identifies the delivery channel of an Action.
type ActionType string

const (
	ActionEmail ActionType = "email"
	ActionSMS   ActionType = "sms"
)

// Action represents a side-effect that the agent requests the host to perform.
// The agent only builds descriptors; delivery belongs to an external dispatcher.
type Action struct {
	Type        ActionType        `json:"type"`
	Integration string            `json:"integration"`
	Recipient   string            `json:"recipient"`
	Payload     map[string]string `json:"payload,omitempty"`
}
