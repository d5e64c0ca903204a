package transport

import "github.com/argusvision/argus/internal/match"

// Message types.
const (
	typeMatchWindow = "matchWindow"
	typeVerdict     = "verdict"
	typeError       = "error"
)

type matchWindowMessage struct {
	Type      string             `json:"type"`
	RequestID string             `json:"requestId"`
	Request   match.MatchRequest `json:"request"`
}

type verdictMessage struct {
	Type       string            `json:"type"`
	RequestID  string            `json:"requestId,omitempty"`
	AsExpected bool              `json:"asExpected"`
	WindowID   string            `json:"windowId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Error      string            `json:"error,omitempty"`
}
