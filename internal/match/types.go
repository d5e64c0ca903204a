package match

import (
	"context"
	"time"

	"github.com/argusvision/argus/internal/geometry"
	"github.com/argusvision/argus/internal/screenshot"
)

// Verdict is the outcome of one remote comparison attempt. Immutable
// once received.
type Verdict struct {
	AsExpected bool              `json:"asExpected"`
	WindowID   string            `json:"windowId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// RetryState tracks one MatchWindow invocation. It is reset at the start
// of each call and never shared across calls.
type RetryState struct {
	Start    time.Time
	Elapsed  time.Duration
	Attempts int
}

// AppOutput is a fresh application capture: the screenshot plus the
// bytes to transmit (delta stream or plain encoded image).
type AppOutput struct {
	Screenshot *screenshot.Screenshot
	Encoded    []byte
	Title      string
}

// TriggerKind discriminates user-input trigger variants.
type TriggerKind string

const (
	TriggerText  TriggerKind = "text"
	TriggerMouse TriggerKind = "mouse"
)

// MouseAction names the mouse event a trigger records.
type MouseAction string

const (
	MouseClick       MouseAction = "click"
	MouseRightClick  MouseAction = "rightclick"
	MouseDoubleClick MouseAction = "doubleclick"
	MouseMove        MouseAction = "move"
	MouseDown        MouseAction = "down"
	MouseUp          MouseAction = "up"
)

// Trigger is a recorded user input, normalized into the last
// screenshot's coordinate space.
type Trigger struct {
	Kind     TriggerKind     `json:"kind"`
	Control  geometry.Region `json:"control"`
	Location geometry.Point  `json:"location,omitempty"`
	Text     string          `json:"text,omitempty"`
	Action   MouseAction     `json:"action,omitempty"`
}

// FloatingRegion is a caller-declared area allowed to move within the
// given offsets during comparison.
type FloatingRegion struct {
	Region         geometry.Region `json:"region"`
	MaxUpOffset    int             `json:"maxUpOffset"`
	MaxDownOffset  int             `json:"maxDownOffset"`
	MaxLeftOffset  int             `json:"maxLeftOffset"`
	MaxRightOffset int             `json:"maxRightOffset"`
}

// MatchRequest is the per-attempt payload handed to the transport.
type MatchRequest struct {
	Session        string            `json:"session"`
	Tag            string            `json:"tag,omitempty"`
	IgnoreMismatch bool              `json:"ignoreMismatch"`
	Title          string            `json:"title,omitempty"`
	Screenshot     []byte            `json:"screenshot"`
	Ignore         []geometry.Region `json:"ignore,omitempty"`
	Floating       []FloatingRegion  `json:"floating,omitempty"`
	UserInputs     []Trigger         `json:"userInputs,omitempty"`
}

// OutputProvider supplies fresh application captures. The previous
// retained screenshot is passed through so the provider can apply delta
// compression against it.
type OutputProvider interface {
	GetAppOutput(ctx context.Context, region geometry.Region, last *screenshot.Screenshot) (*AppOutput, error)
}

// Transport submits one match attempt to the remote comparison service.
// Any error it returns is fatal for the current invocation.
type Transport interface {
	SubmitMatch(ctx context.Context, req MatchRequest) (*Verdict, error)
}

// RegionProvider resolves a declared region against the current
// screenshot, once per attempt.
type RegionProvider interface {
	GetRegion(s *screenshot.Screenshot) (geometry.Region, error)
}

// FloatingProvider resolves a declared floating region against the
// current screenshot.
type FloatingProvider interface {
	GetFloatingRegion(s *screenshot.Screenshot) (FloatingRegion, error)
}

// CheckSettings carries the per-check region declarations, in the order
// the caller supplied them. Order affects only display metadata on the
// remote side, but it is preserved.
type CheckSettings struct {
	IgnoreRegions   []RegionProvider
	FloatingRegions []FloatingProvider
}

// FixedRegion is the trivial RegionProvider: a literal region.
type FixedRegion struct {
	Region geometry.Region
}

// GetRegion returns the literal region unchanged.
func (f FixedRegion) GetRegion(*screenshot.Screenshot) (geometry.Region, error) {
	return f.Region, nil
}

// FixedFloating is the trivial FloatingProvider: a literal floating region.
type FixedFloating struct {
	Floating FloatingRegion
}

// GetFloatingRegion returns the literal floating region unchanged.
func (f FixedFloating) GetFloatingRegion(*screenshot.Screenshot) (FloatingRegion, error) {
	return f.Floating, nil
}
