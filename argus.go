package argus

import (
	"context"
	"log/slog"
	"time"

	"github.com/argusvision/argus/internal/capture"
	"github.com/argusvision/argus/internal/config"
	"github.com/argusvision/argus/internal/geometry"
	"github.com/argusvision/argus/internal/match"
	"github.com/argusvision/argus/internal/trace"
	"github.com/argusvision/argus/internal/transport"
)

// Re-exported types, so callers never import internal packages.
type (
	Config         = config.Config
	Point          = geometry.Point
	Region         = geometry.Region
	Verdict        = match.Verdict
	Trigger        = match.Trigger
	FloatingRegion = match.FloatingRegion
	MouseAction    = match.MouseAction
)

// Mouse actions accepted by AddMouseTrigger.
const (
	MouseClick       = match.MouseClick
	MouseRightClick  = match.MouseRightClick
	MouseDoubleClick = match.MouseDoubleClick
	MouseMove        = match.MouseMove
	MouseDown        = match.MouseDown
	MouseUp          = match.MouseUp
)

// LoadConfig builds configuration from defaults and the environment.
func LoadConfig() *Config { return config.Load() }

// LoadConfigFile layers a YAML file between defaults and the environment.
func LoadConfigFile(path string) (*Config, error) { return config.LoadFile(path) }

// Eyes is one visual checking session against the remote matcher.
type Eyes struct {
	cfg      *config.Config
	capturer capture.Capturer
	client   *transport.Client
	matcher  *match.WindowMatcher
	session  string
}

// Option customizes Open, mostly for swapping collaborators in tests.
type Option func(*openOptions)

type openOptions struct {
	provider  match.OutputProvider
	transport match.Transport
	session   string
}

// WithOutputProvider replaces the OS screen capture provider.
func WithOutputProvider(p match.OutputProvider) Option {
	return func(o *openOptions) { o.provider = p }
}

// WithTransport replaces the WebSocket matcher client.
func WithTransport(t match.Transport) Option {
	return func(o *openOptions) { o.transport = t }
}

// WithSession pins the opaque session identifier instead of minting one.
func WithSession(id string) Option {
	return func(o *openOptions) { o.session = id }
}

// Open validates the configuration, connects to the matcher service, and
// wires the capture provider to the match engine.
func Open(ctx context.Context, cfg *Config, opts ...Option) (*Eyes, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.session == "" {
		o.session = trace.New().TraceID
	}

	e := &Eyes{cfg: cfg, session: o.session}

	if o.transport == nil {
		client, err := transport.Dial(ctx, cfg)
		if err != nil {
			return nil, err
		}
		e.client = client
		o.transport = client
	}
	if o.provider == nil {
		e.capturer = capture.New()
		o.provider = capture.NewProvider(e.capturer, cfg.DevicePixelRatio, cfg.CaptureTitle)
	}

	matcher, err := match.NewWindowMatcher(o.provider, o.transport, o.session, cfg.MatchTimeout())
	if err != nil {
		e.close()
		return nil, err
	}
	e.matcher = matcher

	slog.Info("eyes opened", "app", cfg.AppName, "session", o.session, "server", cfg.ServerURL)
	return e, nil
}

// Session returns the opaque session identifier sent with every attempt.
func (e *Eyes) Session() string { return e.session }

// CheckOption adjusts a single check.
type CheckOption func(*match.Params)

// WithRetryBudget overrides the configured retry budget for this check.
func WithRetryBudget(d time.Duration) CheckOption {
	return func(p *match.Params) { p.RetryBudget = d }
}

// WithRunOnce sleeps the full budget, then checks exactly once.
func WithRunOnce() CheckOption {
	return func(p *match.Params) { p.RunOnce = true }
}

// WithIgnoreMismatch suppresses the check's failure-reporting side
// effects; the engine will not retain this check's screenshot.
func WithIgnoreMismatch() CheckOption {
	return func(p *match.Params) { p.IgnoreMismatch = true }
}

// WithIgnoreRegions excludes areas from the comparison.
func WithIgnoreRegions(regions ...Region) CheckOption {
	return func(p *match.Params) {
		for _, r := range regions {
			p.Settings.IgnoreRegions = append(p.Settings.IgnoreRegions, match.FixedRegion{Region: r})
		}
	}
}

// WithFloatingRegions declares areas allowed to move within offsets.
func WithFloatingRegions(regions ...FloatingRegion) CheckOption {
	return func(p *match.Params) {
		for _, f := range regions {
			p.Settings.FloatingRegions = append(p.Settings.FloatingRegions, match.FixedFloating{Floating: f})
		}
	}
}

// CheckWindow checks the whole screen against the baseline under tag.
func (e *Eyes) CheckWindow(ctx context.Context, tag string, opts ...CheckOption) (*Verdict, error) {
	return e.check(ctx, Region{}, tag, opts)
}

// CheckRegion checks only the given region.
func (e *Eyes) CheckRegion(ctx context.Context, region Region, tag string, opts ...CheckOption) (*Verdict, error) {
	return e.check(ctx, region, tag, opts)
}

func (e *Eyes) check(ctx context.Context, region Region, tag string, opts []CheckOption) (*Verdict, error) {
	p := match.Params{
		Region:      region,
		Tag:         tag,
		RetryBudget: match.UseDefaultBudget,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return e.matcher.MatchWindow(ctx, p)
}

// AddTextTrigger records a text input against a control rectangle.
// Inputs outside the captured area are silently dropped.
func (e *Eyes) AddTextTrigger(control Region, text string) {
	e.matcher.AddTextTrigger(control, text)
}

// AddMouseTrigger records a mouse event; cursor is relative to the
// control's top-left corner.
func (e *Eyes) AddMouseTrigger(action MouseAction, control Region, cursor Point) error {
	return e.matcher.AddMouseTrigger(action, control, cursor)
}

// Close releases the capturer and shuts the matcher connection down.
func (e *Eyes) Close() error {
	return e.close()
}

func (e *Eyes) close() error {
	if e.capturer != nil {
		e.capturer.Close()
	}
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
