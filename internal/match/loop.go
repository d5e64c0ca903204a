package match

import (
	"context"
	"time"

	"github.com/argusvision/argus/internal/errors"
	"github.com/argusvision/argus/internal/geometry"
	"github.com/argusvision/argus/internal/screenshot"
	"github.com/argusvision/argus/internal/syncx"
	"github.com/argusvision/argus/internal/trace"
)

// lastState is the matcher's retained predecessor: the last accepted
// screenshot and the bounds it was reported with. Written only on the
// terminal transition of a non-ignored call.
type lastState struct {
	shot   *screenshot.Screenshot
	bounds geometry.Region
}

// WindowMatcher runs the match-acquisition state machine against a pair
// of injected collaborators. One MatchWindow call at a time: callers must
// not start a new invocation before the previous one returns, since delta
// compression depends on a single coherent predecessor screenshot. The
// guarded slot keeps concurrent readers safe, not concurrent invocations.
type WindowMatcher struct {
	provider      OutputProvider
	transport     Transport
	session       string
	defaultBudget time.Duration
	interval      time.Duration
	last          *syncx.RWGuard[lastState]
	triggers      []Trigger
}

// Params configures one MatchWindow invocation.
type Params struct {
	// Region bounds the area to check; the empty Region means the whole
	// screenshot.
	Region geometry.Region
	// Tag labels the checkpoint for the remote service.
	Tag string
	// RunOnce sleeps the full retry budget, then checks exactly once:
	// wait for the content to settle, no polling.
	RunOnce bool
	// IgnoreMismatch suppresses the call's failure-reporting side
	// effects. Intermediate polling attempts always force it true; only
	// the final attempt carries this caller-supplied value.
	IgnoreMismatch bool
	// RetryBudget is the wall-clock polling allowance. UseDefaultBudget
	// selects the matcher default; zero means a single attempt.
	RetryBudget time.Duration
	// Settings carries per-check ignore and floating region providers.
	Settings CheckSettings
	// UserInputs are caller-recorded triggers sent with every attempt.
	UserInputs []Trigger
}

type attemptResult struct {
	verdict *Verdict
	shot    *screenshot.Screenshot
}

// NewWindowMatcher wires the state machine to its collaborators. Both
// are required; a missing one fails fast with a configuration error.
func NewWindowMatcher(provider OutputProvider, transport Transport, session string, defaultBudget time.Duration) (*WindowMatcher, error) {
	if provider == nil {
		return nil, errors.New(errors.CodeConfigMissing, "output provider is required")
	}
	if transport == nil {
		return nil, errors.New(errors.CodeConfigMissing, "transport is required")
	}
	if defaultBudget < 0 {
		return nil, errors.Newf(errors.CodeConfigInvalid, "default retry budget must be >= 0, got %v", defaultBudget)
	}
	return &WindowMatcher{
		provider:      provider,
		transport:     transport,
		session:       session,
		defaultBudget: defaultBudget,
		interval:      PollInterval,
		last:          syncx.NewGuard(lastState{bounds: geometry.Infinite()}),
	}, nil
}

// LastScreenshot returns the retained predecessor screenshot, nil before
// the first accepted capture. Read-only snapshot.
func (m *WindowMatcher) LastScreenshot() *screenshot.Screenshot {
	return m.last.Get().shot
}

// LastBounds returns the bounds recorded with the retained screenshot.
func (m *WindowMatcher) LastBounds() geometry.Region {
	return m.last.Get().bounds
}

// MatchWindow drives one full match acquisition: capture, normalize,
// encode, submit, and poll until a matching verdict or budget
// exhaustion. Attempts are strictly sequential; the budget is a soft
// deadline re-sampled after each attempt, so an in-flight attempt is
// never preempted.
func (m *WindowMatcher) MatchWindow(ctx context.Context, p Params) (*Verdict, error) {
	budget := p.RetryBudget
	if budget == UseDefaultBudget {
		budget = m.defaultBudget
	}
	if budget < 0 {
		return nil, errors.Newf(errors.CodeConfigInvalid, "retry budget must be >= 0, got %v", p.RetryBudget)
	}

	ctx, span := trace.StartSpan(ctx, "match_window")
	defer span.End()
	span.SetAttr("tag", p.Tag)
	span.SetAttr("budget", budget)

	state := &RetryState{Start: time.Now()}
	log := trace.Logger(ctx)

	var res attemptResult
	var err error
	switch {
	case p.RunOnce:
		// Let the content settle for the full budget, then check once.
		if err := m.sleep(ctx, budget); err != nil {
			return nil, err
		}
		res, err = m.attempt(ctx, p, p.IgnoreMismatch, state)
	case budget == 0:
		res, err = m.attempt(ctx, p, p.IgnoreMismatch, state)
	default:
		res, err = m.poll(ctx, p, budget, state)
	}
	if err != nil {
		return nil, err
	}

	span.SetAttr("attempts", state.Attempts)
	span.SetAttr("as_expected", res.verdict.AsExpected)
	log.Debug("match window finished",
		"tag", p.Tag, "attempts", state.Attempts, "as_expected", res.verdict.AsExpected)

	m.finish(p, res)
	return res.verdict, nil
}

// poll is the Polling state: intermediate attempts force
// ignoreMismatch=true so transient render states are never reported as
// final failures, then one authoritative final attempt carries the
// caller's real flag.
func (m *WindowMatcher) poll(ctx context.Context, p Params, budget time.Duration, state *RetryState) (attemptResult, error) {
	for {
		if err := m.sleep(ctx, m.interval); err != nil {
			return attemptResult{}, err
		}
		res, err := m.attempt(ctx, p, true, state)
		if err != nil {
			return attemptResult{}, err
		}
		if res.verdict.AsExpected {
			return res, nil
		}
		state.Elapsed = time.Since(state.Start)
		if state.Elapsed >= budget {
			break
		}
	}
	return m.attempt(ctx, p, p.IgnoreMismatch, state)
}

// attempt performs one capture+submit cycle. Capture and transport
// failures propagate; the loop never retries them, only mismatches.
func (m *WindowMatcher) attempt(ctx context.Context, p Params, ignoreMismatch bool, state *RetryState) (attemptResult, error) {
	state.Attempts++
	ctx, span := trace.StartSpan(ctx, "match_attempt")
	defer span.End()
	span.SetAttr("attempt", state.Attempts)
	span.SetAttr("ignore_mismatch", ignoreMismatch)

	out, err := m.provider.GetAppOutput(ctx, p.Region, m.last.Get().shot)
	if err != nil {
		return attemptResult{}, err
	}

	ignore, floating, err := resolveRegions(p.Settings, out.Screenshot)
	if err != nil {
		return attemptResult{}, err
	}

	inputs := make([]Trigger, 0, len(p.UserInputs)+len(m.triggers))
	inputs = append(inputs, p.UserInputs...)
	inputs = append(inputs, m.triggers...)

	verdict, err := m.transport.SubmitMatch(ctx, MatchRequest{
		Session:        m.session,
		Tag:            p.Tag,
		IgnoreMismatch: ignoreMismatch,
		Title:          out.Title,
		Screenshot:     out.Encoded,
		Ignore:         ignore,
		Floating:       floating,
		UserInputs:     inputs,
	})
	if err != nil {
		return attemptResult{}, err
	}
	return attemptResult{verdict: verdict, shot: out.Screenshot}, nil
}

// finish applies the terminal side effects: unless the caller asked to
// ignore mismatches, retain the last accepted screenshot, recompute the
// reported bounds, and clear the consumed triggers.
func (m *WindowMatcher) finish(p Params, res attemptResult) {
	if p.IgnoreMismatch {
		return
	}
	m.last.Set(lastState{
		shot:   res.shot,
		bounds: computeBounds(p.Region, res.shot),
	})
	m.triggers = nil
}

// computeBounds normalizes the caller region into the absolute rectangle
// reported as "last screenshot bounds": a non-empty region verbatim, the
// screenshot's own extent for the empty sentinel, or the infinite
// sentinel when no screenshot exists yet.
func computeBounds(region geometry.Region, shot *screenshot.Screenshot) geometry.Region {
	if !region.IsEmpty() {
		return region
	}
	if shot != nil {
		return shot.Bounds()
	}
	return geometry.Infinite()
}

// resolveRegions asks each provider for its concrete region against the
// current screenshot, preserving declaration order.
func resolveRegions(s CheckSettings, shot *screenshot.Screenshot) ([]geometry.Region, []FloatingRegion, error) {
	var ignore []geometry.Region
	for _, p := range s.IgnoreRegions {
		r, err := p.GetRegion(shot)
		if err != nil {
			return nil, nil, err
		}
		ignore = append(ignore, r)
	}
	var floating []FloatingRegion
	for _, p := range s.FloatingRegions {
		f, err := p.GetFloatingRegion(shot)
		if err != nil {
			return nil, nil, err
		}
		floating = append(floating, f)
	}
	return ignore, floating, nil
}

// sleep waits for d or until ctx is cancelled.
func (m *WindowMatcher) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
