package argus

import (
	"context"
	"image"
	"testing"

	"github.com/argusvision/argus/internal/errors"
	"github.com/argusvision/argus/internal/geometry"
	"github.com/argusvision/argus/internal/match"
	"github.com/argusvision/argus/internal/screenshot"
)

type stubProvider struct {
	calls   int
	regions []geometry.Region
}

func (s *stubProvider) GetAppOutput(_ context.Context, region geometry.Region, _ *screenshot.Screenshot) (*match.AppOutput, error) {
	s.calls++
	s.regions = append(s.regions, region)
	shot, err := screenshot.FromImage(image.NewRGBA(image.Rect(0, 0, 8, 8)), screenshot.ScreenshotAsIs)
	if err != nil {
		return nil, err
	}
	return &match.AppOutput{Screenshot: shot, Encoded: shot.Encoded(), Title: "stub"}, nil
}

type stubTransport struct {
	reqs []match.MatchRequest
}

func (s *stubTransport) SubmitMatch(_ context.Context, req match.MatchRequest) (*match.Verdict, error) {
	s.reqs = append(s.reqs, req)
	return &match.Verdict{AsExpected: true, WindowID: "w1"}, nil
}

func testConfig() *Config {
	return &Config{
		ServerURL:        "wss://matcher.example.com/ws",
		APIKey:           "k",
		AppName:          "demo",
		MatchTimeoutSec:  0, // default budget: single attempt
		DevicePixelRatio: 1,
	}
}

func TestOpenValidatesConfig(t *testing.T) {
	_, err := Open(context.Background(), &Config{})
	if !errors.IsCode(err, errors.CodeConfigMissing) {
		t.Errorf("Open() error = %v, want CodeConfigMissing", err)
	}
}

func TestCheckWindow(t *testing.T) {
	provider := &stubProvider{}
	transport := &stubTransport{}
	eyes, err := Open(context.Background(), testConfig(),
		WithOutputProvider(provider), WithTransport(transport), WithSession("s-7"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer eyes.Close()

	if eyes.Session() != "s-7" {
		t.Errorf("Session() = %q, want s-7", eyes.Session())
	}

	v, err := eyes.CheckWindow(context.Background(), "home page")
	if err != nil {
		t.Fatalf("CheckWindow() error = %v", err)
	}
	if !v.AsExpected {
		t.Error("verdict = mismatch, want match")
	}
	if provider.calls != 1 {
		t.Errorf("capture calls = %d, want 1", provider.calls)
	}

	req := transport.reqs[0]
	if req.Session != "s-7" || req.Tag != "home page" {
		t.Errorf("request = %+v", req)
	}
	if !provider.regions[0].IsEmpty() {
		t.Error("CheckWindow should capture with the whole-screen sentinel region")
	}
}

func TestCheckRegionAndOptions(t *testing.T) {
	provider := &stubProvider{}
	transport := &stubTransport{}
	eyes, err := Open(context.Background(), testConfig(),
		WithOutputProvider(provider), WithTransport(transport))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer eyes.Close()

	region := Region{X: 1, Y: 2, Width: 3, Height: 4}
	ignore := Region{X: 5, Y: 5, Width: 2, Height: 2}
	floating := FloatingRegion{Region: Region{Width: 4, Height: 4}, MaxDownOffset: 6}

	_, err = eyes.CheckRegion(context.Background(), region, "sidebar",
		WithIgnoreRegions(ignore), WithFloatingRegions(floating), WithIgnoreMismatch())
	if err != nil {
		t.Fatalf("CheckRegion() error = %v", err)
	}

	if provider.regions[0] != region {
		t.Errorf("captured region = %+v, want %+v", provider.regions[0], region)
	}

	req := transport.reqs[0]
	if len(req.Ignore) != 1 || req.Ignore[0] != ignore {
		t.Errorf("ignore = %+v, want %+v", req.Ignore, ignore)
	}
	if len(req.Floating) != 1 || req.Floating[0].MaxDownOffset != 6 {
		t.Errorf("floating = %+v", req.Floating)
	}
	if !req.IgnoreMismatch {
		t.Error("WithIgnoreMismatch should carry through to the attempt")
	}
}
