package trace

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNewGeneratesUniqueIDs(t *testing.T) {
	a, b := New(), New()

	if a.TraceID == "" || a.SpanID == "" {
		t.Fatal("New() produced empty IDs")
	}
	if len(a.TraceID) != 32 {
		t.Errorf("TraceID length = %d, want 32 hex chars", len(a.TraceID))
	}
	if len(a.SpanID) != 16 {
		t.Errorf("SpanID length = %d, want 16 hex chars", len(a.SpanID))
	}
	if a.TraceID == b.TraceID {
		t.Error("two traces share a TraceID")
	}
}

func TestNewChildKeepsTrace(t *testing.T) {
	parent := New()
	child := NewChild(parent)

	if child.TraceID != parent.TraceID {
		t.Error("child must inherit the parent's TraceID")
	}
	if child.ParentSpanID != parent.SpanID {
		t.Error("child's parent span must be the parent's span")
	}
	if child.SpanID == parent.SpanID {
		t.Error("child must get a fresh SpanID")
	}
}

func TestContextRoundTrip(t *testing.T) {
	tc := New()
	ctx := WithContext(context.Background(), tc)

	got, ok := FromContext(ctx)
	if !ok || got != tc {
		t.Errorf("FromContext() = %+v, %v; want %+v, true", got, ok, tc)
	}

	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext on empty context should report absence")
	}
}

func TestEnsureContext(t *testing.T) {
	ctx, tc := EnsureContext(context.Background())
	if tc.TraceID == "" {
		t.Fatal("EnsureContext should mint a trace")
	}

	ctx2, tc2 := EnsureContext(ctx)
	if tc2 != tc {
		t.Error("EnsureContext must reuse an existing trace")
	}
	if ctx2 != ctx {
		t.Error("EnsureContext must not rewrap an already-traced context")
	}
}

func TestInject(t *testing.T) {
	tc := New()
	h := http.Header{}
	tc.Inject(h)

	if got := h.Get(TraceIDHeader); got != tc.TraceID {
		t.Errorf("%s = %q, want %q", TraceIDHeader, got, tc.TraceID)
	}
	if got := h.Get(SpanIDHeader); got != tc.SpanID {
		t.Errorf("%s = %q, want %q", SpanIDHeader, got, tc.SpanID)
	}
}

func TestSpanLifecycle(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "match_attempt")
	span.SetAttr("attempt", 3)

	if span.Duration() != 0 {
		t.Error("Duration() before End() should be zero")
	}
	time.Sleep(time.Millisecond)
	span.End()

	if span.Duration() <= 0 {
		t.Error("Duration() after End() should be positive")
	}
	if tc, ok := FromContext(ctx); !ok || tc != span.Ctx {
		t.Error("StartSpan must install the span's context")
	}

	// Child spans continue the same trace.
	_, child := StartSpan(ctx, "submit")
	if child.Ctx.TraceID != span.Ctx.TraceID {
		t.Error("nested span must share the TraceID")
	}
	if child.Ctx.ParentSpanID != span.Ctx.SpanID {
		t.Error("nested span's parent must be the outer span")
	}
}
