// Package transport provides the WebSocket client for the remote
// comparison service. One JSON request/reply exchange per match attempt;
// any failure here is fatal for the attempt and is never retried at this
// layer.
package transport

import (
	"context"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/argusvision/argus/internal/config"
	"github.com/argusvision/argus/internal/errors"
	"github.com/argusvision/argus/internal/match"
	"github.com/argusvision/argus/internal/trace"
)

const (
	// maxMessageBytes bounds inbound frames. Verdicts are small; the
	// limit only guards against a misbehaving server.
	maxMessageBytes = 1 << 20

	apiKeyHeader = "X-Api-Key"
)

// Client is a connected matcher session. Safe for sequential use; the
// internal lock serializes the request/reply exchange on the socket.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Dial connects to the matcher service, authenticating with the API key
// and propagating the trace context on the upgrade request.
func Dial(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, tc := trace.EnsureContext(ctx)

	h := http.Header{}
	h.Set(apiKeyHeader, cfg.APIKey)
	tc.Inject(h)

	conn, _, err := websocket.Dial(ctx, cfg.ServerURL, &websocket.DialOptions{HTTPHeader: h})
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeTransport, "dialing matcher %s", cfg.ServerURL)
	}
	conn.SetReadLimit(maxMessageBytes)
	return &Client{conn: conn}, nil
}

// SubmitMatch sends one match attempt and waits for the verdict.
func (c *Client) SubmitMatch(ctx context.Context, req match.MatchRequest) (*match.Verdict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := trace.StartSpan(ctx, "submit_match")
	defer span.End()
	span.SetAttr("session", req.Session)
	span.SetAttr("payload_bytes", len(req.Screenshot))

	msg := matchWindowMessage{
		Type:      typeMatchWindow,
		RequestID: span.Ctx.SpanID,
		Request:   req,
	}
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		return nil, errors.Wrap(err, errors.CodeTransport, "sending match request")
	}

	var resp verdictMessage
	if err := wsjson.Read(ctx, c.conn, &resp); err != nil {
		return nil, errors.Wrap(err, errors.CodeTransport, "reading match verdict")
	}
	if resp.Type == typeError || resp.Error != "" {
		return nil, errors.Newf(errors.CodeTransport, "matcher rejected request: %s", resp.Error)
	}

	return &match.Verdict{
		AsExpected: resp.AsExpected,
		WindowID:   resp.WindowID,
		Metadata:   resp.Metadata,
	}, nil
}

// Close shuts the connection down cleanly.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
