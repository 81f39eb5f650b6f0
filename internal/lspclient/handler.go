package lspclient

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
)

// raIndexingTokens are rust-analyzer's well-known work-done-progress tokens
// for its startup indexing phases. A progress notification carrying one of
// these, ending with a "WorkDone end" kind, signals that initial indexing
// is complete.
var raIndexingTokens = map[string]bool{
	"rustAnalyzer/Indexing":      true,
	"rustAnalyzer/cachePriming":  true,
}

type progressParams struct {
	Token json.RawMessage `json:"token"`
	Value struct {
		Kind string `json:"kind"`
	} `json:"value"`
}

// notificationHandler implements jsonrpc2.Handler for the client side of an
// LSP session. It answers the two reverse-requests servers commonly send
// during initialization (window/workDoneProgress/create and
// client/registerCapability) with an empty result and watches
// $/progress notifications to detect end-of-indexing.
type notificationHandler struct {
	mu       sync.Mutex
	indexed  chan struct{}
	signaled bool
}

func newNotificationHandler() *notificationHandler {
	return &notificationHandler{indexed: make(chan struct{})}
}

// Handle implements jsonrpc2.Handler.
func (h *notificationHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case "window/workDoneProgress/create":
		if !req.Notif {
			_ = conn.Reply(ctx, req.ID, struct{}{})
		}
	case "$/progress":
		h.handleProgress(req)
	case "client/registerCapability":
		if !req.Notif {
			_ = conn.Reply(ctx, req.ID, struct{}{})
		}
	default:
		// Diagnostics, log/show-message and anything else the server sends
		// unsolicited are intentionally ignored; the scan pipeline has no
		// use for them.
	}
}

func (h *notificationHandler) handleProgress(req *jsonrpc2.Request) {
	if req.Params == nil {
		return
	}

	var params progressParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		return
	}

	var token string
	if err := json.Unmarshal(params.Token, &token); err != nil {
		return
	}

	if !raIndexingTokens[token] && !strings.Contains(strings.ToLower(token), "index") {
		return
	}

	if params.Value.Kind != "end" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.signaled {
		h.signaled = true
		close(h.indexed)
	}
}
