package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/krxdata/internal/common"
)

// StdioProxy forwards JSON-RPC messages from stdin to a streamable HTTP MCP
// endpoint and writes the responses to stdout.
type StdioProxy struct {
	endpoint   string
	httpClient *http.Client
	logger     *common.Logger

	mu        sync.Mutex
	sessionID string
}

// NewStdioProxy creates a proxy targeting the MCP endpoint at serverURL+path.
func NewStdioProxy(serverURL, path string, logger *common.Logger) *StdioProxy {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	if path == "" {
		path = "/mcp"
	}
	return &StdioProxy{
		endpoint: strings.TrimRight(serverURL, "/") + path,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // match server WriteTimeout
		},
		logger: logger,
	}
}

// RunWithIO reads newline-delimited JSON-RPC from r, forwards each message
// to the HTTP server, and writes every response message to w.
func (p *StdioProxy) RunWithIO(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Allow large messages (up to 10MB)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		msgs, err := p.forward(ctx, line)
		if err != nil {
			p.logger.Warn().Err(err).Msg("Forward failed")
			if isNotification(line) {
				continue
			}
			msgs = [][]byte{jsonRPCError(extractID(line), -32000, err.Error())}
		}

		for _, msg := range msgs {
			if _, err := w.Write(append(msg, '\n')); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}

	return scanner.Err()
}

// forward posts one JSON-RPC message and returns the response messages.
// Accepted notifications (202) produce none.
func (p *StdioProxy) forward(ctx context.Context, body []byte) ([][]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	p.mu.Lock()
	if p.sessionID != "" {
		req.Header.Set("Mcp-Session-Id", p.sessionID)
	}
	p.mu.Unlock()

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()

	if id := resp.Header.Get("Mcp-Session-Id"); id != "" {
		p.mu.Lock()
		p.sessionID = id
		p.mu.Unlock()
	}

	if resp.StatusCode == http.StatusAccepted {
		return nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		return sseMessages(respBody), nil
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 {
		return nil, nil
	}
	return [][]byte{trimmed}, nil
}

// sseMessages extracts the data payloads of a server-sent event stream.
// Multi-line data fields are joined with newlines.
func sseMessages(body []byte) [][]byte {
	var (
		msgs [][]byte
		data []string
	)
	flush := func() {
		if len(data) > 0 {
			msgs = append(msgs, []byte(strings.Join(data, "\n")))
			data = nil
		}
	}
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	flush()
	return msgs
}

// extractID pulls the "id" field from a JSON-RPC request for error responses.
func extractID(msg []byte) json.RawMessage {
	var req struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(msg, &req); err != nil || req.ID == nil {
		return json.RawMessage("null")
	}
	return req.ID
}

// isNotification reports whether msg is a well-formed JSON-RPC message
// without an id. Those never get a reply.
func isNotification(msg []byte) bool {
	var req map[string]json.RawMessage
	if err := json.Unmarshal(msg, &req); err != nil {
		return false
	}
	_, hasID := req["id"]
	return !hasID
}

// jsonRPCError creates a JSON-RPC error response.
func jsonRPCError(id json.RawMessage, code int, message string) []byte {
	resp := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
	data, _ := json.Marshal(resp)
	return data
}
