package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type clientScript struct {
	t   *testing.T
	buf bytes.Buffer
	seq int
}

func newClientScript(t *testing.T) *clientScript {
	return &clientScript{t: t}
}

func (c *clientScript) request(method string, params any) int {
	c.t.Helper()
	c.seq++
	c.write(map[string]any{"jsonrpc": "2.0", "id": c.seq, "method": method, "params": params})
	return c.seq
}

func (c *clientScript) notify(method string, params any) {
	c.t.Helper()
	c.write(map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

func (c *clientScript) write(msg map[string]any) {
	c.t.Helper()
	payload, err := json.Marshal(msg)
	require.NoError(c.t, err)
	require.NoError(c.t, writeMessage(&c.buf, payload))
}

// runServer feeds the script to a new server and returns every message it wrote.
func runServer(t *testing.T, script *clientScript, opts ServerOptions) ([]rpcMessage, error) {
	t.Helper()
	var out bytes.Buffer
	server := NewServer(bytes.NewReader(script.buf.Bytes()), &out, opts)
	runErr := server.Run(context.Background())

	reader := bufio.NewReader(bytes.NewReader(out.Bytes()))
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		var msg rpcMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		msgs = append(msgs, msg)
	}
	return msgs, runErr
}

func responseFor(t *testing.T, msgs []rpcMessage, id int) rpcMessage {
	t.Helper()
	want, err := json.Marshal(id)
	require.NoError(t, err)
	for _, msg := range msgs {
		if msg.Method == "" && string(msg.ID) == string(want) {
			return msg
		}
	}
	t.Fatalf("no response for request %d", id)
	return rpcMessage{}
}

func notifications(msgs []rpcMessage, method string) []rpcMessage {
	var out []rpcMessage
	for _, msg := range msgs {
		if msg.Method == method {
			out = append(out, msg)
		}
	}
	return out
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func diagnosticsParams(uri string, messages ...string) map[string]any {
	diags := make([]map[string]any, 0, len(messages))
	for i, m := range messages {
		diags = append(diags, map[string]any{
			"range": map[string]any{
				"start": map[string]int{"line": i, "character": 0},
				"end":   map[string]int{"line": i, "character": 3},
			},
			"severity": 3,
			"source":   "cSpell",
			"code":     i,
			"message":  m,
		})
	}
	return map[string]any{
		"textDocument": map[string]string{"uri": uri},
		"range": map[string]any{
			"start": map[string]int{"line": 0, "character": 0},
			"end":   map[string]int{"line": 0, "character": 0},
		},
		"context": map[string]any{"diagnostics": diags},
	}
}
