// Package lsp serves spellesp over stdio JSON-RPC: it offers "Add to Dictionary"
// code actions for unknown-word diagnostics and executes them.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"spellesp/internal/dispatch"
	"spellesp/internal/project"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// DispatcherFunc builds the command dispatcher once the workspace root is known.
type DispatcherFunc func(settings project.Settings) *dispatch.Dispatcher

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Root, when set, overrides the workspace root sent by the client.
	Root string
	// FallbackRoot is used when neither Root nor the client provides one.
	FallbackRoot string
	// Dispatcher builds the command dispatcher; defaults to dispatch.New over the
	// resolved word list.
	Dispatcher DispatcherFunc
	Logger     *zap.Logger
	// Level, when set, is raised to debug while tracing is enabled.
	Level   *zap.AtomicLevel
	Trace   bool
	Version string
}

// Server handles stdio JSON-RPC for spellesp.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex
	mu     sync.Mutex

	opts              ServerOptions
	logger            *zap.Logger
	baseLevel         zap.AtomicLevel
	initialized       bool
	shutdownRequested bool
	traceLSP          bool
	dispatcher        *dispatch.Dispatcher
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = func(settings project.Settings) *dispatch.Dispatcher {
			return dispatch.New(settings.Store(), dispatch.WithLogger(logger))
		}
	}
	s := &Server{
		in:     bufio.NewReader(in),
		out:    bufio.NewWriter(out),
		opts:   opts,
		logger: logger,
	}
	if opts.Level != nil {
		s.baseLevel = zap.NewAtomicLevelAt(opts.Level.Level())
	}
	s.setTrace(opts.Trace)
	return s
}

// Run serves LSP requests until the client exits or in reaches EOF. Requests are
// handled one at a time, so command invocations never overlap.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Warn("failed to parse message", zap.Error(err))
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	if s.currentTrace() {
		s.logger.Debug("request", zap.String("method", msg.Method), zap.ByteString("id", msg.ID))
	}
	if msg.Method != "exit" && len(msg.ID) > 0 && s.isShutdownRequested() {
		return s.sendError(msg.ID, codeInvalidRequest, "server is shutting down")
	}
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.logClient(messageInfo, "spellesp initialized")
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		if s.isShutdownRequested() {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/codeAction":
		if !s.isInitialized() {
			return s.sendError(msg.ID, codeServerNotInitialized, "server not initialized")
		}
		return s.handleCodeAction(msg)
	case "workspace/executeCommand":
		if !s.isInitialized() {
			return s.sendError(msg.ID, codeServerNotInitialized, "server not initialized")
		}
		return s.handleExecuteCommand(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	root := workspaceRoot(s.opts.Root, params, s.opts.FallbackRoot)
	settings, err := project.Resolve(root)
	if err != nil {
		s.logger.Warn("failed to load project config, using defaults", zap.String("root", root), zap.Error(err))
		s.logClientf(messageWarning, "spellesp: %v; using defaults", err)
		settings = project.Settings{Root: root, Config: project.DefaultConfig()}
	}
	dispatcher := s.opts.Dispatcher(settings)

	s.mu.Lock()
	s.dispatcher = dispatcher
	s.initialized = true
	s.mu.Unlock()
	if settings.Config.LSP.Trace {
		s.setTrace(true)
	}
	s.logger.Info("workspace resolved",
		zap.String("root", settings.Root),
		zap.String("config", settings.ConfigPath),
		zap.String("wordlist", settings.Store().Path()))

	result := initializeResult{
		Capabilities: serverCapabilities{
			CodeActionProvider: true,
			ExecuteCommandProvider: &executeCommandOptions{
				Commands: dispatcher.Commands(),
			},
		},
		ServerInfo: &serverInfo{
			Name:    "spellesp",
			Version: s.opts.Version,
		},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendNotification(method string, params any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	return s.send(msg)
}

// logClient shows message in the client's log through window/logMessage.
func (s *Server) logClient(kind int, message string) error {
	return s.sendNotification("window/logMessage", logMessageParams{Type: kind, Message: message})
}

func (s *Server) logClientf(kind int, format string, args ...any) {
	if err := s.logClient(kind, fmt.Sprintf(format, args...)); err != nil {
		s.logger.Warn("failed to send log message", zap.Error(err))
	}
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}
