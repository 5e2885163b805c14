package lsp

import (
	"go.uber.org/zap"

	"spellesp/internal/dispatch"
)

func (s *Server) currentDispatcher() *dispatch.Dispatcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatcher
}

func (s *Server) currentTrace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traceLSP
}

func (s *Server) isInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

func (s *Server) isShutdownRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdownRequested
}

// setTrace toggles request tracing, raising the shared log level to debug while on.
func (s *Server) setTrace(on bool) {
	s.mu.Lock()
	s.traceLSP = on
	s.mu.Unlock()
	if s.opts.Level == nil {
		return
	}
	if on {
		s.opts.Level.SetLevel(zap.DebugLevel)
		return
	}
	s.opts.Level.SetLevel(s.baseLevel.Level())
}
