package lsp

import (
	"encoding/json"

	"go.uber.org/zap"
)

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.applySettings(params.Settings)
	return nil
}

func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logger.Debug("ignoring unreadable settings", zap.Error(err))
		return
	}
	if settings.Spellesp.Trace != nil {
		s.setTrace(*settings.Spellesp.Trace)
	}
}
