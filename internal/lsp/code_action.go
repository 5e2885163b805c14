package lsp

import (
	"encoding/json"

	"go.uber.org/zap"

	"spellesp/internal/action"
)

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	diags := make([]action.Diagnostic, 0, len(params.Context.Diagnostics))
	for _, d := range params.Context.Diagnostics {
		diags = append(diags, action.Diagnostic{Message: d.Message})
	}
	actions := action.Provide(diags)
	if s.currentTrace() {
		s.logger.Debug("code actions",
			zap.String("uri", params.TextDocument.URI),
			zap.Int("diagnostics", len(diags)),
			zap.Int("actions", len(actions)))
	}
	return s.sendResponse(msg.ID, codeActionResult(actions))
}
