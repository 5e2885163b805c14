package lsp

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"spellesp/internal/dispatch"
)

func (s *Server) handleExecuteCommand(msg *rpcMessage) error {
	var params executeCommandParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	outcome, err := s.currentDispatcher().Dispatch(params.Command, params.Arguments)
	if err != nil {
		s.logger.Error("command failed", zap.String("command", params.Command), zap.Error(err))
		s.logClientf(messageError, "spellesp: %v", err)
		code := codeInternalError
		if errors.Is(err, dispatch.ErrMissingArgument) {
			code = codeInvalidParams
		}
		return s.sendError(msg.ID, code, err.Error())
	}
	if outcome.Handled && s.currentTrace() {
		if outcome.Added {
			s.logClientf(messageLog, "spellesp: added %q to %s", outcome.Word, outcome.Path)
		} else {
			s.logClientf(messageLog, "spellesp: %q already in %s", outcome.Word, outcome.Path)
		}
	}
	return s.sendResponse(msg.ID, nil)
}
