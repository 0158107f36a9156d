package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bobmcallan/krxdata/internal/tools"
)

// handleTool handles POST /tools/{operation}. The JSON body carries the
// operation's arguments; the response body is always the envelope.
func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, toolsPrefix)
	op, ok := s.app.Tools.Lookup(name)
	if !ok {
		WriteJSON(w, http.StatusNotFound, tools.ErrorEnvelope(fmt.Sprintf("Unknown tool: %s", name), "function", name))
		return
	}
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	args, ok := DecodeArgs(w, r)
	if !ok {
		return
	}

	env := op.Call(r.Context(), args)
	if env == nil {
		s.logger.Error().Str("tool", name).Msg("Tool returned no result")
		WriteJSON(w, http.StatusInternalServerError, tools.ErrorEnvelope("No result produced", "function", name))
		return
	}

	body, err := json.Marshal(env)
	if err != nil {
		s.logger.Error().Str("tool", name).Err(err).Msg("Failed to encode tool result")
		WriteJSON(w, http.StatusInternalServerError, tools.ErrorEnvelope(err.Error(), "function", name))
		return
	}

	status := http.StatusOK
	if env.IsError() {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
