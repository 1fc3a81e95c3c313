package httpd

import (
	"encoding/json"
	"net/http"

	"draftdesk/internal/tools"
)

type chatRequest struct {
	Message    string `json:"message"`
	UseContext bool   `json:"use_context"`
}

type toolsCallRequest struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type toolsCallResponse struct {
	Result *tools.Result    `json:"result,omitempty"`
	Error  *tools.ToolError `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.assistant.Chat(r.Context(), req.Message, req.UseContext)
	if err != nil {
		s.logger.Error("chat turn failed", "err", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleToolsList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": tools.Definitions()})
}

// handleToolsCall executes one tool. A failing tool is still a successful
// HTTP exchange: the error rides in the response payload.
func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req toolsCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	toolReq, toolErr := tools.DecodeRequest(req.Name, req.Arguments)
	if toolErr != nil {
		writeJSON(w, http.StatusOK, toolsCallResponse{Error: toolErr})
		return
	}
	result, toolErr := s.catalog.Execute(r.Context(), toolReq)
	if toolErr != nil {
		s.logger.Warn("tool call failed", "tool", req.Name, "code", toolErr.Code)
		writeJSON(w, http.StatusOK, toolsCallResponse{Error: toolErr})
		return
	}
	writeJSON(w, http.StatusOK, toolsCallResponse{Result: &result})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
