package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/leapstack-labs/leapreport/pkg/guard"
	"github.com/leapstack-labs/leapreport/pkg/report"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Response is the envelope of every API response.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// GenerateRequest is the body of POST /api/report-structure/generate-jrxml.
type GenerateRequest struct {
	BaseQuery *string `json:"base_query"`
}

// ValidateRequest is the body of POST /api/sql/validate.
type ValidateRequest struct {
	Query    *string `json:"query"`
	ReadOnly bool    `json:"read_only"`
}

// Response messages
const (
	MsgBaseQueryRequired = "base_query is required in the request body"
	MsgQueryRequired     = "query is required in the request body"
	MsgGenerated         = "JRXML JSON generated successfully"
	MsgValid             = "Query is valid"
	MsgGenerateFailed    = "Error generating jrxml_json"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decode(w, r, &req) || req.BaseQuery == nil {
		writeJSON(w, http.StatusBadRequest, Response{Message: MsgBaseQueryRequired})
		return
	}

	desc, err := s.generator.Generate(r.Context(), *req.BaseQuery)
	if err != nil {
		if report.IsClientError(err) {
			writeJSON(w, http.StatusBadRequest, Response{Message: err.Error()})
			return
		}
		s.logger.Error("generate failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, Response{Message: MsgGenerateFailed + ": " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: desc, Message: MsgGenerated})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !decode(w, r, &req) || req.Query == nil || strings.TrimSpace(*req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, Response{Message: MsgQueryRequired})
		return
	}

	err := guard.Validate(*req.Query)
	if err == nil && req.ReadOnly {
		err = guard.CheckReadOnly(*req.Query)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: MsgValid})
}

// decode reads a JSON body into v and reports whether it succeeded.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v) == nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
