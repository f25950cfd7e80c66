package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/njchilds90/mathsteps/internal/errors"
	"github.com/njchilds90/mathsteps/internal/simplifier"
	"github.com/njchilds90/mathsteps/internal/solver"
)

// SimplifyRequest is the body of POST /simplify.
type SimplifyRequest struct {
	Expression string `json:"expression"`
}

// SolveRequest is the body of POST /solve.
type SolveRequest struct {
	Equation string `json:"equation"`
}

// SimplifyResponse is a successful /simplify reply.
type SimplifyResponse struct {
	Status string `json:"status"`
	*simplifier.Result
}

// SolveResponse is a successful /solve reply.
type SolveResponse struct {
	Status string `json:"status"`
	*solver.Result
}

// HealthResponse is the /health reply.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// handleSimplify handles POST /simplify
func (s *Server) handleSimplify(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req SimplifyRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, "simplify", err)
		return
	}

	res, err := s.simplifier.Run(req.Expression)
	if err != nil {
		s.fail(w, r, "simplify", err)
		return
	}
	s.succeed(r, "simplify", "result", res.Result)
	WriteJSON(w, http.StatusOK, SimplifyResponse{Status: "ok", Result: res})
}

// handleSolve handles POST /solve
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req SolveRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, "solve", err)
		return
	}

	res, err := s.solver.Run(req.Equation)
	if err != nil {
		s.fail(w, r, "solve", err)
		return
	}
	s.succeed(r, "solve", "solution", res.Solution)
	WriteJSON(w, http.StatusOK, SolveResponse{Status: "ok", Result: res})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleSchema handles GET /schema
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, Schema())
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	WriteError(w, errors.Newf(errors.MethodNotAllowed, "Method %s not allowed; use POST.", r.Method))
	return false
}

// decode reads a single JSON object from the body into dst. Unknown
// fields are ignored; trailing data and oversized bodies are rejected.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.InvalidRequest,
				fmt.Sprintf("Request body too large (max %d bytes).", tooLarge.Limit), err)
		}
		return errors.Wrap(errors.InvalidRequest, fmt.Sprintf("Invalid JSON body (%v)", err), err)
	}
	if dec.More() {
		return errors.New(errors.InvalidRequest, "Invalid JSON body (trailing data)")
	}
	return nil
}

func (s *Server) succeed(r *http.Request, endpoint, key, value string) {
	s.metrics.ObserveOutcome(endpoint, "OK")
	s.logger.Debug("Pipeline succeeded",
		"endpoint", endpoint,
		key, value,
		"requestID", GetRequestID(r.Context()),
	)
}

// fail writes err and records it. Identity and contradiction are logged
// as outcomes, everything else as a failure.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	code := errors.CodeOf(err)
	s.metrics.ObserveOutcome(endpoint, string(code))

	level := slog.LevelWarn
	if code.IsPolicy() {
		level = slog.LevelDebug
	}
	s.logger.Log(r.Context(), level, "Pipeline failed",
		"endpoint", endpoint,
		"code", string(code),
		"error", err.Error(),
		"requestID", GetRequestID(r.Context()),
	)
	WriteError(w, err)
}
