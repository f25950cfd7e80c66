package api

import (
	"encoding/json"
	"net/http"

	"github.com/njchilds90/mathsteps/internal/errors"
)

// ErrorResponse is the body of every failed or degenerate request.
type ErrorResponse struct {
	Status  string           `json:"status"`
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an error envelope. Errors that are not
// *errors.MathError are reported as INTERNAL_ERROR without their text.
func WriteError(w http.ResponseWriter, err error) {
	me, ok := errors.As(err)
	if !ok {
		me = errors.New(errors.InternalError, "Internal server error")
	}
	WriteJSON(w, errors.StatusFor(me.Code), ErrorResponse{
		Status:  "error",
		Code:    me.Code,
		Message: me.Message,
	})
}
