package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/render/worker"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 8 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error envelope. Errors without a code are reported
// as INTERNAL_ERROR with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "request_id", RequestID(r.Context()), "path", r.URL.Path, "err", err)
	}

	var body worker.ErrorBody
	body.Error.Code = string(code)
	body.Error.Kind = string(code.Kind())
	body.Error.Message = msg
	writeJSON(w, status, body)
}

// decodeJSON reads a JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodyBytes)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed JSON body")
	}
	return nil
}
