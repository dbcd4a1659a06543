package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeCoded maps a pipeline error to a status by its taxonomy code.
func writeCoded(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case domain.CodeNoInputData, domain.CodeInvalidInputFormat, domain.CodeRootNotObjectOrArray,
		domain.CodeInvalidConfiguration, domain.CodeUnknownTransformer:
		status = http.StatusBadRequest
	case domain.CodeTransportError:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Code: string(code)})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Errorf(domain.CodeInvalidInputFormat, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return domain.Errorf(domain.CodeInvalidInputFormat, "decode request: %w", err)
	}
	return nil
}
