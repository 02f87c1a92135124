package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps a service error to a response. Validation messages are
// returned as-is; storage failures and anything unclassified are logged and
// hidden. Storage is matched first since a constraint violation from the
// store also unwraps to ErrValidation.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrStorage):
		logUnhandled(log, r, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	case errors.As(err, &ve):
		resp := errorResponse{Error: ve.Summary(), Fields: make([]fieldError, len(ve.Errors))}
		for i, fe := range ve.Errors {
			resp.Fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrCalculationFailed):
		writeError(w, http.StatusBadGateway, "calculation failed")
	case errors.Is(err, domain.ErrNotification):
		log.ErrorContext(r.Context(), "notification channel error", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "notification failed")
	default:
		logUnhandled(log, r, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func logUnhandled(log *slog.Logger, r *http.Request, err error) {
	log.ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
}

// decodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", fmt.Sprintf("invalid request body: %s", bodyErrorReason(err)))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "invalid request body: must contain a single JSON object")
	}
	return nil
}

func bodyErrorReason(err error) string {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return "empty body"
	case errors.As(err, &syntaxErr):
		return "malformed JSON"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %q has the wrong type", typeErr.Field)
	case errors.As(err, &maxErr):
		return "too large"
	default:
		return err.Error()
	}
}
