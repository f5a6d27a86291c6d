package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/snakyhub/internal/api/apierr"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

// writeError writes err as a JSON error, logging anything that maps to a 500
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if apierr.StatusOf(err) >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	apierr.WriteError(w, err)
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.NewInvalidRequestError("Request body is required")
		}
		return apierr.NewInvalidRequestError("Invalid request body")
	}
	if fields := ValidateStruct(dst); len(fields) > 0 {
		return apierr.NewValidationError(fields)
	}
	return nil
}
