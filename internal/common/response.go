package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

type SuccessResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, SuccessResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// WriteError renders err in the error envelope. Anything that is not an
// *APIError is logged and hidden behind a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	apiErr, ok := AsAPIError(err)
	if !ok {
		log.Error().Err(err).Msg("unhandled error")
		apiErr = &APIError{StatusCode: http.StatusInternalServerError, Message: "Something went wrong"}
	} else if apiErr.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(apiErr.Err).Int("status", apiErr.StatusCode).Bool("retryable", apiErr.Retryable).Msg(apiErr.Message)
	}
	if apiErr.Retryable {
		w.Header().Set("Retry-After", "1")
	}

	details := apiErr.Errors
	if details == nil {
		details = []string{}
	}
	writeJSON(w, apiErr.StatusCode, ErrorResponse{
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Message,
		Success:    false,
		Errors:     details,
	})
}

// DecodeJSON decodes a JSON body, rejecting unknown fields.
func DecodeJSON(r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return NewValidationError("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return NewValidationError("request body is required")
		}
		return NewValidationError("invalid request body", err.Error())
	}
	return nil
}
