package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/zenka/payments/internal/api"
	"github.com/zenka/payments/internal/service"
)

const maxBodyBytes = 1 << 20

const internalErrorMessage = "Internal server error"

func mapServiceErrorToCode(code string) api.ErrorCode {
	switch code {
	case service.ErrCodeInvalidPhoneNumber:
		return api.ErrorCodeInvalidPhoneNumber
	case service.ErrCodeInvalidAmount:
		return api.ErrorCodeInvalidAmount
	case service.ErrCodeInvalidRequest:
		return api.ErrorCodeInvalidRequest
	case service.ErrCodeUpstreamRejected:
		return api.ErrorCodeUpstreamRejected
	case service.ErrCodeUpstreamMalformed:
		return api.ErrorCodeUpstreamMalformed
	case service.ErrCodeUpstreamUnavailable:
		return api.ErrorCodeUpstreamUnavailable
	default:
		return api.ErrorCodeInternalError
	}
}

// statusForCode picks the response class for a service error code.
// Rejections by the provider are reported as caller errors; an unreachable
// provider is a server error.
func statusForCode(code string) int {
	switch code {
	case service.ErrCodeInvalidPhoneNumber,
		service.ErrCodeInvalidAmount,
		service.ErrCodeInvalidRequest,
		service.ErrCodeUpstreamRejected:
		return http.StatusBadRequest
	case service.ErrCodeUpstreamMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

func errorResponse(code api.ErrorCode, message string) api.ErrorResponse {
	return api.ErrorResponse{Success: false, Error: code, Message: message}
}

// describeError turns err into a status and body. Errors that are not service
// errors are logged and hidden behind a generic 500.
func (h *Handler) describeError(err error, operation string) (int, api.ErrorResponse) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected error during "+operation, "error", err)
		return http.StatusInternalServerError, errorResponse(api.ErrorCodeInternalError, internalErrorMessage)
	}

	return statusForCode(svcErr.Code), errorResponse(mapServiceErrorToCode(svcErr.Code), svcErr.Message)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck // Nothing useful to do if write fails
}

// requestErrorHandler answers requests the generated wrappers could not bind:
// malformed parameters or an undecodable JSON body.
func requestErrorHandler(logger *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("rejected malformed request", "path", r.URL.Path, "error", err)

		message := "Invalid request body"
		var paramErr *api.InvalidParamFormatError
		var countErr *api.TooManyValuesForParamError
		switch {
		case errors.As(err, &paramErr):
			message = fmt.Sprintf("Invalid format for parameter %s", paramErr.ParamName)
		case errors.As(err, &countErr):
			message = fmt.Sprintf("Invalid format for parameter %s", countErr.ParamName)
		}
		writeJSON(w, http.StatusBadRequest, errorResponse(api.ErrorCodeInvalidRequest, message))
	}
}

// responseErrorHandler answers when a handler returned an error instead of a
// response object, or the response could not be written.
func responseErrorHandler(logger *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("failed to produce response", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse(api.ErrorCodeInternalError, internalErrorMessage))
	}
}
