package http

import (
	"errors"
	"net/http"

	"github.com/myseetara-source/erp-seetara-sub007/internal/logger"
	"github.com/myseetara-source/erp-seetara-sub007/internal/service"
	"github.com/myseetara-source/erp-seetara-sub007/internal/utils"
	"github.com/myseetara-source/erp-seetara-sub007/models"
)

const internalErrorMessage = "internal server error"

var errorStatusMap = map[error]int{
	service.ErrAuthentication: http.StatusUnauthorized,
	service.ErrValidation:     http.StatusBadRequest,
	service.ErrConflict:       http.StatusConflict,
	service.ErrForbidden:      http.StatusForbidden,
	service.ErrRateLimited:    http.StatusTooManyRequests,

	utils.ErrInvalidJSON: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// publicMessage returns the text safe to show a client for err.
func publicMessage(err error, status int) string {
	var publicErr *service.PublicError
	switch {
	case errors.As(err, &publicErr):
		return publicErr.Error()
	case errors.Is(err, service.ErrRateLimited):
		return service.ErrRateLimited.Error()
	case errors.Is(err, utils.ErrInvalidJSON):
		return "Invalid JSON body"
	case status >= http.StatusInternalServerError:
		return internalErrorMessage
	default:
		return http.StatusText(status)
	}
}

// writeError is the single error boundary of the HTTP layer. The raw error
// is logged; the client only sees the mapped status and a safe message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request rejected")
	}

	writeJSON(w, r, models.ErrorResponse{Error: publicMessage(err, status)}, status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write response")
	}
}
