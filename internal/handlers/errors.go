package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"feedback-prioritizer/internal/utils"
	apperrors "feedback-prioritizer/pkg/errors"
)

// writeError sends err to the client. Validation messages are passed through;
// anything else is logged and answered with fallback.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	msg := fallback

	var ae *apperrors.AppError
	if errors.As(err, &ae) && status < http.StatusInternalServerError {
		msg = ae.Message
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("type", string(apperrors.TypeOf(err))).Msg(fallback)
	}
	utils.Error(w, status, msg)
}
