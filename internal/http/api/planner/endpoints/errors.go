package endpoints

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/planner/internal/calendar"
	"github.com/Nixie-Tech-LLC/planner/internal/db"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/planner/internal/service"
)

// apiError maps a service error onto a status code. what names the record
// in the 404 message, e.g. "Event".
func apiError(err error, what string) *api.APIError {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return api.NotFound(what + " not found")
	case errors.Is(err, calendar.ErrInvalidRule),
		errors.Is(err, calendar.ErrInvalidInstant),
		errors.Is(err, service.ErrInvalidInput):
		return api.BadRequest(err.Error())
	default:
		log.Error().Err(err).Str("resource", what).Msg("request failed")
		return api.Internal(err.Error())
	}
}
