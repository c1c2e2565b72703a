package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/ports"
)

// Request/Response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

var (
	badRequest = []error{
		entities.ErrValidation,
		entities.ErrDuplicateID,
		entities.ErrPositionMismatch,
		entities.ErrMixedContainers,
		entities.ErrNestingTooDeep,
	}
	notFound = []error{
		entities.ErrCollectionNotFound,
		entities.ErrSectionNotFound,
		entities.ErrTaskNotFound,
		entities.ErrCommentNotFound,
		entities.ErrChecklistItemNotFound,
	}
	conflict = []error{
		entities.ErrReservedName,
		entities.ErrProtectedSection,
		entities.ErrProtectedInbox,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// StatusFor maps a service error to the HTTP status reported to clients.
// Anything that is not a domain error is treated as the store being
// unavailable, which clients may retry.
func StatusFor(err error) int {
	switch {
	case isAny(err, badRequest):
		return http.StatusBadRequest
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, conflict):
		return http.StatusConflict
	case errors.Is(err, entities.ErrComputedSection):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusServiceUnavailable
	}
}

// serviceError converts err into an echo.HTTPError. Store failures are logged
// and reported without their details.
func serviceError(log *logger.Logger, op string, err error) error {
	code := StatusFor(err)
	if code == http.StatusServiceUnavailable {
		log.WithError(err).Errorw(op + " failed")
		return echo.NewHTTPError(code, entities.ErrStoreUnavailable.Error()).SetInternal(err)
	}
	log.Debugw(op+" rejected", "error", err, "status", code)
	return echo.NewHTTPError(code, err.Error())
}

// bind decodes and validates a JSON request body
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// bindReorder decodes a reorder body, a JSON array of entries in the desired
// order.
func bindReorder(c echo.Context) (ports.ReorderRequest, error) {
	var req ports.ReorderRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req.Items); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}
