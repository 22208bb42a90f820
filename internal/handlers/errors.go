package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/httperr"
)

// writeDomainError maps core failures onto HTTP statuses. Anything that
// is not a DomainError is an infrastructure fault.
func writeDomainError(c *gin.Context, err error) {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch de.Kind {
	case domain.KindValidation:
		httperr.BadRequest(c, de.Code, de.Message)
	case domain.KindNotFound:
		httperr.NotFound(c, de.Code, de.Message)
	case domain.KindStateConflict, domain.KindDoubleBooking, domain.KindConcurrency:
		httperr.Conflict(c, de.Code, de.Message)
	default:
		httperr.Internal(c, de.Code, de.Message)
	}
}
