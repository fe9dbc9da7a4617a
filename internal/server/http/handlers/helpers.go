package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/aurumlab/goldtrade/internal/domain/errors"
	"github.com/aurumlab/goldtrade/internal/domain/model"
	"github.com/aurumlab/goldtrade/internal/server/http/dto"
	"github.com/aurumlab/goldtrade/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated caller from context.
func CurrentIdentity(c *gin.Context) *model.Identity {
	val, ok := c.Get(middleware.IdentityContextKey)
	if !ok {
		return nil
	}
	identity, _ := val.(*model.Identity)
	return identity
}

// requireIdentity answers 401 when no identity was stored by the auth
// middleware. Invoice routes are registered behind AuthRequired; this is the
// backstop for a route wired without it.
func requireIdentity(c *gin.Context) (*model.Identity, bool) {
	identity := CurrentIdentity(c)
	if identity == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("authentication required"))
		return nil, false
	}
	return identity, true
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrProductNotFound),
		errors.Is(err, domainErrors.ErrInvoiceNotFound):
		c.JSON(http.StatusNotFound, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrProductTypeMismatch),
		errors.Is(err, domainErrors.ErrPriceMismatch),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrPaymentAmountRequired):
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrNotOwner):
		c.JSON(http.StatusForbidden, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrInsufficientStock),
		errors.Is(err, domainErrors.ErrPaymentAmountMismatch),
		errors.Is(err, domainErrors.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, dto.Fail(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.Fail("internal error"))
	}
}
