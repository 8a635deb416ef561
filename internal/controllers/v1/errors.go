package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneta-app/backend/internal/httperror"
	"github.com/moneta-app/backend/internal/models"
	"github.com/moneta-app/backend/internal/remote"
	"github.com/moneta-app/backend/internal/syncer"
	"github.com/moneta-app/backend/internal/types"
)

var errMonthInvalid = errors.New("the month must be a number from 1 to 12 or one of Jan, Feb, Mär, Apr, Mai, Jun, Jul, Aug, Sep, Okt, Nov, Dez")

// status maps an error to the HTTP status of the response.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrNameMissing),
		errors.Is(err, models.ErrCategoryMissing),
		errors.Is(err, models.ErrAmountNegative),
		errors.Is(err, models.ErrCostTypeInvalid),
		errors.Is(err, types.ErrMonthLabelInvalid),
		errors.Is(err, errMonthInvalid):
		return http.StatusBadRequest

	case errors.Is(err, remote.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, syncer.ErrEntryNotFound),
		errors.Is(err, remote.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, remote.ErrRemote):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(status(err), httperror.New(err))
}
