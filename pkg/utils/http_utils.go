package utils

import (
	"errors"
	"net/http"
	"strconv"

	"field-sales/internal/models"

	"github.com/labstack/echo/v4"
)

// ExtractUserInfo pulls the authenticated user's ID and role out of the echo
// context. The JWT middleware puts them there on every authenticated route.
// The returned error is an *echo.HTTPError, safe for handlers to return as-is.
func ExtractUserInfo(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("userID").(string)
	role, _ = c.Get("userRole").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return userID, role, nil
}

// GetPageLimit reads ?page= and ?limit= with sane defaults and caps.
func GetPageLimit(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// HandleServiceError maps the service layer's sentinel errors onto HTTP
// statuses. Anything unrecognized is logged and hidden behind a generic 500.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrForbidden):
		return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrRouteExists),
		errors.Is(err, models.ErrStopFinalized),
		errors.Is(err, models.ErrOrderCannotBeCancelled):
		return c.JSON(http.StatusConflict, models.ErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrInvalidCycle):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrNoEligibleCustomers):
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: err.Error()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Something went wrong"})
	}
}
