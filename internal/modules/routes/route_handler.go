package routes

import (
	"net/http"
	"time"

	"field-sales/internal/models"
	"field-sales/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for weekly routes and their stops.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// Generate builds the automated route for the week of the posted target
// date, owned by the authenticated salesperson.
func (h *Handler) Generate(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.GenerateRouteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid target date"})
	}

	route, err := h.svc.GenerateWeeklyRoute(c.Request().Context(), userID, targetDate)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, route)
}

func (h *Handler) GetRoute(c echo.Context) error {
	userID, role, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	route, err := h.svc.GetRoute(c.Request().Context(), c.Param("routeId"), userID, role)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, route)
}

func (h *Handler) ListMyRoutes(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	page, limit := utils.GetPageLimit(c)
	routesOut, total, err := h.svc.ListMyRoutes(c.Request().Context(), userID, page, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, models.PagedResponse[*models.WeeklyRoute]{Items: routesOut, Total: total})
}

func (h *Handler) DeleteRoute(c echo.Context) error {
	userID, role, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteRoute(c.Request().Context(), c.Param("routeId"), userID, role); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStopStatus completes or skips a stop.
func (h *Handler) UpdateStopStatus(c echo.Context) error {
	userID, role, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.UpdateStopStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	stop, err := h.svc.FinalizeStop(c.Request().Context(), c.Param("routeId"), c.Param("stopId"), userID, role, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, stop)
}

// CheckInStop records visited / barcode-scanned flags on a stop.
func (h *Handler) CheckInStop(c echo.Context) error {
	userID, role, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.CheckInStopRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}

	stop, err := h.svc.CheckInStop(c.Request().Context(), c.Param("routeId"), c.Param("stopId"), userID, role, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, stop)
}
