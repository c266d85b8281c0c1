package products

import (
	"net/http"

	"field-sales/internal/models"
	"field-sales/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	product, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *Handler) Get(c echo.Context) error {
	product, err := h.svc.Get(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) List(c echo.Context) error {
	page, limit := utils.GetPageLimit(c)
	activeOnly := c.QueryParam("active") == "true"

	list, total, err := h.svc.List(c.Request().Context(), activeOnly, page, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, models.PagedResponse[models.Product]{Items: list, Total: total})
}

func (h *Handler) Update(c echo.Context) error {
	var req models.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	product, err := h.svc.Update(c.Request().Context(), c.Param("productId"), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Export streams the catalog as an .xlsx download.
func (h *Handler) Export(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"

	data, err := h.svc.ExportToExcel(c.Request().Context(), activeOnly)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("productId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
