package customers

import (
	"net/http"

	"field-sales/internal/models"
	"field-sales/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for customers.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	customer, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *Handler) Get(c echo.Context) error {
	customer, err := h.svc.Get(c.Request().Context(), c.Param("customerId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) List(c echo.Context) error {
	filter := models.CustomerFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}
	page, limit := utils.GetPageLimit(c)

	customers, total, err := h.svc.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, models.PagedResponse[models.Customer]{Items: customers, Total: total})
}

func (h *Handler) Update(c echo.Context) error {
	var req models.UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	customer, err := h.svc.Update(c.Request().Context(), c.Param("customerId"), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) Deactivate(c echo.Context) error {
	customer, err := h.svc.Deactivate(c.Request().Context(), c.Param("customerId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("customerId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Import accepts a multipart upload with a "file" field containing an .xlsx
// workbook of customers.
func (h *Handler) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Missing file upload"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Could not read upload"})
	}
	defer file.Close()

	result, err := h.svc.ImportFromExcel(c.Request().Context(), file)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Export streams the customer list as an .xlsx download.
func (h *Handler) Export(c echo.Context) error {
	filter := models.CustomerFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}

	data, err := h.svc.ExportToExcel(c.Request().Context(), filter)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="customers.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
