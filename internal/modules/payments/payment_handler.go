package payments

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

func (h *Handler) Record(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	payment, err := h.svc.RecordPayment(c.Request().Context(), userID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *Handler) ListForCustomer(c echo.Context) error {
	page, limit := utils.GetPageLimit(c)
	payments, total, err := h.svc.ListCustomerPayments(c.Request().Context(), c.Param("customerId"), page, limit)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, models.PagedResponse[models.Payment]{Items: payments, Total: total})
}

func (h *Handler) Balance(c echo.Context) error {
	balance, err := h.svc.CustomerBalance(c.Request().Context(), c.Param("customerId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, balance)
}
