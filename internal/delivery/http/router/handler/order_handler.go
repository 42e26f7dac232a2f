package handler

import (
	"log/slog"
	"net/http"

	"anha/internal/delivery/http/response"
	"anha/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc       usecase.OrderUsecase
	payments usecase.PaymentUsecase
	logger   *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, payments usecase.PaymentUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:       uc,
		payments: payments,
		logger:   logger,
	}
}

// Place converts the caller's cart into an order.
func (h *OrderHandler) Place(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// Get returns one order. Non-admin callers only see their own.
func (h *OrderHandler) Get(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.GetOrder(c.Request().Context(), userID, callerIsAdmin(c), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListMine returns the caller's orders, newest first.
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// ListAll returns every order. Admin only.
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// MarkPaid flags an order as paid. Admin only.
func (h *OrderHandler) MarkPaid(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.MarkPaid(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order marked as paid")
}

// MarkDelivered flags an order as delivered. Admin only.
func (h *OrderHandler) MarkDelivered(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.MarkDelivered(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order marked as delivered")
}

// Delete removes an order. Admin only.
func (h *OrderHandler) Delete(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Order deleted"}, "Order deleted successfully")
}

// PaymentQR renders the bank transfer QR image for an unpaid order.
func (h *OrderHandler) PaymentQR(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.PaymentQR(c.Request().Context(), userID, callerIsAdmin(c), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// VerifyPayment checks the bank statement for the order's transfer on demand.
func (h *OrderHandler) VerifyPayment(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	// Ownership check first so foreign orders stay invisible.
	if _, err := h.uc.GetOrder(c.Request().Context(), userID, callerIsAdmin(c), orderID); err != nil {
		return errors.WithStack(err)
	}

	paid, err := h.payments.VerifyOrder(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"isPaid": paid}, "Payment verification completed")
}
