package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rl1809/storefront-cart/internal/core/service"
	"github.com/rl1809/storefront-cart/internal/port"
	"github.com/rl1809/storefront-cart/internal/requestid"
)

type HTTPHandler struct {
	cart   *service.CartManager
	health port.HealthChecker
}

type AddItemRequest struct {
	ProductID int `json:"product_id"`
}

type UpdateAmountRequest struct {
	Amount int `json:"amount"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(cart *service.CartManager, health port.HealthChecker) *HTTPHandler {
	return &HTTPHandler{cart: cart, health: health}
}

// NewRouter builds the echo instance serving the cart API.
func NewRouter(h *HTTPHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: requestid.New,
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(requestid.With(req.Context(), id)))
		},
	}))

	h.RegisterRoutes(e)
	return e
}

func (h *HTTPHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.HealthCheck)

	g := e.Group("/cart")
	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:id", h.patchItem)
	g.DELETE("/items/:id", h.deleteItem)
}

func (h *HTTPHandler) getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cart.Cart())
}

func (h *HTTPHandler) addItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.cart.AddProduct(c.Request().Context(), req.ProductID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, h.cart.Cart())
}

func (h *HTTPHandler) patchItem(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateAmountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	err = h.cart.UpdateProductAmount(c.Request().Context(), service.UpdateProductAmount{
		ProductID: productID,
		Amount:    req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, h.cart.Cart())
}

func (h *HTTPHandler) deleteItem(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.cart.RemoveProduct(c.Request().Context(), productID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, h.cart.Cart())
}

func (h *HTTPHandler) HealthCheck(c echo.Context) error {
	if h.health != nil {
		if err := h.health.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrOutOfStock):
		status = http.StatusConflict
	case errors.Is(err, service.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAddProductFailed), errors.Is(err, service.ErrUpdateAmountFailed):
		status = http.StatusBadGateway
	}

	return c.JSON(status, ErrorResponse{Error: service.Message(err)})
}
