package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NagulmeeraShaik7/products-api/internal/api/metrics"
	"github.com/NagulmeeraShaik7/products-api/internal/api/middleware"
	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
	"github.com/NagulmeeraShaik7/products-api/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue order events.
type EventDispatcher interface {
	Enqueue(event ports.OrderEventInput)
}

// OrderHandler handles order placement, retrieval, and status event ingestion.
type OrderHandler struct {
	service    ports.OrderService
	dispatcher EventDispatcher
}

func NewOrderHandler(service ports.OrderService, dispatcher EventDispatcher) *OrderHandler {
	return &OrderHandler{service: service, dispatcher: dispatcher}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gte=1"`
}

type placeOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type orderResponse struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

type orderEventRequest struct {
	OrderID   string    `json:"order_id"  validate:"required"`
	Status    string    `json:"status"    validate:"required,oneof=shipped delivered"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Source    string    `json:"source"    validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

// Place handles POST /api/orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeOrderRequest  true  "Order items"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _ := c.Get(middleware.ContextUserID).(string)
	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.service.Place(c.Request().Context(), ports.PlaceOrderInput{
		UserID: userID,
		Items:  items,
	})
	if err != nil {
		return err
	}

	metrics.OrdersPlacedTotal.Inc()
	return c.JSON(http.StatusCreated, orderResponse{Message: "Order placed", Order: order})
}

// Get handles GET /api/orders/:id.
//
// @Summary      Get an order by id
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	role, _ := c.Get(middleware.ContextRole).(string)
	userID, _ := c.Get(middleware.ContextUserID).(string)

	order, err := h.service.Get(c.Request().Context(), ports.GetOrderInput{
		OrderID: c.Param("id"),
		Role:    role,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

// ReceiveEvent handles POST /api/orders/events — enqueues a status event, returns 202.
//
// @Summary      Ingest an order status event
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      orderEventRequest  true  "Order status event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/orders/events [post]
func (h *OrderHandler) ReceiveEvent(c echo.Context) error {
	var req orderEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.dispatcher.Enqueue(ports.OrderEventInput{
		OrderID:   req.OrderID,
		Status:    req.Status,
		Timestamp: req.Timestamp,
		Source:    req.Source,
	})
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}
