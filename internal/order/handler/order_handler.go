package handler

import (
	"errors"
	"net/http"
	"time"

	"fruit-order-service/internal/order"
	"fruit-order-service/internal/order/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

const (
	errorValidation = "Validation Error"
	errorBadRequest = "Bad Request"
	errorNotFound   = "Not Found"
	errorInternal   = "Internal Server Error"

	msgInternal = "An unexpected error occurred"
)

// bindingMessages maps a request struct field to the message shown when its
// binding tag fails.
var bindingMessages = map[string]string{
	"ClientName":      "Client name is required",
	"DeliveryDate":    "Delivery date is required",
	"Items":           "At least one item is required",
	"FruitName":       "Fruit name is required",
	"QuantityInKilos": "Quantity must be > 0",
}

// OrderHandler exposes the order service over HTTP.
type OrderHandler struct {
	Service service.OrderService
	logger  *log.Entry
}

func NewOrderHandler(svc service.OrderService, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &OrderHandler{
		Service: svc,
		logger:  logger.WithField("component", "order-handler"),
	}
}

// RegisterRoutes mounts the /orders resource on r.
func (h *OrderHandler) RegisterRoutes(r gin.IRouter) {
	orders := r.Group("/orders")
	orders.POST("", h.CreateOrder)
	orders.GET("", h.GetAllOrders)
	orders.GET("/:id", h.GetOrderByID)
	orders.PUT("/:id", h.UpdateOrder)
	orders.DELETE("/:id", h.DeleteOrder)
}

// CreateOrder handles POST /orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req order.OrderCreateRequest
	if !h.bind(c, &req) {
		return
	}

	created, err := h.Service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetAllOrders handles GET /orders.
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.Service.GetAllOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID handles GET /orders/:id.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	found, err := h.Service.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// UpdateOrder handles PUT /orders/:id.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req order.OrderCreateRequest
	if !h.bind(c, &req) {
		return
	}

	updated, err := h.Service.UpdateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteOrder handles DELETE /orders/:id. Unknown ids also get 204.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.Service.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) bind(c *gin.Context, req *order.OrderCreateRequest) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		writeError(c, http.StatusBadRequest, errorValidation, bindingMessage(verrs[0]))
		return false
	}
	writeError(c, http.StatusBadRequest, errorBadRequest, err.Error())
	return false
}

func bindingMessage(fe validator.FieldError) string {
	if msg, ok := bindingMessages[fe.StructField()]; ok {
		return msg
	}
	return fe.Error()
}

func (h *OrderHandler) fail(c *gin.Context, err error) {
	switch {
	case order.IsValidationError(err):
		writeError(c, http.StatusBadRequest, errorBadRequest, err.Error())
	case order.IsNotFound(err):
		writeError(c, http.StatusNotFound, errorNotFound, err.Error())
	default:
		h.logger.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("order request failed")
		writeError(c, http.StatusInternalServerError, errorInternal, msgInternal)
	}
}

func writeError(c *gin.Context, status int, label, message string) {
	c.AbortWithStatusJSON(status, order.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     label,
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}
