package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/services"
	"github.com/yeremiapane/table-order/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GetAllOrders -> newest first, optional ?status= and ?search=
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	filter := models.OrderFilter{
		Status: models.OrderStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
		Search: c.Query("search"),
	}
	orders, err := oc.Orders.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	order, err := oc.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, order)
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var in services.CreateOrderInput
	if !bindJSON(c, &in) {
		return
	}
	order, err := oc.Orders.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, order)
}

// UpdateOrder merges the body onto the order. Serves both PUT and PATCH.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	var patch models.OrderPatch
	if !bindJSON(c, &patch) {
		return
	}
	order, err := oc.Orders.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, order)
}

func (oc *OrderController) GetOrderStatus(c *gin.Context) {
	view, err := oc.Orders.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, view)
}

// GetStatuses lists every status with its presentation, in lifecycle order.
func (oc *OrderController) GetStatuses(c *gin.Context) {
	type statusInfo struct {
		Status models.OrderStatus `json:"status"`
		models.StatusPresentation
		Next []models.OrderStatus `json:"next"`
	}
	out := make([]statusInfo, 0, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		out = append(out, statusInfo{Status: s, StatusPresentation: models.Present(s), Next: models.NextStatuses(s)})
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"strict":   oc.Orders.Lifecycle().Strict,
		"statuses": out,
	})
}
