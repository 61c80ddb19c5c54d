package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"toolmarket-backend/apperr"
	"toolmarket-backend/models"
	"toolmarket-backend/repository"
)

type OrderController struct {
	orders repository.OrderRepository
}

func NewOrderController(orders repository.OrderRepository) *OrderController {
	return &OrderController{orders: orders}
}

// MyOrders handles GET /myorders/:uid
func (oc *OrderController) MyOrders(c *gin.Context) {
	uid, ok := pathSubject(c, "uid")
	if !ok {
		return
	}

	orders, err := oc.orders.ByBuyer(c.Request.Context(), uid)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, orders)
}

// AllOrders handles GET /allorders/:uid. The uid only gates the caller;
// every order is returned.
func (oc *OrderController) AllOrders(c *gin.Context) {
	orders, err := oc.orders.All(c.Request.Context())
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /order/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	order, err := oc.orders.FindByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /order
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var order models.Order
	if !bindJSON(c, &order) {
		return
	}
	buyer, err := models.ParseSubjectID(order.BuyerID.String())
	if err != nil {
		apperr.Abort(c, apperr.InvalidSubject(err))
		return
	}
	order.BuyerID = buyer
	order.ID = primitive.NilObjectID
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentPending
	}

	res, err := oc.orders.Create(c.Request.Context(), &order)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orderDetails": res})
}

type confirmPaymentRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
}

// ConfirmPayment handles PATCH /order/:id
func (oc *OrderController) ConfirmPayment(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req confirmPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := oc.orders.MarkPaid(c.Request.Context(), id, req.TransactionID)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

type shipmentRequest struct {
	ShipmentStatus string `json:"shipmentStatus" binding:"required"`
}

// UpdateShipping handles PATCH /shipping/:id
func (oc *OrderController) UpdateShipping(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req shipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := oc.orders.SetShipmentStatus(c.Request.Context(), id, req.ShipmentStatus)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteOrder handles DELETE /order/:id
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	res, err := oc.orders.Delete(c.Request.Context(), id)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
