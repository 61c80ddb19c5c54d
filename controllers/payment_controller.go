package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"toolmarket-backend/apperr"
	"toolmarket-backend/services"
)

const paymentCurrency = "usd"

type PaymentController struct {
	payments services.PaymentProcessor
}

func NewPaymentController(payments services.PaymentProcessor) *PaymentController {
	return &PaymentController{payments: payments}
}

type paymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// CreatePaymentIntent handles POST /create-payment-intent. Price is in
// dollars, the intent amount in cents.
func (pc *PaymentController) CreatePaymentIntent(c *gin.Context) {
	var req paymentIntentRequest
	if !bindJSON(c, &req) {
		return
	}
	amount := int64(math.Round(req.Price * 100))

	secret, err := pc.payments.CreatePaymentIntent(c.Request.Context(), amount, paymentCurrency)
	if err != nil {
		apperr.Abort(c, apperr.PaymentFailure(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
