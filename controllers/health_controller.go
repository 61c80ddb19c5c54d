package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolmarket-backend/apperr"
	"toolmarket-backend/database"
)

type HealthController struct {
	store database.Pinger
}

func NewHealthController(store database.Pinger) *HealthController {
	return &HealthController{store: store}
}

// Home handles GET /
func (hc *HealthController) Home(c *gin.Context) {
	c.String(http.StatusOK, "Hello From Toolmarket")
}

// Health handles GET /health
func (hc *HealthController) Health(c *gin.Context) {
	if err := hc.store.Ping(c.Request.Context()); err != nil {
		apperr.Abort(c, apperr.StoreUnavailable(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
