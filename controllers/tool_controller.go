package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"toolmarket-backend/apperr"
	"toolmarket-backend/models"
	"toolmarket-backend/repository"
)

type ToolController struct {
	tools  repository.ToolRepository
	logger *zap.Logger
}

func NewToolController(tools repository.ToolRepository, logger *zap.Logger) *ToolController {
	return &ToolController{tools: tools, logger: logger}
}

// ListTools handles GET /tools
func (tc *ToolController) ListTools(c *gin.Context) {
	tools, err := tc.tools.All(c.Request.Context())
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, tools)
}

// GetTool handles GET /tool/:id. A missing tool is a null body, not an error.
func (tc *ToolController) GetTool(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	tool, err := tc.tools.FindByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, tool)
}

// CreateTool handles POST /tool
func (tc *ToolController) CreateTool(c *gin.Context) {
	var tool models.Tool
	if !bindJSON(c, &tool) {
		return
	}
	tool.ID = primitive.NilObjectID

	res, err := tc.tools.Create(c.Request.Context(), &tool)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "toolDetails": res})
}

type updateStockRequest struct {
	ProductID     string          `json:"productId" binding:"required"`
	ProductAmount models.Quantity `json:"productAmount" binding:"required,min=1"`
}

// UpdateStock handles PUT /tools. It subtracts productAmount from the
// tool's availableQuan. The write only applies if the quantity is still
// the one that was read; otherwise the client gets 409 and may retry.
// A resulting negative quantity is not rejected.
func (tc *ToolController) UpdateStock(c *gin.Context) {
	var req updateStockRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := models.ParseObjectID(req.ProductID)
	if err != nil {
		apperr.Abort(c, apperr.InvalidID(err))
		return
	}

	change, err := tc.tools.DecrementStock(c.Request.Context(), id, req.ProductAmount)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		apperr.Abort(c, apperr.NotFound("Tool not found"))
		return
	case errors.Is(err, repository.ErrStockConflict):
		apperr.Abort(c, apperr.StockConflict(err))
		return
	case err != nil:
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}

	tc.logger.Debug("stock decremented",
		zap.String("tool_id", id.Hex()),
		zap.Int("from", int(change.From)),
		zap.Int("to", int(change.To)),
	)
	c.JSON(http.StatusOK, change.Result)
}

// DeleteTool handles DELETE /tool/:id
func (tc *ToolController) DeleteTool(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	res, err := tc.tools.Delete(c.Request.Context(), id)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
