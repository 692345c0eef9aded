package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/interfaces/http/dto"
)

// HealthHandler answers the root liveness route.
type HealthHandler struct {
	BaseHandler
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Root)
}

// Root confirms the server is up and the model is loaded.
func (h *HealthHandler) Root(c *gin.Context) {
	h.Success(c, dto.LivenessResponse{
		Message: "E-commerce Return Prediction API is live!",
	})
}
