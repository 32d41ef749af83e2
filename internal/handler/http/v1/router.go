package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/", h.root)

	incidents := api.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.GET("/:id/routes", h.getIncidentRoutes)
		incidents.DELETE("/:id", h.deleteIncident)
	}

	api.POST("/photos", h.uploadPhoto)
	api.GET("/signals", h.listSignals)
	api.GET("/stats", h.getStats)

	// Управление светофорами закрывается ключом, только если ключи заданы
	admin := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		admin.Use(APIKeyAuthMiddleware(h.cfg.APIKeys, h.logger))
	}
	{
		admin.POST("/signals/initialize", h.initializeSignals)
		admin.POST("/simulate/traffic", h.simulateTraffic)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
