package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes регистрирует маршруты, доступные без API-ключа.
// Вызывается до навешивания middleware на группу
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты инцидентов: регистрация, чтение, архив
	incidents := api.Group("/incidents")
	{
		incidents.POST("", h.reportIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/archive", h.archiveIncident)
	}

	// Текущее состояние автопарка и больниц
	api.GET("/ambulances", h.listAmbulances)
	api.GET("/hospitals", h.listHospitals)

	// Аналитический срез
	api.GET("/analytics", h.getAnalytics)
}
