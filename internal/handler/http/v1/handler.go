package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/kvolkov/ambulance_dispatch/internal/config"
	"github.com/kvolkov/ambulance_dispatch/internal/dispatch"
	"github.com/kvolkov/ambulance_dispatch/internal/ledger"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/kvolkov/ambulance_dispatch/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	dispatchService service.DispatchService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(dispatchService service.DispatchService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		dispatchService: dispatchService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Report a new incident
// @Description Report a new incident and dispatch the best available ambulance. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body ReportIncidentRequest true "Incident report request"
// @Success 201 {object} ReportIncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) reportIncident(c *gin.Context) {
	var input ReportIncidentRequest
	log := h.logger.WithField("method", "reportIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.dispatchService.ReportIncident(
		c.Request.Context(),
		input.Description,
		models.IncidentPriority(input.Priority),
		models.Location{Lat: input.Latitude, Lng: input.Longitude},
	)
	if err != nil {
		// Отсутствие свободных машин не отменяет регистрацию:
		// инцидент остаётся в статусе Pending
		if errors.Is(err, dispatch.ErrNoVehiclesAvailable) && result != nil {
			resp := ReportResultToResponse(result)
			resp.DispatchError = "no ambulances available, incident queued"
			c.JSON(http.StatusCreated, resp)
			return
		}
		log.WithError(err).Error("Failed to report incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ReportResultToResponse(result))
}

// @Summary Get a list of incidents
// @Description Get all registered incidents in creation order. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	c.JSON(http.StatusOK, ModelsToIncidentResponses(h.dispatchService.ListIncidents()))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.dispatchService.GetIncident(id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Archive a resolved incident
// @Description Move a resolved incident to the archive. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 "OK"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident is not resolved"
// @Router /incidents/{id}/archive [post]
func (h *Handler) archiveIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "archiveIncident").WithField("id", id)

	if err := h.dispatchService.ArchiveIncident(id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		log.WithError(err).Warn("Failed to archive incident in service")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Get a list of ambulances
// @Description Get the current state of the whole fleet. Requires API key.
// @Tags Fleet
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AmbulanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /ambulances [get]
func (h *Handler) listAmbulances(c *gin.Context) {
	c.JSON(http.StatusOK, ModelsToAmbulanceResponses(h.dispatchService.ListAmbulances()))
}

// @Summary Get a list of hospitals
// @Description Get all hospitals with their bed capacity. Requires API key.
// @Tags Fleet
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} HospitalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /hospitals [get]
func (h *Handler) listHospitals(c *gin.Context) {
	c.JSON(http.StatusOK, ModelsToHospitalResponses(h.dispatchService.ListHospitals()))
}

// @Summary Get operational analytics
// @Description Get aggregate metrics, ambulance ranking, peak hours and high-risk zones. Requires API key.
// @Tags Analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.AnalyticsSnapshot
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /analytics [get]
func (h *Handler) getAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatchService.Analytics())
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
