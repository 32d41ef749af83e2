package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/traffic_advisory_system/internal/config"
	"github.com/shenikar/traffic_advisory_system/internal/models"
	"github.com/shenikar/traffic_advisory_system/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	serviceName    = "Disha - Smart Traffic Management API"
	serviceVersion = "1.0.0"
)

type Handler struct {
	incidentService service.IncidentService
	signalService   service.SignalService
	photoService    service.PhotoService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(
	incidentService service.IncidentService,
	signalService service.SignalService,
	photoService service.PhotoService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService: incidentService,
		signalService:   signalService,
		photoService:    photoService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Report a new incident
// @Description Store the incident, build a route analysis and, for high severity, switch congested signals to GREEN.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param incident body CreateIncidentRequest true "Incident report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

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

	model := DTOToIncidentModel(input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Get a list of incidents
// @Description Get up to 1000 newest incidents, optionally filtered by status.
// @Tags Incidents
// @Produce json
// @Param status query string false "Incident status" Enums(active, inactive, degraded)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid status filter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	status := c.Query("status")

	switch status {
	case "", models.StatusActive, models.StatusInactive, models.StatusDegraded:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), status)
	if err != nil {
		log.WithError(err).Error("Failed to list incident from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID.
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "incident not found")
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get route analysis of an incident
// @Description Get the stored safe, eco and fastest route suggestions with the advisory message.
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} RouteAnalysisResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Route analysis not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/routes [get]
func (h *Handler) getIncidentRoutes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncidentRoutes").WithField("id", id)

	analysis, err := h.incidentService.GetRouteAnalysis(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "route analysis not found")
		return
	}
	c.JSON(http.StatusOK, ModelToRouteAnalysisResponse(analysis))
}

// @Summary Deactivate an incident
// @Description Deactivate an incident by its ID. This marks the incident as inactive.
// @Tags Incidents
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeactivateIncident(c.Request.Context(), id); err != nil {
		h.respondError(c, log, err, "incident not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List traffic signals
// @Description Get the current state of up to 100 traffic signals.
// @Tags Signals
// @Produce json
// @Success 200 {array} TrafficSignalResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /signals [get]
func (h *Handler) listSignals(c *gin.Context) {
	log := h.logger.WithField("method", "listSignals")

	list, err := h.signalService.ListSignals(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list signals from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToSignalResponses(list))
}

// @Summary Initialize traffic signals
// @Description Reset the demo traffic signals to their seed values. Idempotent. Requires API key when keys are configured.
// @Tags Signals
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} InitializeSignalsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /signals/initialize [post]
func (h *Handler) initializeSignals(c *gin.Context) {
	log := h.logger.WithField("method", "initializeSignals")

	count, err := h.signalService.InitializeSignals(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to initialize signals in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, InitializeSignalsResponse{Message: "Traffic signals initialized", Count: count})
}

// @Summary Simulate traffic at a signal
// @Description Store a new density reading and recompute the signal state. Requires API key when keys are configured.
// @Tags Signals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param simulation body SimulateTrafficRequest true "Traffic reading"
// @Success 200 {object} SimulateTrafficResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Signal not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /simulate/traffic [post]
func (h *Handler) simulateTraffic(c *gin.Context) {
	var input SimulateTrafficRequest
	log := h.logger.WithField("method", "simulateTraffic")

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

	result, err := h.signalService.SimulateTraffic(c.Request.Context(), input.RoadID, *input.TrafficDensity, input.EmergencyVehicleDetected)
	if err != nil {
		h.respondError(c, log, err, "signal not found")
		return
	}
	c.JSON(http.StatusOK, SimulateTrafficResponse{
		SignalID: result.SignalID,
		NewState: string(result.NewState),
		Density:  result.Density,
	})
}

// @Summary Get incident statistics
// @Description Get total, active and active high-severity incident counts.
// @Tags Admin
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.incidentService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToStatsResponse(stats))
}

// @Summary Upload an incident photo
// @Description Store a photo in object storage and return its URL to pass as photo_url when reporting.
// @Tags Incidents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo (jpg, jpeg, png, webp, heic)"
// @Success 201 {object} PhotoUploadResponse
// @Failure 400 {object} map[string]string "Missing or unsupported file"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 503 {object} map[string]string "Photo storage is not configured"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /photos [post]
func (h *Handler) uploadPhoto(c *gin.Context) {
	log := h.logger.WithField("method", "uploadPhoto")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.WithError(err).Warn("Missing photo file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if h.cfg.MaxPhotoBytes > 0 && fileHeader.Size > h.cfg.MaxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.WithError(err).Error("Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	defer file.Close()

	url, err := h.photoService.UploadPhoto(c.Request.Context(), fileHeader.Filename, file)
	switch {
	case errors.Is(err, service.ErrPhotoStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrUnsupportedPhoto):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.WithError(err).Error("Failed to upload photo in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, PhotoUploadResponse{PhotoURL: url})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Service banner
// @Tags System
// @Produce json
// @Success 200 {object} RootResponse
// @Router / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{Message: serviceName, Version: serviceVersion})
}

// respondError отличает отсутствие записи (404) от сбоя хранилища (500)
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error, notFoundMsg string) {
	if errors.Is(err, models.ErrNotFound) {
		log.WithError(err).Warn("Requested record not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	log.WithError(err).Error("Service call failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
