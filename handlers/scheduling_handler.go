package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	baseAPI "github.com/unburdy/scheduling-module/api"
	"github.com/unburdy/scheduling-module/entities"
	"github.com/unburdy/scheduling-module/services"
)

// SchedulingHandler exposes the scheduling operations over HTTP
type SchedulingHandler struct {
	schedulingSvc    *services.SchedulingService
	availableTimeSvc *services.AvailableTimeService
	availabilitySvc  *services.AvailabilityService
	configSvc        *services.ConfigService
	appointmentSvc   *services.AppointmentService
	workerSvc        *services.WorkerService
}

// NewSchedulingHandler creates a new scheduling handler
func NewSchedulingHandler(
	schedulingSvc *services.SchedulingService,
	availableTimeSvc *services.AvailableTimeService,
	availabilitySvc *services.AvailabilityService,
	configSvc *services.ConfigService,
	appointmentSvc *services.AppointmentService,
	workerSvc *services.WorkerService,
) *SchedulingHandler {
	return &SchedulingHandler{
		schedulingSvc:    schedulingSvc,
		availableTimeSvc: availableTimeSvc,
		availabilitySvc:  availabilitySvc,
		configSvc:        configSvc,
		appointmentSvc:   appointmentSvc,
		workerSvc:        workerSvc,
	}
}

// GetAvailableSlots godoc
// @Summary List bookable time slots
// @Description Computes the ordered bookable slots for a worker, date and appointment set. Returns an empty object when the input is malformed or no slot exists.
// @Tags scheduling
// @Produce json
// @Param worker_id query int true "Worker ID"
// @Param date query string true "Date (DD/MM/YYYY)"
// @Param appointment_ids query string true "Comma-separated appointment type IDs"
// @Success 200 {object} map[string]entities.SlotRange
// @Failure 401 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling/slots [get]
// @ID getAvailableSlots
func (h *SchedulingHandler) GetAvailableSlots(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	// Malformed input yields an empty mapping, not an error: the booking
	// front end renders {} as "no times available".
	workerID, err := parseUintParam(c.Query("worker_id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	date, err := services.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	appointmentIDs, err := parseIDList(c.Query("appointment_ids"))
	if err != nil || len(appointmentIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	ranges, err := h.availableTimeSvc.GenerateTimeRanges(workerID, date, appointmentIDs, tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}

	c.JSON(http.StatusOK, ranges)
}

// CreateScheduling godoc
// @Summary Commit a booking
// @Description Reserves a slot for a worker under the per-worker lock. The start time must match a freshly computed slot.
// @Tags scheduling
// @Accept json
// @Produce json
// @Param scheduling body entities.CreateSchedulingRequest true "Booking data"
// @Success 201 {object} baseAPI.APIResponse{data=entities.SchedulingResponse}
// @Failure 400 {object} baseAPI.APIResponse
// @Failure 401 {object} baseAPI.APIResponse
// @Failure 409 {object} baseAPI.APIResponse
// @Failure 503 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling [post]
// @ID createScheduling
func (h *SchedulingHandler) CreateScheduling(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	var req entities.CreateSchedulingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", err.Error()))
		return
	}

	scheduling, err := h.schedulingSvc.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", err.Error()))
		case errors.Is(err, services.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, baseAPI.ErrorResponseFunc("Slot unavailable", err.Error()))
		case errors.Is(err, services.ErrLockUnavailable):
			c.JSON(http.StatusServiceUnavailable, baseAPI.ErrorResponseFunc("Worker agenda busy", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, baseAPI.SuccessResponse("Scheduling created successfully", scheduling.ToResponse()))
}

// ListSchedulings godoc
// @Summary List a worker's schedulings for a date
// @Tags scheduling
// @Produce json
// @Param worker_id query int true "Worker ID"
// @Param date query string true "Date (DD/MM/YYYY)"
// @Success 200 {object} baseAPI.APIResponse{data=[]entities.SchedulingResponse}
// @Failure 400 {object} baseAPI.APIResponse
// @Failure 401 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling [get]
// @ID listSchedulings
func (h *SchedulingHandler) ListSchedulings(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	workerID, err := parseUintParam(c.Query("worker_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", "worker_id must be a positive integer"))
		return
	}

	date, err := services.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", err.Error()))
		return
	}

	schedulings, err := h.schedulingSvc.List(tenantID, workerID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}

	responses := make([]entities.SchedulingResponse, 0, len(schedulings))
	for i := range schedulings {
		responses = append(responses, schedulings[i].ToResponse())
	}

	c.JSON(http.StatusOK, baseAPI.SuccessResponse("Schedulings retrieved successfully", responses))
}

// GetScheduling godoc
// @Summary Get a scheduling by ID
// @Tags scheduling
// @Produce json
// @Param id path int true "Scheduling ID"
// @Success 200 {object} baseAPI.APIResponse{data=entities.SchedulingResponse}
// @Failure 400 {object} baseAPI.APIResponse
// @Failure 401 {object} baseAPI.APIResponse
// @Failure 404 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling/{id} [get]
// @ID getScheduling
func (h *SchedulingHandler) GetScheduling(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", "id must be a positive integer"))
		return
	}

	scheduling, err := h.schedulingSvc.Get(tenantID, id)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusNotFound, baseAPI.ErrorResponseFunc("", "Scheduling not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}

	c.JSON(http.StatusOK, baseAPI.SuccessResponse("Scheduling retrieved successfully", scheduling.ToResponse()))
}

// CancelScheduling godoc
// @Summary Cancel a scheduling
// @Description Marks the scheduling cancelled; its time becomes bookable again.
// @Tags scheduling
// @Produce json
// @Param id path int true "Scheduling ID"
// @Success 200 {object} baseAPI.APIResponse{data=entities.SchedulingResponse}
// @Failure 400 {object} baseAPI.APIResponse
// @Failure 401 {object} baseAPI.APIResponse
// @Failure 404 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling/{id}/cancel [post]
// @ID cancelScheduling
func (h *SchedulingHandler) CancelScheduling(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", "id must be a positive integer"))
		return
	}

	scheduling, err := h.schedulingSvc.Cancel(tenantID, id)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusNotFound, baseAPI.ErrorResponseFunc("", "Scheduling not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}

	c.JSON(http.StatusOK, baseAPI.SuccessResponse("Scheduling cancelled successfully", scheduling.ToResponse()))
}

// GetAvailability godoc
// @Summary Get a worker's weekly availability
// @Tags availability
// @Produce json
// @Param worker_id path int true "Worker ID"
// @Success 200 {object} baseAPI.APIResponse{data=entities.WorkerAvailability}
// @Failure 401 {object} baseAPI.APIResponse
// @Failure 404 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling/availability/{worker_id} [get]
// @ID getWorkerAvailability
func (h *SchedulingHandler) GetAvailability(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	workerID, err := parseUintParam(c.Param("worker_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", "worker_id must be a positive integer"))
		return
	}

	availability, err := h.availabilitySvc.Get(tenantID, workerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}
	if availability == nil {
		c.JSON(http.StatusNotFound, baseAPI.ErrorResponseFunc("", "Worker has no availability configured"))
		return
	}

	c.JSON(http.StatusOK, baseAPI.SuccessResponse("Availability retrieved successfully", availability))
}

// UpsertAvailability godoc
// @Summary Replace a worker's weekly availability
// @Tags availability
// @Accept json
// @Produce json
// @Param worker_id path int true "Worker ID"
// @Param availability body entities.UpsertAvailabilityRequest true "Weekly availability"
// @Success 200 {object} baseAPI.APIResponse{data=entities.WorkerAvailability}
// @Failure 400 {object} baseAPI.APIResponse
// @Failure 401 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling/availability/{worker_id} [put]
// @ID upsertWorkerAvailability
func (h *SchedulingHandler) UpsertAvailability(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	workerID, err := parseUintParam(c.Param("worker_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", "worker_id must be a positive integer"))
		return
	}

	var req entities.UpsertAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", err.Error()))
		return
	}

	availability, err := h.availabilitySvc.Upsert(tenantID, workerID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}

	c.JSON(http.StatusOK, baseAPI.SuccessResponse("Availability saved successfully", availability))
}

// GetSchedulingConfig godoc
// @Summary Get the tenant scheduling policy
// @Tags scheduling-config
// @Produce json
// @Success 200 {object} baseAPI.APIResponse{data=entities.SchedulingConfigResponse}
// @Failure 401 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling/config [get]
// @ID getSchedulingConfig
func (h *SchedulingHandler) GetSchedulingConfig(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	config, err := h.configSvc.Get(tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}

	c.JSON(http.StatusOK, baseAPI.SuccessResponse("Scheduling config retrieved successfully", config.ToResponse()))
}

// UpdateSchedulingConfig godoc
// @Summary Update the tenant scheduling policy
// @Tags scheduling-config
// @Accept json
// @Produce json
// @Param config body entities.UpdateSchedulingConfigRequest true "Scheduling policy"
// @Success 200 {object} baseAPI.APIResponse{data=entities.SchedulingConfigResponse}
// @Failure 400 {object} baseAPI.APIResponse
// @Failure 401 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling/config [put]
// @ID updateSchedulingConfig
func (h *SchedulingHandler) UpdateSchedulingConfig(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	var req entities.UpdateSchedulingConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", err.Error()))
		return
	}

	config, err := h.configSvc.Update(tenantID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, baseAPI.ErrorResponseFunc("Invalid request data", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}

	c.JSON(http.StatusOK, baseAPI.SuccessResponse("Scheduling config updated successfully", config.ToResponse()))
}

// ListAppointmentTypes godoc
// @Summary List the tenant's appointment types
// @Tags appointment-types
// @Produce json
// @Success 200 {object} baseAPI.APIResponse{data=[]entities.AppointmentTypeResponse}
// @Failure 401 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling/appointment-types [get]
// @ID listAppointmentTypes
func (h *SchedulingHandler) ListAppointmentTypes(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	appointmentTypes, err := h.appointmentSvc.List(tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}

	responses := make([]entities.AppointmentTypeResponse, 0, len(appointmentTypes))
	for i := range appointmentTypes {
		responses = append(responses, appointmentTypes[i].ToResponse())
	}

	c.JSON(http.StatusOK, baseAPI.SuccessResponse("Appointment types retrieved successfully", responses))
}

// ListWorkers godoc
// @Summary List the tenant's workers
// @Tags workers
// @Produce json
// @Success 200 {object} baseAPI.APIResponse{data=[]entities.Worker}
// @Failure 401 {object} baseAPI.APIResponse
// @Security BearerAuth
// @Router /scheduling/workers [get]
// @ID listWorkers
func (h *SchedulingHandler) ListWorkers(c *gin.Context) {
	tenantID, err := baseAPI.GetTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, baseAPI.ErrorResponseFunc("", "Tenant information required"))
		return
	}

	workers, err := h.workerSvc.List(tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, baseAPI.ErrorResponseFunc("", err.Error()))
		return
	}

	c.JSON(http.StatusOK, baseAPI.SuccessResponse("Workers retrieved successfully", workers))
}

// parseUintParam parses a positive integer id
func parseUintParam(value string) (uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil || parsed == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(parsed), nil
}

// parseIDList parses a comma-separated id list ("1,2,3")
func parseIDList(value string) ([]uint, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var ids []uint
	for _, part := range strings.Split(value, ",") {
		id, err := parseUintParam(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
