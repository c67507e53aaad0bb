package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hospitalar/visitas-api/internal/handler"
	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/service/patient"
	"github.com/hospitalar/visitas-api/pkg/metrics"
)

type Handler struct {
	service patient.PatientService
	metrics *metrics.Metrics
}

func NewHandler(service patient.PatientService, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.AdmitPatient)
		patients.GET("", h.ListPatients)
		patients.POST("/:id/discharge", h.DischargePatient)
	}
}

func (h *Handler) AdmitPatient(c *gin.Context) {
	var req model.AdmitPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	admitted, err := h.service.AdmitPatient(c.Request.Context(), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	h.metrics.PatientsAdmitted.Inc()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(admitted))
}

func (h *Handler) DischargePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	if err := h.service.DischargePatient(c.Request.Context(), id); err != nil {
		handler.Fail(c, err)
		return
	}

	h.metrics.PatientsDischarged.Inc()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"status": model.PatientStatusDischarged}))
}

func (h *Handler) ListPatients(c *gin.Context) {
	var filters model.PatientFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), &filters)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}
