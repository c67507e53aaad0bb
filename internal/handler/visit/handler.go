package visit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hospitalar/visitas-api/internal/handler"
	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/service/visit"
	"github.com/hospitalar/visitas-api/pkg/metrics"
)

type Handler struct {
	service visit.VisitService
	metrics *metrics.Metrics
}

func NewHandler(service visit.VisitService, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	visits := r.Group("/visits")
	{
		visits.POST("", h.RegisterVisit)
		visits.GET("/recent", h.ListRecentVisits)
		visits.GET("/suggest", h.SuggestVisitorName)
	}
}

func (h *Handler) RegisterVisit(c *gin.Context) {
	var req model.RegisterVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.RegisterVisit(c.Request.Context(), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	h.metrics.VisitsRegistered.Inc()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) ListRecentVisits(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	visits, err := h.service.ListRecentVisits(c.Request.Context(), limit)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(visits))
}

func (h *Handler) SuggestVisitorName(c *gin.Context) {
	doc := c.Query("doc")
	if doc == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("doc is required"))
		return
	}

	name, err := h.service.SuggestVisitorName(c.Request.Context(), doc)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"visitor_name": name}))
}
