package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hospitalar/visitas-api/internal/handler"
	"github.com/hospitalar/visitas-api/internal/middleware"
	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/service/auth"
	apperrors "github.com/hospitalar/visitas-api/pkg/errors"
	"github.com/hospitalar/visitas-api/pkg/metrics"
	"github.com/hospitalar/visitas-api/pkg/session"
)

type Handler struct {
	svc          auth.AuthService
	metrics      *metrics.Metrics
	cookieTTL    int
	secureCookie bool
}

func NewHandler(svc auth.AuthService, m *metrics.Metrics, cookieTTLSeconds int, secureCookie bool) *Handler {
	return &Handler{
		svc:          svc,
		metrics:      m,
		cookieTTL:    cookieTTLSeconds,
		secureCookie: secureCookie,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, loginLimiter gin.HandlerFunc) {
	group := r.Group("/auth")
	{
		group.POST("/login", loginLimiter, h.Login)
		group.POST("/logout", h.Logout)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, token, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUnauthorized {
			// user-not-found and incorrect-password collapse into one message
			h.metrics.LoginFailures.Inc()
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid credentials"))
			return
		}
		// storage and other failures are not credential rejections
		handler.Fail(c, err)
		return
	}

	c.SetCookie(session.CookieName, token, h.cookieTTL, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "logged out"}))
}

// Session reports the authenticated subject, for the frontend to restore
// its state after a reload.
func (h *Handler) Session(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"email": email}))
}
