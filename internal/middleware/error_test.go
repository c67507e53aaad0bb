package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hospitalar/visitas-api/internal/handler"
)

func setupErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	return r
}

func TestErrorHandler_FallbackResponse(t *testing.T) {
	r := setupErrorRouter()
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("downstream exploded"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "downstream exploded")
	assert.Contains(t, w.Body.String(), `"trace_id"`)
}

func TestErrorHandler_SkipsWrittenResponse(t *testing.T) {
	r := setupErrorRouter()
	r.GET("/fail", func(c *gin.Context) {
		handler.Fail(c, errors.New("failed to query patients: connection refused"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	// the sanitized envelope from Fail is the whole body; the collector
	// logs the cause but must not append a second response
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, w.Body.String())
}
