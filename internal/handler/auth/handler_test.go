package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalar/visitas-api/internal/model"
	apperrors "github.com/hospitalar/visitas-api/pkg/errors"
	"github.com/hospitalar/visitas-api/pkg/metrics"
	"github.com/hospitalar/visitas-api/pkg/session"
)

var testMetrics = metrics.NewMetrics("auth_handler_test")

type stubAuthService struct {
	authErr error
}

func (s stubAuthService) Authenticate(_ context.Context, email, password string) (*model.User, string, error) {
	if s.authErr != nil {
		return nil, "", s.authErr
	}
	if email == "recepcao@hospital.local" && password == "senha123" {
		return &model.User{Email: email, Role: model.UserRoleReceptionist}, "issued-token", nil
	}
	return nil, "", apperrors.Unauthorized("invalid credentials", nil)
}

func (s stubAuthService) ValidateSession(_ string) (string, error) {
	return "", session.ErrInvalidToken
}

func setupRouter(svc stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, testMetrics, 86400, false)
	h.RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	r := setupRouter(stubAuthService{})

	w := postLogin(r, `{"email":"recepcao@hospital.local","password":"senha123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Equal(t, "issued-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, 86400, cookies[0].MaxAge)
}

func TestLogin_BadCredentialsAreGeneric(t *testing.T) {
	r := setupRouter(stubAuthService{})
	failuresBefore := testutil.ToFloat64(testMetrics.LoginFailures)

	w := postLogin(r, `{"email":"ghost@hospital.local","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(testMetrics.LoginFailures))
}

func TestLogin_StorageFailureIsInternal(t *testing.T) {
	storageErr := errors.New("failed to look up user: connection refused")
	r := setupRouter(stubAuthService{authErr: storageErr})
	failuresBefore := testutil.ToFloat64(testMetrics.LoginFailures)

	w := postLogin(r, `{"email":"recepcao@hospital.local","password":"senha123"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "invalid credentials")
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, failuresBefore, testutil.ToFloat64(testMetrics.LoginFailures))
}

func TestLogin_MissingFields(t *testing.T) {
	r := setupRouter(stubAuthService{})

	w := postLogin(r, `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	r := setupRouter(stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
