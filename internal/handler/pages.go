package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the two gated page routes. The real presentation layer
// lives in the frontend; these bodies exist so the session guard redirect
// contract is exercised end to end.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) LoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<!DOCTYPE html><title>Acesso Restrito</title>"))
}

func (h *PageHandler) DashboardPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<!DOCTYPE html><title>Controle de Visitas</title>"))
}
