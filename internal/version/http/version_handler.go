// Package http exposes the version endpoints.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devdox-ai/devdox-api/internal/httputil"
	"github.com/devdox-ai/devdox-api/internal/version"
)

// VersionHandler serves GET /api/version and GET /api/version/details.
type VersionHandler struct {
	reporter *version.Reporter
}

// NewVersionHandler creates a new version handler.
func NewVersionHandler(reporter *version.Reporter) *VersionHandler {
	return &VersionHandler{reporter: reporter}
}

// RegisterRoutes mounts the summary on the public group and the details on the
// authenticated group.
func (h *VersionHandler) RegisterRoutes(public, authenticated *gin.RouterGroup) {
	public.GET("/version", h.SummaryHandler)
	authenticated.GET("/version/details", h.DetailsHandler)
}

// SummaryHandler returns the API version.
func (h *VersionHandler) SummaryHandler(c *gin.Context) {
	httputil.Success(c, http.StatusOK, h.reporter.Summary())
}

// DetailsHandler returns the API version with runtime and environment information.
func (h *VersionHandler) DetailsHandler(c *gin.Context) {
	httputil.Success(c, http.StatusOK, h.reporter.Details())
}
