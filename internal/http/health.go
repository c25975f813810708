package http

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/audit"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	auditDB     *audit.Database
	libraryPath string
	version     string
}

func NewHealthController(auditDB *audit.Database, libraryPath, version string) *HealthController {
	return &HealthController{
		auditDB:     auditDB,
		libraryPath: libraryPath,
		version:     version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.auditDB != nil {
		if err := h.auditDB.Ping(); err != nil {
			checks["audit_db"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["audit_db"] = "ok"
		}
	} else {
		checks["audit_db"] = "not configured"
	}

	// The library file may legitimately not exist before the first
	// mutation, so its absence does not fail the check.
	if _, err := os.Stat(h.libraryPath); err == nil {
		checks["library"] = "ok"
	} else if os.IsNotExist(err) {
		checks["library"] = "not created yet"
	} else {
		checks["library"] = "error: " + err.Error()
		status = "unhealthy"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
