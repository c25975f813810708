package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/audit"
)

type AuditController struct {
	auditService *audit.Service
}

func NewAuditController(auditService *audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

// AuditLogPage renders the recorded catalog mutations, newest first.
// GET /audit
func (ac *AuditController) AuditLogPage(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	action := c.Query("action")
	limit := 25
	offset := (page - 1) * limit

	var events []audit.Event
	var total int64
	var err error

	if action != "" {
		events, total, err = ac.auditService.GetEventsByAction(audit.Action(action), limit, offset)
	} else {
		events, total, err = ac.auditService.GetEvents(limit, offset)
	}

	if err != nil {
		c.HTML(http.StatusInternalServerError, "error", gin.H{
			"Error": "Failed to load audit events",
		})
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.HTML(http.StatusOK, "audit", gin.H{
		"Title":      "Audit Log",
		"Events":     events,
		"Page":       page,
		"TotalPages": totalPages,
		"Action":     action,
	})
}
