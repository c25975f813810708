package http

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarium/internal/audit"
)

func newAuditRouter(t *testing.T) (*gin.Engine, *audit.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := audit.OpenDatabase(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	service := audit.NewService(audit.NewRepository(db.DB))

	router := newTestEngine(t)
	router.GET("/audit", NewAuditController(service).AuditLogPage)
	return router, service
}

func TestAuditController_AuditLogPage(t *testing.T) {
	t.Run("lists recorded events", func(t *testing.T) {
		router, service := newAuditRouter(t)
		require.NoError(t, service.Log(&audit.Event{Action: audit.ActionBookCheckout, BookTitle: "Dune", Detail: "taken by paul"}))
		require.NoError(t, service.Log(&audit.Event{Action: audit.ActionBookCreate, BookTitle: "Hyperion"}))

		w := get(router, "/audit")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")
		assert.Contains(t, w.Body.String(), "Hyperion")
		assert.Contains(t, w.Body.String(), string(audit.ActionBookCheckout))
	})

	t.Run("filters by action", func(t *testing.T) {
		router, service := newAuditRouter(t)
		require.NoError(t, service.Log(&audit.Event{Action: audit.ActionBookCheckout, BookTitle: "Dune"}))
		require.NoError(t, service.Log(&audit.Event{Action: audit.ActionBookDelete, BookTitle: "Hyperion"}))

		w := get(router, "/audit?action="+string(audit.ActionBookDelete))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hyperion")
		assert.NotContains(t, w.Body.String(), "Dune")
	})

	t.Run("empty log renders", func(t *testing.T) {
		router, _ := newAuditRouter(t)

		w := get(router, "/audit")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Audit Log")
	})
}
