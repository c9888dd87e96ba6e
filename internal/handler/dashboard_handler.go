package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_api/internal/middleware"
	"github.com/GTDGit/inventory_api/internal/sse"
	"github.com/GTDGit/inventory_api/internal/utils"
)

// dashboardEvents is how many upcoming events the dashboard shows.
const dashboardEvents = 5

// DashboardHandler serves the derived metrics of the signed-in owner.
type DashboardHandler struct {
	workspaces   WorkspaceOpener
	hub          *sse.Hub
	pingInterval time.Duration
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(workspaces WorkspaceOpener, hub *sse.Hub) *DashboardHandler {
	return &DashboardHandler{
		workspaces:   workspaces,
		hub:          hub,
		pingInterval: 30 * time.Second,
	}
}

// Get handles GET /v1/dashboard.
func (h *DashboardHandler) Get(c *gin.Context) {
	ws := currentWorkspace(c, h.workspaces)
	snap := ws.Snapshot()

	utils.Success(c, http.StatusOK, "Dashboard retrieved successfully", gin.H{
		"metrics":        snap.Metrics,
		"upcomingEvents": ws.UpcomingEvents(time.Now(), dashboardEvents),
		"productCount":   len(snap.Products),
		"saleCount":      len(snap.Sales),
		"categoryCount":  len(snap.Categories),
		"lastError":      snap.LastError,
	})
}

// Reload handles POST /v1/workspace/reload: every record kind is fetched
// again and the metrics recomputed. Kinds that loaded are kept when another
// kind fails.
func (h *DashboardHandler) Reload(c *gin.Context) {
	ws := currentWorkspace(c, h.workspaces)
	if err := ws.Load(c.Request.Context()); err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Workspace reloaded", ws.Snapshot())
}

// Stream handles GET /v1/dashboard/stream?token=<jwt>
// EventSource can't set headers, so the route is mounted behind
// SessionMiddleware.HandleStream, which accepts the token as a query parameter.
func (h *DashboardHandler) Stream(c *gin.Context) {
	ownerID := middleware.OwnerID(c)
	ws := currentWorkspace(c, h.workspaces)
	clientID := fmt.Sprintf("%s-%d", ownerID, time.Now().UnixNano())

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	client := h.hub.Register(ownerID, clientID)
	defer h.hub.Unregister(ownerID, clientID)

	c.SSEvent(string(sse.EventMetricsSnapshot), sse.MetricsEvent{
		Event:     sse.EventMetricsSnapshot,
		Metrics:   ws.Metrics(),
		Timestamp: time.Now(),
	})
	c.Writer.Flush()

	log.Info().Str("client_id", clientID).Str("owner_id", ownerID).Msg("Dashboard stream started")

	c.Stream(func(w io.Writer) bool {
		select {
		case data, ok := <-client.Events:
			if !ok {
				return false
			}
			c.SSEvent(string(sse.EventMetricsUpdated), string(data))
			return true
		case <-time.After(h.pingInterval):
			c.SSEvent("ping", gin.H{"timestamp": time.Now().Format(time.RFC3339)})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
