package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/utils"
)

// EventHandler handles the owner's calendar.
type EventHandler struct {
	workspaces WorkspaceOpener
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(workspaces WorkspaceOpener) *EventHandler {
	return &EventHandler{workspaces: workspaces}
}

// List handles GET /v1/events. With ?upcoming=N only the next N events
// from now are returned.
func (h *EventHandler) List(c *gin.Context) {
	ws := currentWorkspace(c, h.workspaces)

	events := ws.Snapshot().Events
	if raw := c.Query("upcoming"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "upcoming must be a non-negative number")
			return
		}
		events = ws.UpcomingEvents(time.Now(), n)
	}

	utils.Success(c, http.StatusOK, "Events retrieved successfully", gin.H{
		"events": events,
	})
}

// Create handles POST /v1/events.
func (h *EventHandler) Create(c *gin.Context) {
	var in models.EventInput
	if !bindJSON(c, &in) {
		return
	}

	e, err := currentWorkspace(c, h.workspaces).AddEvent(c.Request.Context(), &in)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Event created", e)
}

// Update handles PUT /v1/events/:id.
func (h *EventHandler) Update(c *gin.Context) {
	var patch models.EventPatch
	if !bindJSON(c, &patch) {
		return
	}

	e, err := currentWorkspace(c, h.workspaces).UpdateEvent(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Event updated", e)
}

// Delete handles DELETE /v1/events/:id.
func (h *EventHandler) Delete(c *gin.Context) {
	if err := currentWorkspace(c, h.workspaces).DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Event deleted", nil)
}
