package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_api/internal/middleware"
	"github.com/GTDGit/inventory_api/internal/utils"
	"github.com/GTDGit/inventory_api/internal/workspace"
)

// WorkspaceOpener returns the loaded workspace of an owner.
type WorkspaceOpener interface {
	Open(ctx context.Context, ownerID string) (*workspace.Workspace, error)
}

// currentWorkspace returns the signed-in owner's workspace, loading it when
// it was evicted. A partial load is logged and served; the failure stays
// visible through LastError.
func currentWorkspace(c *gin.Context, workspaces WorkspaceOpener) *workspace.Workspace {
	ownerID := middleware.OwnerID(c)
	ws, err := workspaces.Open(c.Request.Context(), ownerID)
	if err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID).Msg("Workspace reloaded with errors")
	}
	return ws
}

// bindJSON decodes the request body into req, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return false
	}
	return true
}
