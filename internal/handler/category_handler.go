package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_api/internal/utils"
)

// CategoryHandler handles the owner's category list.
type CategoryHandler struct {
	workspaces WorkspaceOpener
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(workspaces WorkspaceOpener) *CategoryHandler {
	return &CategoryHandler{workspaces: workspaces}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// List handles GET /v1/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	utils.Success(c, http.StatusOK, "Categories retrieved successfully", gin.H{
		"categories": currentWorkspace(c, h.workspaces).Snapshot().Categories,
	})
}

// Create handles POST /v1/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := currentWorkspace(c, h.workspaces).AddCategory(c.Request.Context(), req.Name); err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Category created", gin.H{"name": req.Name})
}

// Rename handles PUT /v1/categories/:name. Products keep their category.
func (h *CategoryHandler) Rename(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := currentWorkspace(c, h.workspaces).RenameCategory(c.Request.Context(), c.Param("name"), req.Name); err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Category renamed", gin.H{"name": req.Name})
}

// Delete handles DELETE /v1/categories/:name. Products referencing the
// category are left alone.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := currentWorkspace(c, h.workspaces).RemoveCategory(c.Request.Context(), c.Param("name")); err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Category deleted", nil)
}
