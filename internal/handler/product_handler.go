package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_api/internal/analytics"
	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/utils"
)

// ProductHandler handles product endpoints of the signed-in owner.
type ProductHandler struct {
	workspaces WorkspaceOpener
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(workspaces WorkspaceOpener) *ProductHandler {
	return &ProductHandler{workspaces: workspaces}
}

// List returns products filtered by search, category and stock level.
// GET /v1/products?search=&category=&stock=low|normal|high&page=&limit=
func (h *ProductHandler) List(c *gin.Context) {
	level, err := analytics.ParseStockLevel(c.Query("stock"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ws := currentWorkspace(c, h.workspaces)
	products := analytics.FilterProducts(ws.SearchProducts(c.Query("search")), c.Query("category"), level)

	page, limit := queryPage(c)
	start, end := utils.PageBounds(page, limit, len(products))
	utils.SuccessWithPagination(c, http.StatusOK, "Products retrieved successfully", gin.H{
		"products": products[start:end],
	}, page, limit, len(products))
}

// Create handles POST /v1/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var in models.ProductInput
	if !bindJSON(c, &in) {
		return
	}

	p, err := currentWorkspace(c, h.workspaces).AddProduct(c.Request.Context(), &in)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Product created", p)
}

// Update handles PUT /v1/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	var patch models.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}

	p, err := currentWorkspace(c, h.workspaces).UpdateProduct(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product updated", p)
}

// Delete handles DELETE /v1/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := currentWorkspace(c, h.workspaces).DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product deleted", nil)
}

// Performance handles GET /v1/products/:id/performance.
func (h *ProductHandler) Performance(c *gin.Context) {
	series, err := currentWorkspace(c, h.workspaces).ProductPerformance(c.Param("id"))
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product performance retrieved", gin.H{
		"performance": series,
	})
}

func queryPage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return utils.NormalizePage(page, limit)
}
