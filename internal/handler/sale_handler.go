package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/utils"
)

// SaleHandler handles sales endpoints of the signed-in owner.
type SaleHandler struct {
	workspaces WorkspaceOpener
}

// NewSaleHandler constructs a SaleHandler.
func NewSaleHandler(workspaces WorkspaceOpener) *SaleHandler {
	return &SaleHandler{workspaces: workspaces}
}

// List returns sales, most recent first.
// GET /v1/sales?date=YYYY-MM-DD&page=&limit=
func (h *SaleHandler) List(c *gin.Context) {
	ws := currentWorkspace(c, h.workspaces)

	var sales []models.Sale
	if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, ws.Location())
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		sales = ws.SalesOn(day)
	} else {
		sales = ws.Snapshot().Sales
	}

	page, limit := queryPage(c)
	start, end := utils.PageBounds(page, limit, len(sales))
	utils.SuccessWithPagination(c, http.StatusOK, "Sales retrieved successfully", gin.H{
		"sales": sales[start:end],
	}, page, limit, len(sales))
}

// Create handles POST /v1/sales. A sale whose stock update failed is still
// recorded; the response is a STOCK_SYNC_FAILED error whose data holds the
// stored sale.
func (h *SaleHandler) Create(c *gin.Context) {
	var in models.SaleInput
	if !bindJSON(c, &in) {
		return
	}

	sale, err := currentWorkspace(c, h.workspaces).AddSale(c.Request.Context(), &in)
	if err != nil {
		if sale != nil {
			utils.ErrorFromWithData(c, err, sale)
			return
		}
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Sale recorded", sale)
}

// Delete handles DELETE /v1/sales/:id.
func (h *SaleHandler) Delete(c *gin.Context) {
	if err := currentWorkspace(c, h.workspaces).DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorFrom(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Sale deleted", nil)
}
