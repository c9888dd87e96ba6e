package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_api/internal/analytics"
	"github.com/GTDGit/inventory_api/internal/middleware"
	"github.com/GTDGit/inventory_api/internal/report"
	"github.com/GTDGit/inventory_api/internal/telemetry"
	"github.com/GTDGit/inventory_api/internal/utils"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportArchiver stores a copy of a generated report and returns its key.
type ReportArchiver interface {
	Archive(ctx context.Context, ownerID, name, contentType string, data []byte) (string, error)
}

// ReportHandler renders downloadable reports.
type ReportHandler struct {
	workspaces WorkspaceOpener
	archiver   ReportArchiver
	listLimit  int
}

// NewReportHandler creates a new ReportHandler. archiver may be nil;
// listLimit caps the sales and low-stock rows of the monthly report.
func NewReportHandler(workspaces WorkspaceOpener, archiver ReportArchiver, listLimit int) *ReportHandler {
	return &ReportHandler{workspaces: workspaces, archiver: archiver, listLimit: listLimit}
}

// MonthlyPDF handles GET /v1/reports/monthly.pdf.
func (h *ReportHandler) MonthlyPDF(c *gin.Context) {
	ws := currentWorkspace(c, h.workspaces)
	snap := ws.Snapshot()

	r := report.BuildMonthly(snap.Products, snap.Sales, time.Now().In(ws.Location()), h.listLimit)
	data, err := report.RenderPDF(&r)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ws.OwnerID()).Msg("Failed to render monthly report")
		utils.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to render report")
		return
	}
	telemetry.ReportsGenerated.WithLabelValues("pdf").Inc()

	h.send(c, r.FileName(), contentTypePDF, data)
}

// InventoryXLSX handles GET /v1/reports/inventory.xlsx.
func (h *ReportHandler) InventoryXLSX(c *gin.Context) {
	snap := currentWorkspace(c, h.workspaces).Snapshot()

	data, err := report.RenderInventoryXLSX(snap.Products, analytics.CategoryBreakdown(snap.Products))
	if err != nil {
		log.Error().Err(err).Str("owner_id", middleware.OwnerID(c)).Msg("Failed to render inventory workbook")
		utils.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to render report")
		return
	}
	telemetry.ReportsGenerated.WithLabelValues("xlsx").Inc()

	h.send(c, report.InventoryFileName, contentTypeXLSX, data)
}

// Categories handles GET /v1/reports/categories.
func (h *ReportHandler) Categories(c *gin.Context) {
	snap := currentWorkspace(c, h.workspaces).Snapshot()
	utils.Success(c, http.StatusOK, "Category report retrieved", gin.H{
		"categories":     analytics.CategoryBreakdown(snap.Products),
		"inventoryValue": analytics.InventoryValue(snap.Products),
	})
}

// send writes the artifact as an attachment. An archive failure is logged
// and doesn't block the download.
func (h *ReportHandler) send(c *gin.Context, name, contentType string, data []byte) {
	if h.archiver != nil {
		key, err := h.archiver.Archive(c.Request.Context(), middleware.OwnerID(c), name, contentType, data)
		if err != nil {
			log.Warn().Err(err).Str("owner_id", middleware.OwnerID(c)).Msg("Report archive failed")
		} else {
			c.Header("X-Report-Key", key)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, data)
}
