package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/GTDGit/inventory_api/internal/analytics"
	"github.com/GTDGit/inventory_api/internal/models"
)

const (
	inventorySheet  = "Inventory"
	categoriesSheet = "Categories"
)

// InventoryFileName is the download name of the inventory workbook.
const InventoryFileName = "inventory.xlsx"

// RenderInventoryXLSX writes products and the per-category breakdown into a
// workbook with one sheet each.
func RenderInventoryXLSX(products []models.Product, breakdown []models.CategorySummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(inventorySheet)
	if err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(categoriesSheet); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	inventory := [][]any{{"Name", "Category", "Stock", "Min Stock", "Purchase Price", "Sale Price", "Stock Value", "Status", "Supplier", "Last Updated"}}
	for i := range products {
		p := &products[i]
		supplier := ""
		if p.Supplier != nil {
			supplier = *p.Supplier
		}
		lastUpdated := ""
		if !p.LastUpdated.IsZero() {
			lastUpdated = p.LastUpdated.Format("2006-01-02")
		}
		inventory = append(inventory, []any{
			p.Name,
			p.Category,
			p.Stock,
			p.MinStock,
			p.PurchasePrice.InexactFloat64(),
			p.SalePrice.InexactFloat64(),
			p.SalePrice.Mul(decimal.NewFromInt(int64(p.Stock))).InexactFloat64(),
			string(analytics.StockStatus(p)),
			supplier,
			lastUpdated,
		})
	}
	if err := writeRows(f, inventorySheet, inventory, headerStyle); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(inventorySheet, "A", "A", 28)
	_ = f.SetColWidth(inventorySheet, "B", "B", 18)
	_ = f.SetColWidth(inventorySheet, "C", "H", 14)
	_ = f.SetColWidth(inventorySheet, "I", "J", 18)

	categories := [][]any{{"Category", "Products", "Total Stock", "Total Value", "Low Stock"}}
	for _, c := range breakdown {
		categories = append(categories, []any{
			c.Category,
			c.ProductCount,
			c.TotalStock,
			c.TotalValue.InexactFloat64(),
			c.LowStockCount,
		})
	}
	if err := writeRows(f, categoriesSheet, categories, headerStyle); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(categoriesSheet, "A", "A", 24)
	_ = f.SetColWidth(categoriesSheet, "B", "E", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRows writes rows starting at A1 and styles the first one.
func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for r, values := range rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
