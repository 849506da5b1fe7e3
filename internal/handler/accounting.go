// internal/handler/accounting.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"foyer-finance/internal/accounting"
	"foyer-finance/internal/storage"

	"github.com/gin-gonic/gin"
)

type AccountingCombined interface {
	storage.DirectoryStorage
	storage.AccountingStorage
}

type AccountingHandler struct {
	store AccountingCombined
}

func NewAccountingHandler(store AccountingCombined) *AccountingHandler {
	return &AccountingHandler{store: store}
}

// Grid godoc
// @Summary Yearly expense grid by category, subcategory and month
// @Param year query int true "Accounting year"
// @Success 200 {object} accounting.Grid
// @Failure 400 {object} map[string]string
// @Router /api/v1/accounting/grid [get]
func (h *AccountingHandler) Grid(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year query param required"})
		return
	}

	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	rows, err := h.store.AccountingRows(context.Background(), orgID, year)
	if err != nil {
		slog.Error("Failed to load accounting rows", "error", err, "organization_id", orgID, "year", year)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	grid := accounting.BuildGrid(year, rows)
	if grid.Categories == nil {
		grid.Categories = []accounting.CategoryRow{}
	}
	c.JSON(http.StatusOK, grid)
}

// Years godoc
// @Summary Years that have at least one transaction
// @Success 200 {array} int
// @Router /api/v1/accounting/years [get]
func (h *AccountingHandler) Years(c *gin.Context) {
	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	years, err := h.store.AccountingYears(context.Background(), orgID)
	if err != nil {
		slog.Error("Failed to load accounting years", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if years == nil {
		years = []int{}
	}
	c.JSON(http.StatusOK, years)
}
