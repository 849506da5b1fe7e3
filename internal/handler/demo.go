// internal/handler/demo.go
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"foyer-finance/internal/demodata"
	"foyer-finance/internal/middleware"

	"github.com/gin-gonic/gin"
)

type DemoHandler struct {
	gen *demodata.Generator
}

func NewDemoHandler(gen *demodata.Generator) *DemoHandler {
	return &DemoHandler{gen: gen}
}

// Generate godoc
// @Summary Populate the household with generated demo data
// @Description Each call appends a full generated history, without dedup
// @Produce json
// @Success 200 {object} map[string]bool{"success":true}
// @Router /api/v1/demo-data [post]
func (h *DemoHandler) Generate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return
	}

	slog.Info("🎲 génération des données de démonstration demandée", "user_id", userID)

	if err := h.gen.Run(context.Background(), userID); err != nil {
		slog.Error("Demo data generation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
