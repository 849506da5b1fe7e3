// internal/handler/onboarding.go
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"foyer-finance/internal/middleware"
	"foyer-finance/internal/onboarding"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	svc *onboarding.Service
}

func NewOnboardingHandler(svc *onboarding.Service) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

func onboardingKind(c *gin.Context) (onboarding.Kind, bool) {
	kind := onboarding.Kind(c.DefaultQuery("type", string(onboarding.NewUser)))
	if kind != onboarding.NewUser && kind != onboarding.FeatureRelease {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be new-user or feature-release"})
		return "", false
	}
	return kind, true
}

// Status godoc
// @Summary Whether the onboarding flow should be shown
// @Param type query string false "new-user (default) or feature-release"
// @Success 200 {object} map[string]bool{"active":true}
// @Router /api/v1/onboarding [get]
func (h *OnboardingHandler) Status(c *gin.Context) {
	kind, ok := onboardingKind(c)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return
	}

	active, err := h.svc.Active(context.Background(), userID, kind)
	if err != nil {
		slog.Error("Failed to read onboarding status", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

// Complete godoc
// @Summary Mark the onboarding flow as seen
// @Description Skipping and completing are the same write
// @Param type query string false "new-user (default) or feature-release"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Router /api/v1/onboarding/complete [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	kind, ok := onboardingKind(c)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return
	}

	if err := h.svc.Complete(context.Background(), userID, kind); err != nil {
		slog.Error("Failed to complete onboarding", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
