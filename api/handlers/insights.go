package handlers

import (
	"net/http"

	"github.com/OldStager01/fatigue-monitor/internal/insights"
	"github.com/gin-gonic/gin"
)

type InsightsHandler struct{}

func NewInsightsHandler() *InsightsHandler {
	return &InsightsHandler{}
}

// Features documents the feature vector for API consumers.
func (h *InsightsHandler) Features(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"features": insights.FeatureExplanations(),
	})
}
