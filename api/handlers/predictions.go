package handlers

import (
	"net/http"

	"github.com/OldStager01/fatigue-monitor/internal/service"
	"github.com/OldStager01/fatigue-monitor/pkg/database/queries"
	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	svc *service.PredictionService
}

func NewPredictionHandler(svc *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{svc: svc}
}

// Predict runs the pipeline over the caller's recent usage window.
func (h *PredictionHandler) Predict(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	resp, err := h.svc.Predict(c.Request.Context(), userKey(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PredictionHandler) History(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit := parseLimit(c, 20, 200)
	predictions, err := h.svc.History(c.Request.Context(), userKey(userID), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  predictions,
		"count": len(predictions),
	})
}

func (h *PredictionHandler) Latest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	prediction, err := h.svc.Latest(c.Request.Context(), userKey(userID))
	if err != nil {
		if err == queries.ErrPredictionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "no predictions yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch prediction"})
		return
	}

	c.JSON(http.StatusOK, prediction)
}
