package handlers

import (
	"net/http"
	"time"

	"github.com/OldStager01/fatigue-monitor/internal/events"
	"github.com/OldStager01/fatigue-monitor/internal/metrics"
	"github.com/OldStager01/fatigue-monitor/internal/normalizer"
	"github.com/OldStager01/fatigue-monitor/pkg/config"
	"github.com/OldStager01/fatigue-monitor/pkg/database/queries"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
	"github.com/OldStager01/fatigue-monitor/pkg/validation"
	"github.com/gin-gonic/gin"
)

type UsageHandler struct {
	usageRepo  *queries.UsageRepository
	deviceRepo *queries.DeviceRepository
	publisher  *events.Publisher
	config     *config.APIConfig
}

func NewUsageHandler(usageRepo *queries.UsageRepository, deviceRepo *queries.DeviceRepository, publisher *events.Publisher, cfg *config.APIConfig) *UsageHandler {
	return &UsageHandler{
		usageRepo:  usageRepo,
		deviceRepo: deviceRepo,
		publisher:  publisher,
		config:     cfg,
	}
}

type LaptopBatchRequest struct {
	Samples []models.LaptopSample `json:"samples" binding:"required"`
}

type MobileBatchRequest struct {
	Samples []models.MobileSample `json:"samples" binding:"required"`
}

type batchResponse struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// IngestLaptop stores a batch of laptop samples. Records with timestamps no
// layout can parse are rejected per item; the rest of the batch proceeds.
func (h *UsageHandler) IngestLaptop(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req LaptopBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	resp := batchResponse{}

	for i := range req.Samples {
		s := &req.Samples[i]
		s.UserID = userKey(userID)

		at, parsed := normalizer.ParseTimestamp(s.Timestamp)
		if !parsed || validation.ValidateUsageDuration(s.UsageDuration) != nil {
			resp.Rejected++
			continue
		}

		if err := h.usageRepo.InsertLaptop(ctx, at, s); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store usage"})
			return
		}
		resp.Accepted++

		if s.DeviceID != "" {
			h.deviceRepo.TouchLastActive(ctx, s.DeviceID, at)
		}
	}

	if resp.Accepted > 0 {
		metrics.UsageRecordsIngested.WithLabelValues(string(models.DeviceLaptop)).Add(float64(resp.Accepted))
		h.publisher.UsageReceived(userKey(userID), string(models.DeviceLaptop), resp.Accepted)
	}

	c.JSON(http.StatusAccepted, resp)
}

func (h *UsageHandler) IngestMobile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req MobileBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	resp := batchResponse{}

	for i := range req.Samples {
		s := &req.Samples[i]
		s.UserID = userKey(userID)

		at, parsed := normalizer.ParseTimestamp(s.Timestamp)
		if !parsed || validation.ValidateUsageDuration(s.ScreenTime) != nil {
			resp.Rejected++
			continue
		}

		if err := h.usageRepo.InsertMobile(ctx, at, s); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store usage"})
			return
		}
		resp.Accepted++

		if s.DeviceID != "" {
			h.deviceRepo.TouchLastActive(ctx, s.DeviceID, at)
		}
	}

	if resp.Accepted > 0 {
		metrics.UsageRecordsIngested.WithLabelValues(string(models.DeviceMobile)).Add(float64(resp.Accepted))
		h.publisher.UsageReceived(userKey(userID), string(models.DeviceMobile), resp.Accepted)
	}

	c.JSON(http.StatusAccepted, resp)
}

func (h *UsageHandler) GetRecent(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	from, to := parseTimeRange(c, 24*time.Hour)
	limit := parseLimit(c, h.defaultLimit(), h.maxLimit())
	ctx := c.Request.Context()
	key := userKey(userID)

	laptop, err := h.usageRepo.GetLaptopRange(ctx, key, from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch usage"})
		return
	}

	mobile, err := h.usageRepo.GetMobileRange(ctx, key, from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch usage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":   from,
		"to":     to,
		"laptop": laptop,
		"mobile": mobile,
		"count":  len(laptop) + len(mobile),
	})
}

func (h *UsageHandler) GetTotals(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	from, to := parseTimeRange(c, 24*time.Hour)
	totals, err := h.usageRepo.GetTotals(c.Request.Context(), userKey(userID), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":   from,
		"to":     to,
		"totals": totals,
	})
}

func (h *UsageHandler) defaultLimit() int {
	if h.config != nil && h.config.DefaultLimit > 0 {
		return h.config.DefaultLimit
	}
	return 100
}

func (h *UsageHandler) maxLimit() int {
	if h.config != nil && h.config.MaxLimit > 0 {
		return h.config.MaxLimit
	}
	return 1000
}
