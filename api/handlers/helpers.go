package handlers

import (
	"strconv"
	"time"

	"github.com/OldStager01/fatigue-monitor/api/middleware"
	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (int, bool) {
	id := middleware.GetUserID(c)
	return id, id != 0
}

// userKey is the string form of the user id used across telemetry tables.
func userKey(userID int) string {
	return strconv.Itoa(userID)
}

func parseLimit(c *gin.Context, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
			if maxLimit > 0 && limit > maxLimit {
				limit = maxLimit
			}
		}
	}
	return limit
}

func parseTimeRange(c *gin.Context, defaultWindow time.Duration) (time.Time, time.Time) {
	to := time.Now()
	from := to.Add(-defaultWindow)

	if fromStr := c.Query("from"); fromStr != "" {
		if parsed, err := time.Parse(time.RFC3339, fromStr); err == nil {
			from = parsed
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if parsed, err := time.Parse(time.RFC3339, toStr); err == nil {
			to = parsed
		}
	}

	// Relative ranges like "6h" or "7d" override from
	if rangeStr := c.Query("range"); rangeStr != "" {
		from = to.Add(-parseRangeDuration(rangeStr, defaultWindow))
	}

	return from, to
}

func parseRangeDuration(s string, fallback time.Duration) time.Duration {
	if len(s) < 2 {
		return fallback
	}

	unit := s[len(s)-1]
	value, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || value <= 0 {
		return fallback
	}

	switch unit {
	case 'm':
		return time.Duration(value) * time.Minute
	case 'h':
		return time.Duration(value) * time.Hour
	case 'd':
		return time.Duration(value) * 24 * time.Hour
	default:
		return fallback
	}
}
