package handlers

import (
	"net/http"

	"github.com/OldStager01/fatigue-monitor/pkg/database/queries"
	"github.com/OldStager01/fatigue-monitor/pkg/models"
	"github.com/OldStager01/fatigue-monitor/pkg/validation"
	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	deviceRepo *queries.DeviceRepository
}

func NewDeviceHandler(deviceRepo *queries.DeviceRepository) *DeviceHandler {
	return &DeviceHandler{deviceRepo: deviceRepo}
}

type RegisterDeviceRequest struct {
	Name  string `json:"name" binding:"required"`
	Class string `json:"device_class" binding:"required"`
}

func (h *DeviceHandler) Register(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	name := validation.SanitizeString(req.Name)
	if err := validation.ValidateDeviceName(name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class := models.DeviceClass(req.Class)
	if class != models.DeviceLaptop && class != models.DeviceMobile {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_class must be laptop or mobile"})
		return
	}

	device := &models.Device{
		ID:     models.NewUUID(),
		UserID: userKey(userID),
		Name:   name,
		Class:  class,
		Status: models.DeviceStatusActive,
	}

	if err := h.deviceRepo.Create(c.Request.Context(), device); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device"})
		return
	}

	c.JSON(http.StatusCreated, device)
}

func (h *DeviceHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	devices, err := h.deviceRepo.ListByUser(c.Request.Context(), userKey(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list devices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  devices,
		"count": len(devices),
	})
}

func (h *DeviceHandler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	device, err := h.deviceRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == queries.ErrDeviceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch device"})
		return
	}

	if device.UserID != userKey(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	c.JSON(http.StatusOK, device)
}

func (h *DeviceHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	err := h.deviceRepo.Delete(c.Request.Context(), c.Param("id"), userKey(userID))
	if err != nil {
		if err == queries.ErrDeviceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete device"})
		return
	}

	c.Status(http.StatusNoContent)
}
