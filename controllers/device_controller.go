package controllers

import (
	"net/http"

	"github.com/TenJit/emotion-detection-api/services"

	"github.com/gin-gonic/gin"
)

// DeviceController serves the endpoints the embedded device polls.
type DeviceController struct {
	Devices *services.DeviceService
}

func NewDeviceController(svc *services.DeviceService) *DeviceController {
	return &DeviceController{Devices: svc}
}

func (dc *DeviceController) ScrapeIndex(c *gin.Context) {
	idx, err := dc.Devices.NextScrapeIndex(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": idx})
}

func (dc *DeviceController) EIDError(c *gin.Context) {
	q, err := dc.Devices.ConsumeError(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if q == nil {
		c.JSON(http.StatusOK, gin.H{"eid_error": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"eid_error": q})
}
