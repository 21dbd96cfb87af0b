package controllers

import (
	"net/http"
	"time"

	"github.com/TenJit/emotion-detection-api/services"

	"github.com/gin-gonic/gin"
)

type SensorController struct {
	Sensors *services.SensorService
}

func NewSensorController(svc *services.SensorService) *SensorController {
	return &SensorController{Sensors: svc}
}

func (sc *SensorController) ListSensors(c *gin.Context) {
	rows, err := sc.Sensors.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (sc *SensorController) SensorsByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	rows, err := sc.Sensors.ListByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
