package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/TenJit/emotion-detection-api/services"

	"github.com/gin-gonic/gin"
)

type WaterController struct {
	Waters  *services.WaterService
	Devices *services.DeviceService
}

func NewWaterController(ws *services.WaterService, ds *services.DeviceService) *WaterController {
	return &WaterController{Waters: ws, Devices: ds}
}

// Water evaluates the daily gate and reports the device enable flag
// alongside the decision.
func (wc *WaterController) Water(c *gin.Context) {
	blynk, err := wc.Devices.BlynkEnabled(c.Request.Context())
	if errors.Is(err, services.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrNotConfigured.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dec, err := wc.Waters.Evaluate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       dec.Date,
		"result":     dec.Result,
		"water_time": dec.WaterTimes,
		"blynk":      blynk,
	})
}

func (wc *WaterController) ListWaters(c *gin.Context) {
	recs, err := wc.Waters.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (wc *WaterController) WatersByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	rec, err := wc.Waters.GetByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
