package controllers

import (
	"net/http"
	"time"

	"github.com/TenJit/emotion-detection-api/services"

	"github.com/gin-gonic/gin"
)

type EmotionController struct {
	Emotions *services.EmotionService
}

func NewEmotionController(svc *services.EmotionService) *EmotionController {
	return &EmotionController{Emotions: svc}
}

func (ec *EmotionController) ListEmotions(c *gin.Context) {
	out, err := ec.Emotions.TallyByDay(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ec *EmotionController) EmotionsByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	out, err := ec.Emotions.TallyForDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
