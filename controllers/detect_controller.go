package controllers

import (
	"net/http"

	"github.com/TenJit/emotion-detection-api/services"

	"github.com/gin-gonic/gin"
)

type DetectController struct {
	Emotions *services.EmotionService
}

func NewDetectController(svc *services.EmotionService) *DetectController {
	return &DetectController{Emotions: svc}
}

type detectRequest struct {
	Image string `json:"image" binding:"required"`
}

func (dc *DetectController) Detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	rec, noFace, err := dc.Emotions.Detect(c.Request.Context(), req.Image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if noFace {
		// A face-less photo is a normal outcome for the device camera.
		c.JSON(http.StatusOK, gin.H{"emotion": services.NoFaceLabel})
		return
	}

	c.JSON(http.StatusOK, gin.H{"emotion": rec.Label, "object_id": rec.ObjectID})
}
