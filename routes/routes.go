package routes

import (
	"net/http"
	"time"

	"github.com/TenJit/emotion-detection-api/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Detect   *controllers.DetectController
	Water    *controllers.WaterController
	Emotions *controllers.EmotionController
	Sensors  *controllers.SensorController
	Devices  *controllers.DeviceController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "This is face emotion detection API for embedded system project"})
	})

	r.POST("/detect", ctl.Detect.Detect)

	r.GET("/water", ctl.Water.Water)
	r.GET("/waters", ctl.Water.ListWaters)
	r.GET("/waters/:date", ctl.Water.WatersByDate)

	r.GET("/emotions", ctl.Emotions.ListEmotions)
	r.GET("/emotions/:date", ctl.Emotions.EmotionsByDate)

	r.GET("/sensor", ctl.Sensors.ListSensors)
	r.GET("/sensor/:date", ctl.Sensors.SensorsByDate)

	r.GET("/scrapeIndex", ctl.Devices.ScrapeIndex)
	r.GET("/eidError", ctl.Devices.EIDError)

	return r
}
