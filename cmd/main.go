package main

import (
	"context"
	"log"

	"github.com/TenJit/emotion-detection-api/config"
	"github.com/TenJit/emotion-detection-api/controllers"
	"github.com/TenJit/emotion-detection-api/routes"
	"github.com/TenJit/emotion-detection-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	classifier, err := services.NewRekognitionClassifier(context.Background(), cfg.AWSRegion, cfg.ClassifierTimeout)
	if err != nil {
		log.Fatalf("unable to load AWS config: %v", err)
	}

	emotionSvc := services.NewEmotionService(db, classifier, cfg.Location)
	waterSvc := services.NewWaterService(db, emotionSvc, cfg.Location)
	sensorSvc := services.NewSensorService(db)
	deviceSvc := services.NewDeviceService(db)

	r := routes.SetupRouter(routes.Controllers{
		Detect:   controllers.NewDetectController(emotionSvc),
		Water:    controllers.NewWaterController(waterSvc, deviceSvc),
		Emotions: controllers.NewEmotionController(emotionSvc),
		Sensors:  controllers.NewSensorController(sensorSvc),
		Devices:  controllers.NewDeviceController(deviceSvc),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
