package services

import (
	"context"

	"github.com/TenJit/emotion-detection-api/models"

	"gorm.io/gorm"
)

// SensorService lists the externally-populated sensor averages.
type SensorService struct {
	db *gorm.DB
}

func NewSensorService(db *gorm.DB) *SensorService {
	return &SensorService{db: db}
}

func (s *SensorService) ListAll(ctx context.Context) ([]models.SensorAverage, error) {
	var rows []models.SensorAverage
	err := s.db.WithContext(ctx).
		Order("date desc").
		Find(&rows).Error
	return rows, err
}

func (s *SensorService) ListByDate(ctx context.Context, date string) ([]models.SensorAverage, error) {
	var rows []models.SensorAverage
	err := s.db.WithContext(ctx).
		Where("date = ?", date).
		Find(&rows).Error
	return rows, err
}
