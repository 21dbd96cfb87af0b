package models

import "time"

// SensorAverage rows are written by an external collector; this
// service only lists them.
type SensorAverage struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Date         string    `gorm:"size:10;index" json:"date"`
	Temperature  float64   `json:"temperature"`
	Humidity     float64   `json:"humidity"`
	SoilMoisture float64   `json:"soil_moisture"`
	CreatedAt    time.Time `json:"-"`
}
