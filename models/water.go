package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DailyWaterRecord is the per-day append-only log of watering event
// times ("HH:MM:SS"), at most one row per calendar day. Revision is an
// optimistic-lock counter: every append must name the revision it read,
// so a concurrent append loses instead of double-writing.
type DailyWaterRecord struct {
	gorm.Model `json:"-"`
	Date       string                      `gorm:"size:10;uniqueIndex" json:"date"`
	WaterTimes datatypes.JSONSlice[string] `json:"water_time"`
	Revision   int                         `json:"-"`
}
