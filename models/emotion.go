package models

import (
	"time"

	"gorm.io/gorm"
)

// EmotionRecord stores one classification result. Immutable after
// creation; the raw image bytes are kept verbatim.
type EmotionRecord struct {
	gorm.Model `json:"-"`
	ObjectID   string    `gorm:"size:36;uniqueIndex" json:"object_id"`
	Label      string    `gorm:"size:16;index" json:"emotion"`
	Image      []byte    `json:"-"`
	CapturedAt time.Time `gorm:"index" json:"captured_at"`
}
