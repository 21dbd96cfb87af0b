package models

import "time"

// DeviceStatus is a single-row table holding the external-device
// enable flag. It is written by the device side and only read here.
type DeviceStatus struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Blynk     bool      `json:"blynk"`
	UpdatedAt time.Time `json:"-"`
}

// ScrapeCounter is a single-row table backing /scrapeIndex.
type ScrapeCounter struct {
	ID    uint  `gorm:"primaryKey" json:"-"`
	Index int64 `json:"index"`
}

// QueuedError is one queued device error, consumed oldest-first by
// /eidError.
type QueuedError struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	EID       string    `gorm:"size:64" json:"eid"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"-"`
}
