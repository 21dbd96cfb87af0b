package services

import (
	"context"
	"errors"
	"sync"

	"github.com/TenJit/emotion-detection-api/models"

	"gorm.io/gorm"
)

// ErrNotConfigured marks a missing single-row table that the device
// side is expected to have populated.
var ErrNotConfigured = errors.New("device status not configured")

// DeviceService covers the device-support surface: the blynk enable
// flag, the scrape counter and the queued-error consumer.
type DeviceService struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewDeviceService(db *gorm.DB) *DeviceService {
	return &DeviceService{db: db}
}

// BlynkEnabled reads the external-device enable flag. The row is
// written by the device side; absence means the device was never set
// up, surfaced as ErrNotConfigured.
func (s *DeviceService) BlynkEnabled(ctx context.Context) (bool, error) {
	var st models.DeviceStatus
	err := s.db.WithContext(ctx).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNotConfigured
	}
	if err != nil {
		return false, err
	}
	return st.Blynk, nil
}

// NextScrapeIndex returns the current counter value and increments it.
// The row is created at zero on first use. The increment is a
// compare-and-swap on the value just read: a writer that raced us
// matches zero rows and we re-read, so no two callers ever receive the
// same value and no stale write can roll the counter back.
func (s *DeviceService) NextScrapeIndex(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < 3; attempt++ {
		var c models.ScrapeCounter
		if err := s.db.WithContext(ctx).First(&c).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, err
			}
			c = models.ScrapeCounter{ID: 1}
			if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Another replica created the row first.
					continue
				}
				return 0, err
			}
		}

		res := s.db.WithContext(ctx).
			Model(&models.ScrapeCounter{}).
			Where(`id = ? AND "index" = ?`, c.ID, c.Index).
			Update("index", c.Index+1)
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 1 {
			return c.Index, nil
		}
	}
	return 0, errors.New("scrape counter contention, retries exhausted")
}

// ConsumeError pops the oldest queued error, or returns nil when the
// queue is empty. The delete names the row's primary key and checks
// RowsAffected, so a row can only ever be delivered to one caller; a
// lost delete moves on to the next oldest row.
func (s *DeviceService) ConsumeError(ctx context.Context) (*models.QueuedError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < 3; attempt++ {
		var q models.QueuedError
		err := s.db.WithContext(ctx).Order("created_at asc").First(&q).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		res := s.db.WithContext(ctx).Delete(&models.QueuedError{}, q.ID)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			return &q, nil
		}
		// Another consumer won this row; take the next oldest.
	}
	return nil, errors.New("error queue contention, retries exhausted")
}
