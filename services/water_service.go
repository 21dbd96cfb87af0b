package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/TenJit/emotion-detection-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	waterTimeLayout = "15:04:05"
	dailyWaterCap   = 2
	minWaterSpacing = 4 * time.Hour
)

// WaterService owns the daily watering gate: at most two watering
// events per day, at least four hours apart, and never more events
// than happy detections recorded that day.
type WaterService struct {
	db       *gorm.DB
	emotions *EmotionService
	loc      *time.Location
	now      func() time.Time

	mu       sync.Mutex
	dayLocks map[string]*sync.Mutex
}

func NewWaterService(db *gorm.DB, emotions *EmotionService, loc *time.Location) *WaterService {
	return &WaterService{
		db:       db,
		emotions: emotions,
		loc:      loc,
		now:      time.Now,
		dayLocks: map[string]*sync.Mutex{},
	}
}

// WaterDecision is the outcome of one gate evaluation.
type WaterDecision struct {
	Date       string   `json:"date"`
	Result     bool     `json:"result"`
	WaterTimes []string `json:"water_time"`
}

// Evaluate runs the gate for "today" in the configured zone and, when
// allowed, appends the current time-of-day to the record.
//
// The read-decide-append sequence is serialized per date key with an
// in-process mutex; the append itself is guarded by the record's
// revision so a concurrent writer from another replica loses the
// update instead of double-appending. A lost write re-reads and
// re-decides, which is safe because the decision depends only on the
// re-read state.
func (s *WaterService) Evaluate(ctx context.Context) (*WaterDecision, error) {
	now := s.now().In(s.loc)
	date := now.Format("2006-01-02")

	lock := s.lockFor(date)
	lock.Lock()
	defer lock.Unlock()

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1)

	for attempt := 0; attempt < 3; attempt++ {
		rec, err := s.getOrCreate(ctx, date)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another replica created today's record between our read
			// and insert; the fresh row is there to re-read.
			continue
		}
		if err != nil {
			return nil, err
		}

		// Quota basis is recomputed fresh on every call: detections
		// accumulate independently and can unlock the gate later.
		happy, err := s.emotions.CountByLabelInRange(ctx, "happy", start, end)
		if err != nil {
			return nil, err
		}

		if !gateAllows(rec.WaterTimes, int(happy), now) {
			return &WaterDecision{Date: date, Result: false, WaterTimes: rec.WaterTimes}, nil
		}

		updated := make(datatypes.JSONSlice[string], 0, len(rec.WaterTimes)+1)
		updated = append(updated, rec.WaterTimes...)
		updated = append(updated, now.Format(waterTimeLayout))

		res := s.db.WithContext(ctx).
			Model(&models.DailyWaterRecord{}).
			Where("date = ? AND revision = ?", date, rec.Revision).
			Updates(map[string]interface{}{
				"water_times": updated,
				"revision":    rec.Revision + 1,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			return &WaterDecision{Date: date, Result: true, WaterTimes: updated}, nil
		}
		// Lost to a concurrent append; re-read and re-decide.
	}
	return nil, errors.New("water record contention, retries exhausted")
}

// gateAllows is the decision procedure, evaluated in order with the
// first match winning:
//  1. already as many events as happy detections: deny
//  2. daily cap of two reached: deny
//  3. exactly one event: allow only after four hours have elapsed
//  4. no events yet: allow
func gateAllows(times []string, happyCount int, now time.Time) bool {
	switch {
	case len(times) >= happyCount:
		return false
	case len(times) >= dailyWaterCap:
		return false
	case len(times) == 1:
		first, err := time.Parse(waterTimeLayout, times[0])
		if err != nil {
			return false
		}
		// Both stamps belong to the same calendar day, so the spacing
		// check is a plain clock-time difference.
		elapsed := clockTime(now) - clockTime(first)
		return elapsed >= minWaterSpacing
	default:
		return true
	}
}

func clockTime(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

func (s *WaterService) getOrCreate(ctx context.Context, date string) (*models.DailyWaterRecord, error) {
	rec := models.DailyWaterRecord{
		Date:       date,
		WaterTimes: datatypes.JSONSlice[string]{},
	}
	err := s.db.WithContext(ctx).
		Where("date = ?", date).
		FirstOrCreate(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAll returns every daily record, most recent day first.
func (s *WaterService) ListAll(ctx context.Context) ([]models.DailyWaterRecord, error) {
	var recs []models.DailyWaterRecord
	err := s.db.WithContext(ctx).
		Order("date desc").
		Find(&recs).Error
	return recs, err
}

// GetByDate returns the record for one day. Days with no record yield
// an empty record shape rather than an error.
func (s *WaterService) GetByDate(ctx context.Context, date string) (*models.DailyWaterRecord, error) {
	var rec models.DailyWaterRecord
	err := s.db.WithContext(ctx).
		Where("date = ?", date).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyWaterRecord{Date: date, WaterTimes: datatypes.JSONSlice[string]{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *WaterService) lockFor(date string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.dayLocks[date]
	if !ok {
		l = &sync.Mutex{}
		s.dayLocks[date] = l
	}
	return l
}
