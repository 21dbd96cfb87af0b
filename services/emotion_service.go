package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/TenJit/emotion-detection-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmotionService struct {
	db         *gorm.DB
	classifier Classifier
	loc        *time.Location
	now        func() time.Time
}

func NewEmotionService(db *gorm.DB, classifier Classifier, loc *time.Location) *EmotionService {
	return &EmotionService{db: db, classifier: classifier, loc: loc, now: time.Now}
}

// Detect classifies a base64 image and persists the result. A no-face
// outcome returns (nil, true, nil) and persists nothing.
func (s *EmotionService) Detect(ctx context.Context, imageB64 string) (*models.EmotionRecord, bool, error) {
	// Accept both bare base64 and "data:<mime>;base64,<data>" URIs.
	if strings.HasPrefix(imageB64, "data:") {
		parts := strings.SplitN(imageB64, ",", 2)
		if len(parts) != 2 {
			return nil, false, fmt.Errorf("invalid data URI")
		}
		imageB64 = parts[1]
	}
	data, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}

	res, err := s.classifier.Classify(ctx, data)
	if err != nil {
		return nil, false, err
	}
	if res.NoFace {
		return nil, true, nil
	}

	rec := &models.EmotionRecord{
		ObjectID:   uuid.NewString(),
		Label:      res.Label,
		Image:      data,
		CapturedAt: s.now().In(s.loc),
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, false, err
	}
	return rec, false, nil
}

// CountByLabelInRange counts records with the given label captured in
// [start, end).
func (s *EmotionService) CountByLabelInRange(ctx context.Context, label string, start, end time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.EmotionRecord{}).
		Where("label = ? AND captured_at >= ? AND captured_at < ?", label, start, end).
		Count(&n).Error
	return n, err
}

// DayEmotions is one day's tally of labels.
type DayEmotions struct {
	Date     string         `json:"date"`
	Emotions map[string]int `json:"emotions"`
}

// TallyByDay groups all records by calendar day in the configured zone
// and counts labels, most recent day first.
func (s *EmotionService) TallyByDay(ctx context.Context) ([]DayEmotions, error) {
	var rows []models.EmotionRecord
	if err := s.db.WithContext(ctx).
		Select("label", "captured_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	idx := map[string]map[string]int{}
	for _, r := range rows {
		day := r.CapturedAt.In(s.loc).Format("2006-01-02")
		if idx[day] == nil {
			idx[day] = map[string]int{}
		}
		idx[day][r.Label]++
	}

	out := make([]DayEmotions, 0, len(idx))
	for day, counts := range idx {
		out = append(out, DayEmotions{Date: day, Emotions: counts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// TallyForDate counts labels for a single day ("2006-01-02"). A day
// with no records yields an empty tally, not an error.
func (s *EmotionService) TallyForDate(ctx context.Context, date string) (DayEmotions, error) {
	start, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return DayEmotions{}, fmt.Errorf("invalid date %q", date)
	}
	end := start.AddDate(0, 0, 1)

	var rows []models.EmotionRecord
	if err := s.db.WithContext(ctx).
		Select("label", "captured_at").
		Where("captured_at >= ? AND captured_at < ?", start, end).
		Find(&rows).Error; err != nil {
		return DayEmotions{}, err
	}

	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Label]++
	}
	return DayEmotions{Date: date, Emotions: counts}, nil
}
