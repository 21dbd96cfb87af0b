package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TenJit/emotion-detection-api/models"
)

type stubClassifier struct {
	res ClassifyResult
	err error
}

func (s stubClassifier) Classify(ctx context.Context, image []byte) (ClassifyResult, error) {
	return s.res, s.err
}

// one black pixel, enough to act as an image payload
const tinyImageB64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestDetectPersistsRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewEmotionService(db, stubClassifier{res: ClassifyResult{Label: "happy"}}, time.UTC)
	svc.now = func() time.Time { return at(10, 0) }

	rec, noFace, err := svc.Detect(context.Background(), tinyImageB64)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if noFace {
		t.Fatalf("unexpected no-face result")
	}
	if rec.Label != "happy" || rec.ObjectID == "" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(rec.Image) == 0 {
		t.Fatalf("image bytes must be stored verbatim")
	}

	var n int64
	if err := db.Model(&models.EmotionRecord{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one persisted record, got %d", n)
	}
}

func TestDetectNoFacePersistsNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewEmotionService(db, stubClassifier{res: ClassifyResult{NoFace: true}}, time.UTC)

	rec, noFace, err := svc.Detect(context.Background(), tinyImageB64)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if !noFace || rec != nil {
		t.Fatalf("expected no-face outcome, got rec=%+v noFace=%v", rec, noFace)
	}

	var n int64
	if err := db.Model(&models.EmotionRecord{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("no record may be persisted for a face-less image, got %d", n)
	}
}

func TestDetectClassifierFault(t *testing.T) {
	db := newTestDB(t)
	boom := errors.New("rekognition unavailable")
	svc := NewEmotionService(db, stubClassifier{err: boom}, time.UTC)

	if _, _, err := svc.Detect(context.Background(), tinyImageB64); !errors.Is(err, boom) {
		t.Fatalf("expected classifier fault to propagate, got %v", err)
	}
}

func TestDetectBadBase64(t *testing.T) {
	db := newTestDB(t)
	svc := NewEmotionService(db, stubClassifier{}, time.UTC)
	if _, _, err := svc.Detect(context.Background(), "%%%not-base64%%%"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDetectDataURIPrefix(t *testing.T) {
	db := newTestDB(t)
	svc := NewEmotionService(db, stubClassifier{res: ClassifyResult{Label: "sad"}}, time.UTC)
	rec, _, err := svc.Detect(context.Background(), "data:image/png;base64,"+tinyImageB64)
	if err != nil {
		t.Fatalf("detect with data URI: %v", err)
	}
	if rec.Label != "sad" {
		t.Fatalf("unexpected label %q", rec.Label)
	}
}

func TestCountByLabelInRangeDayEdges(t *testing.T) {
	db := newTestDB(t)
	svc := NewEmotionService(db, nil, time.UTC)

	seedHappy(t, db, time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC))
	seedHappy(t, db, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	seedHappy(t, db, time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))

	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	n, err := svc.CountByLabelInRange(context.Background(), "happy", start, start.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 in-range records, got %d", n)
	}
}

func TestTallyByDaySortedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewEmotionService(db, nil, time.UTC)

	seed := func(label string, day, hour int) {
		rec := models.EmotionRecord{
			ObjectID:   time.Date(2024, 6, day, hour, 0, 0, 0, time.UTC).Format(time.RFC3339) + label,
			Label:      label,
			CapturedAt: time.Date(2024, 6, day, hour, 0, 0, 0, time.UTC),
		}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	seed("happy", 9, 8)
	seed("sad", 9, 9)
	seed("happy", 10, 8)
	seed("happy", 10, 9)
	seed("neutral", 10, 10)

	out, err := svc.TallyByDay(context.Background())
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 days, got %d", len(out))
	}
	if out[0].Date != "2024-06-10" || out[1].Date != "2024-06-09" {
		t.Fatalf("days not newest-first: %+v", out)
	}
	if out[0].Emotions["happy"] != 2 || out[0].Emotions["neutral"] != 1 {
		t.Fatalf("wrong tally for newest day: %+v", out[0].Emotions)
	}
	if out[1].Emotions["happy"] != 1 || out[1].Emotions["sad"] != 1 {
		t.Fatalf("wrong tally for older day: %+v", out[1].Emotions)
	}
}

func TestTallyForDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewEmotionService(db, nil, time.UTC)
	seedHappy(t, db, time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))

	out, err := svc.TallyForDate(context.Background(), "2024-06-10")
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if out.Emotions["happy"] != 1 {
		t.Fatalf("unexpected tally: %+v", out)
	}

	empty, err := svc.TallyForDate(context.Background(), "2023-01-01")
	if err != nil {
		t.Fatalf("tally empty day: %v", err)
	}
	if len(empty.Emotions) != 0 {
		t.Fatalf("empty day must yield empty tally: %+v", empty)
	}

	if _, err := svc.TallyForDate(context.Background(), "junk"); err == nil {
		t.Fatalf("expected invalid date error")
	}
}
