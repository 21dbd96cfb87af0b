package services

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// NoFaceLabel is the sentinel returned to clients when the classifier
// finds no face in the image. It is a normal result, not an error.
const NoFaceLabel = "No face detected"

// ClassifyResult is the tagged outcome of one classification call.
type ClassifyResult struct {
	Label  string
	NoFace bool
}

// Classifier turns raw image bytes into a dominant-emotion label.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (ClassifyResult, error)
}

type RekognitionClassifier struct {
	client  *rekognition.Client
	timeout time.Duration
}

func NewRekognitionClassifier(ctx context.Context, region string, timeout time.Duration) (*RekognitionClassifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionClassifier{
		client:  rekognition.NewFromConfig(cfg),
		timeout: timeout,
	}, nil
}

// Classify runs DetectFaces and picks the highest-confidence emotion of
// the first face. Rekognition can be slow, so the call is bounded by
// the configured timeout.
func (r *RekognitionClassifier) Classify(ctx context.Context, image []byte) (ClassifyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      &types.Image{Bytes: image},
		Attributes: []types.Attribute{types.AttributeAll},
	})
	if err != nil {
		return ClassifyResult{}, err
	}
	if len(out.FaceDetails) == 0 {
		return ClassifyResult{NoFace: true}, nil
	}

	emo, ok := dominantEmotion(out.FaceDetails[0].Emotions)
	if !ok {
		// A face with no emotion readings must not feed the stored
		// tallies a fabricated label; report it like a face-less image.
		return ClassifyResult{NoFace: true}, nil
	}
	return ClassifyResult{Label: emotionLabel(emo)}, nil
}

// dominantEmotion picks the highest-confidence reading. Entries
// without a confidence score are skipped; ok is false when nothing
// usable remains.
func dominantEmotion(emotions []types.Emotion) (types.EmotionName, bool) {
	var best types.Emotion
	found := false
	for _, e := range emotions {
		if e.Confidence == nil {
			continue
		}
		if !found || *e.Confidence > *best.Confidence {
			best = e
			found = true
		}
	}
	return best.Type, found
}

// emotionLabel maps Rekognition emotion names onto the vocabulary the
// rest of the system stores (angry, disgust, fear, happy, neutral,
// sad, surprise).
func emotionLabel(t types.EmotionName) string {
	switch t {
	case types.EmotionNameHappy:
		return "happy"
	case types.EmotionNameSad:
		return "sad"
	case types.EmotionNameAngry:
		return "angry"
	case types.EmotionNameDisgusted:
		return "disgust"
	case types.EmotionNameSurprised:
		return "surprise"
	case types.EmotionNameFear:
		return "fear"
	case types.EmotionNameConfused:
		return "confused"
	case types.EmotionNameCalm:
		return "neutral"
	default:
		return "neutral"
	}
}
