// Package capability defines the boundary to the pretrained inference
// engines the pipeline consumes: face comparison, per-image liveness
// confidence, text extraction, and text classification. The pipeline only
// depends on these interfaces; implementations live behind a Registry that
// is built once at process start and injected into each scorer.
package capability

import (
	"context"
	"fmt"
)

// ComparisonResult is the outcome of a face comparison. Distance is the raw
// embedding distance retained for audit display; Verified is the capability's
// own accept/reject call at its configured threshold.
type ComparisonResult struct {
	Verified bool
	Distance float64
}

// Classification is a single label with the classifier's confidence for it,
// clamped to [0,1] at the boundary.
type Classification struct {
	Label string
	Score float64
}

// FaceComparer compares two face images. It returns an error when a face
// cannot be detected in either image; callers degrade to a zero score.
type FaceComparer interface {
	Compare(ctx context.Context, idImage, selfie []byte) (ComparisonResult, error)
}

// LivenessDetector reports a normalized confidence that the image depicts a
// live face. Implementations return an error on detection failure; callers
// treat that as confidence 0.
type LivenessDetector interface {
	Confidence(ctx context.Context, image []byte) (float64, error)
}

// TextExtractor runs OCR over an image or multi-page document and returns
// lower-cased plain text. An empty string signals extraction failure.
type TextExtractor interface {
	Extract(ctx context.Context, file []byte) (string, error)
}

// TextClassifier scores a text against candidate labels (zero-shot). The
// returned slice carries one entry per candidate label.
type TextClassifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]Classification, error)
}

// SentimentAnalyzer returns the dominant sentiment label and its confidence.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (Classification, error)
}

// Registry bundles every capability the pipeline needs. It is constructed
// once in main and never torn down; tests substitute deterministic mocks.
type Registry struct {
	Face      FaceComparer
	Liveness  LivenessDetector
	Extractor TextExtractor
	ZeroShot  TextClassifier
	Sentiment SentimentAnalyzer
}

// Validate ensures the registry is fully populated before the pipeline
// starts accepting submissions.
func (r *Registry) Validate() error {
	switch {
	case r.Face == nil:
		return fmt.Errorf("capability registry: face comparer is required")
	case r.Liveness == nil:
		return fmt.Errorf("capability registry: liveness detector is required")
	case r.Extractor == nil:
		return fmt.Errorf("capability registry: text extractor is required")
	case r.ZeroShot == nil:
		return fmt.Errorf("capability registry: zero-shot classifier is required")
	case r.Sentiment == nil:
		return fmt.Errorf("capability registry: sentiment analyzer is required")
	}
	return nil
}

// ClampScore forces a capability-reported confidence into [0,1]. Out-of-range
// values from a model server are clamped at the boundary rather than
// propagated.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
