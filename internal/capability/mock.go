package capability

import (
	"context"
	"strings"
	"time"
)

// Mock implementations return deterministic data with a configurable latency
// to mimic real model calls. They back local development mode and the service
// test suites.

type MockFaceComparer struct {
	Latency  time.Duration
	Verified bool
	Distance float64
	Err      error
}

func (m MockFaceComparer) Compare(_ context.Context, _, _ []byte) (ComparisonResult, error) {
	time.Sleep(m.Latency)
	if m.Err != nil {
		return ComparisonResult{}, m.Err
	}
	return ComparisonResult{Verified: m.Verified, Distance: m.Distance}, nil
}

type MockLivenessDetector struct {
	Latency time.Duration
	Score   float64
	Err     error
}

func (m MockLivenessDetector) Confidence(_ context.Context, _ []byte) (float64, error) {
	time.Sleep(m.Latency)
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Score, nil
}

// MockTextExtractor returns the file content itself, lower-cased, so tests
// can steer OCR output by uploading plain text fixtures.
type MockTextExtractor struct {
	Latency time.Duration
	Err     error
}

func (m MockTextExtractor) Extract(_ context.Context, file []byte) (string, error) {
	time.Sleep(m.Latency)
	if m.Err != nil {
		return "", m.Err
	}
	return strings.ToLower(string(file)), nil
}

// MockTextClassifier splits the configured mass between the first candidate
// label and the rest.
type MockTextClassifier struct {
	Latency    time.Duration
	FirstScore float64
	Err        error
}

func (m MockTextClassifier) Classify(_ context.Context, _ string, labels []string) ([]Classification, error) {
	time.Sleep(m.Latency)
	if m.Err != nil {
		return nil, m.Err
	}
	results := make([]Classification, 0, len(labels))
	for i, label := range labels {
		score := m.FirstScore
		if i > 0 {
			if len(labels) > 1 {
				score = (1 - m.FirstScore) / float64(len(labels)-1)
			} else {
				score = 0
			}
		}
		results = append(results, Classification{Label: label, Score: score})
	}
	return results, nil
}

type MockSentimentAnalyzer struct {
	Latency time.Duration
	Label   string
	Score   float64
	Err     error
}

func (m MockSentimentAnalyzer) Analyze(_ context.Context, _ string) (Classification, error) {
	time.Sleep(m.Latency)
	if m.Err != nil {
		return Classification{}, m.Err
	}
	return Classification{Label: m.Label, Score: m.Score}, nil
}
