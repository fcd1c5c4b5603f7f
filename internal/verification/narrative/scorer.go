// Package narrative scores the free-text story attached to a claim. Four
// independently bounded parts are summed and clamped to [0,20]: readability
// (0-10), authenticity from a zero-shot classifier (0-5), emotional appeal
// from a sentiment model (0-5), and a fraud-marker penalty (-5-0). Each part
// degrades to its most conservative value when its capability fails, so a
// classifier outage never aborts scoring.
package narrative

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/Sattwik999/Trust-Score-Module/internal/capability"
)

const (
	// MaxScore is the narrative raw scale; the aggregator divides by this.
	MaxScore = 20

	labelGenuine = "genuine"
	labelFake    = "fake"

	// sentiment models are typically capped at 512 input tokens; truncating
	// bytes approximates that and keeps requests bounded.
	sentimentInputLimit = 512
)

// fraudMarkers are scam phrases that cost one point each, matched on word
// boundaries case-insensitively.
var fraudMarkers = []string{
	"guarantee returns",
	"double your money",
	"urgent investment",
	"lottery",
	"inheritance",
	"100% safe",
	"get rich quick",
}

var fraudPatterns = compileFraudPatterns()

func compileFraudPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(fraudMarkers))
	for _, marker := range fraudMarkers {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(marker)+`\b`))
	}
	return patterns
}

// Score is the narrative breakdown. Total is the clamped sum on the raw
// 0-20 scale.
type Score struct {
	Readability  float64
	Authenticity float64
	Emotion      float64
	FraudPenalty float64
	Total        float64
}

// Scorer runs the four narrative checks against the injected classifiers.
type Scorer struct {
	zeroShot  capability.TextClassifier
	sentiment capability.SentimentAnalyzer
	logger    *slog.Logger
}

func NewScorer(zeroShot capability.TextClassifier, sentiment capability.SentimentAnalyzer, logger *slog.Logger) *Scorer {
	return &Scorer{zeroShot: zeroShot, sentiment: sentiment, logger: logger}
}

// ScoreStory evaluates the story text.
func (s *Scorer) ScoreStory(ctx context.Context, text string) Score {
	score := Score{
		Readability:  Readability(text),
		Authenticity: s.authenticity(ctx, text),
		Emotion:      s.emotionalAppeal(ctx, text),
		FraudPenalty: FraudPenalty(text),
	}
	total := score.Readability + score.Authenticity + score.Emotion + score.FraudPenalty
	score.Total = round2(clamp(total, 0, MaxScore))
	return score
}

// Readability maps Flesch reading ease onto [0,10].
func Readability(text string) float64 {
	return clamp(fleschReadingEase(text)/10, 0, 10)
}

// authenticity is the zero-shot "genuine" probability scaled to [0,5].
func (s *Scorer) authenticity(ctx context.Context, text string) float64 {
	results, err := s.zeroShot.Classify(ctx, text, []string{labelGenuine, labelFake})
	if err != nil {
		s.warn(ctx, "authenticity classification failed", "error", err)
		return 0
	}
	for _, result := range results {
		if result.Label == labelGenuine {
			return round2(result.Score * 5)
		}
	}
	s.warn(ctx, "authenticity classifier returned no genuine label")
	return 0
}

// emotionalAppeal is the sentiment confidence scaled to [0,5] when the model
// commits to a positive or negative label; ambiguous labels contribute 0.
func (s *Scorer) emotionalAppeal(ctx context.Context, text string) float64 {
	result, err := s.sentiment.Analyze(ctx, truncate(text, sentimentInputLimit))
	if err != nil {
		s.warn(ctx, "sentiment analysis failed", "error", err)
		return 0
	}
	switch strings.ToUpper(result.Label) {
	case "POSITIVE", "NEGATIVE":
		return round2(result.Score * 5)
	}
	return 0
}

// DetectEmotion returns the standalone sentiment-confidence signal fed into
// the aggregator's emotion weight. Distinct from the emotional-appeal part
// above: this one is label-agnostic and normalized to [0,1].
func (s *Scorer) DetectEmotion(ctx context.Context, text string) float64 {
	result, err := s.sentiment.Analyze(ctx, truncate(text, sentimentInputLimit))
	if err != nil {
		s.warn(ctx, "emotion detection failed", "error", err)
		return 0
	}
	return round2(capability.ClampScore(result.Score))
}

// FraudPenalty subtracts one point per matched scam phrase, floored at -5.
func FraudPenalty(text string) float64 {
	penalty := 0.0
	for _, pattern := range fraudPatterns {
		if pattern.MatchString(text) {
			penalty--
		}
	}
	return math.Max(-5, penalty)
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Scorer) warn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}
