package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sattwik999/Trust-Score-Module/internal/capability"
)

const simpleStory = "I need help. My son is sick. The doctors found a heart problem. " +
	"We sold our land to pay the bills. We still owe a lot. Any help means the world to us."

func TestReadability(t *testing.T) {
	t.Run("plain short sentences score high", func(t *testing.T) {
		score := Readability(simpleStory)
		assert.Greater(t, score, 5.0)
		assert.LessOrEqual(t, score, 10.0)
	})

	t.Run("dense prose scores lower than plain prose", func(t *testing.T) {
		dense := "Notwithstanding the aforementioned circumstances surrounding the unanticipated " +
			"hospitalization, remuneration obligations necessitate extraordinary philanthropic intervention."
		assert.Less(t, Readability(dense), Readability(simpleStory))
	})

	t.Run("empty text scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Readability(""))
	})
}

func TestFraudPenalty(t *testing.T) {
	t.Run("clean text has no penalty", func(t *testing.T) {
		assert.Equal(t, 0.0, FraudPenalty(simpleStory))
	})

	t.Run("each marker costs one point", func(t *testing.T) {
		assert.Equal(t, -1.0, FraudPenalty("this is 100% safe, trust me"))
		assert.Equal(t, -2.0, FraudPenalty("I won a LOTTERY and an Inheritance"))
	})

	t.Run("markers match case insensitively on word boundaries", func(t *testing.T) {
		assert.Equal(t, -1.0, FraudPenalty("GUARANTEE RETURNS for all"))
		assert.Equal(t, 0.0, FraudPenalty("my lotteryticket"), "partial word must not match")
	})

	t.Run("penalty floors at minus five", func(t *testing.T) {
		text := "guarantee returns double your money urgent investment lottery inheritance 100% safe get rich quick"
		assert.Equal(t, -5.0, FraudPenalty(text))
	})
}

func TestScoreStory(t *testing.T) {
	ctx := context.Background()

	t.Run("parts sum and clamp into the raw scale", func(t *testing.T) {
		s := NewScorer(
			capability.MockTextClassifier{FirstScore: 0.8}, // genuine=0.8 -> 4.0
			capability.MockSentimentAnalyzer{Label: "NEGATIVE", Score: 0.9}, // -> 4.5
			nil,
		)
		score := s.ScoreStory(ctx, simpleStory)

		assert.Equal(t, 4.0, score.Authenticity)
		assert.Equal(t, 4.5, score.Emotion)
		assert.Equal(t, 0.0, score.FraudPenalty)
		assert.InDelta(t, score.Readability+score.Authenticity+score.Emotion, score.Total, 0.01)
		assert.LessOrEqual(t, score.Total, float64(MaxScore))
	})

	t.Run("neutral sentiment contributes nothing", func(t *testing.T) {
		s := NewScorer(
			capability.MockTextClassifier{FirstScore: 1.0},
			capability.MockSentimentAnalyzer{Label: "NEUTRAL", Score: 0.99},
			nil,
		)
		assert.Equal(t, 0.0, s.ScoreStory(ctx, simpleStory).Emotion)
	})

	t.Run("classifier failures degrade their parts to zero", func(t *testing.T) {
		s := NewScorer(
			capability.MockTextClassifier{Err: errors.New("model unavailable")},
			capability.MockSentimentAnalyzer{Err: errors.New("model unavailable")},
			nil,
		)
		score := s.ScoreStory(ctx, simpleStory)
		assert.Equal(t, 0.0, score.Authenticity)
		assert.Equal(t, 0.0, score.Emotion)
		assert.Equal(t, score.Readability, score.Total)
	})

	t.Run("penalty cannot push the total below zero", func(t *testing.T) {
		s := NewScorer(
			capability.MockTextClassifier{Err: errors.New("down")},
			capability.MockSentimentAnalyzer{Err: errors.New("down")},
			nil,
		)
		text := "lottery inheritance 100% safe get rich quick double your money"
		assert.Equal(t, 0.0, s.ScoreStory(ctx, text).Total)
	})
}

func TestDetectEmotion(t *testing.T) {
	ctx := context.Background()

	t.Run("returns clamped sentiment confidence", func(t *testing.T) {
		s := NewScorer(nil, capability.MockSentimentAnalyzer{Label: "POSITIVE", Score: 0.87}, nil)
		assert.Equal(t, 0.87, s.DetectEmotion(ctx, simpleStory))
	})

	t.Run("label agnostic unlike emotional appeal", func(t *testing.T) {
		s := NewScorer(nil, capability.MockSentimentAnalyzer{Label: "NEUTRAL", Score: 0.6}, nil)
		assert.Equal(t, 0.6, s.DetectEmotion(ctx, simpleStory))
	})

	t.Run("failure degrades to zero", func(t *testing.T) {
		s := NewScorer(nil, capability.MockSentimentAnalyzer{Err: errors.New("down")}, nil)
		assert.Equal(t, 0.0, s.DetectEmotion(ctx, simpleStory))
	})

	t.Run("long input is truncated not rejected", func(t *testing.T) {
		s := NewScorer(nil, capability.MockSentimentAnalyzer{Label: "POSITIVE", Score: 0.5}, nil)
		assert.Equal(t, 0.5, s.DetectEmotion(ctx, strings.Repeat("help ", 500)))
	})
}
