package document

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sattwik999/Trust-Score-Module/internal/capability"
)

func TestScoreText(t *testing.T) {
	t.Run("full keyword match reaches the weight", func(t *testing.T) {
		text := "diagnosis prescription treatment hospital doctor medical report"
		assert.Equal(t, 20, ScoreText(text, "medical"))
	})

	t.Run("partial match floors the scaled score", func(t *testing.T) {
		// 3 of 6 keywords -> floor(3/6*20) = 10
		assert.Equal(t, 10, ScoreText("hospital doctor diagnosis", "medical"))
		// 1 of 6 keywords -> floor(1/6*20) = 3
		assert.Equal(t, 3, ScoreText("university application", "education"))
	})

	t.Run("unknown category scores zero", func(t *testing.T) {
		assert.Equal(t, 0, ScoreText("hospital doctor diagnosis", "utility_bill"))
	})

	t.Run("no keywords scores zero", func(t *testing.T) {
		assert.Equal(t, 0, ScoreText("completely unrelated text", "medical"))
	})

	t.Run("ngo keywords are matched lower cased", func(t *testing.T) {
		text := "registration certificate issued by the government for the ngo trust society"
		assert.Equal(t, 20, ScoreText(text, "ngo_certificate"))
	})
}

func TestScorerDegradation(t *testing.T) {
	ctx := context.Background()

	t.Run("extraction failure scores zero", func(t *testing.T) {
		s := NewScorer(capability.MockTextExtractor{Err: errors.New("ocr backend down")}, nil)
		assert.Equal(t, 0, s.Score(ctx, []byte("irrelevant"), "medical"))
	})

	t.Run("empty text scores zero", func(t *testing.T) {
		s := NewScorer(capability.MockTextExtractor{}, nil)
		assert.Equal(t, 0, s.Score(ctx, nil, "medical"))
	})

	t.Run("extractor output feeds keyword scoring", func(t *testing.T) {
		s := NewScorer(capability.MockTextExtractor{}, nil)
		file := []byte("Hospital discharge summary. Diagnosis: recovered. Doctor: Dr. Rao.")
		assert.Equal(t, 10, s.Score(ctx, file, "medical"))
	})
}

func TestContainsNumber(t *testing.T) {
	assert.True(t, ContainsNumber("aadhaar no 234123412347 issued", "234123412347"))
	assert.True(t, ContainsNumber("pan: abcde1234f", "ABCDE1234F"))
	assert.False(t, ContainsNumber("aadhaar no 234123412347", "999941057058"))
	assert.False(t, ContainsNumber("", "234123412347"))
	assert.False(t, ContainsNumber("some text", ""))
}

func TestKnownCategory(t *testing.T) {
	assert.True(t, KnownCategory("medical"))
	assert.True(t, KnownCategory("education"))
	assert.True(t, KnownCategory("ngo_certificate"))
	assert.False(t, KnownCategory("medical "))
	assert.False(t, KnownCategory("MEDICAL"))
}
