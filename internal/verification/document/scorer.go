// Package document scores a supporting document's authenticity from its
// OCR-extracted text. Each declared category carries a keyword set and a
// point weight; the score is the matched fraction of keywords scaled to the
// weight. This is a heuristic proxy, not a guarantee: false positives and
// negatives are an accepted limitation.
package document

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Sattwik999/Trust-Score-Module/internal/capability"
)

// MaxScore is the raw scale every category weight tops out at.
const MaxScore = 20

type category struct {
	keywords []string
	weight   int
}

// categories maps the declared supporting-document type to its keyword set.
// Unknown categories score zero rather than erroring.
var categories = map[string]category{
	"medical": {
		keywords: []string{"diagnosis", "prescription", "treatment", "hospital", "doctor", "medical"},
		weight:   MaxScore,
	},
	"education": {
		keywords: []string{"fee", "receipt", "admission", "university", "college", "semester"},
		weight:   MaxScore,
	},
	"ngo_certificate": {
		keywords: []string{"registration", "government", "trust", "society", "certificate", "ngo"},
		weight:   MaxScore,
	},
}

// KnownCategory reports whether the declared type has a keyword table.
func KnownCategory(docType string) bool {
	_, ok := categories[docType]
	return ok
}

// Scorer extracts text from the uploaded document and scores it against the
// declared category.
type Scorer struct {
	extractor capability.TextExtractor
	logger    *slog.Logger
}

func NewScorer(extractor capability.TextExtractor, logger *slog.Logger) *Scorer {
	return &Scorer{extractor: extractor, logger: logger}
}

// Score runs OCR over the document and returns the category score on the raw
// 0-20 scale. Extraction failure, empty text, and unknown categories all
// degrade to zero.
func (s *Scorer) Score(ctx context.Context, file []byte, docType string) int {
	text, err := s.extractor.Extract(ctx, file)
	if err != nil {
		s.log(ctx, "supporting document extraction failed", "doc_type", docType, "error", err)
		return 0
	}
	if text == "" {
		s.log(ctx, "no text extracted from supporting document", "doc_type", docType)
		return 0
	}
	return ScoreText(text, docType)
}

// ScoreText scores already-extracted lower-cased text. Split out so the
// keyword matching is testable without an extractor.
func ScoreText(text, docType string) int {
	cat, ok := categories[docType]
	if !ok {
		return 0
	}
	matched := 0
	for _, keyword := range cat.keywords {
		if strings.Contains(text, keyword) {
			matched++
		}
	}
	return matched * cat.weight / len(cat.keywords)
}

func (s *Scorer) log(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}
