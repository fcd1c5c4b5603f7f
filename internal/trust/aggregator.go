// Package trust folds every normalized sub-score into the final [0,100]
// trust score. The aggregation is a pure weighted sum; it is deterministic
// and insensitive to the order the stages completed in.
package trust

import "math"

// Weights of the six aggregator terms. They sum to exactly 1.00; the test
// suite pins that invariant.
const (
	WeightFace       = 0.20
	WeightDocument   = 0.20
	WeightEmotion    = 0.15
	WeightNarrative  = 0.25
	WeightEngagement = 0.10
	WeightAdmin      = 0.10
)

// Verdict thresholds. FaceMatchThreshold applies to the blended face total
// score; DocumentVerifiedThreshold applies to the raw 0-20 document score.
const (
	FaceMatchThreshold        = 0.5
	DocumentVerifiedThreshold = 10
)

// Inputs are the aggregator terms on their native scales. DocumentScore is
// raw 0-20 and is normalized here; NarrativeScore is raw 0-20 and normalized
// here when it exceeds 1. Every other term arrives already in [0,1] (admin
// in [-1,1]). Normalization happens exactly once, at this boundary.
type Inputs struct {
	FaceScore       float64 // [0,1]
	DocumentScore   int     // raw [0,20]
	EmotionScore    float64 // [0,1]
	NarrativeScore  float64 // raw [0,20]
	EngagementScore float64 // [0,1]
	AdminAdjustment float64 // [-1,1]
}

// Compute returns the final trust score, rounded to 2 decimals and clamped
// to [0,100]. Well-formed inputs cannot escape the range; the clamp covers
// out-of-range sub-scores.
func Compute(in Inputs) float64 {
	narrative := in.NarrativeScore
	if narrative > 1 {
		narrative /= 20
	}
	score := (WeightFace*in.FaceScore +
		WeightDocument*float64(in.DocumentScore)/20 +
		WeightEmotion*in.EmotionScore +
		WeightNarrative*narrative +
		WeightEngagement*in.EngagementScore +
		WeightAdmin*in.AdminAdjustment) * 100

	score = math.Round(score*100) / 100
	return math.Min(math.Max(score, 0), 100)
}

// FaceMatch is the downstream verdict on the blended face total score at
// the default threshold.
func FaceMatch(faceScore float64) bool {
	return FaceMatchAt(faceScore, FaceMatchThreshold)
}

// FaceMatchAt is FaceMatch with an operator-configured threshold.
func FaceMatchAt(faceScore, threshold float64) bool {
	return faceScore >= threshold
}

// DocumentVerified is the downstream verdict on the raw document score.
func DocumentVerified(documentScore int) bool {
	return documentScore >= DocumentVerifiedThreshold
}
