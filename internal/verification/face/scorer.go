// Package face produces the biometric part of a submission's evidence: a
// face-match score from comparing the ID photo against the selfie, a
// liveness score from the selfie alone, and the two ID-number verdicts
// (format check plus optional offline signature and OCR cross-check). The
// verdicts ride along in the outcome for audit display but only face match
// and liveness feed the blended total.
package face

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"math"

	_ "image/jpeg"
	_ "image/png"

	"github.com/Sattwik999/Trust-Score-Module/internal/capability"
	"github.com/Sattwik999/Trust-Score-Module/internal/identity"
	"github.com/Sattwik999/Trust-Score-Module/internal/identity/offline"
	"github.com/Sattwik999/Trust-Score-Module/internal/verification/document"
)

const (
	// DefaultThreshold is the embedding-distance threshold used when config
	// does not override it. Matches the face model's own operating point.
	DefaultThreshold = 0.4

	// nearMatchBand extends the threshold for the 0.5 partial-credit score:
	// an unverified pair within threshold+nearMatchBand still suggests the
	// same person photographed under poor conditions.
	nearMatchBand = 0.1

	faceWeight     = 0.7
	livenessWeight = 0.3
)

// Input carries everything the biometric stage consumes. Scan and offline
// container fields are optional; their absence skips the corresponding
// corroboration check.
type Input struct {
	IDImage       []byte
	Selfie        []byte
	AadhaarNumber string
	PANNumber     string
	AadhaarScan   []byte
	PANScan       []byte
	OfflineKYC    []byte
}

// Outcome is the biometric stage result. The zero value is the fully
// degraded outcome returned on any hard failure.
type Outcome struct {
	FaceMatchScore float64
	LivenessScore  float64
	AadhaarValid   bool
	PANValid       bool
	TotalScore     float64
	Details        Details
}

// Details preserves raw capability outputs for audit and debugging. None of
// these fields participate in scoring.
type Details struct {
	Distance           float64        `json:"distance"`
	Threshold          float64        `json:"threshold"`
	LivenessConfidence float64        `json:"liveness_confidence"`
	AadhaarFormatValid bool           `json:"aadhaar_format_valid"`
	PANFormatValid     bool           `json:"pan_format_valid"`
	OfflineSignature   offline.Result `json:"offline_signature"`
}

// Scorer runs the biometric stage against the injected capabilities.
type Scorer struct {
	comparer  capability.FaceComparer
	liveness  capability.LivenessDetector
	extractor capability.TextExtractor
	offline   *offline.Verifier
	threshold float64
	logger    *slog.Logger
}

func NewScorer(
	comparer capability.FaceComparer,
	liveness capability.LivenessDetector,
	extractor capability.TextExtractor,
	offlineVerifier *offline.Verifier,
	threshold float64,
	logger *slog.Logger,
) *Scorer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Scorer{
		comparer:  comparer,
		liveness:  liveness,
		extractor: extractor,
		offline:   offlineVerifier,
		threshold: threshold,
		logger:    logger,
	}
}

// Score evaluates the biometric claim. It never returns an error: undecodable
// images, undetectable faces, and capability outages all collapse to the
// zero outcome so the aggregator still runs.
func (s *Scorer) Score(ctx context.Context, in Input) Outcome {
	var out Outcome
	out.Details.Threshold = s.threshold

	if !decodable(in.IDImage) || !decodable(in.Selfie) {
		s.warn(ctx, "id or selfie image could not be decoded")
		return out
	}

	comparison, err := s.comparer.Compare(ctx, in.IDImage, in.Selfie)
	if err != nil {
		s.warn(ctx, "face comparison failed", "error", err)
		return out
	}
	out.Details.Distance = comparison.Distance

	switch {
	case comparison.Verified:
		out.FaceMatchScore = 1.0
	case comparison.Distance <= s.threshold+nearMatchBand:
		out.FaceMatchScore = 0.5
	}

	confidence, err := s.liveness.Confidence(ctx, in.Selfie)
	if err != nil {
		s.warn(ctx, "liveness check failed", "error", err)
		confidence = 0
	}
	out.LivenessScore = capability.ClampScore(confidence)
	out.Details.LivenessConfidence = out.LivenessScore

	out.AadhaarValid = s.checkAadhaar(ctx, in, &out.Details)
	out.PANValid = s.checkPAN(ctx, in, &out.Details)

	out.TotalScore = round2(faceWeight*out.FaceMatchScore + livenessWeight*out.LivenessScore)
	return out
}

// checkAadhaar validates the Aadhaar number: Verhoeff format check, then the
// optional offline signature (a supplied container that fails verification
// invalidates the number), then the optional OCR cross-check against the
// uploaded scan. A missing scan leaves the format-only validity standing.
func (s *Scorer) checkAadhaar(ctx context.Context, in Input, details *Details) bool {
	formatValid := identity.ValidateAadhaar(in.AadhaarNumber)
	details.AadhaarFormatValid = formatValid

	signature := offline.ResultNotAttempted
	if s.offline != nil {
		signature = s.offline.Verify(in.OfflineKYC)
	}
	details.OfflineSignature = signature

	if !formatValid || signature == offline.ResultFailed {
		return false
	}
	return s.crossCheck(ctx, in.AadhaarScan, in.AadhaarNumber, "aadhaar")
}

func (s *Scorer) checkPAN(ctx context.Context, in Input, details *Details) bool {
	formatValid := identity.ValidatePAN(in.PANNumber)
	details.PANFormatValid = formatValid
	if !formatValid {
		return false
	}
	return s.crossCheck(ctx, in.PANScan, in.PANNumber, "pan")
}

// crossCheck confirms the number appears in the scan's OCR text. Skipping is
// a success path: with no scan supplied the format validity stands.
func (s *Scorer) crossCheck(ctx context.Context, scan []byte, number, kind string) bool {
	if len(scan) == 0 {
		return true
	}
	text, err := s.extractor.Extract(ctx, scan)
	if err != nil {
		s.warn(ctx, "id scan extraction failed", "kind", kind, "error", err)
		return false
	}
	if !document.ContainsNumber(text, number) {
		s.warn(ctx, "id number not found in uploaded scan", "kind", kind)
		return false
	}
	return true
}

func decodable(img []byte) bool {
	if len(img) == 0 {
		return false
	}
	_, _, err := image.DecodeConfig(bytes.NewReader(img))
	return err == nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Scorer) warn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}
