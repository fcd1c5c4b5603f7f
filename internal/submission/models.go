package submission

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sattwik999/Trust-Score-Module/internal/verification/face"
	"github.com/Sattwik999/Trust-Score-Module/internal/verification/narrative"
)

// IdentityClaim is the self-submitted claim. It is immutable for the life of
// the request; the pipeline never writes to it.
type IdentityClaim struct {
	UserID            string
	Name              string
	Story             string
	SupportingDocType string
	AadhaarNumber     string
	PANNumber         string
}

// EvidenceFile is one uploaded artifact: opaque content plus the declared
// media type and original filename (used only to pick a storage extension).
type EvidenceFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// EvidenceBundle carries the five required evidence files plus the optional
// offline KYC container. Ownership transfers to the pipeline for the
// duration of verification, then to the file store.
type EvidenceBundle struct {
	IDImage       EvidenceFile
	Selfie        EvidenceFile
	SupportingDoc EvidenceFile
	AadhaarScan   EvidenceFile
	PANScan       EvidenceFile
	OfflineKYC    []byte
}

// TrustScoreRecord is the terminal aggregate for one submission. Field names
// and value ranges are stable: stored data written by earlier deployments
// must keep reading back.
type TrustScoreRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"user_id"`
	Name   string    `json:"name"`
	Story  string    `json:"story"`

	TrustScore       float64 `json:"trust_score"`
	FaceMatch        bool    `json:"face_match"`
	DocumentVerified bool    `json:"document_verified"`

	FaceScore       float64 `json:"face_score"`
	StoryScore      float64 `json:"story_score"`
	EmotionScore    float64 `json:"emotion_score"`
	EngagementScore float64 `json:"engagement_score"`
	AdminAdjustment float64 `json:"admin_adjustment"`

	IDImagePath     string `json:"id_image_path"`
	SelfieImagePath string `json:"selfie_image_path"`

	AadhaarNumber   string `json:"aadhaar_number"`
	PANNumber       string `json:"pan_number"`
	AadhaarFilePath string `json:"aadhaar_file_path"`
	PANFilePath     string `json:"pan_file_path"`

	SupportingDocType  string `json:"supporting_doc_type"`
	SupportingDocPath  string `json:"supporting_doc_path"`
	SupportingDocScore int    `json:"supporting_doc_score"`

	CreatedAt time.Time `json:"created_at"`
}

// evidenceScores collects the stage outputs the aggregator consumes. Stages
// fill their field and nothing else, so concurrent stages never share state.
type evidenceScores struct {
	Face       face.Outcome
	Document   int
	Narrative  narrative.Score
	Emotion    float64
	Engagement float64
}
