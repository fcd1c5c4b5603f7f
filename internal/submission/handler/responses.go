package handler

import (
	"time"

	"github.com/Sattwik999/Trust-Score-Module/internal/submission"
)

// RecordResponse is the HTTP shape of a trust score record. Field names are
// stable: stored records written by earlier deployments read back under the
// same keys.
type RecordResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Story  string `json:"story"`

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

// FromRecord converts a domain record to its HTTP response.
func FromRecord(record submission.TrustScoreRecord) RecordResponse {
	return RecordResponse{
		ID:                 record.ID.String(),
		UserID:             record.UserID,
		Name:               record.Name,
		Story:              record.Story,
		TrustScore:         record.TrustScore,
		FaceMatch:          record.FaceMatch,
		DocumentVerified:   record.DocumentVerified,
		FaceScore:          record.FaceScore,
		StoryScore:         record.StoryScore,
		EmotionScore:       record.EmotionScore,
		EngagementScore:    record.EngagementScore,
		AdminAdjustment:    record.AdminAdjustment,
		IDImagePath:        record.IDImagePath,
		SelfieImagePath:    record.SelfieImagePath,
		AadhaarNumber:      record.AadhaarNumber,
		PANNumber:          record.PANNumber,
		AadhaarFilePath:    record.AadhaarFilePath,
		PANFilePath:        record.PANFilePath,
		SupportingDocType:  record.SupportingDocType,
		SupportingDocPath:  record.SupportingDocPath,
		SupportingDocScore: record.SupportingDocScore,
		CreatedAt:          record.CreatedAt,
	}
}

// FromRecords converts a record slice, never returning nil so the JSON body
// is always an array.
func FromRecords(records []submission.TrustScoreRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, FromRecord(record))
	}
	return out
}
