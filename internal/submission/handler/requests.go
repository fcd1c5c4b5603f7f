package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Sattwik999/Trust-Score-Module/internal/submission"
	dErrors "github.com/Sattwik999/Trust-Score-Module/pkg/domain-errors"
)

// Multipart field names form the submission wire contract and must stay
// stable across deployments.
const (
	fieldUserID            = "user_id"
	fieldName              = "name"
	fieldStory             = "story"
	fieldSupportingDocType = "supporting_doc_type"
	fieldAadhaarNumber     = "aadhaar_number"
	fieldPANNumber         = "pan_number"

	fileIDImage       = "id_image"
	fileSelfie        = "selfie_image"
	fileSupportingDoc = "supporting_doc"
	fileAadhaarScan   = "aadhaar_doc"
	filePANScan       = "pan_doc"
	fileOfflineKYC    = "aadhaar_xml"
)

// AdjustmentRequest is the HTTP request body for
// PATCH /records/{id}/adjustment.
type AdjustmentRequest struct {
	Adjustment *float64 `json:"adjustment"`
}

// Validate implements the Validatable contract for httputil decoding.
func (r *AdjustmentRequest) Validate() error {
	if r == nil || r.Adjustment == nil {
		return dErrors.New(dErrors.CodeBadRequest, "adjustment is required")
	}
	return nil
}

// parseSubmitRequest reads the multipart submission form into a claim and
// evidence bundle. Every missing required part is collected before reporting,
// so a caller can fix the whole request in one round trip.
func parseSubmitRequest(r *http.Request, maxMemory int64) (submission.IdentityClaim, submission.EvidenceBundle, error) {
	var claim submission.IdentityClaim
	var evidence submission.EvidenceBundle

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return claim, evidence, dErrors.Wrap(dErrors.CodeBadRequest, "request must be multipart/form-data", err)
	}

	var missing []string

	field := func(name string) string {
		value := strings.TrimSpace(r.FormValue(name))
		if value == "" {
			missing = append(missing, name)
		}
		return value
	}

	claim.UserID = field(fieldUserID)
	claim.Name = field(fieldName)
	claim.Story = field(fieldStory)
	claim.SupportingDocType = field(fieldSupportingDocType)
	claim.AadhaarNumber = field(fieldAadhaarNumber)
	claim.PANNumber = field(fieldPANNumber)

	file := func(name string) submission.EvidenceFile {
		content, header, err := readFormFile(r, name)
		if err != nil {
			missing = append(missing, name)
			return submission.EvidenceFile{}
		}
		return submission.EvidenceFile{
			Content:     content,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
		}
	}

	evidence.IDImage = file(fileIDImage)
	evidence.Selfie = file(fileSelfie)
	evidence.SupportingDoc = file(fileSupportingDoc)
	evidence.AadhaarScan = file(fileAadhaarScan)
	evidence.PANScan = file(filePANScan)

	// The offline KYC container is the one optional part.
	if content, _, err := readFormFile(r, fileOfflineKYC); err == nil {
		evidence.OfflineKYC = content
	}

	if len(missing) > 0 {
		return claim, evidence, dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}
	return claim, evidence, nil
}

func readFormFile(r *http.Request, name string) ([]byte, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(name)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	if len(content) == 0 {
		return nil, nil, fmt.Errorf("form file %q is empty", name)
	}
	return content, header, nil
}
