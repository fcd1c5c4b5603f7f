package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sattwik999/Trust-Score-Module/internal/submission"
)

type fakeService struct {
	record     submission.TrustScoreRecord
	records    []submission.TrustScoreRecord
	err        error
	claim      submission.IdentityClaim
	evidence   submission.EvidenceBundle
	adjustment float64
}

func (f *fakeService) Evaluate(_ context.Context, claim submission.IdentityClaim, evidence submission.EvidenceBundle) (submission.TrustScoreRecord, error) {
	f.claim = claim
	f.evidence = evidence
	return f.record, f.err
}

func (f *fakeService) ListRecords(context.Context) ([]submission.TrustScoreRecord, error) {
	return f.records, f.err
}

func (f *fakeService) ApplyAdjustment(_ context.Context, _ uuid.UUID, adjustment float64) (submission.TrustScoreRecord, error) {
	f.adjustment = adjustment
	return f.record, f.err
}

func newTestRouter(svc Service) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	New(svc, logger, 0).Register(r, passthrough, passthrough)
	return r
}

type formPart struct {
	name    string
	value   string
	isFile  bool
	content []byte
}

func submitForm(t *testing.T, parts []formPart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, part := range parts {
		if part.isFile {
			fw, err := writer.CreateFormFile(part.name, part.name+".bin")
			require.NoError(t, err)
			_, err = fw.Write(part.content)
			require.NoError(t, err)
			continue
		}
		require.NoError(t, writer.WriteField(part.name, part.value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func completeForm() []formPart {
	return []formPart{
		{name: "user_id", value: "user-7"},
		{name: "name", value: "Sample Resident"},
		{name: "story", value: "A short story about community work."},
		{name: "supporting_doc_type", value: "medical"},
		{name: "aadhaar_number", value: "234123412346"},
		{name: "pan_number", value: "ABCDE1234F"},
		{name: "id_image", isFile: true, content: []byte("id-bytes")},
		{name: "selfie_image", isFile: true, content: []byte("selfie-bytes")},
		{name: "supporting_doc", isFile: true, content: []byte("doc-bytes")},
		{name: "aadhaar_doc", isFile: true, content: []byte("aadhaar-bytes")},
		{name: "pan_doc", isFile: true, content: []byte("pan-bytes")},
	}
}

func TestHandleSubmitAcceptsCompleteForm(t *testing.T) {
	svc := &fakeService{record: submission.TrustScoreRecord{
		ID:         uuid.New(),
		UserID:     "user-7",
		TrustScore: 72.5,
		FaceMatch:  true,
		CreatedAt:  time.Now().UTC(),
	}}
	router := newTestRouter(svc)

	body, contentType := submitForm(t, completeForm())
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, svc.record.ID.String(), resp.ID)
	assert.Equal(t, 72.5, resp.TrustScore)

	assert.Equal(t, "user-7", svc.claim.UserID)
	assert.Equal(t, "234123412346", svc.claim.AadhaarNumber)
	assert.Equal(t, []byte("selfie-bytes"), svc.evidence.Selfie.Content)
	assert.Nil(t, svc.evidence.OfflineKYC)
}

func TestHandleSubmitAcceptsOptionalOfflineKYC(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	parts := append(completeForm(), formPart{name: "aadhaar_xml", isFile: true, content: []byte("<OfflineKyc/>")})
	body, contentType := submitForm(t, parts)
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []byte("<OfflineKyc/>"), svc.evidence.OfflineKYC)
}

func TestHandleSubmitListsEveryMissingPart(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	// Only two parts supplied; the response must name all nine absentees.
	body, contentType := submitForm(t, []formPart{
		{name: "user_id", value: "user-7"},
		{name: "selfie_image", isFile: true, content: []byte("selfie-bytes")},
	})
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bad_request", resp.Error)
	for _, name := range []string{
		"name", "story", "supporting_doc_type", "aadhaar_number", "pan_number",
		"id_image", "supporting_doc", "aadhaar_doc", "pan_doc",
	} {
		assert.Contains(t, resp.Description, name)
	}
	assert.NotContains(t, resp.Description, "user_id")
	assert.NotContains(t, resp.Description, "selfie_image")

	// The pipeline never ran.
	assert.Empty(t, svc.claim.UserID)
}

func TestHandleSubmitRejectsNonMultipart(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"user_id":"u"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListRecords(t *testing.T) {
	svc := &fakeService{records: []submission.TrustScoreRecord{
		{ID: uuid.New(), UserID: "user-1", TrustScore: 40},
		{ID: uuid.New(), UserID: "user-2", TrustScore: 80},
	}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "user-2", resp[1].UserID)
}

func TestHandleListRecordsEmptyIsArray(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestHandleAdjustment(t *testing.T) {
	svc := &fakeService{record: submission.TrustScoreRecord{ID: uuid.New(), TrustScore: 55, AdminAdjustment: -0.5}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/records/"+svc.record.ID.String()+"/adjustment",
		strings.NewReader(`{"adjustment":-0.5}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -0.5, svc.adjustment)
}

func TestHandleAdjustmentValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"bad uuid", "/records/not-a-uuid/adjustment", `{"adjustment":0.1}`, http.StatusBadRequest},
		{"missing adjustment", "/records/" + uuid.NewString() + "/adjustment", `{}`, http.StatusBadRequest},
		{"invalid json", "/records/" + uuid.NewString() + "/adjustment", `{`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&fakeService{})
			req := httptest.NewRequest(http.MethodPatch, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestHandleAdjustmentNotFound(t *testing.T) {
	svc := &fakeService{err: submission.ErrNotFound}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/records/"+uuid.NewString()+"/adjustment",
		strings.NewReader(`{"adjustment":0.1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
