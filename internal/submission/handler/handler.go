package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Sattwik999/Trust-Score-Module/internal/submission"
	dErrors "github.com/Sattwik999/Trust-Score-Module/pkg/domain-errors"
	"github.com/Sattwik999/Trust-Score-Module/pkg/platform/httputil"
	"github.com/Sattwik999/Trust-Score-Module/pkg/requestcontext"
)

const defaultMaxUploadBytes = 32 << 20

// Service defines the submission operations the handler exposes.
type Service interface {
	Evaluate(ctx context.Context, claim submission.IdentityClaim, evidence submission.EvidenceBundle) (submission.TrustScoreRecord, error)
	ListRecords(ctx context.Context) ([]submission.TrustScoreRecord, error)
	ApplyAdjustment(ctx context.Context, id uuid.UUID, adjustment float64) (submission.TrustScoreRecord, error)
}

// Handler wires submission endpoints to the submission service.
type Handler struct {
	service        Service
	logger         *slog.Logger
	maxUploadBytes int64
}

// New constructs a submission handler. maxUploadBytes bounds the multipart
// form size; zero selects the default.
func New(service Service, logger *slog.Logger, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		service:        service,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Register mounts submission endpoints on the router. The submit endpoint
// sits behind the rate limit middleware, adjustments behind the admin one.
func (h *Handler) Register(r chi.Router, limitSubmit, requireAdmin func(http.Handler) http.Handler) {
	r.With(limitSubmit).Post("/submit", h.HandleSubmit)
	r.Get("/records", h.HandleListRecords)
	r.With(requireAdmin).Patch("/records/{id}/adjustment", h.HandleAdjustment)
}

// HandleSubmit handles POST /submit requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	claim, evidence, err := parseSubmitRequest(r, h.maxUploadBytes)
	if err != nil {
		h.logger.WarnContext(ctx, "submission rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Evaluate(ctx, claim, evidence)
	if err != nil {
		h.logger.ErrorContext(ctx, "submission evaluation failed",
			"request_id", requestID,
			"user_id", claim.UserID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "submission accepted",
		"request_id", requestID,
		"user_id", claim.UserID,
		"record_id", record.ID,
		"trust_score", record.TrustScore,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromRecord(record))
}

// HandleListRecords handles GET /records requests.
func (h *Handler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.ListRecords(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "record listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// HandleAdjustment handles PATCH /records/{id}/adjustment requests.
func (h *Handler) HandleAdjustment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "record id must be a UUID"))
		return
	}

	req, ok := httputil.DecodeJSON[AdjustmentRequest](w, r)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.ApplyAdjustment(ctx, id, *req.Adjustment)
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "record not found"))
			return
		}
		h.logger.ErrorContext(ctx, "adjustment failed",
			"request_id", requestID,
			"record_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "adjustment accepted",
		"request_id", requestID,
		"record_id", id,
		"actor", requestcontext.AdminSubject(ctx),
		"trust_score", record.TrustScore,
	)

	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}
