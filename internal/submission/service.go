package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Sattwik999/Trust-Score-Module/internal/audit"
	"github.com/Sattwik999/Trust-Score-Module/internal/storage/files"
	"github.com/Sattwik999/Trust-Score-Module/internal/submission/metrics"
	"github.com/Sattwik999/Trust-Score-Module/internal/trust"
	"github.com/Sattwik999/Trust-Score-Module/internal/verification/document"
	"github.com/Sattwik999/Trust-Score-Module/internal/verification/engagement"
	"github.com/Sattwik999/Trust-Score-Module/internal/verification/face"
	"github.com/Sattwik999/Trust-Score-Module/internal/verification/narrative"
	domainerrors "github.com/Sattwik999/Trust-Score-Module/pkg/domain-errors"
	"github.com/Sattwik999/Trust-Score-Module/pkg/requestcontext"
)

const defaultStageTimeout = 45 * time.Second

// Service runs the verification pipeline for identity claims and manages the
// resulting trust score records.
type Service struct {
	store        Store
	fileStore    files.Store
	faceScorer   *face.Scorer
	docScorer    *document.Scorer
	narrScorer   *narrative.Scorer
	auditor      *audit.Publisher
	metrics      *metrics.Metrics
	logger       *slog.Logger
	stageTimeout time.Duration

	faceMatchThreshold float64
	now                func() time.Time
}

// Option configures optional Service collaborators.
type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithStageTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.stageTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithFaceMatchThreshold overrides the face_match verdict threshold.
func WithFaceMatchThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.faceMatchThreshold = threshold
		}
	}
}

func NewService(
	store Store,
	fileStore files.Store,
	faceScorer *face.Scorer,
	docScorer *document.Scorer,
	narrScorer *narrative.Scorer,
	auditor *audit.Publisher,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		store:        store,
		fileStore:    fileStore,
		faceScorer:   faceScorer,
		docScorer:    docScorer,
		narrScorer:   narrScorer,
		auditor:      auditor,
		logger:       logger,
		stageTimeout: defaultStageTimeout,

		faceMatchThreshold: trust.FaceMatchThreshold,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate runs every verification stage against the claim and evidence,
// aggregates the stage scores into a trust score, persists the record, and
// returns it. Stage failures degrade to zero scores rather than failing the
// submission; only a persistence failure returns an error, and even then the
// computed record is returned so callers can still surface it.
func (s *Service) Evaluate(ctx context.Context, claim IdentityClaim, evidence EvidenceBundle) (TrustScoreRecord, error) {
	start := time.Now()

	scores := s.runStages(ctx, claim, evidence)

	record := TrustScoreRecord{
		ID:                 uuid.New(),
		UserID:             claim.UserID,
		Name:               claim.Name,
		Story:              claim.Story,
		FaceScore:          scores.Face.TotalScore,
		StoryScore:         scores.Narrative.Total,
		EmotionScore:       scores.Emotion,
		EngagementScore:    scores.Engagement,
		SupportingDocType:  claim.SupportingDocType,
		SupportingDocScore: scores.Document,
		AadhaarNumber:      claim.AadhaarNumber,
		PANNumber:          claim.PANNumber,
		CreatedAt:          s.now().UTC(),
	}

	record.TrustScore = trust.Compute(trust.Inputs{
		FaceScore:       record.FaceScore,
		DocumentScore:   record.SupportingDocScore,
		EmotionScore:    record.EmotionScore,
		NarrativeScore:  record.StoryScore,
		EngagementScore: record.EngagementScore,
	})
	record.FaceMatch = trust.FaceMatchAt(record.FaceScore, s.faceMatchThreshold)
	record.DocumentVerified = trust.DocumentVerified(record.SupportingDocScore)

	s.saveEvidence(ctx, &record, evidence)

	s.metrics.ObserveEvaluateLatency(time.Since(start))
	s.metrics.ObserveTrustScore(record.TrustScore)

	s.logger.InfoContext(ctx, "submission evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", record.UserID,
		"record_id", record.ID,
		"trust_score", record.TrustScore,
		"face_match", record.FaceMatch,
		"document_verified", record.DocumentVerified,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	s.auditor.Emit(ctx, audit.Event{
		UserID: record.UserID,
		Actor:  record.UserID,
		Action: audit.ActionSubmissionScored,
		Detail: fmt.Sprintf("trust score %.2f", record.TrustScore),
	})

	if err := s.store.Append(ctx, record); err != nil {
		s.metrics.IncrementSubmissions("store_error")
		return record, fmt.Errorf("persist record: %w", err)
	}

	s.metrics.IncrementSubmissions("scored")
	return record, nil
}

// runStages fans the independent verification stages out on their own
// goroutines. Each stage degrades internally, so the group never aborts a
// sibling; errgroup is used for context propagation only.
func (s *Service) runStages(ctx context.Context, claim IdentityClaim, evidence EvidenceBundle) evidenceScores {
	g, ctx := errgroup.WithContext(ctx)

	var scores evidenceScores

	g.Go(func() error {
		stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
		defer cancel()

		start := time.Now()
		scores.Face = s.faceScorer.Score(stageCtx, face.Input{
			IDImage:       evidence.IDImage.Content,
			Selfie:        evidence.Selfie.Content,
			AadhaarNumber: claim.AadhaarNumber,
			PANNumber:     claim.PANNumber,
			AadhaarScan:   evidence.AadhaarScan.Content,
			PANScan:       evidence.PANScan.Content,
			OfflineKYC:    evidence.OfflineKYC,
		})
		s.metrics.ObserveStageLatency("face", time.Since(start))
		return nil
	})

	g.Go(func() error {
		stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
		defer cancel()

		start := time.Now()
		scores.Document = s.docScorer.Score(stageCtx, evidence.SupportingDoc.Content, claim.SupportingDocType)
		s.metrics.ObserveStageLatency("document", time.Since(start))
		return nil
	})

	g.Go(func() error {
		stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
		defer cancel()

		start := time.Now()
		scores.Narrative = s.narrScorer.ScoreStory(stageCtx, claim.Story)
		scores.Emotion = s.narrScorer.DetectEmotion(stageCtx, claim.Story)
		s.metrics.ObserveStageLatency("narrative", time.Since(start))
		return nil
	})

	// Engagement is a pure text heuristic, cheap enough to run inline.
	scores.Engagement = engagement.Score(claim.Story)

	// Stages report nil even when degraded, so Wait only observes context
	// cancellation from the caller.
	_ = g.Wait()

	return scores
}

// saveEvidence writes each evidence file to durable storage and records the
// resulting paths. A failed write leaves that path empty; the score already
// incorporates the file's content, so storage is best-effort.
func (s *Service) saveEvidence(ctx context.Context, record *TrustScoreRecord, evidence EvidenceBundle) {
	save := func(kind string, file EvidenceFile, dest *string) {
		if len(file.Content) == 0 {
			return
		}
		path, err := s.fileStore.Save(ctx, record.ID.String(), kind, file.Filename, file.Content)
		if err != nil {
			s.logger.WarnContext(ctx, "evidence file save failed",
				"record_id", record.ID,
				"kind", kind,
				"error", err,
			)
			return
		}
		*dest = path
	}

	save("id", evidence.IDImage, &record.IDImagePath)
	save("selfie", evidence.Selfie, &record.SelfieImagePath)
	save("aadhaar", evidence.AadhaarScan, &record.AadhaarFilePath)
	save("pan", evidence.PANScan, &record.PANFilePath)
	save("supporting", evidence.SupportingDoc, &record.SupportingDocPath)
}

// ListRecords returns every stored record in submission order.
func (s *Service) ListRecords(ctx context.Context) ([]TrustScoreRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// GetRecord returns a single record by identifier.
func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (TrustScoreRecord, error) {
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		return TrustScoreRecord{}, err
	}
	return record, nil
}

// ApplyAdjustment sets the admin adjustment on a record and recomputes its
// trust score from the stored stage scores. The adjustment must lie in
// [-1, 1].
func (s *Service) ApplyAdjustment(ctx context.Context, id uuid.UUID, adjustment float64) (TrustScoreRecord, error) {
	if adjustment < -1 || adjustment > 1 {
		return TrustScoreRecord{}, domainerrors.New(domainerrors.CodeBadRequest, "adjustment must be between -1 and 1")
	}

	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		return TrustScoreRecord{}, err
	}

	record.AdminAdjustment = adjustment
	record.TrustScore = trust.Compute(trust.Inputs{
		FaceScore:       record.FaceScore,
		DocumentScore:   record.SupportingDocScore,
		EmotionScore:    record.EmotionScore,
		NarrativeScore:  record.StoryScore,
		EngagementScore: record.EngagementScore,
		AdminAdjustment: adjustment,
	})

	if err := s.store.UpdateAdjustment(ctx, id, adjustment, record.TrustScore); err != nil {
		return TrustScoreRecord{}, fmt.Errorf("update adjustment: %w", err)
	}

	s.logger.InfoContext(ctx, "admin adjustment applied",
		"request_id", requestcontext.RequestID(ctx),
		"record_id", id,
		"adjustment", adjustment,
		"trust_score", record.TrustScore,
		"actor", requestcontext.AdminSubject(ctx),
	)

	s.auditor.Emit(ctx, audit.Event{
		UserID: record.UserID,
		Actor:  requestcontext.AdminSubject(ctx),
		Action: audit.ActionAdjustmentApplied,
		Detail: fmt.Sprintf("adjustment %.2f, trust score %.2f", adjustment, record.TrustScore),
	})

	return record, nil
}
