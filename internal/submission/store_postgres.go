package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS trust_score_records (
	id UUID PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	story TEXT NOT NULL,
	trust_score DOUBLE PRECISION NOT NULL,
	face_match BOOLEAN NOT NULL,
	document_verified BOOLEAN NOT NULL,
	face_score DOUBLE PRECISION NOT NULL,
	story_score DOUBLE PRECISION NOT NULL,
	emotion_score DOUBLE PRECISION NOT NULL,
	engagement_score DOUBLE PRECISION NOT NULL,
	admin_adjustment DOUBLE PRECISION NOT NULL,
	id_image_path TEXT NOT NULL,
	selfie_image_path TEXT NOT NULL,
	aadhaar_number TEXT NOT NULL,
	pan_number TEXT NOT NULL,
	aadhaar_file_path TEXT NOT NULL,
	pan_file_path TEXT NOT NULL,
	supporting_doc_type TEXT NOT NULL,
	supporting_doc_path TEXT NOT NULL,
	supporting_doc_score INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS trust_score_records_user_id_idx ON trust_score_records (user_id);
`

const recordColumns = `id, user_id, name, story, trust_score, face_match, document_verified,
	face_score, story_score, emotion_score, engagement_score, admin_adjustment,
	id_image_path, selfie_image_path, aadhaar_number, pan_number,
	aadhaar_file_path, pan_file_path, supporting_doc_type, supporting_doc_path,
	supporting_doc_score, created_at`

// PostgresStore persists records in a trust_score_records table. The schema
// is applied on construction so a fresh database works without a separate
// migration step.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Append(ctx context.Context, r TrustScoreRecord) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO trust_score_records (`+recordColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		r.ID, r.UserID, r.Name, r.Story, r.TrustScore, r.FaceMatch, r.DocumentVerified,
		r.FaceScore, r.StoryScore, r.EmotionScore, r.EngagementScore, r.AdminAdjustment,
		r.IDImagePath, r.SelfieImagePath, r.AadhaarNumber, r.PANNumber,
		r.AadhaarFilePath, r.PANFilePath, r.SupportingDocType, r.SupportingDocPath,
		r.SupportingDocScore, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]TrustScoreRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+recordColumns+` FROM trust_score_records ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []TrustScoreRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (TrustScoreRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM trust_score_records WHERE id = $1`, id)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return TrustScoreRecord{}, ErrNotFound
	}
	return record, err
}

func (s *PostgresStore) UpdateAdjustment(ctx context.Context, id uuid.UUID, adjustment, trustScore float64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE trust_score_records SET admin_adjustment = $2, trust_score = $3 WHERE id = $1`,
		id, adjustment, trustScore,
	)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func scanRecord(row pgx.Row) (TrustScoreRecord, error) {
	var r TrustScoreRecord
	err := row.Scan(
		&r.ID, &r.UserID, &r.Name, &r.Story, &r.TrustScore, &r.FaceMatch, &r.DocumentVerified,
		&r.FaceScore, &r.StoryScore, &r.EmotionScore, &r.EngagementScore, &r.AdminAdjustment,
		&r.IDImagePath, &r.SelfieImagePath, &r.AadhaarNumber, &r.PANNumber,
		&r.AadhaarFilePath, &r.PANFilePath, &r.SupportingDocType, &r.SupportingDocPath,
		&r.SupportingDocScore, &r.CreatedAt,
	)
	if err != nil {
		return TrustScoreRecord{}, err
	}
	return r, nil
}
