// Package repositories contains the PostgreSQL persistence layer for DockAI
// analyses.  Each repository takes a narrow DB interface satisfied by
// *pgxpool.Pool so tests can substitute fakes.
package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/pkg/errors"
	"github.com/piyushjha0409/DockAI/pkg/types/common"
)

// DB is the subset of pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Analysis is the persisted record of one processed upload pair.  ModelData
// holds the parsed dataset as JSON and is loaded only on single-record reads.
type Analysis struct {
	ID                  common.ID
	ScoreFilename       string
	StructureFilename   string
	ScoreObjectKey      string
	StructureObjectKey  string
	ScoreDigest         string
	StructureDigest     string
	BestBindingAffinity float64
	ModelCount          int
	ModelData           []byte
	CreatedAt           time.Time
}

// AnalysisRepository persists and retrieves Analysis records.
type AnalysisRepository struct {
	db  DB
	log logging.Logger
}

// NewAnalysisRepository constructs an AnalysisRepository.
func NewAnalysisRepository(db DB, log logging.Logger) *AnalysisRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AnalysisRepository{db: db, log: log.Named("analysis-repo")}
}

const insertAnalysisSQL = `
INSERT INTO analyses (
    id, score_filename, structure_filename,
    score_object_key, structure_object_key,
    score_digest, structure_digest,
    best_binding_affinity, model_count, model_data, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Insert stores a new analysis record.
func (r *AnalysisRepository) Insert(ctx context.Context, a *Analysis) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, insertAnalysisSQL,
		string(a.ID), a.ScoreFilename, a.StructureFilename,
		a.ScoreObjectKey, a.StructureObjectKey,
		a.ScoreDigest, a.StructureDigest,
		a.BestBindingAffinity, a.ModelCount, a.ModelData, a.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert analysis")
	}
	r.log.Debug("analysis inserted", logging.String("id", string(a.ID)))
	return nil
}

const selectAnalysisSQL = `
SELECT id, score_filename, structure_filename,
       score_object_key, structure_object_key,
       score_digest, structure_digest,
       best_binding_affinity, model_count, model_data, created_at
FROM analyses WHERE id = $1`

// GetByID loads one analysis including its model data.  A missing record
// yields ErrCodeAnalysisNotFound.
func (r *AnalysisRepository) GetByID(ctx context.Context, id common.ID) (*Analysis, error) {
	var a Analysis
	var rawID string
	err := r.db.QueryRow(ctx, selectAnalysisSQL, string(id)).Scan(
		&rawID, &a.ScoreFilename, &a.StructureFilename,
		&a.ScoreObjectKey, &a.StructureObjectKey,
		&a.ScoreDigest, &a.StructureDigest,
		&a.BestBindingAffinity, &a.ModelCount, &a.ModelData, &a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New(errors.ErrCodeAnalysisNotFound, "analysis not found").
				WithDetail(string(id))
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load analysis")
	}
	a.ID = common.ID(rawID)
	return &a, nil
}

const listAnalysesSQL = `
SELECT id, score_filename, structure_filename,
       score_object_key, structure_object_key,
       score_digest, structure_digest,
       best_binding_affinity, model_count, created_at
FROM analyses ORDER BY created_at DESC LIMIT $1 OFFSET $2`

// List returns recent analyses without their model data, newest first.
func (r *AnalysisRepository) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, listAnalysesSQL, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list analyses")
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var a Analysis
		var rawID string
		if err := rows.Scan(
			&rawID, &a.ScoreFilename, &a.StructureFilename,
			&a.ScoreObjectKey, &a.StructureObjectKey,
			&a.ScoreDigest, &a.StructureDigest,
			&a.BestBindingAffinity, &a.ModelCount, &a.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan analysis row")
		}
		a.ID = common.ID(rawID)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "analysis row iteration failed")
	}
	return out, nil
}

const deleteAnalysisSQL = `DELETE FROM analyses WHERE id = $1`

// Delete removes an analysis record.  Deleting a missing record yields
// ErrCodeAnalysisNotFound.
func (r *AnalysisRepository) Delete(ctx context.Context, id common.ID) error {
	tag, err := r.db.Exec(ctx, deleteAnalysisSQL, string(id))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete analysis")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeAnalysisNotFound, "analysis not found").
			WithDetail(string(id))
	}
	r.log.Debug("analysis deleted", logging.String("id", string(id)))
	return nil
}
