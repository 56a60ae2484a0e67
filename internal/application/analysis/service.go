// Package analysis orchestrates the upload pipeline: digest and store the raw
// files, parse them into a dataset, persist the analysis record, cache the
// dataset, and publish the completion event.
package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/piyushjha0409/DockAI/internal/config"
	"github.com/piyushjha0409/DockAI/internal/domain/docking"
	"github.com/piyushjha0409/DockAI/internal/domain/render"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/database/postgres/repositories"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/messaging/kafka"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/prometheus"
	"github.com/piyushjha0409/DockAI/pkg/errors"
	"github.com/piyushjha0409/DockAI/pkg/types/common"
	dockingdto "github.com/piyushjha0409/DockAI/pkg/types/docking"
)

// AnalysisStore is the persistence the service needs.
type AnalysisStore interface {
	Insert(ctx context.Context, a *repositories.Analysis) error
	GetByID(ctx context.Context, id common.ID) (*repositories.Analysis, error)
	List(ctx context.Context, limit, offset int) ([]repositories.Analysis, error)
	Delete(ctx context.Context, id common.ID) error
}

// UploadStore persists the raw uploaded files.
type UploadStore interface {
	Put(ctx context.Context, id common.ID, filename string, data []byte) (string, error)
	Remove(ctx context.Context, key string) error
}

// DatasetCache fronts the database for parsed datasets.
type DatasetCache interface {
	Get(ctx context.Context, id common.ID) (*dockingdto.ModelDataDTO, bool, error)
	Set(ctx context.Context, id common.ID, data *dockingdto.ModelDataDTO) error
	Delete(ctx context.Context, id common.ID) error
}

// AnalyzeRequest carries one upload pair.
type AnalyzeRequest struct {
	ScoreFilename     string
	ScoreText         []byte
	StructureFilename string
	StructureText     []byte
}

// SceneRequest selects what to render from a stored analysis.
type SceneRequest struct {
	AnalysisID common.ID
	Layout     render.LayoutMode
	ModelIndex int
}

// SceneResponse is the render-instruction payload for the viewer.
type SceneResponse struct {
	AnalysisID       common.ID         `json:"analysis_id"`
	Layout           render.LayoutMode `json:"layout"`
	ActiveModelIndex int               `json:"active_model_index"`
	Scenes           []render.Scene    `json:"scenes"`
}

// Service implements the analysis use cases.
type Service struct {
	store   AnalysisStore
	uploads UploadStore
	cache   DatasetCache
	events  kafka.Publisher
	metrics *prometheus.Metrics
	scenes  *render.SceneBuilder

	structOpts docking.StructureOptions
	log        logging.Logger
}

// NewService constructs the analysis service.  A nil events publisher falls
// back to the nop publisher; nil metrics fall back to a private registry.
func NewService(
	store AnalysisStore,
	uploads UploadStore,
	cache DatasetCache,
	events kafka.Publisher,
	metrics *prometheus.Metrics,
	cfg *config.Config,
	log logging.Logger,
) *Service {
	if events == nil {
		events = kafka.NopPublisher{}
	}
	if metrics == nil {
		metrics = prometheus.NewMetrics()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{
		store:   store,
		uploads: uploads,
		cache:   cache,
		events:  events,
		metrics: metrics,
		scenes: render.NewSceneBuilder(render.SceneOptions{
			SphereRadius: cfg.Viewer.SphereRadius,
			BondRadius:   cfg.Viewer.BondRadius,
		}, log),
		structOpts: docking.StructureOptions{
			BondMinDistance: cfg.Parser.BondMinDistance,
			BondMaxDistance: cfg.Parser.BondMaxDistance,
		},
		log: log.Named("analysis-service"),
	}
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// AnalyzeUpload runs the whole pipeline for one upload pair and returns the
// stored analysis including its parsed dataset.
func (s *Service) AnalyzeUpload(ctx context.Context, req AnalyzeRequest) (*dockingdto.AnalysisDTO, error) {
	start := time.Now()
	data, err := docking.Parse(string(req.ScoreText), string(req.StructureText), s.structOpts)
	s.metrics.ObserveParse(time.Since(start))
	if err != nil {
		if errors.IsEmptyDataset(err) {
			s.metrics.AnalysesTotal.WithLabelValues(prometheus.OutcomeEmptyDataset).Inc()
		} else {
			s.metrics.AnalysesTotal.WithLabelValues(prometheus.OutcomeParseError).Inc()
		}
		return nil, err
	}

	s.metrics.ModelsParsed.Add(float64(len(data.Models)))
	for i := range data.Models {
		if data.Models[i].Unscored() {
			s.metrics.UnscoredModels.Inc()
		}
	}

	id := common.NewID()

	scoreKey, err := s.uploads.Put(ctx, id, req.ScoreFilename, req.ScoreText)
	if err != nil {
		s.metrics.AnalysesTotal.WithLabelValues(prometheus.OutcomeStorageError).Inc()
		return nil, err
	}
	structKey, err := s.uploads.Put(ctx, id, req.StructureFilename, req.StructureText)
	if err != nil {
		s.metrics.AnalysesTotal.WithLabelValues(prometheus.OutcomeStorageError).Inc()
		return nil, err
	}

	dto := data.ToDTO()
	rawModels, err := json.Marshal(dto)
	if err != nil {
		s.metrics.AnalysesTotal.WithLabelValues(prometheus.OutcomeStorageError).Inc()
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode model data")
	}

	record := &repositories.Analysis{
		ID:                  id,
		ScoreFilename:       req.ScoreFilename,
		StructureFilename:   req.StructureFilename,
		ScoreObjectKey:      scoreKey,
		StructureObjectKey:  structKey,
		ScoreDigest:         digest(req.ScoreText),
		StructureDigest:     digest(req.StructureText),
		BestBindingAffinity: data.Summary.BestBindingAffinity,
		ModelCount:          data.Summary.ModelCount,
		ModelData:           rawModels,
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, record); err != nil {
		s.metrics.AnalysesTotal.WithLabelValues(prometheus.OutcomeStorageError).Inc()
		return nil, err
	}

	// Cache and event failures do not fail the request; the record of truth
	// is already persisted.
	if err := s.cache.Set(ctx, id, &dto); err != nil {
		s.log.Warn("failed to cache dataset", logging.String("id", string(id)), logging.Err(err))
	}
	if err := s.events.PublishAnalysisCompleted(ctx, kafka.AnalysisCompletedPayload{
		AnalysisID:          id,
		ScoreFilename:       req.ScoreFilename,
		StructureFilename:   req.StructureFilename,
		BestBindingAffinity: record.BestBindingAffinity,
		ModelCount:          record.ModelCount,
	}); err != nil {
		s.log.Warn("failed to publish completion event", logging.String("id", string(id)), logging.Err(err))
	}

	s.metrics.AnalysesTotal.WithLabelValues(prometheus.OutcomeOK).Inc()
	s.log.Info("analysis stored",
		logging.String("id", string(id)),
		logging.Int("models", record.ModelCount),
		logging.Float64("best_affinity", record.BestBindingAffinity),
	)
	return toAnalysisDTO(record, &dto), nil
}

// GetAnalysis returns one analysis including its parsed dataset.
func (s *Service) GetAnalysis(ctx context.Context, id common.ID) (*dockingdto.AnalysisDTO, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.datasetFor(ctx, record)
	if err != nil {
		return nil, err
	}
	return toAnalysisDTO(record, data), nil
}

// GetModelData returns the parsed dataset for one analysis, served from cache
// when possible.
func (s *Service) GetModelData(ctx context.Context, id common.ID) (*dockingdto.ModelDataDTO, error) {
	if data, hit, err := s.cache.Get(ctx, id); err == nil && hit {
		s.metrics.CacheHits.WithLabelValues("hit").Inc()
		return data, nil
	} else if err != nil {
		s.log.Warn("cache lookup failed", logging.String("id", string(id)), logging.Err(err))
	}
	s.metrics.CacheHits.WithLabelValues("miss").Inc()

	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.datasetFor(ctx, record)
}

// datasetFor decodes the record's stored dataset and refreshes the cache.
func (s *Service) datasetFor(ctx context.Context, record *repositories.Analysis) (*dockingdto.ModelDataDTO, error) {
	var data dockingdto.ModelDataDTO
	if err := json.Unmarshal(record.ModelData, &data); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "stored model data is corrupt").
			WithDetail(string(record.ID))
	}
	if err := s.cache.Set(ctx, record.ID, &data); err != nil {
		s.log.Warn("failed to refresh cache", logging.String("id", string(record.ID)), logging.Err(err))
	}
	return &data, nil
}

// ListAnalyses returns recent analyses without their datasets, newest first.
func (s *Service) ListAnalyses(ctx context.Context, limit, offset int) ([]dockingdto.AnalysisDTO, error) {
	records, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dockingdto.AnalysisDTO, 0, len(records))
	for i := range records {
		out = append(out, *toAnalysisDTO(&records[i], nil))
	}
	return out, nil
}

// DeleteAnalysis removes the record, its cached dataset, and the raw files.
func (s *Service) DeleteAnalysis(ctx context.Context, id common.ID) error {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn("failed to evict cached dataset", logging.String("id", string(id)), logging.Err(err))
	}
	for _, key := range []string{record.ScoreObjectKey, record.StructureObjectKey} {
		if key == "" {
			continue
		}
		if err := s.uploads.Remove(ctx, key); err != nil {
			s.log.Warn("failed to remove stored upload", logging.String("key", key), logging.Err(err))
		}
	}
	return nil
}

// GetScenes builds the render instructions for one analysis.  Single layout
// yields the active pose only; grid yields every pose, all colored against
// the same dataset-wide affinity range.
func (s *Service) GetScenes(ctx context.Context, req SceneRequest) (*SceneResponse, error) {
	dto, err := s.GetModelData(ctx, req.AnalysisID)
	if err != nil {
		return nil, err
	}
	data := docking.FromDTO(*dto)

	vs := render.NewViewState(len(data.Models))
	vs.SetLayoutMode(req.Layout)
	vs.SelectModel(req.ModelIndex)

	resp := &SceneResponse{
		AnalysisID:       req.AnalysisID,
		Layout:           vs.LayoutMode(),
		ActiveModelIndex: vs.ActiveModelIndex(),
	}
	if vs.LayoutMode() == render.LayoutGrid {
		resp.Scenes = s.scenes.BuildAll(data)
		return resp, nil
	}
	if len(data.Models) == 0 {
		return nil, errors.New(errors.ErrCodeModelOutOfRange, "analysis has no models").
			WithDetail(string(req.AnalysisID))
	}
	minA, maxA, ok := data.AffinityRange()
	if !ok {
		minA, maxA = 0, 0
	}
	resp.Scenes = []render.Scene{
		s.scenes.Build(&data.Models[vs.ActiveModelIndex()], minA, maxA),
	}
	return resp, nil
}

func toAnalysisDTO(record *repositories.Analysis, data *dockingdto.ModelDataDTO) *dockingdto.AnalysisDTO {
	return &dockingdto.AnalysisDTO{
		ID:                    string(record.ID),
		ScoreFilename:         record.ScoreFilename,
		StructureFilename:     record.StructureFilename,
		ScoreObjectKey:        record.ScoreObjectKey,
		StructureObjectKey:    record.StructureObjectKey,
		ScoreDigestSHA256:     record.ScoreDigest,
		StructureDigestSHA256: record.StructureDigest,
		BestBindingAffinity:   record.BestBindingAffinity,
		ModelCount:            record.ModelCount,
		CreatedAt:             record.CreatedAt.UTC().Format(time.RFC3339),
		ModelData:             data,
	}
}
