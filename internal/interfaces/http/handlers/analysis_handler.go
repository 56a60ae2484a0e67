package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/piyushjha0409/DockAI/internal/application/analysis"
	"github.com/piyushjha0409/DockAI/internal/domain/render"
	"github.com/piyushjha0409/DockAI/pkg/errors"
	"github.com/piyushjha0409/DockAI/pkg/types/common"
	dockingdto "github.com/piyushjha0409/DockAI/pkg/types/docking"
)

// AnalysisService is the application surface the handler drives.
type AnalysisService interface {
	AnalyzeUpload(ctx context.Context, req analysis.AnalyzeRequest) (*dockingdto.AnalysisDTO, error)
	GetAnalysis(ctx context.Context, id common.ID) (*dockingdto.AnalysisDTO, error)
	GetModelData(ctx context.Context, id common.ID) (*dockingdto.ModelDataDTO, error)
	ListAnalyses(ctx context.Context, limit, offset int) ([]dockingdto.AnalysisDTO, error)
	DeleteAnalysis(ctx context.Context, id common.ID) error
	GetScenes(ctx context.Context, req analysis.SceneRequest) (*analysis.SceneResponse, error)
}

// AnalysisHandler serves the /analyses routes.
type AnalysisHandler struct {
	svc            AnalysisService
	maxUploadBytes int64
}

// NewAnalysisHandler constructs an AnalysisHandler.
func NewAnalysisHandler(svc AnalysisService, maxUploadBytes int64) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// readUpload loads one multipart file field, enforcing the size limit.
func (h *AnalysisHandler) readUpload(c *gin.Context, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, errors.InvalidParam("missing file field").WithDetail(field)
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return "", nil, errors.New(errors.ErrCodeUploadTooLarge, "uploaded file is too large").
			WithDetail(field)
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to open uploaded file")
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read uploaded file")
	}
	if h.maxUploadBytes > 0 && int64(len(data)) > h.maxUploadBytes {
		return "", nil, errors.New(errors.ErrCodeUploadTooLarge, "uploaded file is too large").
			WithDetail(field)
	}
	return fh.Filename, data, nil
}

// Create handles POST /analyses: a multipart upload with score_file and
// structure_file fields.
func (h *AnalysisHandler) Create(c *gin.Context) {
	scoreName, scoreText, err := h.readUpload(c, "score_file")
	if err != nil {
		respondError(c, err)
		return
	}
	structName, structText, err := h.readUpload(c, "structure_file")
	if err != nil {
		respondError(c, err)
		return
	}

	got, err := h.svc.AnalyzeUpload(c.Request.Context(), analysis.AnalyzeRequest{
		ScoreFilename:     scoreName,
		ScoreText:         scoreText,
		StructureFilename: structName,
		StructureText:     structText,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, got)
}

// Get handles GET /analyses/:id.
func (h *AnalysisHandler) Get(c *gin.Context) {
	got, err := h.svc.GetAnalysis(c.Request.Context(), common.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, got)
}

// GetModelData handles GET /analyses/:id/models.
func (h *AnalysisHandler) GetModelData(c *gin.Context) {
	got, err := h.svc.GetModelData(c.Request.Context(), common.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, got)
}

// List handles GET /analyses.
func (h *AnalysisHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	got, err := h.svc.ListAnalyses(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, got)
}

// Delete handles DELETE /analyses/:id.
func (h *AnalysisHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteAnalysis(c.Request.Context(), common.ID(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetScenes handles GET /analyses/:id/scenes?layout=single|grid&model=N.
func (h *AnalysisHandler) GetScenes(c *gin.Context) {
	req := analysis.SceneRequest{
		AnalysisID: common.ID(c.Param("id")),
		Layout:     render.LayoutMode(c.DefaultQuery("layout", string(render.LayoutSingle))),
	}
	if v := c.Query("model"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, errors.InvalidParam("model must be an integer").WithDetail(v))
			return
		}
		req.ModelIndex = n
	}

	got, err := h.svc.GetScenes(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, got)
}
