package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"jobvault/internal/api/middleware"
	"jobvault/internal/database"
	"jobvault/internal/pdf"
	"jobvault/internal/resume"
	"jobvault/internal/service"
	"jobvault/internal/storage"
	"jobvault/internal/tasks"
)

const downloadLinkTTL = 15 * time.Minute

// ExportHandler serves the resume export pipeline: record creation, the
// synchronous PDF download, the async enqueue, and presigned download links.
type ExportHandler struct {
	resumes    *service.ResumeService
	exports    *service.ExportService
	asynq      *asynq.Client
	storage    *storage.Client
	rasterizer pdf.Rasterizer
	logger     *slog.Logger
	debug      bool
}

// NewExportHandler builds the export handler.
func NewExportHandler(
	db *gorm.DB,
	asynqClient *asynq.Client,
	storageClient *storage.Client,
	rasterizer pdf.Rasterizer,
	logger *slog.Logger,
	debug bool,
) *ExportHandler {
	return &ExportHandler{
		resumes:    service.NewResumeService(db),
		exports:    service.NewExportService(db),
		asynq:      asynqClient,
		storage:    storageClient,
		rasterizer: rasterizer,
		logger:     logger,
		debug:      debug,
	}
}

type createExportRequest struct {
	ResumeID uint `json:"resume_id" binding:"required"`
}

// Create inserts the export record. The record exists before any rendering so
// every attempt leaves a durable trace.
func (h *ExportHandler) Create(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	var req createExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	export, err := h.exports.Create(c.Request.Context(), userID, req.ResumeID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}

// Download streams the export as a PDF attachment. A stored artifact is
// served as-is; otherwise the resume is rendered and rasterized on the spot.
func (h *ExportHandler) Download(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	export, err := h.exports.Get(ctx, userID, id)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}

	if export.Status == database.ExportStatusCompleted && export.ObjectKey != "" {
		h.streamStored(c, export)
		return
	}

	layout, err := h.resumes.Layout(ctx, userID, export.ResumeID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}

	html, err := resume.RenderHTML(layout)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}

	pdfBytes, err := h.rasterizer.RasterizeHTML(html)
	if err != nil {
		middleware.LoggerFromContext(c).Error("rasterize export failed", slog.Any("error", err))
		RespondError(c, h.debug, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FilePath))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *ExportHandler) streamStored(c *gin.Context, export *database.ResumeExport) {
	obj, err := h.storage.GetObject(c.Request.Context(), export.ObjectKey)
	if err != nil {
		middleware.LoggerFromContext(c).Error("fetch stored export failed", slog.Any("error", err))
		Internal(c, "failed to fetch export")
		return
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNoSuchKey(err) {
			NotFound(c, "export artifact missing")
			return
		}
		middleware.LoggerFromContext(c).Error("read stored export failed", slog.Any("error", err))
		Internal(c, "failed to read export")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FilePath))
	c.Data(http.StatusOK, "application/pdf", data)
}

// EnqueueAsync hands the export to the background worker.
func (h *ExportHandler) EnqueueAsync(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	export, err := h.exports.Get(ctx, userID, id)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}

	task, err := tasks.NewExportGenerateTask(export.ID, middleware.GetCorrelationID(c))
	if err != nil {
		middleware.LoggerFromContext(c).Error("build export task failed", slog.Any("error", err))
		Internal(c, "failed to enqueue export")
		return
	}
	if _, err := h.asynq.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Timeout(2*time.Minute)); err != nil {
		middleware.LoggerFromContext(c).Error("enqueue export task failed", slog.Any("error", err))
		Internal(c, "failed to enqueue export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"export_id": export.ID, "status": "queued"})
}

// DownloadLink returns a presigned URL for a completed async export.
func (h *ExportHandler) DownloadLink(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	export, err := h.exports.Get(ctx, userID, id)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	if export.Status != database.ExportStatusCompleted || export.ObjectKey == "" {
		Conflict(c, "export not completed yet")
		return
	}

	url, err := h.storage.GeneratePresignedURL(ctx, export.ObjectKey, downloadLinkTTL)
	if err != nil {
		middleware.LoggerFromContext(c).Error("presign export url failed", slog.Any("error", err))
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        url,
		"expires_in": int(downloadLinkTTL.Seconds()),
	})
}
