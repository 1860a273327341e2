package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"jobvault/internal/apperr"
	"jobvault/internal/database"
	"jobvault/internal/pdf"
	"jobvault/internal/resume"
	"jobvault/internal/service"
	"jobvault/internal/storage"
	"jobvault/internal/tasks"
)

// ExportTaskHandler consumes resume export tasks: it renders the document,
// stores the PDF, updates the export record, and notifies the owner.
type ExportTaskHandler struct {
	db         *gorm.DB
	storage    *storage.Client
	redis      *redis.Client
	logger     *slog.Logger
	resumes    *service.ResumeService
	exports    *service.ExportService
	rasterizer pdf.Rasterizer
}

// NewExportTaskHandler creates a task handler.
func NewExportTaskHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	rasterizer pdf.Rasterizer,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:         db,
		storage:    storageClient,
		redis:      redisClient,
		logger:     logger,
		resumes:    service.NewResumeService(db),
		exports:    service.NewExportService(db),
		rasterizer: rasterizer,
	}
}

// ProcessTask implements asynq.Handler.
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.ExportGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("export_id", int(payload.ExportID)),
	)
	log.Info("starting resume export task")

	export, err := h.exports.GetByID(ctx, payload.ExportID)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			log.Warn("export record not found, skipping task")
			return nil
		}
		log.Error("load export record failed", slog.Any("error", err))
		return err
	}

	var target database.Resume
	if err := h.db.WithContext(ctx).First(&target, export.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume gone, skipping export")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(target.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		if err := h.exports.MarkFailed(context.WithoutCancel(ctx), export.ID); err != nil {
			log.Error("mark export failed", slog.Any("error", err))
		}
		notify := ExportNotifyMessage{
			Status:        "error",
			ExportID:      export.ID,
			ResumeID:      export.ResumeID,
			CorrelationID: payload.CorrelationID,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, target.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	layout, err := h.resumes.Layout(ctx, target.UserID, target.ID)
	if err != nil {
		log.Error("build resume layout failed", slog.Any("error", err))
		return err
	}

	html, err := resume.RenderHTML(layout)
	if err != nil {
		log.Error("render resume html failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := h.rasterizer.RasterizeHTML(html)
	if err != nil {
		log.Error("rasterize pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("exports/%d/%s", target.UserID, export.FilePath)
	pdfReader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, pdfReader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	if err := h.exports.MarkCompleted(ctx, export.ID, objectName); err != nil {
		log.Error("mark export completed failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		ExportID:      export.ID,
		ResumeID:      export.ResumeID,
		CorrelationID: payload.CorrelationID,
	}
	if err := h.publishExportNotify(ctx, target.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("resume export task completed")
	return nil
}

func (h *ExportTaskHandler) publishExportNotify(ctx context.Context, userID uint, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redis.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
