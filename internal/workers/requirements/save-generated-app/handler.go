// internal/workers/requirements/save-generated-app/handler.go
package savegeneratedapp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "requirement-extractor/internal/common/errors"
	"requirement-extractor/internal/common/logger"
	"requirement-extractor/internal/common/metrics"
	"requirement-extractor/internal/common/observability"
	"requirement-extractor/internal/models"
	"requirement-extractor/internal/store/apps"
)

const (
	TaskType = "save-generated-app"
)

type AppStore interface {
	Save(ctx context.Context, req models.SaveAppRequest) (*models.GeneratedApp, error)
}

type Indexer interface {
	Index(ctx context.Context, app *models.GeneratedApp) error
}

type Handler struct {
	config  *Config
	store   AppStore
	indexer Indexer
	errors  *commonerrors.ErrorHandler
	obs     *observability.Observability
	logger  logger.Logger
}

// NewHandler builds the handler. indexer may be nil when search is disabled.
func NewHandler(config *Config, store AppStore, indexer Indexer, obs *observability.Observability, log logger.Logger) *Handler {
	if config == nil || config.Timeout <= 0 {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		store:   store,
		indexer: indexer,
		errors:  commonerrors.NewErrorHandler(log),
		obs:     obs,
		logger:  log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, fmt.Errorf("%w: parse variables: %v", apps.ErrInvalidApp, err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	app, err := h.store.Save(ctx, models.SaveAppRequest{
		AppName:     input.AppName,
		Description: input.Description,
		Entities:    input.Entities,
		Roles:       input.Roles,
		Features:    input.Features,
		Status:      input.Status,
		Metadata:    input.Metadata,
	})
	if err != nil {
		return nil, err
	}

	// Index failures never fail the job; the app is already stored.
	if h.indexer != nil {
		if err := h.indexer.Index(ctx, app); err != nil {
			h.logger.Warn("search index update failed", map[string]interface{}{
				"appId": app.ID,
				"error": err.Error(),
			})
		}
	}

	h.logger.Info("generated app saved", map[string]interface{}{
		"appId":   app.ID,
		"appName": app.AppName,
	})

	return &Output{
		AppID:     app.ID,
		AppName:   app.AppName,
		Status:    app.Status,
		CreatedAt: app.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
		"appId":  output.AppID,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := commonerrors.FromAppStoreError(err)

	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")

	h.errors.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
