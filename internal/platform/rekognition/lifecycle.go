package rekognition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/assetflow/labelworker/internal/config"
)

// ModelState is the lifecycle state of the detection model, derived fresh
// from a status query on every call. It is never cached between calls.
type ModelState string

// Possible model states. States the backend reports that do not map to one
// of the first four (training, failure variants) collapse to unknown.
const (
	ModelStateStopped  ModelState = "STOPPED"
	ModelStateStarting ModelState = "STARTING"
	ModelStateRunning  ModelState = "RUNNING"
	ModelStateStopping ModelState = "STOPPING"
	ModelStateUnknown  ModelState = "UNKNOWN"
)

// minInferenceUnits is the fixed capacity requested when starting the model.
// One unit is the cheapest configuration that serves this pipeline.
const minInferenceUnits int32 = 1

// modelStateFromStatus maps the backend's project version status to a
// ModelState.
func modelStateFromStatus(status types.ProjectVersionStatus) ModelState {
	switch status {
	case types.ProjectVersionStatusStopped:
		return ModelStateStopped
	case types.ProjectVersionStatusStarting:
		return ModelStateStarting
	case types.ProjectVersionStatusRunning:
		return ModelStateRunning
	case types.ProjectVersionStatusStopping:
		return ModelStateStopping
	default:
		return ModelStateUnknown
	}
}

// LifecycleController starts and stops the pay-per-use detection model.
// It holds no state between calls: every decision is guarded by a fresh
// describe of the remote model, which keeps both operations idempotent.
type LifecycleController struct {
	logger *slog.Logger
	client API
	config config.RekognitionConfig
}

// NewLifecycleController creates a LifecycleController with the provided
// dependencies.
func NewLifecycleController(
	logger *slog.Logger,
	client API,
	cfg config.RekognitionConfig,
) (*LifecycleController, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if client == nil {
		return nil, errors.New("rekognition client cannot be nil")
	}
	if cfg.ProjectARN == "" {
		return nil, errors.New("project ARN cannot be empty")
	}
	if _, err := versionNameFromARN(cfg.ProjectVersionARN); err != nil {
		return nil, err
	}

	return &LifecycleController{
		logger: logger.With("component", "model_lifecycle"),
		client: client,
		config: cfg,
	}, nil
}

// describeState queries the current model state from the backend.
func (c *LifecycleController) describeState(ctx context.Context) (ModelState, error) {
	versionName, err := versionNameFromARN(c.config.ProjectVersionARN)
	if err != nil {
		return ModelStateUnknown, err
	}

	out, err := c.client.DescribeProjectVersions(ctx, &rekognition.DescribeProjectVersionsInput{
		ProjectArn:   aws.String(c.config.ProjectARN),
		VersionNames: []string{versionName},
	})
	if err != nil {
		return ModelStateUnknown, fmt.Errorf("%w: %v", ErrDescribeFailed, err)
	}
	if len(out.ProjectVersionDescriptions) == 0 {
		return ModelStateUnknown, fmt.Errorf("%w: version %q not found", ErrDescribeFailed, versionName)
	}

	return modelStateFromStatus(out.ProjectVersionDescriptions[0].Status), nil
}

// EnsureRunning makes sure the model is running or on its way up.
//
// If the model is already RUNNING or STARTING the call is a no-op and
// returns the observed state. Otherwise a start request with the fixed
// minimum capacity is issued. A failed status query is returned as an
// error: without knowing the current state it is not safe to start a
// billed resource.
func (c *LifecycleController) EnsureRunning(ctx context.Context) (ModelState, error) {
	state, err := c.describeState(ctx)
	if err != nil {
		return ModelStateUnknown, err
	}

	if state == ModelStateRunning || state == ModelStateStarting {
		c.logger.Info("model already available, start skipped", "state", string(state))
		return state, nil
	}

	c.logger.Info("starting model", "state", string(state))
	_, err = c.client.StartProjectVersion(ctx, &rekognition.StartProjectVersionInput{
		ProjectVersionArn: aws.String(c.config.ProjectVersionARN),
		MinInferenceUnits: aws.Int32(minInferenceUnits),
	})
	if err != nil {
		return state, fmt.Errorf("failed to start model: %w", err)
	}

	return ModelStateStarting, nil
}

// EnsureStopped stops the model if it is RUNNING or STARTING.
//
// Unlike EnsureRunning, nothing here is fatal: a failed status query is
// logged and reported as UNKNOWN without issuing a stop, and a failed stop
// request is logged and swallowed. A stop attempt must never block the
// end-of-run notification that follows it.
func (c *LifecycleController) EnsureStopped(ctx context.Context) ModelState {
	state, err := c.describeState(ctx)
	if err != nil {
		c.logger.Error("could not determine model state, stop skipped", "error", err)
		return ModelStateUnknown
	}

	if state != ModelStateRunning && state != ModelStateStarting {
		c.logger.Info("model not running, stop skipped", "state", string(state))
		return state
	}

	if _, err := c.client.StopProjectVersion(ctx, &rekognition.StopProjectVersionInput{
		ProjectVersionArn: aws.String(c.config.ProjectVersionARN),
	}); err != nil {
		c.logger.Error("failed to stop model", "state", string(state), "error", err)
		return state
	}

	c.logger.Info("model stop requested", "previous_state", string(state))
	return ModelStateStopping
}
