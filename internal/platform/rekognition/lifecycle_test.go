package rekognition

import (
	"context"
	"errors"
	"testing"

	awsrekognition "github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, mock *mockAPI) *LifecycleController {
	t.Helper()
	controller, err := NewLifecycleController(testLogger(), mock, testRekognitionConfig())
	require.NoError(t, err)
	return controller
}

func TestVersionNameFromARN(t *testing.T) {
	t.Run("extracts the version name segment", func(t *testing.T) {
		name, err := versionNameFromARN(testRekognitionConfig().ProjectVersionARN)
		require.NoError(t, err)
		assert.Equal(t, "assets.2024-01-01", name)
	})

	t.Run("rejects an ARN without a version segment", func(t *testing.T) {
		_, err := versionNameFromARN("arn:aws:rekognition:eu-west-1:123456789012:project/assets")
		assert.ErrorIs(t, err, ErrInvalidVersionARN)
	})
}

func TestEnsureRunning(t *testing.T) {
	t.Run("no-op when model is already running", func(t *testing.T) {
		mock := &mockAPI{
			DescribeFn: func(
				_ context.Context,
				_ *awsrekognition.DescribeProjectVersionsInput,
			) (*awsrekognition.DescribeProjectVersionsOutput, error) {
				return describeOutput(types.ProjectVersionStatusRunning), nil
			},
		}

		state, err := newTestController(t, mock).EnsureRunning(context.Background())

		require.NoError(t, err)
		assert.Equal(t, ModelStateRunning, state)
		assert.Equal(t, 0, mock.startCalls, "a running model must not be started again")
	})

	t.Run("no-op when model is already starting", func(t *testing.T) {
		mock := &mockAPI{
			DescribeFn: func(
				_ context.Context,
				_ *awsrekognition.DescribeProjectVersionsInput,
			) (*awsrekognition.DescribeProjectVersionsOutput, error) {
				return describeOutput(types.ProjectVersionStatusStarting), nil
			},
		}

		state, err := newTestController(t, mock).EnsureRunning(context.Background())

		require.NoError(t, err)
		assert.Equal(t, ModelStateStarting, state)
		assert.Equal(t, 0, mock.startCalls)
	})

	t.Run("starts a stopped model with minimum capacity", func(t *testing.T) {
		mock := &mockAPI{
			StartFn: func(
				_ context.Context,
				params *awsrekognition.StartProjectVersionInput,
			) (*awsrekognition.StartProjectVersionOutput, error) {
				assert.Equal(t, int32(1), *params.MinInferenceUnits)
				assert.Equal(t, testRekognitionConfig().ProjectVersionARN, *params.ProjectVersionArn)
				return &awsrekognition.StartProjectVersionOutput{
					Status: types.ProjectVersionStatusStarting,
				}, nil
			},
		}

		state, err := newTestController(t, mock).EnsureRunning(context.Background())

		require.NoError(t, err)
		assert.Equal(t, ModelStateStarting, state)
		assert.Equal(t, 1, mock.startCalls)
	})

	t.Run("describe failure is fatal and prevents a start", func(t *testing.T) {
		mock := &mockAPI{
			DescribeFn: func(
				_ context.Context,
				_ *awsrekognition.DescribeProjectVersionsInput,
			) (*awsrekognition.DescribeProjectVersionsOutput, error) {
				return nil, errors.New("AccessDeniedException")
			},
		}

		state, err := newTestController(t, mock).EnsureRunning(context.Background())

		assert.ErrorIs(t, err, ErrDescribeFailed)
		assert.Equal(t, ModelStateUnknown, state)
		assert.Equal(t, 0, mock.startCalls, "must not start when state is unknown")
	})

	t.Run("start failure surfaces as an error", func(t *testing.T) {
		mock := &mockAPI{
			StartFn: func(
				_ context.Context,
				_ *awsrekognition.StartProjectVersionInput,
			) (*awsrekognition.StartProjectVersionOutput, error) {
				return nil, errors.New("LimitExceededException")
			},
		}

		_, err := newTestController(t, mock).EnsureRunning(context.Background())

		assert.Error(t, err)
	})
}

func TestEnsureStopped(t *testing.T) {
	t.Run("stops a running model", func(t *testing.T) {
		mock := &mockAPI{
			DescribeFn: func(
				_ context.Context,
				_ *awsrekognition.DescribeProjectVersionsInput,
			) (*awsrekognition.DescribeProjectVersionsOutput, error) {
				return describeOutput(types.ProjectVersionStatusRunning), nil
			},
		}

		state := newTestController(t, mock).EnsureStopped(context.Background())

		assert.Equal(t, ModelStateStopping, state)
		assert.Equal(t, 1, mock.stopCalls)
	})

	t.Run("stops a starting model", func(t *testing.T) {
		mock := &mockAPI{
			DescribeFn: func(
				_ context.Context,
				_ *awsrekognition.DescribeProjectVersionsInput,
			) (*awsrekognition.DescribeProjectVersionsOutput, error) {
				return describeOutput(types.ProjectVersionStatusStarting), nil
			},
		}

		state := newTestController(t, mock).EnsureStopped(context.Background())

		assert.Equal(t, ModelStateStopping, state)
		assert.Equal(t, 1, mock.stopCalls)
	})

	t.Run("no-op when model is already stopped", func(t *testing.T) {
		mock := &mockAPI{
			DescribeFn: func(
				_ context.Context,
				_ *awsrekognition.DescribeProjectVersionsInput,
			) (*awsrekognition.DescribeProjectVersionsOutput, error) {
				return describeOutput(types.ProjectVersionStatusStopped), nil
			},
		}

		state := newTestController(t, mock).EnsureStopped(context.Background())

		assert.Equal(t, ModelStateStopped, state)
		assert.Equal(t, 0, mock.stopCalls, "a stopped model must not receive a stop request")
	})

	t.Run("describe failure is non-fatal and reports unknown", func(t *testing.T) {
		mock := &mockAPI{
			DescribeFn: func(
				_ context.Context,
				_ *awsrekognition.DescribeProjectVersionsInput,
			) (*awsrekognition.DescribeProjectVersionsOutput, error) {
				return nil, errors.New("InternalServerError")
			},
		}

		state := newTestController(t, mock).EnsureStopped(context.Background())

		assert.Equal(t, ModelStateUnknown, state)
		assert.Equal(t, 0, mock.stopCalls, "must not stop when state is unknown")
	})

	t.Run("stop failure is swallowed", func(t *testing.T) {
		mock := &mockAPI{
			DescribeFn: func(
				_ context.Context,
				_ *awsrekognition.DescribeProjectVersionsInput,
			) (*awsrekognition.DescribeProjectVersionsOutput, error) {
				return describeOutput(types.ProjectVersionStatusRunning), nil
			},
			StopFn: func(
				_ context.Context,
				_ *awsrekognition.StopProjectVersionInput,
			) (*awsrekognition.StopProjectVersionOutput, error) {
				return nil, errors.New("ResourceInUseException")
			},
		}

		state := newTestController(t, mock).EnsureStopped(context.Background())

		// Reported state is the pre-stop observation; the failure only logs.
		assert.Equal(t, ModelStateRunning, state)
	})

	t.Run("training states collapse to unknown and skip the stop", func(t *testing.T) {
		mock := &mockAPI{
			DescribeFn: func(
				_ context.Context,
				_ *awsrekognition.DescribeProjectVersionsInput,
			) (*awsrekognition.DescribeProjectVersionsOutput, error) {
				return describeOutput(types.ProjectVersionStatusTrainingInProgress), nil
			},
		}

		state := newTestController(t, mock).EnsureStopped(context.Background())

		assert.Equal(t, ModelStateUnknown, state)
		assert.Equal(t, 0, mock.stopCalls)
	})
}
