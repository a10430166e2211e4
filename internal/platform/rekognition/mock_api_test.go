package rekognition

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsrekognition "github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// mockAPI implements the API interface for testing. Each operation can be
// overridden per test; call counts are recorded for asserting no-op paths.
type mockAPI struct {
	DetectFn func(
		ctx context.Context,
		params *awsrekognition.DetectCustomLabelsInput,
	) (*awsrekognition.DetectCustomLabelsOutput, error)
	DescribeFn func(
		ctx context.Context,
		params *awsrekognition.DescribeProjectVersionsInput,
	) (*awsrekognition.DescribeProjectVersionsOutput, error)
	StartFn func(
		ctx context.Context,
		params *awsrekognition.StartProjectVersionInput,
	) (*awsrekognition.StartProjectVersionOutput, error)
	StopFn func(
		ctx context.Context,
		params *awsrekognition.StopProjectVersionInput,
	) (*awsrekognition.StopProjectVersionOutput, error)

	detectCalls   int
	describeCalls int
	startCalls    int
	stopCalls     int
}

func (m *mockAPI) DetectCustomLabels(
	ctx context.Context,
	params *awsrekognition.DetectCustomLabelsInput,
	_ ...func(*awsrekognition.Options),
) (*awsrekognition.DetectCustomLabelsOutput, error) {
	m.detectCalls++
	if m.DetectFn != nil {
		return m.DetectFn(ctx, params)
	}
	return &awsrekognition.DetectCustomLabelsOutput{}, nil
}

func (m *mockAPI) DescribeProjectVersions(
	ctx context.Context,
	params *awsrekognition.DescribeProjectVersionsInput,
	_ ...func(*awsrekognition.Options),
) (*awsrekognition.DescribeProjectVersionsOutput, error) {
	m.describeCalls++
	if m.DescribeFn != nil {
		return m.DescribeFn(ctx, params)
	}
	return describeOutput(types.ProjectVersionStatusStopped), nil
}

func (m *mockAPI) StartProjectVersion(
	ctx context.Context,
	params *awsrekognition.StartProjectVersionInput,
	_ ...func(*awsrekognition.Options),
) (*awsrekognition.StartProjectVersionOutput, error) {
	m.startCalls++
	if m.StartFn != nil {
		return m.StartFn(ctx, params)
	}
	return &awsrekognition.StartProjectVersionOutput{
		Status: types.ProjectVersionStatusStarting,
	}, nil
}

func (m *mockAPI) StopProjectVersion(
	ctx context.Context,
	params *awsrekognition.StopProjectVersionInput,
	_ ...func(*awsrekognition.Options),
) (*awsrekognition.StopProjectVersionOutput, error) {
	m.stopCalls++
	if m.StopFn != nil {
		return m.StopFn(ctx, params)
	}
	return &awsrekognition.StopProjectVersionOutput{
		Status: types.ProjectVersionStatusStopping,
	}, nil
}

// describeOutput builds a single-version describe response with the given status.
func describeOutput(status types.ProjectVersionStatus) *awsrekognition.DescribeProjectVersionsOutput {
	return &awsrekognition.DescribeProjectVersionsOutput{
		ProjectVersionDescriptions: []types.ProjectVersionDescription{
			{Status: status},
		},
	}
}

// customLabels builds a detect response from label names.
func customLabels(names ...string) *awsrekognition.DetectCustomLabelsOutput {
	labels := make([]types.CustomLabel, 0, len(names))
	for _, name := range names {
		labels = append(labels, types.CustomLabel{Name: aws.String(name)})
	}
	return &awsrekognition.DetectCustomLabelsOutput{CustomLabels: labels}
}
