package rekognition

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
)

// API is the subset of the Rekognition client surface used by this package.
// The real *rekognition.Client satisfies it; tests substitute fakes.
type API interface {
	DetectCustomLabels(
		ctx context.Context,
		params *rekognition.DetectCustomLabelsInput,
		optFns ...func(*rekognition.Options),
	) (*rekognition.DetectCustomLabelsOutput, error)

	DescribeProjectVersions(
		ctx context.Context,
		params *rekognition.DescribeProjectVersionsInput,
		optFns ...func(*rekognition.Options),
	) (*rekognition.DescribeProjectVersionsOutput, error)

	StartProjectVersion(
		ctx context.Context,
		params *rekognition.StartProjectVersionInput,
		optFns ...func(*rekognition.Options),
	) (*rekognition.StartProjectVersionOutput, error)

	StopProjectVersion(
		ctx context.Context,
		params *rekognition.StopProjectVersionInput,
		optFns ...func(*rekognition.Options),
	) (*rekognition.StopProjectVersionOutput, error)
}

// versionNameFromARN extracts the model version name from a project version
// ARN. The ARN has the form
// arn:...:project/<project>/version/<version-name>/<timestamp>, so the
// version name is the fourth slash-separated segment.
func versionNameFromARN(arn string) (string, error) {
	parts := strings.Split(arn, "/")
	if len(parts) < 4 || parts[3] == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersionARN, arn)
	}
	return parts[3], nil
}
