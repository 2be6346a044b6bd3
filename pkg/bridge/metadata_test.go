package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMetadata struct {
	describe func(ctx context.Context, in *sagemaker.DescribeEndpointInput) (*sagemaker.DescribeEndpointOutput, error)
	list     func(ctx context.Context, in *sagemaker.ListEndpointsInput) (*sagemaker.ListEndpointsOutput, error)
}

func (f *fakeMetadata) DescribeEndpoint(ctx context.Context, in *sagemaker.DescribeEndpointInput, _ ...func(*sagemaker.Options)) (*sagemaker.DescribeEndpointOutput, error) {
	return f.describe(ctx, in)
}

func (f *fakeMetadata) ListEndpoints(ctx context.Context, in *sagemaker.ListEndpointsInput, _ ...func(*sagemaker.Options)) (*sagemaker.ListEndpointsOutput, error) {
	return f.list(ctx, in)
}

func TestDescribeEndpointMapsFields(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	modified := created.Add(time.Hour)
	md := &fakeMetadata{describe: func(_ context.Context, in *sagemaker.DescribeEndpointInput) (*sagemaker.DescribeEndpointOutput, error) {
		assert.Equal(t, "abalone-prod", *in.EndpointName)
		return &sagemaker.DescribeEndpointOutput{
			EndpointName:       aws.String("abalone-prod"),
			EndpointArn:        aws.String("arn:aws:sagemaker:us-east-1:123456789012:endpoint/abalone-prod"),
			EndpointStatus:     types.EndpointStatusInService,
			EndpointConfigName: aws.String("abalone-prod-config"),
			CreationTime:       aws.Time(created),
			LastModifiedTime:   aws.Time(modified),
		}, nil
	}}
	c := NewWithAPIs(nil, md)

	info, err := c.DescribeEndpoint(context.Background(), "abalone-prod")
	require.NoError(t, err)
	assert.Equal(t, "abalone-prod", info.Name)
	assert.Equal(t, "InService", info.Status)
	assert.Equal(t, "abalone-prod-config", info.ConfigName)
	assert.Equal(t, created, info.CreatedAt)
	assert.Equal(t, modified, info.ModifiedAt)
}

func TestDescribeEndpointNotFound(t *testing.T) {
	md := &fakeMetadata{describe: func(context.Context, *sagemaker.DescribeEndpointInput) (*sagemaker.DescribeEndpointOutput, error) {
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "Could not find endpoint"}
	}}
	c := NewWithAPIs(nil, md)

	_, err := c.DescribeEndpoint(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEndpointNotFound)
}

func TestDescribeEndpointRequiresName(t *testing.T) {
	c := NewWithAPIs(nil, &fakeMetadata{})
	_, err := c.DescribeEndpoint(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyEndpointName)
}

func TestEndpointExists(t *testing.T) {
	md := &fakeMetadata{describe: func(_ context.Context, in *sagemaker.DescribeEndpointInput) (*sagemaker.DescribeEndpointOutput, error) {
		if *in.EndpointName == "abalone-prod" {
			return &sagemaker.DescribeEndpointOutput{EndpointName: in.EndpointName}, nil
		}
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "Could not find endpoint"}
	}}
	c := NewWithAPIs(nil, md)

	exists, err := c.EndpointExists(context.Background(), "abalone-prod")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.EndpointExists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEndpointExistsPropagatesRemoteFailure(t *testing.T) {
	md := &fakeMetadata{describe: func(context.Context, *sagemaker.DescribeEndpointInput) (*sagemaker.DescribeEndpointOutput, error) {
		return nil, &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized"}
	}}
	c := NewWithAPIs(nil, md)

	_, err := c.EndpointExists(context.Background(), "abalone-prod")
	var remoteErr *RemoteServiceError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "AccessDeniedException", remoteErr.Code)
}

func TestListEndpointsFollowsPagination(t *testing.T) {
	pages := 0
	md := &fakeMetadata{list: func(_ context.Context, in *sagemaker.ListEndpointsInput) (*sagemaker.ListEndpointsOutput, error) {
		pages++
		if in.NextToken == nil {
			return &sagemaker.ListEndpointsOutput{
				Endpoints: []types.EndpointSummary{
					{EndpointName: aws.String("abalone-prod"), EndpointStatus: types.EndpointStatusInService},
				},
				NextToken: aws.String("page-2"),
			}, nil
		}
		require.Equal(t, "page-2", *in.NextToken)
		return &sagemaker.ListEndpointsOutput{
			Endpoints: []types.EndpointSummary{
				{EndpointName: aws.String("abalone-staging"), EndpointStatus: types.EndpointStatusCreating},
			},
		}, nil
	}}
	c := NewWithAPIs(nil, md)

	endpoints, err := c.ListEndpoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "abalone-prod", endpoints[0].Name)
	assert.Equal(t, "abalone-staging", endpoints[1].Name)
	assert.Equal(t, "Creating", endpoints[1].Status)
}
