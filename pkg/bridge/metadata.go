package bridge

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/smithy-go"
)

// EndpointInfo is the metadata the bridge exposes about a deployed endpoint.
type EndpointInfo struct {
	Name          string    `json:"name"`
	ARN           string    `json:"arn,omitempty"`
	Status        string    `json:"status"`
	ConfigName    string    `json:"config_name,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ModifiedAt    time.Time `json:"modified_at"`
}

// DescribeEndpoint returns metadata for a deployed endpoint, or
// ErrEndpointNotFound when the platform has no endpoint with that name.
func (c *Client) DescribeEndpoint(ctx context.Context, name string) (*EndpointInfo, error) {
	if name == "" {
		return nil, ErrEmptyEndpointName
	}
	out, err := c.metadata.DescribeEndpoint(ctx, &sagemaker.DescribeEndpointInput{
		EndpointName: aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEndpointNotFound
		}
		return nil, remoteError(name, err)
	}
	return &EndpointInfo{
		Name:          aws.ToString(out.EndpointName),
		ARN:           aws.ToString(out.EndpointArn),
		Status:        string(out.EndpointStatus),
		ConfigName:    aws.ToString(out.EndpointConfigName),
		FailureReason: aws.ToString(out.FailureReason),
		CreatedAt:     aws.ToTime(out.CreationTime),
		ModifiedAt:    aws.ToTime(out.LastModifiedTime),
	}, nil
}

// EndpointExists reports whether the endpoint exists. A not-found answer
// from the platform is a regular false, not an error.
func (c *Client) EndpointExists(ctx context.Context, name string) (bool, error) {
	_, err := c.DescribeEndpoint(ctx, name)
	if err != nil {
		if errors.Is(err, ErrEndpointNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListEndpoints returns metadata for all endpoints visible to the caller,
// following pagination to the end.
func (c *Client) ListEndpoints(ctx context.Context) ([]EndpointInfo, error) {
	var endpoints []EndpointInfo
	var nextToken *string
	for {
		out, err := c.metadata.ListEndpoints(ctx, &sagemaker.ListEndpointsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, remoteError("", err)
		}
		for _, ep := range out.Endpoints {
			endpoints = append(endpoints, EndpointInfo{
				Name:       aws.ToString(ep.EndpointName),
				ARN:        aws.ToString(ep.EndpointArn),
				Status:     string(ep.EndpointStatus),
				CreatedAt:  aws.ToTime(ep.CreationTime),
				ModifiedAt: aws.ToTime(ep.LastModifiedTime),
			})
		}
		if out.NextToken == nil {
			return endpoints, nil
		}
		nextToken = out.NextToken
	}
}

// notFoundCodes are the AWS error codes that mean "no such resource".
// DescribeEndpoint reports a missing endpoint as a ValidationException.
var notFoundCodes = map[string]bool{
	"ValidationException":       true,
	"ResourceNotFound":          true,
	"ResourceNotFoundException": true,
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && notFoundCodes[apiErr.ErrorCode()]
}
