// Package bridge invokes SageMaker-hosted inference endpoints with tabular
// input and returns tabular results, mirroring the one-call "fast inference"
// pattern: serialize rows to CSV, invoke the endpoint, parse the CSV
// response back into a table.
package bridge

import (
	"bytes"
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/aws/smithy-go"

	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// Validation errors for caller input.
var (
	ErrEmptyEndpointName = errors.New("endpoint name is required")
	ErrEmptyTable        = errors.New("input table must have at least one row")
)

// RuntimeAPI is the slice of the SageMaker runtime client the bridge uses.
type RuntimeAPI interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// MetadataAPI is the slice of the SageMaker control-plane client the bridge
// uses for endpoint metadata.
type MetadataAPI interface {
	DescribeEndpoint(ctx context.Context, params *sagemaker.DescribeEndpointInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeEndpointOutput, error)
	ListEndpoints(ctx context.Context, params *sagemaker.ListEndpointsInput, optFns ...func(*sagemaker.Options)) (*sagemaker.ListEndpointsOutput, error)
}

// Client is the inference bridge. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	runtime  RuntimeAPI
	metadata MetadataAPI
}

// New creates a bridge client from an AWS config. Credentials come from the
// SDK's default resolution chain.
func New(cfg aws.Config) *Client {
	return &Client{
		runtime:  sagemakerruntime.NewFromConfig(cfg),
		metadata: sagemaker.NewFromConfig(cfg),
	}
}

// NewWithAPIs creates a bridge client over explicit API implementations.
func NewWithAPIs(runtime RuntimeAPI, metadata MetadataAPI) *Client {
	return &Client{runtime: runtime, metadata: metadata}
}

// FastInference runs inference on the endpoint with the given table and
// returns the prediction table. The output rows align 1:1 with the input
// rows. Failures are classified as *RemoteServiceError, *SerializationError,
// or ErrRowMismatch.
func (c *Client) FastInference(ctx context.Context, endpointName string, tbl *table.Table, opts ...Option) (*table.Table, error) {
	if endpointName == "" {
		return nil, ErrEmptyEndpointName
	}
	if tbl == nil || tbl.IsEmpty() {
		return nil, ErrEmptyTable
	}

	o := defaultInvokeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	batch := o.batchSize
	if batch <= 0 || batch > tbl.NumRows() {
		batch = tbl.NumRows()
	}

	var out *table.Table
	for start := 0; start < tbl.NumRows(); start += batch {
		end := start + batch
		if end > tbl.NumRows() {
			end = tbl.NumRows()
		}
		part, err := c.invokeOnce(ctx, endpointName, tbl.Slice(start, end), o)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = part
		} else if err := out.Concat(part); err != nil {
			return nil, &SerializationError{Op: "decode", Err: err}
		}
	}
	return out, nil
}

func (c *Client) invokeOnce(ctx context.Context, endpointName string, part *table.Table, o invokeOptions) (*table.Table, error) {
	var buf bytes.Buffer
	if err := part.EncodeCSV(&buf); err != nil {
		return nil, &SerializationError{Op: "encode", Err: err}
	}

	input := &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(endpointName),
		Body:         buf.Bytes(),
		ContentType:  aws.String(o.contentType),
		Accept:       aws.String(o.accept),
	}
	if o.targetVariant != "" {
		input.TargetVariant = aws.String(o.targetVariant)
	}

	var resp *sagemakerruntime.InvokeEndpointOutput
	call := func() error {
		var err error
		resp, err = c.runtime.InvokeEndpoint(ctx, input)
		if err != nil {
			return remoteError(endpointName, err)
		}
		return nil
	}

	var err error
	if o.retryAttempts > 1 {
		err = retry.Do(call,
			retry.Attempts(o.retryAttempts),
			retry.Delay(o.retryDelay),
			retry.Context(ctx),
			retry.LastErrorOnly(true),
			retry.RetryIf(isTransient),
		)
	} else {
		err = call()
	}
	if err != nil {
		return nil, err
	}

	decoded, err := table.DecodeCSV(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, &SerializationError{Op: "decode", Err: err}
	}
	if decoded.NumRows() != part.NumRows() {
		return nil, ErrRowMismatch
	}
	return decoded, nil
}

// transientCodes are the runtime error codes worth retrying. Model errors
// and validation errors repeat deterministically and are excluded.
var transientCodes = map[string]bool{
	"ThrottlingException":         true,
	"TooManyRequestsException":    true,
	"ServiceUnavailable":          true,
	"ServiceUnavailableException": true,
	"InternalFailure":             true,
	"InternalDependencyException": true,
	"RequestTimeout":              true,
	"RequestTimeoutException":     true,
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var remoteErr *RemoteServiceError
	if errors.As(err, &remoteErr) {
		// An empty code means the request never reached the service.
		return remoteErr.Code == "" || transientCodes[remoteErr.Code]
	}
	return false
}

func remoteError(endpoint string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &RemoteServiceError{Endpoint: endpoint, Code: apiErr.ErrorCode(), Err: err}
	}
	return &RemoteServiceError{Endpoint: endpoint, Err: err}
}
