package sagemaker

import (
	"context"
	"errors"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"

	"github.com/workbench-ml/inference-bridge/internal/config"
	"github.com/workbench-ml/inference-bridge/internal/core/domain"
	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
	"github.com/workbench-ml/inference-bridge/pkg/bridge"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

type invoker struct {
	client *bridge.Client
	opts   []bridge.Option
	cfg    config.InvokeConfig
}

// NewInvoker creates the SageMaker invoker adapter. Batching, retries and
// the per-call timeout come from config; everything else is the bridge
// defaults.
func NewInvoker(awsCfg awssdk.Config, cfg *config.InvokeConfig) ports.InferenceInvoker {
	return newInvoker(bridge.New(awsCfg), cfg)
}

// NewInvokerWithClient creates the adapter over an existing bridge client.
func NewInvokerWithClient(client *bridge.Client, cfg *config.InvokeConfig) ports.InferenceInvoker {
	return newInvoker(client, cfg)
}

func newInvoker(client *bridge.Client, cfg *config.InvokeConfig) ports.InferenceInvoker {
	var opts []bridge.Option
	if cfg.BatchSize > 0 {
		opts = append(opts, bridge.WithBatchSize(cfg.BatchSize))
	}
	if cfg.RetryAttempts > 1 {
		opts = append(opts, bridge.WithRetry(uint(cfg.RetryAttempts), cfg.RetryDelay))
	}
	if cfg.ContentType != "" {
		opts = append(opts, bridge.WithContentType(cfg.ContentType), bridge.WithAccept(cfg.ContentType))
	}
	return &invoker{client: client, opts: opts, cfg: *cfg}
}

func (i *invoker) Invoke(ctx context.Context, endpointName string, tbl *table.Table) (*table.Table, error) {
	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}
	return i.client.FastInference(ctx, endpointName, tbl, i.opts...)
}

func (i *invoker) EndpointExists(ctx context.Context, name string) (bool, error) {
	return i.client.EndpointExists(ctx, name)
}

func (i *invoker) DescribeEndpoint(ctx context.Context, name string) (*bridge.EndpointInfo, error) {
	info, err := i.client.DescribeEndpoint(ctx, name)
	if err != nil {
		if errors.Is(err, bridge.ErrEndpointNotFound) {
			return nil, domain.ErrEndpointNotFound
		}
		return nil, err
	}
	return info, nil
}

func (i *invoker) ListEndpoints(ctx context.Context) ([]bridge.EndpointInfo, error) {
	return i.client.ListEndpoints(ctx)
}

// Ensure interface compliance
var _ ports.InferenceInvoker = (*invoker)(nil)
