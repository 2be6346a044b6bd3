package ports

import (
	"context"

	"github.com/workbench-ml/inference-bridge/pkg/bridge"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// InferenceInvoker is the output port to the remote inference platform.
type InferenceInvoker interface {
	// Invoke runs inference on the named endpoint and returns the
	// prediction table, row-aligned with the input.
	Invoke(ctx context.Context, endpointName string, tbl *table.Table) (*table.Table, error)

	EndpointExists(ctx context.Context, name string) (bool, error)
	DescribeEndpoint(ctx context.Context, name string) (*bridge.EndpointInfo, error)
	ListEndpoints(ctx context.Context) ([]bridge.EndpointInfo, error)
}
