package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workbench-ml/inference-bridge/pkg/table"
)

type fakeRuntime struct {
	invoke func(ctx context.Context, in *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error)
	calls  int
}

func (f *fakeRuntime) InvokeEndpoint(ctx context.Context, in *sagemakerruntime.InvokeEndpointInput, _ ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error) {
	f.calls++
	return f.invoke(ctx, in)
}

// echoPredictor answers every request with one "prediction" value per input
// row, derived from the row index so ordering is observable.
func echoPredictor(base int) func(context.Context, *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error) {
	return func(_ context.Context, in *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error) {
		sent, err := table.DecodeCSV(bytes.NewReader(in.Body))
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		sb.WriteString("prediction\n")
		for i := 0; i < sent.NumRows(); i++ {
			fmt.Fprintf(&sb, "%s-%d\n", sent.Row(i)["id"], base+i)
		}
		return &sagemakerruntime.InvokeEndpointOutput{Body: []byte(sb.String())}, nil
	}
}

func inputTable(n int) *table.Table {
	tbl := table.New("id", "length")
	for i := 0; i < n; i++ {
		tbl.Append(table.Row{"id": fmt.Sprintf("r%d", i), "length": 0.1 * float64(i)})
	}
	return tbl
}

func TestFastInferenceAlignsOutputWithInput(t *testing.T) {
	rt := &fakeRuntime{invoke: echoPredictor(0)}
	c := NewWithAPIs(rt, nil)

	out, err := c.FastInference(context.Background(), "abalone-prod", inputTable(3))
	require.NoError(t, err)

	require.Equal(t, 3, out.NumRows())
	assert.Equal(t, []string{"prediction"}, out.Columns())
	for i := 0; i < 3; i++ {
		assert.Equal(t, fmt.Sprintf("r%d-%d", i, i), out.Row(i)["prediction"])
	}
	assert.Equal(t, 1, rt.calls)
}

func TestFastInferenceValidatesInput(t *testing.T) {
	c := NewWithAPIs(&fakeRuntime{}, nil)

	_, err := c.FastInference(context.Background(), "", inputTable(1))
	assert.ErrorIs(t, err, ErrEmptyEndpointName)

	_, err = c.FastInference(context.Background(), "abalone-prod", nil)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = c.FastInference(context.Background(), "abalone-prod", table.New("id"))
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestFastInferenceSendsCSVRequest(t *testing.T) {
	var got *sagemakerruntime.InvokeEndpointInput
	rt := &fakeRuntime{invoke: func(ctx context.Context, in *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error) {
		got = in
		return echoPredictor(0)(ctx, in)
	}}
	c := NewWithAPIs(rt, nil)

	tbl := table.New("length", "diameter")
	tbl.Append(table.Row{"length": 0.455, "diameter": 0.365})

	_, err := c.FastInference(context.Background(), "abalone-prod", tbl, WithTargetVariant("variant-b"))
	require.NoError(t, err)

	assert.Equal(t, "abalone-prod", *got.EndpointName)
	assert.Equal(t, "text/csv", *got.ContentType)
	assert.Equal(t, "text/csv", *got.Accept)
	assert.Equal(t, "variant-b", *got.TargetVariant)
	assert.Equal(t, "length,diameter\n0.455,0.365\n", string(got.Body))
}

func TestFastInferenceClassifiesRemoteFailure(t *testing.T) {
	rt := &fakeRuntime{invoke: func(context.Context, *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error) {
		return nil, &smithy.GenericAPIError{Code: "ModelError", Message: "inference container returned 500"}
	}}
	c := NewWithAPIs(rt, nil)

	_, err := c.FastInference(context.Background(), "abalone-prod", inputTable(1))

	var remoteErr *RemoteServiceError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "abalone-prod", remoteErr.Endpoint)
	assert.Equal(t, "ModelError", remoteErr.Code)
}

func TestFastInferenceClassifiesUndecodableResponse(t *testing.T) {
	rt := &fakeRuntime{invoke: func(context.Context, *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error) {
		return &sagemakerruntime.InvokeEndpointOutput{Body: []byte("a,b\n1,2,3\n")}, nil
	}}
	c := NewWithAPIs(rt, nil)

	_, err := c.FastInference(context.Background(), "abalone-prod", inputTable(1))

	var serErr *SerializationError
	require.ErrorAs(t, err, &serErr)
	assert.Equal(t, "decode", serErr.Op)
}

func TestFastInferenceDetectsRowMismatch(t *testing.T) {
	rt := &fakeRuntime{invoke: func(context.Context, *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error) {
		return &sagemakerruntime.InvokeEndpointOutput{Body: []byte("prediction\n0.7\n")}, nil
	}}
	c := NewWithAPIs(rt, nil)

	_, err := c.FastInference(context.Background(), "abalone-prod", inputTable(2))
	assert.ErrorIs(t, err, ErrRowMismatch)
}

func TestFastInferenceBatchesAndPreservesOrder(t *testing.T) {
	var bodies []string
	rt := &fakeRuntime{}
	rt.invoke = func(ctx context.Context, in *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error) {
		bodies = append(bodies, string(in.Body))
		return echoPredictor(0)(ctx, in)
	}
	c := NewWithAPIs(rt, nil)

	out, err := c.FastInference(context.Background(), "abalone-prod", inputTable(5), WithBatchSize(2))
	require.NoError(t, err)

	assert.Equal(t, 3, rt.calls)
	require.Len(t, bodies, 3)
	assert.True(t, strings.HasPrefix(bodies[0], "id,length\nr0,"))
	assert.True(t, strings.HasPrefix(bodies[2], "id,length\nr4,"))

	require.Equal(t, 5, out.NumRows())
	for i := 0; i < 5; i++ {
		pred, ok := out.Row(i)["prediction"].(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(pred, fmt.Sprintf("r%d-", i)))
	}
}

func TestFastInferenceLargeInput(t *testing.T) {
	rt := &fakeRuntime{invoke: echoPredictor(0)}
	c := NewWithAPIs(rt, nil)

	out, err := c.FastInference(context.Background(), "abalone-prod", inputTable(1000), WithBatchSize(256))
	require.NoError(t, err)
	assert.Equal(t, 4, rt.calls)
	require.Equal(t, 1000, out.NumRows())
	assert.Equal(t, "r0-0", out.Row(0)["prediction"])
	assert.True(t, strings.HasPrefix(out.Row(999)["prediction"].(string), "r999-"))
}

func TestFastInferenceRetriesTransientFailures(t *testing.T) {
	rt := &fakeRuntime{}
	rt.invoke = func(ctx context.Context, in *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error) {
		if rt.calls < 3 {
			return nil, &smithy.GenericAPIError{Code: "ThrottlingException", Message: "rate exceeded"}
		}
		return echoPredictor(0)(ctx, in)
	}
	c := NewWithAPIs(rt, nil)

	out, err := c.FastInference(context.Background(), "abalone-prod", inputTable(1),
		WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 3, rt.calls)
	assert.Equal(t, 1, out.NumRows())
}

func TestFastInferenceDoesNotRetryModelErrors(t *testing.T) {
	rt := &fakeRuntime{invoke: func(context.Context, *sagemakerruntime.InvokeEndpointInput) (*sagemakerruntime.InvokeEndpointOutput, error) {
		return nil, &smithy.GenericAPIError{Code: "ModelError", Message: "bad input shape"}
	}}
	c := NewWithAPIs(rt, nil)

	_, err := c.FastInference(context.Background(), "abalone-prod", inputTable(1),
		WithRetry(5, time.Millisecond))

	var remoteErr *RemoteServiceError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 1, rt.calls)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"throttling", &RemoteServiceError{Code: "ThrottlingException"}, true},
		{"service unavailable", &RemoteServiceError{Code: "ServiceUnavailable"}, true},
		{"transport failure without code", &RemoteServiceError{Err: errors.New("connection reset")}, true},
		{"model error", &RemoteServiceError{Code: "ModelError"}, false},
		{"validation error", &RemoteServiceError{Code: "ValidationError"}, false},
		{"context canceled", context.Canceled, false},
		{"unclassified", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}
