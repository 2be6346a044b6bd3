package bridge

import "time"

const defaultContentType = "text/csv"

type invokeOptions struct {
	batchSize     int
	retryAttempts uint
	retryDelay    time.Duration
	contentType   string
	accept        string
	targetVariant string
}

func defaultInvokeOptions() invokeOptions {
	return invokeOptions{
		contentType: defaultContentType,
		accept:      defaultContentType,
	}
}

// Option tunes a single FastInference call. The default is one synchronous
// call with the CSV codec and no retry.
type Option func(*invokeOptions)

// WithBatchSize splits the input into row batches of at most n and invokes
// the endpoint once per batch, reassembling results in input order. Useful
// to stay under the runtime's payload size limit.
func WithBatchSize(n int) Option {
	return func(o *invokeOptions) {
		o.batchSize = n
	}
}

// WithRetry retries transient remote failures (throttling, internal
// failures, transport errors) up to attempts times with the given base
// delay. Serialization failures and context cancellation are never retried.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(o *invokeOptions) {
		o.retryAttempts = attempts
		o.retryDelay = delay
	}
}

// WithContentType overrides the request payload content type.
func WithContentType(ct string) Option {
	return func(o *invokeOptions) {
		o.contentType = ct
	}
}

// WithAccept overrides the response content type requested from the
// endpoint.
func WithAccept(ct string) Option {
	return func(o *invokeOptions) {
		o.accept = ct
	}
}

// WithTargetVariant routes the request to a specific production variant of
// the endpoint.
func WithTargetVariant(v string) Option {
	return func(o *invokeOptions) {
		o.targetVariant = v
	}
}
