// Package dfstore stores named tables on S3 as Parquet files under a common
// prefix, giving callers a small get/upsert/delete surface plus listings
// with size and modification metadata.
package dfstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/workbench-ml/inference-bridge/pkg/params"
	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// DefaultBucketParameter is the parameter-store key consulted when no bucket
// is configured explicitly.
const DefaultBucketParameter = "/inference-bridge/config/bucket"

const defaultPrefix = "df_store/"

// ErrTableNotFound is returned when the named table has no object in S3.
var ErrTableNotFound = errors.New("stored table not found")

// S3API is the slice of the S3 client the store uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store is a named-table store on S3.
type Store struct {
	api    S3API
	bucket string
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithBucket sets the S3 bucket, skipping the parameter-store lookup.
func WithBucket(bucket string) Option {
	return func(s *Store) { s.bucket = bucket }
}

// WithPrefix overrides the object key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a store from an AWS config. Without WithBucket the bucket name
// is read from parameter store under DefaultBucketParameter.
func New(ctx context.Context, cfg awssdk.Config, opts ...Option) (*Store, error) {
	s := &Store{prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	if s.api == nil {
		s.api = s3.NewFromConfig(cfg)
	}
	if s.bucket == "" {
		bucket, err := params.New(cfg).Get(ctx, DefaultBucketParameter)
		if errors.Is(err, params.ErrParameterNotFound) {
			return nil, fmt.Errorf("no bucket configured: set one explicitly or store it under %q", DefaultBucketParameter)
		}
		if err != nil {
			return nil, err
		}
		s.bucket = bucket
	}
	return s, nil
}

// NewWithAPI creates a store over an explicit S3 API, for callers that
// manage their own clients.
func NewWithAPI(api S3API, bucket string, opts ...Option) *Store {
	s := &Store{api: api, bucket: bucket, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Detail describes one stored table.
type Detail struct {
	Name     string    `json:"name"`
	S3URI    string    `json:"s3_uri"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// SummaryEntry is the human-oriented view of a stored table.
type SummaryEntry struct {
	Name     string  `json:"name"`
	SizeMB   float64 `json:"size_mb"`
	Modified string  `json:"modified"`
}

// Get retrieves the table stored under name.
func (s *Store) Get(ctx context.Context, name string) (*table.Table, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(s.key(name)),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("get stored table %q: %w", name, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read stored table %q: %w", name, err)
	}
	tbl, err := table.DecodeParquet(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("decode stored table %q: %w", name, err)
	}
	return tbl, nil
}

// Upsert stores the table under name, overwriting any previous version.
func (s *Store) Upsert(ctx context.Context, name string, tbl *table.Table) error {
	var buf bytes.Buffer
	if err := tbl.EncodeParquet(&buf); err != nil {
		return fmt.Errorf("encode table %q: %w", name, err)
	}
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(s.key(name)),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("put stored table %q: %w", name, err)
	}
	return nil
}

// Delete removes the table stored under name. Deleting a missing table is
// not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("delete stored table %q: %w", name, err)
	}
	return nil
}

// Details lists every stored table with its S3 location, size and
// modification time.
func (s *Store) Details(ctx context.Context) ([]Detail, error) {
	var details []Detail
	var token *string
	for {
		out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            awssdk.String(s.bucket),
			Prefix:            awssdk.String(s.prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list stored tables: %w", err)
		}
		for _, obj := range out.Contents {
			key := awssdk.ToString(obj.Key)
			if !strings.HasSuffix(key, ".parquet") {
				continue
			}
			details = append(details, Detail{
				Name:     s.nameOf(key),
				S3URI:    fmt.Sprintf("s3://%s/%s", s.bucket, key),
				Size:     awssdk.ToInt64(obj.Size),
				Modified: awssdk.ToTime(obj.LastModified),
			})
		}
		if !awssdk.ToBool(out.IsTruncated) {
			return details, nil
		}
		token = out.NextContinuationToken
	}
}

// Summary returns the listing with sizes in MB and formatted timestamps.
func (s *Store) Summary(ctx context.Context) ([]SummaryEntry, error) {
	details, err := s.Details(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]SummaryEntry, len(details))
	for i, d := range details {
		entries[i] = SummaryEntry{
			Name:     d.Name,
			SizeMB:   math.Round(float64(d.Size)/(1024*1024)*100) / 100,
			Modified: d.Modified.Format("2006-01-02 15:04:05"),
		}
	}
	return entries, nil
}

// List returns the stored table names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	details, err := s.Details(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(details))
	for i, d := range details {
		names[i] = d.Name
	}
	return names, nil
}

func (s *Store) key(name string) string {
	return s.prefix + strings.TrimPrefix(name, "/") + ".parquet"
}

func (s *Store) nameOf(key string) string {
	name := strings.TrimPrefix(key, s.prefix)
	name = strings.TrimSuffix(name, ".parquet")
	return "/" + name
}
