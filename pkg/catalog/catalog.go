// Package catalog registers bridge tables in the AWS Glue data catalog so
// downstream query engines (Athena) can see them. Table data lands on S3 as
// Parquet; the catalog entry points at it.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	gluetypes "github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/workbench-ml/inference-bridge/pkg/table"
)

const (
	parquetInputFormat  = "org.apache.hadoop.hive.ql.io.parquet.MapredParquetInputFormat"
	parquetOutputFormat = "org.apache.hadoop.hive.ql.io.parquet.MapredParquetOutputFormat"
	parquetSerde        = "org.apache.hadoop.hive.ql.io.parquet.serde.ParquetHiveSerDe"
)

// ErrTableNotRegistered is returned when a table cannot be found in the
// catalog after registration.
var ErrTableNotRegistered = errors.New("catalog table not registered")

// GlueAPI is the slice of the Glue client the catalog uses.
type GlueAPI interface {
	GetDatabase(ctx context.Context, params *glue.GetDatabaseInput, optFns ...func(*glue.Options)) (*glue.GetDatabaseOutput, error)
	CreateDatabase(ctx context.Context, params *glue.CreateDatabaseInput, optFns ...func(*glue.Options)) (*glue.CreateDatabaseOutput, error)
	GetTable(ctx context.Context, params *glue.GetTableInput, optFns ...func(*glue.Options)) (*glue.GetTableOutput, error)
	CreateTable(ctx context.Context, params *glue.CreateTableInput, optFns ...func(*glue.Options)) (*glue.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *glue.DeleteTableInput, optFns ...func(*glue.Options)) (*glue.DeleteTableOutput, error)
}

// ObjectPutter uploads the table data backing a catalog entry.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client manages catalog databases and tables.
type Client struct {
	glue GlueAPI
	s3   ObjectPutter
}

// New creates a catalog client from an AWS config.
func New(cfg awssdk.Config) *Client {
	return &Client{glue: glue.NewFromConfig(cfg), s3: s3.NewFromConfig(cfg)}
}

// NewWithAPIs creates a catalog client over explicit API implementations.
func NewWithAPIs(g GlueAPI, p ObjectPutter) *Client {
	return &Client{glue: g, s3: p}
}

// EnsureDatabase creates the catalog database if it does not exist.
func (c *Client) EnsureDatabase(ctx context.Context, name string) error {
	_, err := c.glue.GetDatabase(ctx, &glue.GetDatabaseInput{Name: awssdk.String(name)})
	if err == nil {
		return nil
	}
	var notFound *gluetypes.EntityNotFoundException
	if !errors.As(err, &notFound) {
		return classifyGlueError("get database "+name, err)
	}

	_, err = c.glue.CreateDatabase(ctx, &glue.CreateDatabaseInput{
		DatabaseInput: &gluetypes.DatabaseInput{Name: awssdk.String(name)},
	})
	if err != nil {
		return classifyGlueError("create database "+name, err)
	}
	return nil
}

// RegisterTable uploads the table as Parquet under s3Path and registers (or
// replaces) a catalog table pointing at it, then verifies the entry exists.
func (c *Client) RegisterTable(ctx context.Context, database, tableName, s3Path string, tbl *table.Table) error {
	bucket, keyPrefix, err := splitS3Path(s3Path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tbl.EncodeParquet(&buf); err != nil {
		return fmt.Errorf("encode table %q: %w", tableName, err)
	}
	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: awssdk.String(bucket),
		Key:    awssdk.String(keyPrefix + "/data.parquet"),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("upload table data for %q: %w", tableName, err)
	}

	input := &glue.CreateTableInput{
		DatabaseName: awssdk.String(database),
		TableInput:   tableInput(tableName, s3Path, tbl),
	}
	_, err = c.glue.CreateTable(ctx, input)
	if err != nil {
		var exists *gluetypes.AlreadyExistsException
		if !errors.As(err, &exists) {
			return classifyGlueError("create table "+tableName, err)
		}
		// Overwrite semantics: drop and recreate.
		if err := c.DeleteTable(ctx, database, tableName); err != nil {
			return err
		}
		if _, err := c.glue.CreateTable(ctx, input); err != nil {
			return classifyGlueError("recreate table "+tableName, err)
		}
	}

	_, err = c.glue.GetTable(ctx, &glue.GetTableInput{
		DatabaseName: awssdk.String(database),
		Name:         awssdk.String(tableName),
	})
	if err != nil {
		var notFound *gluetypes.EntityNotFoundException
		if errors.As(err, &notFound) {
			return ErrTableNotRegistered
		}
		return classifyGlueError("verify table "+tableName, err)
	}
	return nil
}

// DeleteTable removes a catalog table. Deleting a missing table is not an
// error.
func (c *Client) DeleteTable(ctx context.Context, database, tableName string) error {
	_, err := c.glue.DeleteTable(ctx, &glue.DeleteTableInput{
		DatabaseName: awssdk.String(database),
		Name:         awssdk.String(tableName),
	})
	if err != nil {
		var notFound *gluetypes.EntityNotFoundException
		if errors.As(err, &notFound) {
			return nil
		}
		return classifyGlueError("delete table "+tableName, err)
	}
	return nil
}

func tableInput(name, s3Path string, tbl *table.Table) *gluetypes.TableInput {
	types := tbl.ColumnTypes()
	columns := make([]gluetypes.Column, 0, len(tbl.Columns()))
	for _, col := range tbl.Columns() {
		columns = append(columns, gluetypes.Column{
			Name: awssdk.String(col),
			Type: awssdk.String(glueType(types[col])),
		})
	}
	return &gluetypes.TableInput{
		Name:      awssdk.String(name),
		TableType: awssdk.String("EXTERNAL_TABLE"),
		Parameters: map[string]string{
			"classification": "parquet",
		},
		StorageDescriptor: &gluetypes.StorageDescriptor{
			Columns:      columns,
			Location:     awssdk.String(s3Path),
			InputFormat:  awssdk.String(parquetInputFormat),
			OutputFormat: awssdk.String(parquetOutputFormat),
			SerdeInfo: &gluetypes.SerDeInfo{
				SerializationLibrary: awssdk.String(parquetSerde),
			},
		},
	}
}

func glueType(ct table.ColumnType) string {
	switch ct {
	case table.TypeInt:
		return "bigint"
	case table.TypeFloat:
		return "double"
	case table.TypeBool:
		return "boolean"
	default:
		return "string"
	}
}

func classifyGlueError(op string, err error) error {
	var denied *gluetypes.AccessDeniedException
	if errors.As(err, &denied) {
		return fmt.Errorf("%s: access denied, the caller needs glue catalog permissions (e.g. glue:CreateDatabase): %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func splitS3Path(s3Path string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(s3Path, "s3://")
	if !ok {
		return "", "", fmt.Errorf("invalid s3 path %q", s3Path)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 path %q", s3Path)
	}
	return bucket, strings.TrimSuffix(key, "/"), nil
}
