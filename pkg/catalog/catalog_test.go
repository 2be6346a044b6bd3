package catalog

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/glue"
	gluetypes "github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workbench-ml/inference-bridge/pkg/table"
)

// fakeGlue keeps databases and table inputs in memory.
type fakeGlue struct {
	databases map[string]bool
	tables    map[string]*gluetypes.TableInput

	getDatabaseErr    error
	createDatabaseErr error
	createTableErr    error
}

func newFakeGlue() *fakeGlue {
	return &fakeGlue{
		databases: make(map[string]bool),
		tables:    make(map[string]*gluetypes.TableInput),
	}
}

func tableKey(db, name string) string { return db + "." + name }

func (f *fakeGlue) GetDatabase(_ context.Context, in *glue.GetDatabaseInput, _ ...func(*glue.Options)) (*glue.GetDatabaseOutput, error) {
	if f.getDatabaseErr != nil {
		return nil, f.getDatabaseErr
	}
	if !f.databases[*in.Name] {
		return nil, &gluetypes.EntityNotFoundException{}
	}
	return &glue.GetDatabaseOutput{Database: &gluetypes.Database{Name: in.Name}}, nil
}

func (f *fakeGlue) CreateDatabase(_ context.Context, in *glue.CreateDatabaseInput, _ ...func(*glue.Options)) (*glue.CreateDatabaseOutput, error) {
	if f.createDatabaseErr != nil {
		return nil, f.createDatabaseErr
	}
	f.databases[*in.DatabaseInput.Name] = true
	return &glue.CreateDatabaseOutput{}, nil
}

func (f *fakeGlue) GetTable(_ context.Context, in *glue.GetTableInput, _ ...func(*glue.Options)) (*glue.GetTableOutput, error) {
	ti, ok := f.tables[tableKey(*in.DatabaseName, *in.Name)]
	if !ok {
		return nil, &gluetypes.EntityNotFoundException{}
	}
	return &glue.GetTableOutput{Table: &gluetypes.Table{Name: ti.Name}}, nil
}

func (f *fakeGlue) CreateTable(_ context.Context, in *glue.CreateTableInput, _ ...func(*glue.Options)) (*glue.CreateTableOutput, error) {
	if f.createTableErr != nil {
		return nil, f.createTableErr
	}
	key := tableKey(*in.DatabaseName, *in.TableInput.Name)
	if _, ok := f.tables[key]; ok {
		return nil, &gluetypes.AlreadyExistsException{}
	}
	f.tables[key] = in.TableInput
	return &glue.CreateTableOutput{}, nil
}

func (f *fakeGlue) DeleteTable(_ context.Context, in *glue.DeleteTableInput, _ ...func(*glue.Options)) (*glue.DeleteTableOutput, error) {
	key := tableKey(*in.DatabaseName, *in.Name)
	if _, ok := f.tables[key]; !ok {
		return nil, &gluetypes.EntityNotFoundException{}
	}
	delete(f.tables, key)
	return &glue.DeleteTableOutput{}, nil
}

type fakePutter struct {
	keys []string
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.keys = append(f.keys, *in.Bucket+"/"+*in.Key)
	return &s3.PutObjectOutput{}, nil
}

func predictionTable() *table.Table {
	tbl := table.New("id", "score", "rings", "tagged")
	tbl.Append(table.Row{"id": "r0", "score": 0.91, "rings": int64(15), "tagged": true})
	return tbl
}

func TestEnsureDatabaseCreatesWhenMissing(t *testing.T) {
	g := newFakeGlue()
	c := NewWithAPIs(g, &fakePutter{})

	require.NoError(t, c.EnsureDatabase(context.Background(), "inference_store"))
	assert.True(t, g.databases["inference_store"])

	// Second call finds the database and does not recreate it.
	g.createDatabaseErr = &gluetypes.AccessDeniedException{}
	require.NoError(t, c.EnsureDatabase(context.Background(), "inference_store"))
}

func TestEnsureDatabaseExplainsAccessDenied(t *testing.T) {
	g := newFakeGlue()
	g.getDatabaseErr = &gluetypes.EntityNotFoundException{}
	g.createDatabaseErr = &gluetypes.AccessDeniedException{}
	c := NewWithAPIs(g, &fakePutter{})

	err := c.EnsureDatabase(context.Background(), "inference_store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glue:CreateDatabase")

	var denied *gluetypes.AccessDeniedException
	assert.ErrorAs(t, err, &denied)
}

func TestRegisterTableUploadsDataAndRegisters(t *testing.T) {
	g := newFakeGlue()
	p := &fakePutter{}
	c := NewWithAPIs(g, p)

	err := c.RegisterTable(context.Background(), "inference_store", "predictions",
		"s3://ml-bucket/athena/predictions", predictionTable())
	require.NoError(t, err)

	require.Equal(t, []string{"ml-bucket/athena/predictions/data.parquet"}, p.keys)

	ti := g.tables["inference_store.predictions"]
	require.NotNil(t, ti)
	assert.Equal(t, "EXTERNAL_TABLE", *ti.TableType)
	assert.Equal(t, "parquet", ti.Parameters["classification"])
	assert.Equal(t, "s3://ml-bucket/athena/predictions", *ti.StorageDescriptor.Location)

	colTypes := make(map[string]string)
	for _, col := range ti.StorageDescriptor.Columns {
		colTypes[*col.Name] = *col.Type
	}
	assert.Equal(t, map[string]string{
		"id":     "string",
		"score":  "double",
		"rings":  "bigint",
		"tagged": "boolean",
	}, colTypes)
}

func TestRegisterTableOverwritesExisting(t *testing.T) {
	g := newFakeGlue()
	c := NewWithAPIs(g, &fakePutter{})
	ctx := context.Background()

	require.NoError(t, c.RegisterTable(ctx, "db", "predictions",
		"s3://ml-bucket/v1", predictionTable()))
	require.NoError(t, c.RegisterTable(ctx, "db", "predictions",
		"s3://ml-bucket/v2", predictionTable()))

	ti := g.tables["db.predictions"]
	require.NotNil(t, ti)
	assert.Equal(t, "s3://ml-bucket/v2", *ti.StorageDescriptor.Location)
}

func TestRegisterTableRejectsBadS3Path(t *testing.T) {
	c := NewWithAPIs(newFakeGlue(), &fakePutter{})
	for _, path := range []string{"ml-bucket/key", "s3://", "s3://bucket-only"} {
		err := c.RegisterTable(context.Background(), "db", "t", path, predictionTable())
		assert.Error(t, err, path)
	}
}

func TestDeleteTableIgnoresMissing(t *testing.T) {
	c := NewWithAPIs(newFakeGlue(), &fakePutter{})
	assert.NoError(t, c.DeleteTable(context.Background(), "db", "nope"))
}

func TestDeleteTableRemovesEntry(t *testing.T) {
	g := newFakeGlue()
	c := NewWithAPIs(g, &fakePutter{})
	ctx := context.Background()

	require.NoError(t, c.RegisterTable(ctx, "db", "predictions",
		"s3://ml-bucket/v1", predictionTable()))
	require.NoError(t, c.DeleteTable(ctx, "db", "predictions"))
	assert.Empty(t, g.tables)
}

func TestSplitS3Path(t *testing.T) {
	bucket, key, err := splitS3Path("s3://ml-bucket/athena/predictions/")
	require.NoError(t, err)
	assert.Equal(t, "ml-bucket", bucket)
	assert.Equal(t, "athena/predictions", key)
}
