// internal/services/storage_service_test.go
package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/catalog-manager/internal/config"
	"github.com/javajoker/catalog-manager/internal/utils"
)

// recordingS3 captures uploads and presigns with a real, offline client.
type recordingS3 struct {
	s3iface.S3API
	puts []*s3.PutObjectInput
	body []byte
}

func (r *recordingS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	r.puts = append(r.puts, in)
	buf := make([]byte, aws.Int64Value(in.ContentLength))
	_, _ = in.Body.Read(buf)
	r.body = buf
	return &s3.PutObjectOutput{}, nil
}

func newRecordingS3(t *testing.T) *recordingS3 {
	t.Helper()
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String("us-east-1"),
		Credentials: credentials.NewStaticCredentials("AKIDTEST", "SECRETTEST", ""),
	})
	require.NoError(t, err)
	return &recordingS3{S3API: s3.New(sess)}
}

func TestStorageService_Local(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Store: config.StoreConfig{ExportDir: dir}}

	s, err := NewStorageService(cfg)
	require.NoError(t, err)
	assert.False(t, s.UsesS3())
	s.now = func() time.Time { return time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC) }

	data := []byte("[]\n")
	result, err := s.SaveExport(context.Background(), data)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Key, "produtos_20240615T123000Z_"))
	assert.True(t, strings.HasSuffix(result.Key, ".json"))
	assert.True(t, strings.HasPrefix(result.URL, "file://"))
	assert.Equal(t, int64(len(data)), result.Size)
	assert.Equal(t, utils.HashBytes(data), result.Checksum)

	written, err := os.ReadFile(filepath.Join(dir, result.Key))
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestStorageService_S3(t *testing.T) {
	client := newRecordingS3(t)
	s := NewStorageServiceWithClient(client, "catalog-exports", "exports/")
	assert.True(t, s.UsesS3())

	data := []byte(`[{"name":"Arroz"}]`)
	result, err := s.SaveExport(context.Background(), data)
	require.NoError(t, err)

	require.Len(t, client.puts, 1)
	put := client.puts[0]
	assert.Equal(t, "catalog-exports", aws.StringValue(put.Bucket))
	assert.True(t, strings.HasPrefix(aws.StringValue(put.Key), "exports/produtos_"))
	assert.Equal(t, "application/json", aws.StringValue(put.ContentType))
	assert.Equal(t, `attachment; filename="produtos.json"`, aws.StringValue(put.ContentDisposition))
	assert.Equal(t, data, client.body)

	assert.Equal(t, aws.StringValue(put.Key), result.Key)
	assert.Contains(t, result.URL, "catalog-exports")
	assert.Contains(t, result.URL, "X-Amz-Signature=")
}
