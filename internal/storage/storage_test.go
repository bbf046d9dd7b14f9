package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectAPI struct {
	mock.Mock
}

func (m *MockObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockObjectAPI) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadBucketOutput), args.Error(1)
}

func (m *MockObjectAPI) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.CreateBucketOutput), args.Error(1)
}

func fixClock(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
}

func TestObjectName(t *testing.T) {
	fixClock(t)

	assert.Equal(t, "20260301T120000.000000000-notes.pdf", objectName("notes.pdf"))
	assert.Equal(t, "20260301T120000.000000000-passwd", objectName("../../etc/passwd"))
	assert.Equal(t, "20260301T120000.000000000-my_file.pdf", objectName(`C:\Users\me\my file.pdf`))
	assert.Equal(t, "20260301T120000.000000000-upload", objectName(""))
}

func TestDisk_Save(t *testing.T) {
	fixClock(t)
	dir := filepath.Join(t.TempDir(), "uploads")
	d := NewDisk(dir)

	path, err := d.Save(context.Background(), "biology.pdf", []byte("%PDF-1.4"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260301T120000.000000000-biology.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestDisk_Save_CancelledContext(t *testing.T) {
	d := NewDisk(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Save(ctx, "a.pdf", nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestS3Client_Save(t *testing.T) {
	fixClock(t)
	api := new(MockObjectAPI)
	c := newS3Client(api, "tutor", "")
	var input *s3.PutObjectInput
	api.On("PutObject", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { input = args.Get(1).(*s3.PutObjectInput) }).
		Return(&s3.PutObjectOutput{}, nil)

	location, err := c.Save(context.Background(), "notes.pdf", []byte("pdf"))

	require.NoError(t, err)
	assert.Equal(t, "s3://tutor/uploads/20260301T120000.000000000-notes.pdf", location)
	require.NotNil(t, input)
	assert.Equal(t, "tutor", aws.ToString(input.Bucket))
	assert.Equal(t, "uploads/20260301T120000.000000000-notes.pdf", aws.ToString(input.Key))
	assert.Equal(t, "application/pdf", aws.ToString(input.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(input.ContentLength))
	body, err := io.ReadAll(input.Body)
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(body))
}

func TestS3Client_Save_Error(t *testing.T) {
	api := new(MockObjectAPI)
	c := newS3Client(api, "tutor", "archive")
	api.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := c.Save(context.Background(), "notes.pdf", []byte("pdf"))

	assert.ErrorContains(t, err, "failed to put object: access denied")
}

func TestS3Client_EnsureBucket_Exists(t *testing.T) {
	api := new(MockObjectAPI)
	c := newS3Client(api, "tutor", "")
	api.On("HeadBucket", mock.Anything, mock.Anything).Return(&s3.HeadBucketOutput{}, nil)

	require.NoError(t, c.EnsureBucket(context.Background()))
	api.AssertNotCalled(t, "CreateBucket", mock.Anything, mock.Anything)
}

func TestS3Client_EnsureBucket_Creates(t *testing.T) {
	api := new(MockObjectAPI)
	c := newS3Client(api, "tutor", "")
	api.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, errors.New("not found"))
	api.On("CreateBucket", mock.Anything, mock.Anything).Return(&s3.CreateBucketOutput{}, nil)

	require.NoError(t, c.EnsureBucket(context.Background()))
	api.AssertExpectations(t)
}

func TestS3Client_EnsureBucket_CreateFails(t *testing.T) {
	api := new(MockObjectAPI)
	c := newS3Client(api, "tutor", "")
	api.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, errors.New("not found"))
	api.On("CreateBucket", mock.Anything, mock.Anything).Return(nil, errors.New("denied"))

	assert.ErrorContains(t, c.EnsureBucket(context.Background()), "failed to create bucket")
}
