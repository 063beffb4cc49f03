package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/airenas/minutes/internal/pkg/filer"
	"github.com/airenas/minutes/internal/pkg/pipeline"
	"github.com/airenas/minutes/internal/pkg/transcriber/api"
)

// Uploader is object store mock
type Uploader struct{ mock.Mock }

// Upload func mock
func (m *Uploader) Upload(ctx context.Context, localPath, bucket, key string) (*filer.StoredObject, error) {
	args := m.Called(ctx, localPath, bucket, key)
	return to[*filer.StoredObject](args.Get(0)), args.Error(1)
}

// Analyzer is generative client mock
type Analyzer struct{ mock.Mock }

// Analyze func mock
func (m *Analyzer) Analyze(ctx context.Context, gsURI, mimeType string) *api.Result {
	args := m.Called(ctx, gsURI, mimeType)
	return to[*api.Result](args.Get(0))
}

// Writer is analytics row writer mock
type Writer struct{ mock.Mock }

// InsertRow func mock
func (m *Writer) InsertRow(ctx context.Context, res *api.Result, meetingID int, gsURI string) error {
	args := m.Called(ctx, res, meetingID, gsURI)
	return args.Error(0)
}

// Processor is pipeline mock
type Processor struct{ mock.Mock }

// ProcessAndUpload func mock
func (m *Processor) ProcessAndUpload(ctx context.Context, localPath, bucket, destKey string) (*pipeline.Payload, error) {
	args := m.Called(ctx, localPath, bucket, destKey)
	return to[*pipeline.Payload](args.Get(0)), args.Error(1)
}

// MeetingIDs is meeting id generator mock
type MeetingIDs struct{ mock.Mock }

// NewMeetingID func mock
func (m *MeetingIDs) NewMeetingID(gsURI string) int {
	args := m.Called(gsURI)
	return args.Int(0)
}

// Keys is object key generator mock
type Keys struct{ mock.Mock }

// NewKey func mock
func (m *Keys) NewKey(fileName string) string {
	args := m.Called(fileName)
	return args.String(0)
}

func to[T interface{}](val interface{}) T {
	if val == nil {
		var res T
		return res
	}
	return val.(T)
}
