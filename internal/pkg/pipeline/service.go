package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/airenas/minutes/internal/pkg/filer"
	"github.com/airenas/minutes/internal/pkg/ids"
	"github.com/airenas/minutes/internal/pkg/transcriber/api"
)

// Uploader puts a local file to the object store
type Uploader interface {
	Upload(ctx context.Context, localPath, bucket, key string) (*filer.StoredObject, error)
}

// Analyzer produces transcript and minutes for a stored audio
type Analyzer interface {
	Analyze(ctx context.Context, gsURI, mimeType string) *api.Result
}

// RowWriter appends one analytics row
type RowWriter interface {
	InsertRow(ctx context.Context, res *api.Result, meetingID int, gsURI string) error
}

// Data keeps data required for pipeline work
type Data struct {
	Uploader   Uploader
	Analyzer   Analyzer
	Writer     RowWriter
	MeetingIDs ids.MeetingIDGenerator
	Keys       ids.KeyGenerator
}

// Payload is the outcome of one processed recording
type Payload struct {
	GsURI     string      `json:"gs_uri"`
	MeetingID int         `json:"meeting_id"`
	Result    *api.Result `json:"result"`
}

// Service runs upload -> generate -> persist
type Service struct {
	data *Data
}

// NewService validates data and makes the service
func NewService(data *Data) (*Service, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	return &Service{data: data}, nil
}

func validate(data *Data) error {
	if data == nil {
		return errors.New("no data")
	}
	if data.Uploader == nil {
		return errors.New("no uploader")
	}
	if data.Analyzer == nil {
		return errors.New("no analyzer")
	}
	if data.Writer == nil {
		return errors.New("no row writer")
	}
	if data.MeetingIDs == nil {
		return errors.New("no meeting id generator")
	}
	if data.Keys == nil {
		return errors.New("no key generator")
	}
	return nil
}

// ProcessAndUpload uploads the file, asks the model for transcript and minutes
// and appends a row when the result is a success.
// An upload failure returns no payload. A persistence failure returns the payload and the error.
func (s *Service) ProcessAndUpload(ctx context.Context, localPath, bucket, destKey string) (*Payload, error) {
	defer goapp.Estimate("process")()
	if destKey == "" {
		destKey = s.data.Keys.NewKey(filepath.Base(localPath))
	}
	goapp.Log.Info().Str("file", localPath).Str("bucket", bucket).Str("key", destKey).Msg("uploading")
	obj, err := s.upload(ctx, localPath, bucket, destKey)
	if err != nil {
		return nil, fmt.Errorf("can't upload: %w", err)
	}

	res := s.analyze(ctx, obj)
	meetingID := s.data.MeetingIDs.NewMeetingID(obj.URI)
	p := &Payload{GsURI: obj.URI, MeetingID: meetingID, Result: res}
	goapp.Log.Info().Str("uri", obj.URI).Int("meetingID", meetingID).Dict("result", resultDict(res)).Send()

	if res.Failed() {
		goapp.Log.Warn().Str("uri", obj.URI).Str("error", res.Error).Msg("no row written")
		return p, nil
	}
	if err := s.persist(ctx, res, meetingID, obj.URI); err != nil {
		return p, fmt.Errorf("can't persist: %w", err)
	}
	return p, nil
}

func (s *Service) upload(ctx context.Context, localPath, bucket, key string) (*filer.StoredObject, error) {
	defer goapp.Estimate("upload")()
	return s.data.Uploader.Upload(ctx, localPath, bucket, key)
}

func (s *Service) analyze(ctx context.Context, obj *filer.StoredObject) *api.Result {
	defer goapp.Estimate("generate")()
	return s.data.Analyzer.Analyze(ctx, obj.URI, obj.MIMEType)
}

func (s *Service) persist(ctx context.Context, res *api.Result, meetingID int, uri string) error {
	defer goapp.Estimate("persist")()
	return s.data.Writer.InsertRow(ctx, res, meetingID, uri)
}

func resultDict(res *api.Result) *zerolog.Event {
	if res.Failed() {
		return zerolog.Dict().Str("error", res.Error).Int("rawLen", len(res.RawOutput))
	}
	return zerolog.Dict().Int("transcriptLen", len(res.Transcript)).Int("momLen", len(res.MOM))
}
