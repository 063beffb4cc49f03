package filer

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/airenas/go-app/pkg/goapp"

	"github.com/airenas/minutes/internal/pkg/utils"
)

type writerFunc func(ctx context.Context, bucket, key, contentType string) io.WriteCloser

// GCSFiler uploads files to Google Cloud Storage
type GCSFiler struct {
	newWriter writerFunc
	closeFunc func() error
}

// NewGCSFiler creates GCS filer, credentials are taken from the environment (ADC)
func NewGCSFiler(ctx context.Context) (*GCSFiler, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't init storage client: %w", err)
	}
	goapp.Log.Info().Msg("init gcs")
	return &GCSFiler{
		newWriter: func(ctx context.Context, bucket, key, contentType string) io.WriteCloser {
			w := client.Bucket(bucket).Object(key).NewWriter(ctx)
			w.ContentType = contentType
			return w
		},
		closeFunc: client.Close,
	}, nil
}

// Upload uploads local file to gs://bucket/key, the same key is overwritten
func (f *GCSFiler) Upload(ctx context.Context, localPath, bucket, key string) (*StoredObject, error) {
	if err := validateUpload(localPath, bucket, key); err != nil {
		return nil, utils.NewError(utils.KindStorage, err)
	}
	mt := DetectMIME(localPath)
	goapp.Log.Info().Str("file", localPath).Str("bucket", bucket).Str("key", key).Str("mime", mt).Msg("uploading")
	if err := f.copy(ctx, localPath, bucket, key, mt); err != nil {
		return nil, utils.NewError(utils.KindStorage, fmt.Errorf("can't upload '%s': %w", key, err))
	}
	return &StoredObject{URI: MakeURI("gs", bucket, key), MIMEType: mt}, nil
}

func (f *GCSFiler) copy(ctx context.Context, localPath, bucket, key, mt string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer file.Close()

	// the object is committed on Close only
	ctx, cf := context.WithCancel(ctx)
	defer cf()
	w := f.newWriter(ctx, bucket, key, mt)
	if _, err := io.Copy(w, file); err != nil {
		cf()
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Close closes the storage client
func (f *GCSFiler) Close() error {
	if f.closeFunc == nil {
		return nil
	}
	return f.closeFunc()
}
