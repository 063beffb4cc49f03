package filer

import (
	"context"
	"fmt"
	"strings"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/airenas/minutes/internal/pkg/utils"
)

type objectPutter interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioOptions keeps S3 compatible store settings
type MinioOptions struct {
	URL       string
	User      string
	Key       string
	Secure    bool
	URIScheme string
}

// MinioFiler uploads files to any S3 compatible store (minio, GCS interop, S3)
type MinioFiler struct {
	client objectPutter
	scheme string
}

// NewMinioFiler creates minio client based filer
func NewMinioFiler(opts MinioOptions) (*MinioFiler, error) {
	if opts.URL == "" {
		return nil, errors.New("no url")
	}
	endpoint, secure := trimScheme(opts.URL, opts.Secure)
	goapp.Log.Info().Str("url", endpoint).Bool("secure", secure).Str("user", opts.User).Msg("init minio")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.User, opts.Key, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("can't init minio client: %w", err)
	}
	return &MinioFiler{client: client, scheme: opts.URIScheme}, nil
}

// Upload uploads local file to bucket/key, the same key is overwritten
func (f *MinioFiler) Upload(ctx context.Context, localPath, bucket, key string) (*StoredObject, error) {
	if err := validateUpload(localPath, bucket, key); err != nil {
		return nil, utils.NewError(utils.KindStorage, err)
	}
	mt := DetectMIME(localPath)
	goapp.Log.Info().Str("file", localPath).Str("bucket", bucket).Str("key", key).Str("mime", mt).Msg("uploading")
	info, err := f.client.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{ContentType: mt})
	if err != nil {
		return nil, utils.NewError(utils.KindStorage, fmt.Errorf("can't upload '%s': %w", key, err))
	}
	goapp.Log.Info().Str("key", key).Int64("size", info.Size).Msg("uploaded")
	return &StoredObject{URI: MakeURI(f.scheme, bucket, key), MIMEType: mt}, nil
}

func trimScheme(url string, secure bool) (string, bool) {
	if s, ok := strings.CutPrefix(url, "https://"); ok {
		return strings.TrimSuffix(s, "/"), true
	}
	if s, ok := strings.CutPrefix(url, "http://"); ok {
		return strings.TrimSuffix(s, "/"), false
	}
	return strings.TrimSuffix(url, "/"), secure
}
