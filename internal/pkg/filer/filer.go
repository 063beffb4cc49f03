package filer

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// DefaultURIScheme is used for location URIs if nothing is configured
const DefaultURIScheme = "gs"

// StoredObject is a reference to uploaded file
type StoredObject struct {
	URI      string
	MIMEType string
}

// MakeURI returns bucket+key addressable URI
func MakeURI(scheme, bucket, key string) string {
	if scheme == "" {
		scheme = DefaultURIScheme
	}
	return fmt.Sprintf("%s://%s/%s", scheme, bucket, key)
}

func validateUpload(localPath, bucket, key string) error {
	if bucket == "" {
		return errors.New("no bucket")
	}
	if key == "" {
		return errors.New("no destination key")
	}
	st, err := os.Stat(localPath)
	if err != nil {
		return fmt.Errorf("can't access '%s': %w", localPath, err)
	}
	if st.IsDir() {
		return errors.Errorf("'%s' is a dir", localPath)
	}
	return nil
}
