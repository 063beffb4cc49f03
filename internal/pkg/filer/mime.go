package filer

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMIMEType is returned when type can't be inferred
const DefaultMIMEType = "application/octet-stream"

var audioTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// TypeByName infers the mime type from file name extension, returns "" if unknown
func TypeByName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if res, ok := audioTypes[ext]; ok {
		return res
	}
	res, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	if err != nil {
		return ""
	}
	return res
}

// DetectMIME infers the mime type by the file name, falls back to content sniffing
func DetectMIME(localPath string) string {
	if res := TypeByName(localPath); res != "" {
		return res
	}
	mt, err := mimetype.DetectFile(localPath)
	if err != nil || mt == nil {
		return DefaultMIMEType
	}
	res, _, err := mime.ParseMediaType(mt.String())
	if err != nil {
		return DefaultMIMEType
	}
	return res
}
