package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

var audioExt = map[string]bool{".wav": true, ".flac": true, ".mp3": true, ".m4a": true, ".ogg": true}

// SupportAudioExt checks if audio ext is supported, ext is expected with a dot
func SupportAudioExt(ext string) bool {
	return audioExt[strings.ToLower(ext)]
}

var notSafeRegexp = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFileName makes a flat ascii file name safe to use on disk and as an object key part
func SecureFileName(name string) (string, error) {
	res := asciiOnly(norm.NFKD.String(name))
	res = strings.NewReplacer("/", " ", "\\", " ").Replace(res)
	res = strings.Join(strings.Fields(res), "_")
	res = notSafeRegexp.ReplaceAllString(res, "")
	res = strings.Trim(res, "._")
	if res == "" {
		return "", errors.Errorf("wrong file name '%s'", name)
	}
	return res, nil
}

// SplitName returns file stem and extension
func SplitName(name string) (string, string) {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base {
		return base, ""
	}
	return strings.TrimSuffix(base, ext), ext
}

func asciiOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
