package upload

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/facebookgo/grace/gracehttp"
	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/airenas/minutes/internal/pkg/ids"
	"github.com/airenas/minutes/internal/pkg/pipeline"
	"github.com/airenas/minutes/internal/pkg/utils"
)

// Processor runs the upload -> generate -> persist pipeline
type Processor interface {
	ProcessAndUpload(ctx context.Context, localPath, bucket, destKey string) (*pipeline.Payload, error)
}

// Data keeps data required for service work
type Data struct {
	Port      int
	Bucket    string
	MaxSize   string
	Processor Processor
	Keys      ids.KeyGenerator
}

const (
	// DefaultMaxSize of the request body
	DefaultMaxSize = "200M"
	audioField     = "audio"
)

// StartWebServer starts echo web service
func StartWebServer(data *Data) error {
	goapp.Log.Info().Msgf("Starting HTTP minutes upload service at %d", data.Port)
	if err := validate(data); err != nil {
		return err
	}

	portStr := strconv.Itoa(data.Port)

	e := initRoutes(data)

	e.Server.Addr = ":" + portStr
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.ReadTimeout = 180 * time.Second
	// the model call is synchronous and long for meeting size audio
	e.Server.WriteTimeout = 15 * time.Minute

	gracehttp.SetLogger(log.New(goapp.Log, "", 0))

	return gracehttp.Serve(e.Server)
}

func validate(data *Data) error {
	if data.Processor == nil {
		return errors.New("no processor")
	}
	if data.Keys == nil {
		return errors.New("no key generator")
	}
	if data.Bucket == "" {
		return errors.New("no bucket")
	}
	return nil
}

var promMdlw *prometheus.Prometheus

func init() {
	promMdlw = prometheus.NewPrometheus("mom_upload", nil)
}

func initRoutes(data *Data) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.BodyLimit(defaultS(data.MaxSize, DefaultMaxSize)))
	promMdlw.Use(e)

	e.POST("/upload", upload(data))
	e.GET("/live", live(data))

	goapp.Log.Info().Msg("Routes:")
	for _, r := range e.Routes() {
		goapp.Log.Info().Msgf("  %s %s", r.Method, r.Path)
	}
	return e
}

func live(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{"service":"OK"}`))
	}
}

type result struct {
	Status  string            `json:"status"`
	Data    *pipeline.Payload `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
}

func upload(data *Data) func(echo.Context) error {
	return func(c echo.Context) error {
		defer goapp.Estimate("upload method")()
		ctx := c.Request().Context()

		fh, err := c.FormFile(audioField)
		defer cleanFiles(c.Request().MultipartForm)
		if err != nil {
			if hasEmptyFile(c.Request().MultipartForm) {
				return badRequest(c, "No selected file")
			}
			return badRequest(c, "No file part 'audio' in request")
		}
		if fh.Filename == "" {
			return badRequest(c, "No selected file")
		}
		if !utils.SupportAudioExt(filepath.Ext(fh.Filename)) {
			return badRequest(c, "File type not allowed")
		}
		name, err := utils.SecureFileName(fh.Filename)
		if err != nil {
			return badRequest(c, "Wrong file name")
		}

		dir, err := os.MkdirTemp("", "minutes-")
		if err != nil {
			goapp.Log.Error().Err(err).Send()
			return c.JSON(http.StatusInternalServerError, result{Status: "error", Message: "can't save file"})
		}
		defer removeDir(dir)

		localPath := filepath.Join(dir, name)
		if err := saveFile(fh, localPath); err != nil {
			goapp.Log.Error().Err(err).Send()
			return c.JSON(http.StatusInternalServerError, result{Status: "error", Message: "can't save file"})
		}
		key := data.Keys.NewKey(name)
		goapp.Log.Info().Str("file", fh.Filename).Int64("size", fh.Size).Str("key", key).Msg("request info")

		p, err := data.Processor.ProcessAndUpload(ctx, localPath, data.Bucket, key)
		if err != nil {
			goapp.Log.Error().Err(err).Str("kind", utils.KindOf(err).String()).Send()
			return c.JSON(http.StatusInternalServerError, result{Status: "error", Message: err.Error()})
		}
		return c.JSON(http.StatusOK, result{Status: "ok", Data: p})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, result{Status: "error", Message: msg})
}

// multipart parts with an empty file name end up as form values
func hasEmptyFile(f *multipart.Form) bool {
	if f == nil {
		return false
	}
	_, ok := f.Value[audioField]
	return ok
}

func saveFile(fh *multipart.FileHeader, localPath string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("can't open form file: %w", err)
	}
	defer src.Close()
	dst, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("can't create %s: %w", localPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("can't save %s: %w", localPath, err)
	}
	return dst.Close()
}

func removeDir(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		goapp.Log.Warn().Err(err).Str("dir", dir).Msg("can't remove temp dir")
	}
}

func cleanFiles(f *multipart.Form) {
	if f != nil {
		_ = f.RemoveAll()
	}
}

func defaultS(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
