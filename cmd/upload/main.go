package main

import (
	"context"
	"fmt"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/color"
	"github.com/spf13/viper"

	"github.com/airenas/minutes/internal/pkg/bigquery"
	"github.com/airenas/minutes/internal/pkg/filer"
	"github.com/airenas/minutes/internal/pkg/ids"
	"github.com/airenas/minutes/internal/pkg/persistence"
	"github.com/airenas/minutes/internal/pkg/pipeline"
	"github.com/airenas/minutes/internal/pkg/postgres"
	"github.com/airenas/minutes/internal/pkg/transcriber"
	"github.com/airenas/minutes/internal/pkg/upload"
	"github.com/airenas/minutes/internal/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("no .env loaded: %v\n", err)
	}
	goapp.StartWithDefault()

	printBanner()

	cfg := goapp.Config
	ctx := context.Background()

	go utils.RunPerfEndpoint(cfg.GetInt("debug.port"))

	pData := &pipeline.Data{}
	var err error
	var closeFunc func()
	pData.Uploader, closeFunc, err = newUploader(ctx, cfg)
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init uploader")
	}
	defer closeFunc()

	pData.Analyzer, err = transcriber.NewClient(ctx, transcriber.Options{Backend: cfg.GetString("genai.backend"),
		Project: cfg.GetString("genai.project"), Location: cfg.GetString("genai.location"),
		APIKey: cfg.GetString("genai.apiKey"), Model: cfg.GetString("genai.model")})
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init generative client")
	}

	pData.Writer, closeFunc, err = newWriter(ctx, cfg)
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init analytics writer")
	}
	defer closeFunc()

	pData.MeetingIDs, err = ids.NewMeetingIDGenerator(cfg.GetString("ids.meeting"))
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init meeting id generator")
	}
	pData.Keys, err = ids.NewKeyGenerator(cfg.GetString("ids.key"), keyPrefix(cfg))
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init key generator")
	}
	uploadKeys, err := newUploadKeys(cfg)
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init upload key generator")
	}

	srv, err := pipeline.NewService(pData)
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init pipeline")
	}

	data := &upload.Data{Port: cfg.GetInt("port"), Bucket: cfg.GetString("filer.bucket"),
		MaxSize: cfg.GetString("upload.maxSize"), Processor: srv, Keys: uploadKeys}
	err = upload.StartWebServer(data)
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't start web server")
	}
}

// newUploadKeys makes keys for HTTP uploads, uuid by default so equal file names never share an object
func newUploadKeys(cfg *viper.Viper) (ids.KeyGenerator, error) {
	return ids.NewKeyGenerator(defaultV(cfg.GetString("upload.keyStrategy"), "uuid"), keyPrefix(cfg))
}

func keyPrefix(cfg *viper.Viper) string {
	return defaultV(cfg.GetString("upload.prefix"), ids.DefaultKeyPrefix)
}

func newUploader(ctx context.Context, cfg *viper.Viper) (pipeline.Uploader, func(), error) {
	// minio driver assumes a GCS interop endpoint unless filer.uriScheme is changed
	driver := defaultV(cfg.GetString("filer.driver"), "gcs")
	goapp.Log.Info().Str("driver", driver).Msg("object store")
	switch driver {
	case "minio":
		res, err := filer.NewMinioFiler(filer.MinioOptions{URL: cfg.GetString("filer.url"),
			User: cfg.GetString("filer.user"), Key: cfg.GetString("filer.key"), Secure: cfg.GetBool("filer.https"),
			URIScheme: cfg.GetString("filer.uriScheme")})
		return res, func() {}, err
	case "gcs":
		res, err := filer.NewGCSFiler(ctx)
		if err != nil {
			return nil, nil, err
		}
		return res, closeLog(res.Close, "gcs"), nil
	}
	return nil, nil, fmt.Errorf("unknown filer driver '%s'", driver)
}

func newWriter(ctx context.Context, cfg *viper.Viper) (pipeline.RowWriter, func(), error) {
	driver := defaultV(cfg.GetString("analytics.driver"), "bigquery")
	table := defaultV(cfg.GetString("analytics.table"), persistence.DefaultTable)
	goapp.Log.Info().Str("driver", driver).Str("table", table).Msg("analytics")
	switch driver {
	case "bigquery":
		res, err := bigquery.NewWriter(ctx, bigquery.Options{Project: cfg.GetString("analytics.project"),
			Dataset: cfg.GetString("analytics.dataset"), Table: table})
		if err != nil {
			return nil, nil, err
		}
		return res, closeLog(res.Close, "bigquery"), nil
	case "postgres":
		dbPool, err := newDBPool(ctx, cfg.GetString("db.url"))
		if err != nil {
			return nil, nil, err
		}
		res, err := postgres.NewDB(dbPool, table)
		if err != nil {
			dbPool.Close()
			return nil, nil, err
		}
		return res, dbPool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown analytics driver '%s'", driver)
}

func newDBPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	dbConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("can't parse db config: %w", err)
	}
	goapp.Log.Info().Int32("max_conn", dbConfig.MaxConns).Int32("min_conn", dbConfig.MinConns).Msg("db info")
	addDBLog(dbConfig)
	res, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("can't init db pool: %w", err)
	}
	return res, nil
}

func addDBLog(dbConfig *pgxpool.Config) {
	logFunc := goapp.Log.Debug().Msg
	dbConfig.BeforeConnect = func(ctx context.Context, cc *pgx.ConnConfig) error {
		logFunc("before connect")
		return nil
	}
	dbConfig.AfterConnect = func(ctx context.Context, c *pgx.Conn) error {
		logFunc("after connect")
		return nil
	}
}

func closeLog(f func() error, name string) func() {
	return func() {
		if err := f(); err != nil {
			goapp.Log.Warn().Err(err).Str("client", name).Msg("can't close")
		}
	}
}

func defaultV[T comparable](v, d T) T {
	var e T
	if v == e {
		return d
	}
	return v
}

var (
	version = "DEV"
)

func printBanner() {
	banner := `
               _             __           
    ____ ___  (_)___  __  __/ /____  _____
   / __ ` + "`" + `__ \/ / __ \/ / / / __/ _ \/ ___/
  / / / / / / / / / / /_/ / /_/  __(__  ) 
 /_/ /_/ /_/_/_/ /_/\__,_/\__/\___/____/  

                 __                __
    __  ______  / /___  ____ _____/ /
   / / / / __ \/ / __ \/ __ ` + "`" + `/ __  / 
  / /_/ / /_/ / / /_/ / /_/ / /_/ /  
  \__,_/ .___/_/\____/\__,_/\__,_/   v: %s
      /_/                           
	
%s
________________________________________________________                                                 

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("https://github.com/airenas/minutes"))
}
