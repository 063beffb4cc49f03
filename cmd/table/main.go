package main

import (
	"context"
	"fmt"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/color"
	"github.com/spf13/viper"

	"github.com/airenas/minutes/internal/pkg/bigquery"
	"github.com/airenas/minutes/internal/pkg/persistence"
	"github.com/airenas/minutes/internal/pkg/postgres"
)

// tableAdmin recreates the analytics table
type tableAdmin interface {
	Drop(ctx context.Context) error
	Create(ctx context.Context) error
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("no .env loaded: %v\n", err)
	}
	goapp.StartWithDefault()

	printBanner()

	ctx := context.Background()
	admin, closeFunc, err := newAdmin(ctx, goapp.Config)
	if err != nil {
		goapp.Log.Fatal().Err(err).Msg("can't init table admin")
	}
	defer closeFunc()

	reset(ctx, admin)
}

// reset logs failures and goes on, a missing table is not an error
func reset(ctx context.Context, admin tableAdmin) {
	if err := admin.Drop(ctx); err != nil {
		goapp.Log.Error().Err(err).Msg("can't drop table")
	} else {
		goapp.Log.Info().Msg("table dropped")
	}
	if err := admin.Create(ctx); err != nil {
		goapp.Log.Error().Err(err).Msg("can't create table")
	} else {
		goapp.Log.Info().Msg("table created")
	}
}

func newAdmin(ctx context.Context, cfg *viper.Viper) (tableAdmin, func(), error) {
	driver := defaultS(cfg.GetString("analytics.driver"), "bigquery")
	table := defaultS(cfg.GetString("analytics.table"), persistence.DefaultTable)
	goapp.Log.Info().Str("driver", driver).Str("table", table).Msg("analytics")
	switch driver {
	case "bigquery":
		res, err := bigquery.NewAdmin(ctx, bigquery.Options{Project: cfg.GetString("analytics.project"),
			Dataset: cfg.GetString("analytics.dataset"), Table: table})
		if err != nil {
			return nil, nil, err
		}
		return res, func() { _ = res.Close() }, nil
	case "postgres":
		dbPool, err := pgxpool.New(ctx, cfg.GetString("db.url"))
		if err != nil {
			return nil, nil, fmt.Errorf("can't init db pool: %w", err)
		}
		res, err := postgres.NewAdmin(dbPool, table)
		if err != nil {
			dbPool.Close()
			return nil, nil, err
		}
		return res, dbPool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown analytics driver '%s'", driver)
}

func defaultS(s, d string) string {
	if s == "" {
		return d
	}
	return s
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

   __        __    __   
  / /_____ _/ /_  / /__ 
 / __/ __ ` + "`" + `/ __ \/ / _ \
/ /_/ /_/ / /_/ / /  __/
\__/\__,_/_.___/_/\___/  v: %s

%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("https://github.com/airenas/minutes"))
}
