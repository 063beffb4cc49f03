package bigquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gbq "cloud.google.com/go/bigquery"
	"github.com/airenas/go-app/pkg/goapp"
	"google.golang.org/api/googleapi"
)

// Schema returns the analytics table schema
func Schema() gbq.Schema {
	return gbq.Schema{
		{Name: "meeting_id", Type: gbq.StringFieldType, Required: true},
		{Name: "gs_uri", Type: gbq.StringFieldType, Required: true},
		{Name: "transcript", Type: gbq.StringFieldType},
		{Name: "mom", Type: gbq.StringFieldType},
		{Name: "created_at", Type: gbq.TimestampFieldType, Required: true},
	}
}

// Admin provisions the analytics table
type Admin struct {
	client *gbq.Client
	opts   Options
}

// NewAdmin creates table admin
func NewAdmin(ctx context.Context, opts Options) (*Admin, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	client, err := gbq.NewClient(ctx, opts.Project)
	if err != nil {
		return nil, fmt.Errorf("can't init bigquery client: %w", err)
	}
	return &Admin{client: client, opts: opts}, nil
}

// Drop deletes the table, missing table is not an error
func (a *Admin) Drop(ctx context.Context) error {
	goapp.Log.Info().Str("table", a.opts.TableID()).Msg("deleting table if exists")
	err := a.table().Delete(ctx)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("can't delete %s: %w", a.opts.TableID(), err)
	}
	return nil
}

// Create creates the table with Schema
func (a *Admin) Create(ctx context.Context) error {
	goapp.Log.Info().Str("table", a.opts.TableID()).Msg("creating table")
	if err := a.table().Create(ctx, &gbq.TableMetadata{Schema: Schema()}); err != nil {
		return fmt.Errorf("can't create %s: %w", a.opts.TableID(), err)
	}
	return nil
}

// Close closes the client
func (a *Admin) Close() error {
	return a.client.Close()
}

func (a *Admin) table() *gbq.Table {
	return a.client.Dataset(a.opts.Dataset).Table(a.opts.Table)
}

func isNotFound(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && gErr.Code == http.StatusNotFound
}
