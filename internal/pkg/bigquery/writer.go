package bigquery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	gbq "cloud.google.com/go/bigquery"
	"github.com/airenas/go-app/pkg/goapp"
	perrors "github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/airenas/minutes/internal/pkg/persistence"
	"github.com/airenas/minutes/internal/pkg/transcriber/api"
	"github.com/airenas/minutes/internal/pkg/utils"
)

type inserter interface {
	Put(ctx context.Context, src interface{}) error
}

// Options keeps analytics table location
type Options struct {
	Project string
	Dataset string
	Table   string
}

// TableID returns full table name
func (o Options) TableID() string {
	return fmt.Sprintf("%s.%s.%s", o.Project, o.Dataset, o.Table)
}

func (o Options) validate() error {
	if o.Project == "" {
		return perrors.New("no project")
	}
	if o.Dataset == "" {
		return perrors.New("no dataset")
	}
	if o.Table == "" {
		return perrors.New("no table")
	}
	return nil
}

// Writer appends meeting rows to a BigQuery table
type Writer struct {
	ins       inserter
	table     string
	now       func() time.Time
	closeFunc func() error
}

// NewWriter creates BigQuery row writer
func NewWriter(ctx context.Context, opts Options) (*Writer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	client, err := gbq.NewClient(ctx, opts.Project)
	if err != nil {
		return nil, fmt.Errorf("can't init bigquery client: %w", err)
	}
	goapp.Log.Info().Str("table", opts.TableID()).Msg("init bigquery writer")
	return &Writer{ins: client.Dataset(opts.Dataset).Table(opts.Table).Inserter(), table: opts.TableID(),
		now: time.Now, closeFunc: client.Close}, nil
}

// Close closes the client
func (w *Writer) Close() error {
	if w.closeFunc == nil {
		return nil
	}
	return w.closeFunc()
}

// InsertRow appends one row, fails on any per row error
func (w *Writer) InsertRow(ctx context.Context, res *api.Result, meetingID int, gsURI string) error {
	rec, err := persistence.NewMeetingRecord(res, meetingID, gsURI, w.now())
	if err != nil {
		return err
	}
	goapp.Log.Info().Int("meetingID", meetingID).Str("table", w.table).Msg("inserting row")
	if err := w.ins.Put(ctx, &row{rec: rec}); err != nil {
		return utils.NewError(utils.KindPersistence, fmt.Errorf("can't insert into %s: %w", w.table, rowErrors(err)))
	}
	goapp.Log.Info().Int("meetingID", meetingID).Msg("inserted")
	return nil
}

type row struct {
	rec *persistence.MeetingRecord
}

// Save implements bigquery.ValueSaver
func (r *row) Save() (map[string]gbq.Value, string, error) {
	return map[string]gbq.Value{
		"meeting_id": strconv.Itoa(r.rec.MeetingID),
		"gs_uri":     r.rec.GsURI,
		"transcript": r.rec.Transcript,
		"mom":        r.rec.MOM,
		"created_at": r.rec.Created,
	}, "", nil
}

// rowErrors flattens per row insert errors into one error
func rowErrors(err error) error {
	var pme gbq.PutMultiError
	if !errors.As(err, &pme) {
		return err
	}
	var res error
	for _, re := range pme {
		for _, e := range re.Errors {
			res = multierr.Append(res, fmt.Errorf("row %d: %w", re.RowIndex, e))
		}
	}
	if res == nil {
		return err
	}
	return res
}
