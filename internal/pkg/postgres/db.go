package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/airenas/minutes/internal/pkg/persistence"
	"github.com/airenas/minutes/internal/pkg/transcriber/api"
	"github.com/airenas/minutes/internal/pkg/utils"
)

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

var tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// DB appends meeting rows to postgresql table
type DB struct {
	pool  execer
	table string
	now   func() time.Time
}

// NewDB creates DB instance
func NewDB(pool *pgxpool.Pool, table string) (*DB, error) {
	if pool == nil {
		return nil, errors.New("no pool")
	}
	return newDB(pool, table)
}

func newDB(pool execer, table string) (*DB, error) {
	if pool == nil {
		return nil, errors.New("no pool")
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return &DB{pool: pool, table: table, now: time.Now}, nil
}

// InsertRow inserts one meeting row
func (db *DB) InsertRow(ctx context.Context, res *api.Result, meetingID int, gsURI string) error {
	rec, err := persistence.NewMeetingRecord(res, meetingID, gsURI, db.now())
	if err != nil {
		return err
	}
	goapp.Log.Info().Int("meetingID", meetingID).Str("table", db.table).Msg("inserting row")
	cmd, err := db.pool.Exec(ctx, `INSERT INTO `+db.table+`(meeting_id, gs_uri, transcript, mom, created_at) 
	VALUES($1, $2, $3, $4, $5)`, strconv.Itoa(rec.MeetingID), rec.GsURI, rec.Transcript, rec.MOM, rec.Created)
	if err != nil {
		return utils.NewError(utils.KindPersistence, fmt.Errorf("can't insert meeting: %w", err))
	}
	if cmd.RowsAffected() != 1 {
		return utils.NewError(utils.KindPersistence, errors.Errorf("can't insert meeting, rows affected %d", cmd.RowsAffected()))
	}
	return nil
}

func validateTable(table string) error {
	if !tableNameRegexp.MatchString(table) {
		return errors.Errorf("wrong table name '%s'", table)
	}
	return nil
}
