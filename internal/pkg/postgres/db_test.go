package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/airenas/minutes/internal/pkg/test"
	"github.com/airenas/minutes/internal/pkg/transcriber/api"
	"github.com/airenas/minutes/internal/pkg/utils"
)

type execMock struct{ mock.Mock }

func (m *execMock) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

var testNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func initTest(t *testing.T, tag string, err error) (*DB, *execMock) {
	t.Helper()
	em := &execMock{}
	em.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag(tag), err)
	db, errDB := newDB(em, "tbl_mom_transcript")
	require.Nil(t, errDB)
	db.now = func() time.Time { return testNow }
	return db, em
}

func TestInsertRow(t *testing.T) {
	db, em := initTest(t, "INSERT 0 1", nil)

	err := db.InsertRow(test.Ctx(t), api.NewSuccess("tr", "mom"), 54321, "gs://b/k.wav")

	require.Nil(t, err)
	require.Equal(t, 1, len(em.Calls))
	assert.True(t, strings.HasPrefix(em.Calls[0].Arguments[1].(string), "INSERT INTO tbl_mom_transcript("))
	assert.Equal(t, []any{"54321", "gs://b/k.wav", "tr", "mom", testNow}, em.Calls[0].Arguments[2])
}

func TestInsertRow_FailedResult(t *testing.T) {
	db, em := initTest(t, "INSERT 0 1", nil)

	err := db.InsertRow(test.Ctx(t), &api.Result{Error: "olia"}, 54321, "gs://b/k.wav")

	assert.True(t, utils.IsKind(err, utils.KindPersistence))
	assert.Equal(t, 0, len(em.Calls))
}

func TestInsertRow_Fail(t *testing.T) {
	db, _ := initTest(t, "", errors.New("olia"))

	err := db.InsertRow(test.Ctx(t), api.NewSuccess("tr", "mom"), 54321, "gs://b/k.wav")

	assert.True(t, utils.IsKind(err, utils.KindPersistence))
}

func TestInsertRow_NoRows(t *testing.T) {
	db, _ := initTest(t, "INSERT 0 0", nil)

	err := db.InsertRow(test.Ctx(t), api.NewSuccess("tr", "mom"), 54321, "gs://b/k.wav")

	assert.True(t, utils.IsKind(err, utils.KindPersistence))
}

func TestNewDB(t *testing.T) {
	_, err := NewDB(nil, "t")
	assert.NotNil(t, err)
	_, err = newDB(&execMock{}, "t; drop table x")
	assert.NotNil(t, err)
	_, err = newDB(&execMock{}, "analytics.tbl_mom_transcript")
	assert.Nil(t, err)
}

func Test_validateTable(t *testing.T) {
	tests := []struct {
		table   string
		wantErr bool
	}{
		{table: "tbl_mom_transcript"},
		{table: "s.t"},
		{table: "", wantErr: true},
		{table: "1t", wantErr: true},
		{table: "a.b.c", wantErr: true},
		{table: "t x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, validateTable(tt.table) != nil)
		})
	}
}

func TestAdmin(t *testing.T) {
	em := &execMock{}
	em.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag(""), nil)
	a, err := newAdmin(em, "tbl")
	require.Nil(t, err)

	require.Nil(t, a.Drop(test.Ctx(t)))
	require.Nil(t, a.Create(test.Ctx(t)))

	require.Equal(t, 2, len(em.Calls))
	assert.Equal(t, "DROP TABLE IF EXISTS tbl", em.Calls[0].Arguments[1])
	create := em.Calls[1].Arguments[1].(string)
	assert.True(t, strings.HasPrefix(create, "CREATE TABLE tbl ("))
	for _, c := range []string{"meeting_id TEXT NOT NULL", "gs_uri TEXT NOT NULL", "transcript TEXT,", "mom TEXT,",
		"created_at TIMESTAMPTZ NOT NULL"} {
		assert.Contains(t, create, c)
	}
}

func TestAdmin_Fail(t *testing.T) {
	em := &execMock{}
	em.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag(""), errors.New("olia"))
	a, err := newAdmin(em, "tbl")
	require.Nil(t, err)

	assert.NotNil(t, a.Drop(test.Ctx(t)))
	assert.NotNil(t, a.Create(test.Ctx(t)))
}
