package persistence

import (
	"time"

	"github.com/pkg/errors"

	"github.com/airenas/minutes/internal/pkg/transcriber/api"
	"github.com/airenas/minutes/internal/pkg/utils"
)

// DefaultTable is the analytics table name
const DefaultTable = "tbl_mom_transcript"

type (

	//MeetingRecord analytics table row
	MeetingRecord struct {
		MeetingID  int
		GsURI      string
		Transcript string
		MOM        string
		Created    time.Time
	}
)

// NewMeetingRecord makes a row from a successful result, created is stored in UTC
func NewMeetingRecord(res *api.Result, meetingID int, gsURI string, created time.Time) (*MeetingRecord, error) {
	if res == nil {
		return nil, utils.NewError(utils.KindPersistence, errors.New("no result"))
	}
	if res.Failed() {
		return nil, utils.NewError(utils.KindPersistence, errors.Errorf("failed result can't be saved: %s", res.Error))
	}
	if gsURI == "" {
		return nil, utils.NewError(utils.KindPersistence, errors.New("no gs uri"))
	}
	return &MeetingRecord{MeetingID: meetingID, GsURI: gsURI, Transcript: res.Transcript, MOM: res.MOM,
		Created: created.UTC()}, nil
}
