package api

import (
	"encoding/json"
	"errors"

	"github.com/airenas/minutes/internal/pkg/utils"
)

// Result is the outcome of the generative analysis.
// On success Transcript and MOM are set, otherwise Error (and maybe RawOutput).
type Result struct {
	Transcript string
	MOM        string
	Error      string
	RawOutput  string
	// Err keeps the typed failure, it is not serialized
	Err error
}

// NewSuccess creates a successful result
func NewSuccess(transcript, mom string) *Result {
	return &Result{Transcript: transcript, MOM: mom}
}

// NewFailure creates a failed result, err kind tells the failure reason
func NewFailure(err error, raw string) *Result {
	res := &Result{Err: err, RawOutput: raw}
	var e *utils.Error
	if errors.As(err, &e) {
		res.Error = e.Unwrap().Error()
	} else if err != nil {
		res.Error = err.Error()
	}
	return res
}

// Failed returns true if the result must not be persisted
func (r *Result) Failed() bool {
	return r.Error != "" || r.Transcript == "" || r.MOM == ""
}

type successJSON struct {
	Transcript string `json:"transcript"`
	MOM        string `json:"mom"`
}

type failureJSON struct {
	Error     string `json:"error"`
	RawOutput string `json:"raw_output,omitempty"`
}

// MarshalJSON writes either {transcript, mom} or {error, raw_output?}
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(failureJSON{Error: r.errorText(), RawOutput: r.RawOutput})
	}
	return json.Marshal(successJSON{Transcript: r.Transcript, MOM: r.MOM})
}

// errorText says "Parsing failed" only for parse errors or when no error is attached
func (r Result) errorText() string {
	if r.Error != "" {
		return r.Error
	}
	if r.Err == nil {
		return "Parsing failed"
	}
	kind := utils.KindOf(r.Err)
	if kind == utils.KindParse {
		return "Parsing failed"
	}
	if kind == utils.KindUnknown {
		return "failed"
	}
	return kind.String() + " failed"
}

// UnmarshalJSON reads both result shapes
func (r *Result) UnmarshalJSON(b []byte) error {
	var v struct {
		successJSON
		failureJSON
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Result{Transcript: v.Transcript, MOM: v.MOM, Error: v.Error, RawOutput: v.RawOutput}
	return nil
}
