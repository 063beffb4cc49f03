package parser

import "strings"

const (
	// TranscriptMarker opens the transcript section of a model response
	TranscriptMarker = "---TRANSCRIPT---"
	// MOMMarker opens the minutes of meeting section of a model response
	MOMMarker = "---MOM---"
)

// Sections keeps the extracted parts of a model response
type Sections struct {
	Transcript string
	MOM        string
}

// Complete returns true if both sections have text
func (s Sections) Complete() bool {
	return s.Transcript != "" && s.MOM != ""
}

// ParseSections extracts transcript and minutes from a delimited model response.
// Both markers must be present, otherwise nothing is extracted.
// The text is split on the first MOMMarker only, so a reversed marker order
// leaves TranscriptMarker content inside MOM.
func ParseSections(text string) Sections {
	res := Sections{}
	if !strings.Contains(text, TranscriptMarker) || !strings.Contains(text, MOMMarker) {
		return res
	}
	before, after, _ := strings.Cut(text, MOMMarker)
	res.Transcript = strings.TrimSpace(strings.ReplaceAll(before, TranscriptMarker, ""))
	res.MOM = strings.TrimSpace(after)
	return res
}
