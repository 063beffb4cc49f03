package ids

import (
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// MinMeetingID is the lowest generated meeting id
	MinMeetingID = 10000
	// MaxMeetingID is the highest generated meeting id
	MaxMeetingID = 99999

	meetingIDRange = MaxMeetingID - MinMeetingID + 1
)

// MeetingIDGenerator provides ids for processed meetings.
// Ids are not checked for prior use.
type MeetingIDGenerator interface {
	NewMeetingID(gsURI string) int
}

// NewMeetingIDGenerator returns generator by strategy name: random, monotonic or content
func NewMeetingIDGenerator(name string) (MeetingIDGenerator, error) {
	switch name {
	case "", "random":
		return NewRandomMeetingID(), nil
	case "monotonic":
		return NewMonotonicMeetingID(time.Now()), nil
	case "content":
		return &ContentMeetingID{}, nil
	}
	return nil, errors.Errorf("unknown meeting id strategy '%s'", name)
}

// RandomMeetingID returns uniformly distributed ids in [MinMeetingID, MaxMeetingID]
type RandomMeetingID struct {
	intn func(int) int
}

// NewRandomMeetingID creates random generator
func NewRandomMeetingID() *RandomMeetingID {
	return &RandomMeetingID{intn: rand.Intn}
}

// NewMeetingID returns random id
func (g *RandomMeetingID) NewMeetingID(string) int {
	return MinMeetingID + g.intn(meetingIDRange)
}

// MonotonicMeetingID returns increasing ids, wraps to MinMeetingID after MaxMeetingID
type MonotonicMeetingID struct {
	lock sync.Mutex
	next int
}

// NewMonotonicMeetingID creates monotonic generator, start point is derived from seed
func NewMonotonicMeetingID(seed time.Time) *MonotonicMeetingID {
	return &MonotonicMeetingID{next: int(seed.Unix() % meetingIDRange)}
}

// NewMeetingID returns next id
func (g *MonotonicMeetingID) NewMeetingID(string) int {
	g.lock.Lock()
	defer g.lock.Unlock()
	res := MinMeetingID + g.next
	g.next = (g.next + 1) % meetingIDRange
	return res
}

// ContentMeetingID derives id from the stored object URI, same URI - same id
type ContentMeetingID struct{}

// NewMeetingID returns id derived from gsURI
func (g *ContentMeetingID) NewMeetingID(gsURI string) int {
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(gsURI))
	return MinMeetingID + int(binary.BigEndian.Uint32(u[:4])%meetingIDRange)
}
