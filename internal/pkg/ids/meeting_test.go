package ids

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeetingIDGenerator(t *testing.T) {
	for _, n := range []string{"", "random", "monotonic", "content"} {
		g, err := NewMeetingIDGenerator(n)
		assert.Nil(t, err, n)
		assert.NotNil(t, g, n)
	}
	_, err := NewMeetingIDGenerator("olia")
	assert.NotNil(t, err)
}

func TestRandomMeetingID_Range(t *testing.T) {
	g := NewRandomMeetingID()
	for i := 0; i < 10000; i++ {
		id := g.NewMeetingID("")
		require.GreaterOrEqual(t, id, MinMeetingID)
		require.LessOrEqual(t, id, MaxMeetingID)
	}
}

func TestRandomMeetingID_Bounds(t *testing.T) {
	g := &RandomMeetingID{intn: func(int) int { return 0 }}
	assert.Equal(t, 10000, g.NewMeetingID(""))
	g = &RandomMeetingID{intn: func(n int) int { return n - 1 }}
	assert.Equal(t, 99999, g.NewMeetingID(""))
}

func TestMonotonicMeetingID(t *testing.T) {
	g := &MonotonicMeetingID{next: meetingIDRange - 2}
	assert.Equal(t, 99998, g.NewMeetingID(""))
	assert.Equal(t, 99999, g.NewMeetingID(""))
	assert.Equal(t, 10000, g.NewMeetingID(""))
	assert.Equal(t, 10001, g.NewMeetingID(""))
}

func TestMonotonicMeetingID_Seed(t *testing.T) {
	g := NewMonotonicMeetingID(time.Unix(90001, 0))
	assert.Equal(t, 10001, g.NewMeetingID(""))
}

func TestMonotonicMeetingID_Concurrent(t *testing.T) {
	g := NewMonotonicMeetingID(time.Now())
	res := make(chan int, 100)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res <- g.NewMeetingID("")
		}()
	}
	wg.Wait()
	close(res)
	seen := map[int]bool{}
	for id := range res {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Equal(t, 100, len(seen))
}

func TestContentMeetingID(t *testing.T) {
	g := &ContentMeetingID{}
	a := g.NewMeetingID("gs://b/a.wav")
	assert.Equal(t, a, g.NewMeetingID("gs://b/a.wav"))
	assert.GreaterOrEqual(t, a, MinMeetingID)
	assert.LessOrEqual(t, a, MaxMeetingID)
	b := g.NewMeetingID("gs://b/b.wav")
	assert.GreaterOrEqual(t, b, MinMeetingID)
	assert.LessOrEqual(t, b, MaxMeetingID)
}
