package assets

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLogCounts(t *testing.T) {
	log := NewRunLog()
	log.Record(Event{Kind: EventSkip, Path: "a.css"})
	log.Record(Event{Kind: EventSkip, Path: "b.css"})
	log.Record(Event{Kind: EventCreate, Path: "c.css"})

	counts := log.Counts()
	assert.Equal(t, 2, counts[EventSkip])
	assert.Equal(t, 1, counts[EventCreate])
	assert.Len(t, log.Events(), 3)
}

func TestRunLogUniqueID(t *testing.T) {
	a := NewRunLog()
	b := NewRunLog()
	require.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestRunLogConcurrentRecord(t *testing.T) {
	log := NewRunLog()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				log.Record(Event{Kind: EventCreate, Path: "x"})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1600, log.Counts()[EventCreate])
}

func TestEventsReturnsCopy(t *testing.T) {
	log := NewRunLog()
	log.Record(Event{Kind: EventUpdate, Path: "a"})
	events := log.Events()
	events[0].Path = "mutated"
	assert.Equal(t, "a", log.Events()[0].Path)
}
