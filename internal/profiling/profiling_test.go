package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndSnapshotOrder(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	Record("a", 2*time.Millisecond)
	Record("b", 5*time.Millisecond)
	Record("a", 1*time.Millisecond)

	snap := Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, Entry{Name: "b", Total: 5 * time.Millisecond, Calls: 1}, snap[0])
	assert.Equal(t, Entry{Name: "a", Total: 3 * time.Millisecond, Calls: 2}, snap[1])
}

func TestTopNFormat(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	Record("mesh", 4200*time.Microsecond)
	Record("gen", 2100*time.Microsecond)
	Record("gen", 0)
	Record("tiny", time.Microsecond)

	assert.Equal(t, "mesh:4.2ms, gen:2.1ms(x2)", TopN(2))
	assert.Equal(t, "", TopN(0))
	assert.Contains(t, TopN(10), "tiny:0.0ms")
}

func TestTrackAndReset(t *testing.T) {
	ResetFrame()
	stop := Track("section")
	stop()
	require.Len(t, Snapshot(), 1)

	ResetFrame()
	assert.Empty(t, Snapshot())
}
