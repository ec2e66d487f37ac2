package trace

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingRecordsSnapshots(t *testing.T) {
	r := NewRing(8)

	fn := Func(r.Trace)
	fn = fn(stubFrame{"<module>", 1}, KindCall, noneArg{})
	require.NotNil(t, fn)
	fn(stubFrame{"<module>", 2}, KindLine, noneArg{})

	evs := r.Snapshot()
	require.Len(t, evs, 2)
	assert.Equal(t, KindCall, evs[0].Kind)
	assert.Equal(t, "<module>", evs[0].Func)
	assert.Equal(t, 1, evs[0].Line)
	assert.Equal(t, "None", evs[0].Arg)
	assert.Equal(t, KindLine, evs[1].Kind)
	assert.Less(t, evs[0].Seq, evs[1].Seq)
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing(4)
	for i := 1; i <= 10; i++ {
		r.Trace(stubFrame{"f", i}, KindLine, i)
	}

	assert.Equal(t, 4, r.Len())
	evs := r.Snapshot()
	require.Len(t, evs, 4)
	for i, ev := range evs {
		assert.Equal(t, 7+i, ev.Line, "oldest surviving events come first")
	}
}

func TestRingDump(t *testing.T) {
	r := NewRing(4)
	r.Trace(stubFrame{"work", 3}, KindException, "boom")

	var buf bytes.Buffer
	require.NoError(t, r.Dump(&buf))
	assert.Contains(t, buf.String(), "exception")
	assert.Contains(t, buf.String(), `work:3 arg="boom"`)
}

func TestRingDefaultCapacity(t *testing.T) {
	r := NewRing(0)
	for i := 0; i < 300; i++ {
		r.Trace(stubFrame{"f", i}, KindLine, nil)
	}
	assert.Equal(t, 256, r.Len())
}

func TestSnapshotWithoutFrame(t *testing.T) {
	ev := Snapshot(nil, KindLine, fmt.Errorf("odd payload"))
	assert.Equal(t, "", ev.Func)
	assert.Equal(t, 0, ev.Line)
	assert.Equal(t, "odd payload", ev.Arg)
}
