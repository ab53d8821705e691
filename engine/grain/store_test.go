package grain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBatchCreatesGrainsInOrder(t *testing.T) {
	s := NewStore()

	handles := s.AddBatch([]BatchEntry{
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{2, 0, 0}, Hidden: true},
		{Position: [3]float32{3, 0, 0}},
	})

	require.Len(t, handles, 3)
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, [3]float32{1, 0, 0}, handles[0].Position())
	assert.Equal(t, [3]float32{2, 0, 0}, handles[1].Position())
	assert.True(t, handles[1].Hidden())
	assert.Equal(t, [3]float32{3, 0, 0}, handles[2].Position())
}

func TestAddBatchEmptyIsNoOp(t *testing.T) {
	s := NewStore()

	assert.Nil(t, s.AddBatch(nil))
	assert.Equal(t, 0, s.Count())
}

func TestSnapshotExcludesHidden(t *testing.T) {
	s := NewStore()
	s.AddBatch([]BatchEntry{
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{2, 0, 0}, Hidden: true},
		{Position: [3]float32{3, 0, 0}},
	})

	snap := s.Snapshot(nil)
	require.Len(t, snap, 2)
	assert.Equal(t, [3]float32{1, 0, 0}, snap[0].Position)
	assert.Equal(t, [3]float32{3, 0, 0}, snap[1].Position)
	assert.Equal(t, 3, s.Count())
}

func TestSnapshotReusesDestination(t *testing.T) {
	s := NewStore()
	s.AddBatch([]BatchEntry{{Position: [3]float32{1, 2, 3}}})

	buf := make([]Instance, 0, 8)
	snap := s.Snapshot(buf[:0])
	require.Len(t, snap, 1)

	snap = s.Snapshot(snap[:0])
	require.Len(t, snap, 1)
	assert.Equal(t, [3]float32{1, 2, 3}, snap[0].Position)
}

func TestRemoveRetargetsSurvivingHandles(t *testing.T) {
	s := NewStore()
	handles := s.AddBatch([]BatchEntry{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{2, 0, 0}},
		{Position: [3]float32{3, 0, 0}},
		{Position: [3]float32{4, 0, 0}},
	})

	handles[1].Remove()

	assert.Equal(t, 4, s.Count())
	assert.False(t, handles[1].Valid())
	assert.Equal(t, [3]float32{0, 0, 0}, handles[0].Position())
	assert.Equal(t, [3]float32{2, 0, 0}, handles[2].Position())
	assert.Equal(t, [3]float32{3, 0, 0}, handles[3].Position())
	assert.Equal(t, [3]float32{4, 0, 0}, handles[4].Position())
}

func TestRemoveLastGrain(t *testing.T) {
	s := NewStore()
	handles := s.AddBatch([]BatchEntry{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
	})

	handles[1].Remove()

	assert.Equal(t, 1, s.Count())
	assert.True(t, handles[0].Valid())
	assert.Equal(t, [3]float32{0, 0, 0}, handles[0].Position())
}

func TestInvalidHandleOperationsAreNoOps(t *testing.T) {
	s := NewStore()
	handles := s.AddBatch([]BatchEntry{{Position: [3]float32{1, 0, 0}}})
	h := handles[0]
	h.Remove()

	assert.False(t, h.Valid())
	assert.Equal(t, [3]float32{}, h.Position())
	assert.Equal(t, [4]float32{}, h.Orientation())
	assert.False(t, h.Hidden())

	h.SetPosition(9, 9, 9)
	h.SetHidden(true)
	h.Remove()
	assert.Equal(t, 0, s.Count())
}

func TestClearInvalidatesAllHandles(t *testing.T) {
	s := NewStore()
	handles := s.AddBatch([]BatchEntry{
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{2, 0, 0}},
	})

	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Snapshot(nil))
	for _, h := range handles {
		assert.False(t, h.Valid())
	}
}

func TestSettersReflectInSnapshot(t *testing.T) {
	s := NewStore()
	handles := s.AddBatch([]BatchEntry{{Position: [3]float32{0, 0, 0}}})
	h := handles[0]

	h.SetPosition(5, 6, 7)
	h.SetOrientation([4]float32{0, 1, 0, 0})

	snap := s.Snapshot(nil)
	require.Len(t, snap, 1)
	assert.Equal(t, [3]float32{5, 6, 7}, snap[0].Position)
	assert.Equal(t, [4]float32{0, 1, 0, 0}, snap[0].Orientation)

	h.SetHidden(true)
	assert.Empty(t, s.Snapshot(nil))
	assert.Equal(t, 1, s.Count())

	h.SetHidden(false)
	assert.Len(t, s.Snapshot(nil), 1)
}

func TestTemplateDefaults(t *testing.T) {
	tmpl := NewTemplate("pebble")
	assert.Equal(t, "pebble", tmpl.Name())
	assert.False(t, tmpl.DefaultHidden())

	hidden := NewTemplate("ghost", WithDefaultHidden(true))
	assert.True(t, hidden.DefaultHidden())
}
