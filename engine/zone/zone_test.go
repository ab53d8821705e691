package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewZoneDefaults(t *testing.T) {
	z := NewZone([3]float32{1, 2, 3}, [3]float32{10, 0, 20}, 50)

	assert.Equal(t, [3]float32{1, 2, 3}, z.Center())
	assert.Equal(t, [3]float32{10, 0, 20}, z.Size())
	assert.Equal(t, 50, z.RequestedCount())
	assert.False(t, z.FloorLocked())
	assert.Equal(t, uint32(0), z.ObstacleMask())
	assert.Equal(t, float32(0.5), z.CheckRadius())
	assert.Equal(t, 8, z.MaxRetries())
}

func TestNewZoneOptions(t *testing.T) {
	z := NewZone([3]float32{}, [3]float32{4, 4, 4}, 10,
		WithFloorLock(-1.5),
		WithObstacleMask(0b101),
		WithCheckRadius(0.25),
		WithMaxRetries(16),
	)

	assert.True(t, z.FloorLocked())
	assert.Equal(t, float32(-1.5), z.FloorY())
	assert.Equal(t, uint32(0b101), z.ObstacleMask())
	assert.Equal(t, float32(0.25), z.CheckRadius())
	assert.Equal(t, 16, z.MaxRetries())
}

func TestFromBoundsInset(t *testing.T) {
	z := FromBounds([3]float32{-10, 0, -20}, [3]float32{10, 2, 20}, 2, 100)

	assert.Equal(t, [3]float32{0, 1, 0}, z.Center())
	assert.Equal(t, [3]float32{16, 2, 36}, z.Size())
	assert.Equal(t, 100, z.RequestedCount())
}

func TestFromBoundsInsetClampsToZero(t *testing.T) {
	z := FromBounds([3]float32{0, 0, 0}, [3]float32{2, 0, 2}, 5, 10)

	size := z.Size()
	assert.Equal(t, float32(0), size[0])
	assert.Equal(t, float32(0), size[2])
}

func TestFromBoundsForwardsOptions(t *testing.T) {
	z := FromBounds([3]float32{0, 0, 0}, [3]float32{10, 0, 10}, 1, 10,
		WithFloorLock(0.5),
	)

	assert.True(t, z.FloorLocked())
	assert.Equal(t, float32(0.5), z.FloorY())
}
