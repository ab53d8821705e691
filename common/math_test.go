package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-5

func assertVec3Near(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], epsilon)
	}
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 9
	}
	Identity(m)

	for i := 0; i < 16; i++ {
		if i%5 == 0 {
			assert.Equal(t, float32(1), m[i])
		} else {
			assert.Equal(t, float32(0), m[i])
		}
	}
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)
	a := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}

	out := make([]float32, 16)
	Mul4(out, id, a)
	assert.Equal(t, a, out)
	Mul4(out, a, id)
	assert.Equal(t, a, out)
}

func TestMul4AliasesOutput(t *testing.T) {
	a := make([]float32, 16)
	Identity(a)
	a[12] = 3 // translate x by 3

	b := make([]float32, 16)
	Identity(b)
	b[13] = 2 // translate y by 2

	// out aliases a; Mul4 buffers internally so this is allowed.
	Mul4(a, a, b)
	assert.Equal(t, float32(3), a[12])
	assert.Equal(t, float32(2), a[13])
}

func TestQuatMulIdentity(t *testing.T) {
	q := QuatFromEuler(0.3, 1.1, -0.4)
	assert.Equal(t, q, QuatMul(QuatIdentity(), q))
	assert.Equal(t, q, QuatMul(q, QuatIdentity()))
}

func TestQuatFromEulerSingleAxis(t *testing.T) {
	// 90 degrees about Y sends +X to -Z.
	q := QuatFromEuler(0, float32(math.Pi/2), 0)
	assertVec3Near(t, [3]float32{0, 0, -1}, QuatRotate(q, [3]float32{1, 0, 0}))

	// 90 degrees about X sends +Y to +Z.
	q = QuatFromEuler(float32(math.Pi/2), 0, 0)
	assertVec3Near(t, [3]float32{0, 0, 1}, QuatRotate(q, [3]float32{0, 1, 0}))

	// 90 degrees about Z sends +X to +Y.
	q = QuatFromEuler(0, 0, float32(math.Pi/2))
	assertVec3Near(t, [3]float32{0, 1, 0}, QuatRotate(q, [3]float32{1, 0, 0}))
}

func TestQuatFromEulerIsUnit(t *testing.T) {
	q := QuatFromEuler(0.7, -2.1, 0.3)
	mag := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	assert.InDelta(t, 1.0, mag, epsilon)
}

func TestQuatNormalize(t *testing.T) {
	q := QuatNormalize([4]float32{0, 2, 0, 0})
	assert.Equal(t, [4]float32{0, 1, 0, 0}, q)

	assert.Equal(t, QuatIdentity(), QuatNormalize([4]float32{}))
}

func TestQuatRotatePreservesLength(t *testing.T) {
	q := QuatFromEuler(0.4, 1.9, -0.8)
	v := QuatRotate(q, [3]float32{1, 2, 3})
	length := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
	assert.InDelta(t, math.Sqrt(14), length, epsilon)
}

func TestBuildTRSMatrixTranslationAndScale(t *testing.T) {
	out := make([]float32, 16)
	BuildTRSMatrix(out, [3]float32{7, 8, 9}, QuatIdentity(), 2.5)

	assert.Equal(t, float32(2.5), out[0])
	assert.Equal(t, float32(2.5), out[5])
	assert.Equal(t, float32(2.5), out[10])
	assert.Equal(t, float32(7), out[12])
	assert.Equal(t, float32(8), out[13])
	assert.Equal(t, float32(9), out[14])
	assert.Equal(t, float32(1), out[15])
}

func TestBuildTRSMatrixRotationMatchesQuatRotate(t *testing.T) {
	q := QuatFromEuler(0.2, 0.9, -0.5)
	out := make([]float32, 16)
	BuildTRSMatrix(out, [3]float32{}, q, 1.0)

	// Columns of the rotation block are the rotated basis vectors.
	assertVec3Near(t, QuatRotate(q, [3]float32{1, 0, 0}), [3]float32{out[0], out[1], out[2]})
	assertVec3Near(t, QuatRotate(q, [3]float32{0, 1, 0}), [3]float32{out[4], out[5], out[6]})
	assertVec3Near(t, QuatRotate(q, [3]float32{0, 0, 1}), [3]float32{out[8], out[9], out[10]})
}

func TestQuatMulMatchesSequentialRotation(t *testing.T) {
	a := QuatFromEuler(0, 0.6, 0)
	b := QuatFromEuler(0.4, 0, 0)
	v := [3]float32{0.3, -1.2, 0.8}

	combined := QuatRotate(QuatMul(a, b), v)
	sequential := QuatRotate(a, QuatRotate(b, v))
	assertVec3Near(t, sequential, combined)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes[float32](nil))

	data := []float32{1.0}
	b := SliceToBytes(data)
	require.Len(t, b, 4)
	// 1.0 as IEEE 754 little-endian.
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b)
}

func TestStructToBytes(t *testing.T) {
	type color struct {
		R, G, B, A float32
	}
	c := color{R: 1}
	b := StructToBytes(&c)
	require.Len(t, b, 16)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b[:4])
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 5, Coalesce(0, 5))
	assert.Equal(t, 3, Coalesce(3, 5))
	assert.Equal(t, "fallback", Coalesce("", "fallback"))
}
