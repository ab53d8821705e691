package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space convention with depth in [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: target point the camera looks at
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	z0 := eyeX - centerX
	z1 := eyeY - centerY
	z2 := eyeZ - centerZ
	val := float64(z0*z0 + z1*z1 + z2*z2)
	if val == 0 {
		val = 1
	}
	invLen := 1.0 / float32(math.Sqrt(val))
	z0 *= invLen
	z1 *= invLen
	z2 *= invLen

	x0 := upY*z2 - upZ*z1
	x1 := upZ*z0 - upX*z2
	x2 := upX*z1 - upY*z0
	val = float64(x0*x0 + x1*x1 + x2*x2)
	if val == 0 {
		val = 1
	}
	invLen = 1.0 / float32(math.Sqrt(val))
	x0 *= invLen
	x1 *= invLen
	x2 *= invLen

	y0 := z1*x2 - z2*x1
	y1 := z2*x0 - z0*x2
	y2 := z0*x1 - z1*x0

	out[0], out[4], out[8], out[12] = x0, x1, x2, -(x0*eyeX + x1*eyeY + x2*eyeZ)
	out[1], out[5], out[9], out[13] = y0, y1, y2, -(y0*eyeX + y1*eyeY + y2*eyeZ)
	out[2], out[6], out[10], out[14] = z0, z1, z2, -(z0*eyeX + z1*eyeY + z2*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// QuatIdentity returns the identity orientation quaternion in (x, y, z, w) layout.
//
// Returns:
//   - [4]float32: the identity quaternion
func QuatIdentity() [4]float32 {
	return [4]float32{0, 0, 0, 1}
}

// QuatMul multiplies two quaternions (Hamilton product) in (x, y, z, w) layout.
// The result applies b first, then a, matching matrix composition a*b.
//
// Parameters:
//   - a: left-hand quaternion
//   - b: right-hand quaternion
//
// Returns:
//   - [4]float32: the product quaternion
func QuatMul(a, b [4]float32) [4]float32 {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]
	return [4]float32{
		aw*bx + ax*bw + ay*bz - az*by,
		aw*by - ax*bz + ay*bw + az*bx,
		aw*bz + ax*by - ay*bx + az*bw,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

// QuatFromEuler builds a unit quaternion from Euler angles in radians using the
// engine's Y * X * Z rotation order (yaw-pitch-roll), matching BuildTRSMatrix.
//
// Parameters:
//   - rx: rotation around the X axis in radians
//   - ry: rotation around the Y axis in radians
//   - rz: rotation around the Z axis in radians
//
// Returns:
//   - [4]float32: the combined orientation quaternion (x, y, z, w)
func QuatFromEuler(rx, ry, rz float32) [4]float32 {
	sx, cx := sincosHalf(rx)
	sy, cy := sincosHalf(ry)
	sz, cz := sincosHalf(rz)

	qy := [4]float32{0, sy, 0, cy}
	qx := [4]float32{sx, 0, 0, cx}
	qz := [4]float32{0, 0, sz, cz}
	return QuatMul(QuatMul(qy, qx), qz)
}

// sincosHalf returns sin and cos of half the given angle as float32.
func sincosHalf(angle float32) (sin, cos float32) {
	s, c := math.Sincos(float64(angle) / 2.0)
	return float32(s), float32(c)
}

// QuatNormalize returns the unit-length version of q. Returns the identity
// quaternion if q has zero magnitude.
//
// Parameters:
//   - q: the quaternion to normalize
//
// Returns:
//   - [4]float32: the normalized quaternion
func QuatNormalize(q [4]float32) [4]float32 {
	mag := float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if mag == 0 {
		return QuatIdentity()
	}
	inv := float32(1.0 / math.Sqrt(mag))
	return [4]float32{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// QuatRotate rotates vector v by unit quaternion q.
//
// Parameters:
//   - q: the unit rotation quaternion (x, y, z, w)
//   - v: the vector to rotate
//
// Returns:
//   - [3]float32: the rotated vector
func QuatRotate(q [4]float32, v [3]float32) [3]float32 {
	// v' = v + 2w(u x v) + 2(u x (u x v)) with u = (qx, qy, qz)
	ux, uy, uz, w := q[0], q[1], q[2], q[3]

	cx := uy*v[2] - uz*v[1]
	cy := uz*v[0] - ux*v[2]
	cz := ux*v[1] - uy*v[0]

	ccx := uy*cz - uz*cy
	ccy := uz*cx - ux*cz
	ccz := ux*cy - uy*cx

	return [3]float32{
		v[0] + 2*(w*cx+ccx),
		v[1] + 2*(w*cy+ccy),
		v[2] + 2*(w*cz+ccz),
	}
}

// BuildTRSMatrix constructs a 4x4 model matrix from position, quaternion
// orientation, and a uniform scale factor: translation * rotation * scale.
// The matrix is written in column-major order.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - q: unit orientation quaternion (x, y, z, w)
//   - scale: uniform scale factor applied to all axes
func BuildTRSMatrix(out []float32, pos [3]float32, q [4]float32, scale float32) {
	x, y, z, w := q[0], q[1], q[2], q[3]

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	out[0] = (1 - 2*(yy+zz)) * scale
	out[1] = 2 * (xy + wz) * scale
	out[2] = 2 * (xz - wy) * scale
	out[3] = 0

	out[4] = 2 * (xy - wz) * scale
	out[5] = (1 - 2*(xx+zz)) * scale
	out[6] = 2 * (yz + wx) * scale
	out[7] = 0

	out[8] = 2 * (xz + wy) * scale
	out[9] = 2 * (yz - wx) * scale
	out[10] = (1 - 2*(xx+yy)) * scale
	out[11] = 0

	out[12] = pos[0]
	out[13] = pos[1]
	out[14] = pos[2]
	out[15] = 1
}
