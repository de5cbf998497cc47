package common

import (
	"unsafe"

	"github.com/chewxy/math32"
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

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
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

// Perspective creates a perspective projection matrix compatible with WebGPU clip space [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// RotationXYZ writes a rotation matrix built from Euler angles applied in X, Y, Z order
// (R = Rx * Ry * Rz), the convention used for the assembly's pitch/yaw.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - rotX, rotY, rotZ: rotation angles in radians around each axis
func RotationXYZ(out []float32, rotX, rotY, rotZ float32) {
	cx, sx := math32.Cos(rotX), math32.Sin(rotX)
	cy, sy := math32.Cos(rotY), math32.Sin(rotY)
	cz, sz := math32.Cos(rotZ), math32.Sin(rotZ)

	out[0] = cy * cz
	out[1] = sx*sy*cz + cx*sz
	out[2] = -cx*sy*cz + sx*sz
	out[3] = 0

	out[4] = -cy * sz
	out[5] = -sx*sy*sz + cx*cz
	out[6] = cx*sy*sz + sx*cz
	out[7] = 0

	out[8] = sy
	out[9] = -sx * cy
	out[10] = cx * cy
	out[11] = 0

	out[12], out[13], out[14], out[15] = 0, 0, 0, 1
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
	val := z0*z0 + z1*z1 + z2*z2
	if val == 0 {
		val = 1
	}
	invLen := 1.0 / math32.Sqrt(val)
	z0 *= invLen
	z1 *= invLen
	z2 *= invLen

	x0 := upY*z2 - upZ*z1
	x1 := upZ*z0 - upX*z2
	x2 := upX*z1 - upY*z0
	val = x0*x0 + x1*x1 + x2*x2
	if val == 0 {
		val = 1
	}
	invLen = 1.0 / math32.Sqrt(val)
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

// TransformPoint multiplies the point (x, y, z, 1) by a column-major 4x4 matrix.
//
// Parameters:
//   - m: the matrix (16 elements, column-major)
//   - x, y, z: the point to transform
//
// Returns:
//   - cx, cy, cz, cw: the transformed homogeneous coordinates
func TransformPoint(m []float32, x, y, z float32) (cx, cy, cz, cw float32) {
	cx = m[0]*x + m[4]*y + m[8]*z + m[12]
	cy = m[1]*x + m[5]*y + m[9]*z + m[13]
	cz = m[2]*x + m[6]*y + m[10]*z + m[14]
	cw = m[3]*x + m[7]*y + m[11]*z + m[15]
	return
}

// Approach moves v toward target by the fraction k of the remaining gap.
// Repeated calls decay the gap exponentially and never close it in finite steps for 0 < k < 1.
//
// Parameters:
//   - v: the current value
//   - target: the value being approached
//   - k: the smoothing factor
//
// Returns:
//   - float64: the advanced value
func Approach(v, target, k float64) float64 {
	return v + (target-v)*k
}
