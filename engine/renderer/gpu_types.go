package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// PointShaderSource is the WGSL program for the particle point list.
// Its FrameUniform struct matches GPUFrameUniform exactly (80 bytes).
//
//go:embed assets/points.wgsl
var PointShaderSource string

const (
	pointVertexEntry   = "vs_main"
	pointFragmentEntry = "fs_main"

	// pointStride is the byte stride of one position or one color (vec3<f32>).
	pointStride = 12
)

// GPUFrameUniform is the GPU-aligned representation of the per-frame uniform buffer.
// Size: 80 bytes (WGSL struct alignment rounds the trailing f32 up to 16).
type GPUFrameUniform struct {
	MVP        [16]float32 // offset  0: model-view-projection matrix (mat4x4<f32>)
	Brightness float32     // offset 64: color multiplier
	_pad       [3]float32  // offset 68: padding to 80 bytes
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.MVP[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(g.Brightness))
	return buf
}
