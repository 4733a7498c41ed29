package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterial is the GPU-aligned material uniform. Matches the WGSL Material struct in the mesh shader.
// Size: 32 bytes (vec4<f32> color, u32 shading, 3 × u32 padding).
type GPUMaterial struct {
	Color   [4]float32 // offset  0: RGBA multiplier applied to the sampled texel (16 bytes)
	Shading uint32     // offset 16: ShadingModel (4 bytes)
	_       [3]uint32  // offset 20: padding to 32 bytes
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Color[3]))
	binary.LittleEndian.PutUint32(buf[16:20], g.Shading)
	return buf
}
