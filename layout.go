package quadra

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/gogpu/gputypes"
)

// InstanceStride is the encoded size of one ObjectInstance in bytes.
// Layout:
//
//	pos_size (vec4<f32>) = 16 bytes (location +0)
//	radii    (vec4<f32>) = 16 bytes (location +1)
//	uv       (vec4<f32>) = 16 bytes (location +2)
//	extra    (vec2<f32>) =  8 bytes (location +3) z, rotation
//	color    (u32)       =  4 bytes (location +4)
//	color2   (u32)       =  4 bytes (location +5)
//	type_id  (u32)       =  4 bytes (location +6)
//
// Total = 68 bytes per instance.
const InstanceStride = 68

// InstanceBufferLayout returns the per-instance vertex buffer layout for a
// WebGPU pipeline whose instance attributes start at shader location first.
// Renderers draw each Batch with instance range [Start, Start+Count).
func InstanceBufferLayout(first uint32) gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: InstanceStride,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: first},      // pos_size
			{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: first + 1}, // radii
			{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: first + 2}, // uv
			{Format: gputypes.VertexFormatFloat32x2, Offset: 48, ShaderLocation: first + 3}, // z, rotation
			{Format: gputypes.VertexFormatUint32, Offset: 56, ShaderLocation: first + 4},    // color
			{Format: gputypes.VertexFormatUint32, Offset: 60, ShaderLocation: first + 5},    // color2
			{Format: gputypes.VertexFormatUint32, Offset: 64, ShaderLocation: first + 6},    // type_id
		},
	}
}

// AppendInstanceBytes encodes insts little-endian in InstanceBufferLayout
// order and appends them to dst, ready for a queue buffer write.
func AppendInstanceBytes(dst []byte, insts []ObjectInstance) []byte {
	dst = slices.Grow(dst, len(insts)*InstanceStride)
	le := binary.LittleEndian
	for i := range insts {
		in := &insts[i]
		dst = appendFloats(dst, in.PosSize[:])
		dst = appendFloats(dst, in.Radii[:])
		dst = appendFloats(dst, in.UV[:])
		dst = appendFloats(dst, in.Extra[:])
		dst = le.AppendUint32(dst, in.Color)
		dst = le.AppendUint32(dst, in.Color2)
		dst = le.AppendUint32(dst, in.TypeID)
	}
	return dst
}

func appendFloats(dst []byte, v []float32) []byte {
	for _, f := range v {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
