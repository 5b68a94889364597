package mobx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Numeric buffers travel as raw little-endian bytes. Reinterpreting
// instead of re-encoding keeps NaN payloads and denormals bit-exact
// across a round trip.

func float32sToBytes(values []float32) []byte {
	if len(values) == 0 {
		return nil
	}
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32s(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("float buffer length %d is not a multiple of 4", len(data))
	}
	if len(data) == 0 {
		return nil, nil
	}
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}

func uint16sToBytes(values []uint16) []byte {
	if len(values) == 0 {
		return nil
	}
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}

func bytesToUint16s(data []byte) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("index buffer length %d is not a multiple of 2", len(data))
	}
	if len(data) == 0 {
		return nil, nil
	}
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return out, nil
}

func uint32sToBytes(values []uint32) []byte {
	if len(values) == 0 {
		return nil
	}
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func bytesToUint32s(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("word buffer length %d is not a multiple of 4", len(data))
	}
	if len(data) == 0 {
		return nil, nil
	}
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return out, nil
}
