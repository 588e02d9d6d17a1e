// Package audio converts and plays synthesized waveforms.
package audio

import (
	"encoding/binary"
	"math"
)

// Float32ToPCM16 converts mono float32 samples in [-1, 1] to interleaved
// signed 16-bit little-endian PCM bytes, clamping out-of-range values.
func Float32ToPCM16(samples []float32) []byte {
	out := make([]byte, 2*len(samples))
	for i, sample := range samples {
		clamped := math.Max(-1.0, math.Min(1.0, float64(sample)))
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(clamped*math.MaxInt16)))
	}
	return out
}
