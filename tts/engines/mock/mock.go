// Package mock provides stub acoustic and vocoder backends for testing
// the synthesis pipeline without model files.
package mock

import (
	"context"
	"math"

	"github.com/projecte-aina/matxa-go/tts"
)

const defaultMelBins = 80

// framesPerSymbol is the mock's fixed per-symbol duration before length
// scaling, in mel frames.
const framesPerSymbol = 4

// Acoustic implements tts.AcousticModel deterministically: the mel is a
// pure function of the symbol sequence and parameters, so tests can rely
// on byte-identical outputs for identical inputs.
type Acoustic struct {
	bins int

	// Control for testing
	failErr   error
	callCount int
	lastReq   []int64
}

// NewAcoustic creates a mock acoustic model with the standard 80 mel bins.
func NewAcoustic() *Acoustic {
	return &Acoustic{bins: defaultMelBins}
}

// WithBins overrides the mel bin count, for shape-mismatch tests.
func (a *Acoustic) WithBins(bins int) *Acoustic {
	a.bins = bins
	return a
}

// FailWith makes every subsequent call return err.
func (a *Acoustic) FailWith(err error) *Acoustic {
	a.failErr = err
	return a
}

// CallCount returns how many times Synthesize ran.
func (a *Acoustic) CallCount() int { return a.callCount }

// LastSymbols returns the symbol sequence of the most recent call.
func (a *Acoustic) LastSymbols() []int64 { return a.lastReq }

// Synthesize produces a mel whose frame count scales linearly with both
// the symbol count and the length scale, mirroring the duration
// prediction of the real model.
func (a *Acoustic) Synthesize(ctx context.Context, symbols []int64, length int, params tts.SynthesisParams, speaker tts.SpeakerID) (*tts.Mel, error) {
	a.callCount++
	a.lastReq = symbols

	if a.failErr != nil {
		return nil, a.failErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frames := int(math.Round(float64(length) * framesPerSymbol * params.LengthScale))
	if frames < 1 {
		frames = 1
	}

	data := make([]float32, a.bins*frames)
	for i := range data {
		// Deterministic pseudo-content derived from the inputs.
		s := symbols[i%len(symbols)]
		data[i] = float32(math.Sin(float64(s) + float64(i%a.bins)))
	}
	return &tts.Mel{Data: data, Bins: a.bins, Frames: frames}, nil
}

// Vocoder implements tts.Vocoder: a stateless decode producing exactly
// HopLength samples per mel frame.
type Vocoder struct {
	bins      int
	failErr   error
	callCount int
}

// NewVocoder creates a mock vocoder expecting the standard 80 mel bins.
func NewVocoder() *Vocoder {
	return &Vocoder{bins: defaultMelBins}
}

// WithBins overrides the expected mel bin count.
func (v *Vocoder) WithBins(bins int) *Vocoder {
	v.bins = bins
	return v
}

// FailWith makes every subsequent call return err.
func (v *Vocoder) FailWith(err error) *Vocoder {
	v.failErr = err
	return v
}

// CallCount returns how many times Decode ran.
func (v *Vocoder) CallCount() int { return v.callCount }

// MelBins returns the expected frequency-bin count.
func (v *Vocoder) MelBins() int { return v.bins }

// Decode upsamples each frame to HopLength samples of deterministic
// low-amplitude content.
func (v *Vocoder) Decode(ctx context.Context, mel *tts.Mel) (*tts.Waveform, error) {
	v.callCount++

	if v.failErr != nil {
		return nil, v.failErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	samples := make([]float32, mel.Frames*tts.HopLength)
	for i := range samples {
		samples[i] = 0.1 * float32(math.Sin(2*math.Pi*float64(i)/tts.HopLength))
	}
	return &tts.Waveform{Samples: samples, SampleRate: tts.SampleRate}, nil
}
