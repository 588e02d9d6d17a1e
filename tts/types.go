// Package tts orchestrates Catalan text-to-speech inference: text
// normalization, acoustic mel-spectrogram synthesis, vocoding and
// artifact persistence.
package tts

import (
	"context"
	"time"
)

// Fixed audio parameters of the pretrained models.
const (
	// SampleRate is the sample rate of the vocoder output in Hz.
	SampleRate = 22050
	// HopLength is the number of waveform samples per mel frame.
	HopLength = 256
	// PCMBitDepth is the bit depth of persisted waveforms.
	PCMBitDepth = 24
)

// SpeakerID indexes the acoustic model's speaker embedding table.
// Negative values mean "no speaker conditioning" (the global voice).
type SpeakerID int

// None reports whether the id disables speaker conditioning.
func (s SpeakerID) None() bool { return s < 0 }

// SynthesisParams are the per-request numeric knobs of the acoustic stage.
// They are immutable for the duration of a request.
type SynthesisParams struct {
	Steps       int     // number of iterative refinement (denoising) passes
	Temperature float64 // sampling noise scale; 0 is maximally deterministic
	LengthScale float64 // duration multiplier; >1 slows speech, <1 speeds it up
}

// Mel is a mel-spectrogram in row-major [Bins x Frames] layout.
type Mel struct {
	Data   []float32
	Bins   int
	Frames int
}

// Duration returns the audio duration the mel will decode to, derived
// from the frame count and the vocoder's fixed hop size.
func (m *Mel) Duration() time.Duration {
	samples := m.Frames * HopLength
	return time.Duration(float64(samples) / SampleRate * float64(time.Second))
}

// Waveform is a mono time-domain signal.
type Waveform struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the playback duration of the waveform.
func (w *Waveform) Duration() time.Duration {
	if w.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

// ProcessedText is the frontend's view of one input text.
type ProcessedText struct {
	Original string  // the raw input text
	Symbols  []int64 // interspersed symbol codes, ready for the acoustic model
	Length   int     // len(Symbols), carried separately for the model contract
	Phonemes string  // readable decoding of the pre-intersperse codes
}

// AcousticModel turns a symbol sequence into a mel-spectrogram by
// iterative refinement. Implementations must be inference-only: calls are
// independent and accumulate no state.
type AcousticModel interface {
	Synthesize(ctx context.Context, symbols []int64, length int, params SynthesisParams, speaker SpeakerID) (*Mel, error)
}

// Vocoder decodes a mel-spectrogram into a waveform. Implementations are
// stateless: the same mel always yields the same waveform.
type Vocoder interface {
	Decode(ctx context.Context, mel *Mel) (*Waveform, error)

	// MelBins returns the frequency-bin count the vocoder was trained
	// for, or 0 when the implementation cannot report one.
	MelBins() int
}

// Request describes one end-to-end synthesis run.
type Request struct {
	Text    string
	Speaker SpeakerID
	Profile Profile // "auto" resolves via the accent table
	Params  SynthesisParams
}

// Result is the outcome of one synthesis run. It is handed to the output
// sink and then discarded; nothing is retained across requests.
type Result struct {
	Text     string
	Phonemes string
	Profile  Profile
	Speaker  SpeakerID
	Steps    int

	Mel      *Mel
	Waveform *Waveform

	StartedAt       time.Time
	AcousticElapsed time.Duration
	TotalElapsed    time.Duration

	// AcousticRTF and WaveformRTF are elapsed/duration ratios: values
	// below 1.0 mean synthesis ran faster than real-time playback.
	AcousticRTF float64
	WaveformRTF float64
}
