package onnx

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/projecte-aina/matxa-go/tts"
)

// VocoderFile is the exported graph's filename inside the model
// registry repository.
const VocoderFile = "alvocat_vocos_22khz.onnx"

// Exported graph contract of the Vocos vocoder.
const (
	vocoderInput  = "mel"
	vocoderOutput = "waveform"
)

// Vocoder runs the exported Vocos graph: mel-spectrogram in, waveform
// out. The graph is stateless and carries no speaker conditioning.
type Vocoder struct {
	session *ort.DynamicAdvancedSession
	melBins int
}

// LoadVocoder opens the vocoder graph at path under the runtime's
// session options and records the mel bin count the graph declares.
func LoadVocoder(path string, rt *Runtime) (*Vocoder, error) {
	inputs, _, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("unable to inspect vocoder: %w", err)
	}

	// The mel input is [batch, bins, frames] with dynamic frames; the
	// bin dimension is static in the export.
	melBins := 0
	for _, in := range inputs {
		if in.Name == vocoderInput && len(in.Dimensions) == 3 && in.Dimensions[1] > 0 {
			melBins = int(in.Dimensions[1])
		}
	}

	session, err := ort.NewDynamicAdvancedSession(path,
		[]string{vocoderInput}, []string{vocoderOutput}, rt.opts)
	if err != nil {
		return nil, fmt.Errorf("unable to load vocoder: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		log.Info("vocoder loaded", "path", path, "size_mb", info.Size()/(1<<20), "mel_bins", melBins)
	}
	return &Vocoder{session: session, melBins: melBins}, nil
}

// MelBins returns the frequency-bin count the vocoder was trained for,
// or 0 when the export does not declare it.
func (v *Vocoder) MelBins() int {
	return v.melBins
}

// Decode converts a mel-spectrogram into a 22050 Hz mono waveform.
func (v *Vocoder) Decode(ctx context.Context, mel *tts.Mel) (*tts.Waveform, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in, err := ort.NewTensor(ort.NewShape(1, int64(mel.Bins), int64(mel.Frames)), mel.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrModel, err)
	}
	defer in.Destroy() //nolint:errcheck

	out := []ort.Value{nil}
	if err := v.session.Run([]ort.Value{in}, out); err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrModel, err)
	}

	wavTensor, ok := out[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("%w: vocoder returned a non-float waveform", tts.ErrModel)
	}
	defer wavTensor.Destroy() //nolint:errcheck

	samples := make([]float32, len(wavTensor.GetData()))
	copy(samples, wavTensor.GetData())

	log.Debug("vocoder stage done", "samples", len(samples))
	return &tts.Waveform{Samples: samples, SampleRate: tts.SampleRate}, nil
}

// Close releases the session.
func (v *Vocoder) Close() error {
	return v.session.Destroy()
}
