package onnx

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/projecte-aina/matxa-go/tts"
)

// AcousticModelFile is the exported graph's filename inside the model
// registry repository.
const AcousticModelFile = "matxa_multiaccent.onnx"

// Exported graph contract of the Matxa acoustic model. The spks input is
// only present in multi-speaker exports.
var acousticInputs = []string{"x", "x_lengths", "n_timesteps", "scales", "spks"}

const acousticOutput = "mel"

// AcousticModel runs the exported Matxa diffusion graph: interspersed
// symbol ids in, mel-spectrogram out. Sessions hold read-only weights;
// every call is an independent inference pass.
type AcousticModel struct {
	session    *ort.DynamicAdvancedSession
	hasSpeaker bool
}

// LoadAcousticModel opens the acoustic graph at path under the runtime's
// session options.
func LoadAcousticModel(path string, rt *Runtime) (*AcousticModel, error) {
	inputs, _, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("unable to inspect acoustic model: %w", err)
	}

	hasSpeaker := false
	for _, in := range inputs {
		if in.Name == "spks" {
			hasSpeaker = true
		}
	}
	names := acousticInputs
	if !hasSpeaker {
		names = acousticInputs[:len(acousticInputs)-1]
	}

	session, err := ort.NewDynamicAdvancedSession(path, names, []string{acousticOutput}, rt.opts)
	if err != nil {
		return nil, fmt.Errorf("unable to load acoustic model: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		log.Info("acoustic model loaded",
			"path", path, "size_mb", info.Size()/(1<<20), "multi_speaker", hasSpeaker)
	}
	return &AcousticModel{session: session, hasSpeaker: hasSpeaker}, nil
}

// Synthesize runs one denoising trajectory of params.Steps refinement
// passes over the symbol sequence and returns the resulting mel.
func (m *AcousticModel) Synthesize(ctx context.Context, symbols []int64, length int, params tts.SynthesisParams, speaker tts.SpeakerID) (*tts.Mel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.hasSpeaker && speaker.None() {
		return nil, fmt.Errorf("%w: multi-speaker model requires a speaker id", tts.ErrInvalidSpeaker)
	}
	if !m.hasSpeaker && !speaker.None() {
		return nil, fmt.Errorf("%w: model has no speaker embedding table", tts.ErrInvalidSpeaker)
	}

	x, err := ort.NewTensor(ort.NewShape(1, int64(len(symbols))), symbols)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrModel, err)
	}
	defer x.Destroy() //nolint:errcheck

	xLengths, err := ort.NewTensor(ort.NewShape(1), []int64{int64(length)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrModel, err)
	}
	defer xLengths.Destroy() //nolint:errcheck

	steps, err := ort.NewTensor(ort.NewShape(1), []int64{int64(params.Steps)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrModel, err)
	}
	defer steps.Destroy() //nolint:errcheck

	scales, err := ort.NewTensor(ort.NewShape(2),
		[]float32{float32(params.Temperature), float32(params.LengthScale)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrModel, err)
	}
	defer scales.Destroy() //nolint:errcheck

	in := []ort.Value{x, xLengths, steps, scales}
	if m.hasSpeaker {
		spks, err := ort.NewTensor(ort.NewShape(1), []int64{int64(speaker)})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", tts.ErrModel, err)
		}
		defer spks.Destroy() //nolint:errcheck
		in = append(in, spks)
	}

	out := []ort.Value{nil}
	if err := m.session.Run(in, out); err != nil {
		return nil, classifySpeakerError(err, speaker)
	}

	melTensor, ok := out[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("%w: acoustic model returned a non-float mel", tts.ErrModel)
	}
	defer melTensor.Destroy() //nolint:errcheck

	shape := melTensor.GetShape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: unexpected mel shape %v", tts.ErrModel, shape)
	}
	bins, frames := int(shape[1]), int(shape[2])

	// The tensor is freed with the session call; copy out.
	data := make([]float32, bins*frames)
	copy(data, melTensor.GetData())

	return &tts.Mel{Data: data, Bins: bins, Frames: frames}, nil
}

// Close releases the session.
func (m *AcousticModel) Close() error {
	return m.session.Destroy()
}

// classifySpeakerError maps an embedding-table miss to ErrInvalidSpeaker.
// ONNX Runtime surfaces an out-of-range speaker id as a Gather bounds
// failure inside the graph; anything else is an internal model error.
func classifySpeakerError(err error, speaker tts.SpeakerID) error {
	if !speaker.None() && strings.Contains(err.Error(), "out of data bounds") {
		return fmt.Errorf("%w: speaker %d: %v", tts.ErrInvalidSpeaker, speaker, err)
	}
	return fmt.Errorf("%w: %v", tts.ErrModel, err)
}
