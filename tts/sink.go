package tts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/kshedden/gonpy"
)

// Sink persists synthesis artifacts under a per-speaker directory.
type Sink struct {
	root string
}

// NewSink creates a sink rooted at the given output directory.
func NewSink(root string) *Sink {
	return &Sink{root: root}
}

// Dir returns the directory artifacts for the given speaker land in.
func (s *Sink) Dir(speaker SpeakerID) string {
	return filepath.Join(s.root, fmt.Sprintf("spk_%d", speaker))
}

// Save writes the mel-spectrogram as <name>.npy and the waveform as
// <name>.wav (24-bit PCM, 22050 Hz mono) under spk_<id>/. The directory
// is created if absent; files with the same name are overwritten. There
// is no versioning and no atomicity beyond the underlying writes.
func (s *Sink) Save(name string, res *Result, speaker SpeakerID) error {
	dir := s.Dir(speaker)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	melPath := filepath.Join(dir, name+".npy")
	if err := writeMel(melPath, res.Mel); err != nil {
		return err
	}
	if err := writeWaveform(filepath.Join(dir, name+".wav"), res.Waveform); err != nil {
		// A failed run must not leave a half-written artifact pair behind.
		os.Remove(melPath) //nolint:errcheck
		return err
	}
	return nil
}

// writeMel serializes the mel as a NumPy .npy float32 array of shape
// [bins, frames], matching what the training tooling reads back.
func writeMel(path string, mel *Mel) error {
	w, err := gonpy.NewFileWriter(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	w.Shape = []int{mel.Bins, mel.Frames}
	if err := w.WriteFloat32(mel.Data); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// writeWaveform encodes the waveform as 24-bit PCM mono WAV.
func writeWaveform(path string, wf *Waveform) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close() //nolint:errcheck

	const maxPCM24 = 1<<23 - 1

	data := make([]int, len(wf.Samples))
	for i, sample := range wf.Samples {
		clamped := math.Max(-1.0, math.Min(1.0, float64(sample)))
		data[i] = int(clamped * maxPCM24)
	}

	enc := wav.NewEncoder(f, wf.SampleRate, PCMBitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: wf.SampleRate, NumChannels: 1},
		SourceBitDepth: PCMBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
