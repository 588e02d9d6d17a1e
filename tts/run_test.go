package tts_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/projecte-aina/matxa-go/tts"
	"github.com/projecte-aina/matxa-go/tts/engines/mock"
)

func testRequest() tts.Request {
	return tts.Request{
		Text:    "Això és una prova de síntesi de veu.",
		Speaker: 2,
		Profile: tts.ProfileAuto,
		Params:  tts.SynthesisParams{Steps: 80, Temperature: 0.70, LengthScale: 0.9},
	}
}

// TestRunnerSuccess tests one full run against the mock models.
func TestRunnerSuccess(t *testing.T) {
	acoustic := mock.NewAcoustic()
	vocoder := mock.NewVocoder()
	runner := tts.NewRunner(acoustic, vocoder)

	res, err := runner.Run(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if res.Profile != tts.ProfileCentral {
		t.Errorf("profile = %v, want central for speaker 2", res.Profile)
	}
	if res.Phonemes == "" {
		t.Error("no phonetic transcription in result")
	}
	if res.Mel == nil || res.Mel.Frames == 0 {
		t.Error("no mel in result")
	}
	if res.Waveform == nil || len(res.Waveform.Samples) == 0 {
		t.Error("no waveform in result")
	}
	if res.Waveform.SampleRate != tts.SampleRate {
		t.Errorf("sample rate = %d, want %d", res.Waveform.SampleRate, tts.SampleRate)
	}
	if res.AcousticRTF <= 0 || res.WaveformRTF <= 0 {
		t.Errorf("RTF values not computed: %v, %v", res.AcousticRTF, res.WaveformRTF)
	}
	if res.WaveformRTF < res.AcousticRTF {
		t.Errorf("waveform RTF %v should include the acoustic stage %v", res.WaveformRTF, res.AcousticRTF)
	}
	if acoustic.CallCount() != 1 || vocoder.CallCount() != 1 {
		t.Errorf("models called %d/%d times, want 1/1", acoustic.CallCount(), vocoder.CallCount())
	}
	if runner.Stats().Count() != 1 {
		t.Errorf("aggregator recorded %d runs, want 1", runner.Stats().Count())
	}
}

// TestRunnerUnknownProfileAbortsEarly tests that an unregistered profile
// fails before any model is invoked.
func TestRunnerUnknownProfileAbortsEarly(t *testing.T) {
	acoustic := mock.NewAcoustic()
	vocoder := mock.NewVocoder()
	runner := tts.NewRunner(acoustic, vocoder)

	req := testRequest()
	req.Profile = "klingon_cleaners"

	_, err := runner.Run(context.Background(), req)
	if !errors.Is(err, tts.ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
	if acoustic.CallCount() != 0 {
		t.Error("acoustic model was invoked despite the frontend failure")
	}
	if vocoder.CallCount() != 0 {
		t.Error("vocoder was invoked despite the frontend failure")
	}

	var stageErr *tts.StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != tts.StageNormalized {
		t.Errorf("failure not attributed to the normalization stage: %v", err)
	}
}

// TestRunnerEmptyTextAbortsEarly tests that input stripped to nothing by
// the cleaner never reaches the models.
func TestRunnerEmptyTextAbortsEarly(t *testing.T) {
	acoustic := mock.NewAcoustic()
	runner := tts.NewRunner(acoustic, mock.NewVocoder())

	req := testRequest()
	req.Text = "«»"

	_, err := runner.Run(context.Background(), req)
	if !errors.Is(err, tts.ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	if acoustic.CallCount() != 0 {
		t.Error("acoustic model was invoked for an empty symbol sequence")
	}
}

// TestRunnerAcousticFailure tests that an acoustic-stage error aborts the
// run without touching the vocoder.
func TestRunnerAcousticFailure(t *testing.T) {
	modelErr := errors.New("NaN in decoder output")
	acoustic := mock.NewAcoustic().FailWith(modelErr)
	vocoder := mock.NewVocoder()
	runner := tts.NewRunner(acoustic, vocoder)

	_, err := runner.Run(context.Background(), testRequest())
	if !errors.Is(err, modelErr) {
		t.Fatalf("underlying error was not surfaced unmodified: %v", err)
	}
	if vocoder.CallCount() != 0 {
		t.Error("vocoder was invoked after the acoustic stage failed")
	}
	if runner.Stats().Count() != 0 {
		t.Error("failed run was recorded in the aggregator")
	}
}

// TestRunnerMelBinMismatch tests the pre-vocoder shape validation.
func TestRunnerMelBinMismatch(t *testing.T) {
	acoustic := mock.NewAcoustic().WithBins(100)
	vocoder := mock.NewVocoder().WithBins(80)
	runner := tts.NewRunner(acoustic, vocoder)

	_, err := runner.Run(context.Background(), testRequest())
	if !errors.Is(err, tts.ErrModel) {
		t.Fatalf("expected ErrModel for the bin mismatch, got %v", err)
	}
	if vocoder.CallCount() != 0 {
		t.Error("vocoder was invoked despite the bin mismatch")
	}
}

// TestRunnerDurationScaling tests that waveform duration scales linearly
// with the length scale.
func TestRunnerDurationScaling(t *testing.T) {
	run := func(scale float64) float64 {
		runner := tts.NewRunner(mock.NewAcoustic(), mock.NewVocoder())
		req := testRequest()
		req.Params.LengthScale = scale
		res, err := runner.Run(context.Background(), req)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		return res.Waveform.Duration().Seconds()
	}

	fast := run(0.9)
	normal := run(1.0)

	ratio := fast / normal
	if math.Abs(ratio-0.9) > 0.02 {
		t.Errorf("duration ratio = %.3f, want ~0.9", ratio)
	}
}

// TestRunnerPersistsArtifacts tests that a run with a sink leaves exactly
// two files in the per-speaker directory.
func TestRunnerPersistsArtifacts(t *testing.T) {
	root := t.TempDir()
	sink := tts.NewSink(root)
	runner := tts.NewRunner(mock.NewAcoustic(), mock.NewVocoder(), tts.WithSink(sink))

	if _, err := runner.Run(context.Background(), testRequest()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "spk_2"))
	if err != nil {
		t.Fatalf("speaker directory missing: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected exactly 2 artifacts, found %d", len(entries))
	}
}

// TestRunnerNoArtifactsOnFailure tests that a failed run writes nothing.
func TestRunnerNoArtifactsOnFailure(t *testing.T) {
	root := t.TempDir()
	sink := tts.NewSink(root)
	vocoder := mock.NewVocoder().FailWith(errors.New("shape mismatch"))
	runner := tts.NewRunner(mock.NewAcoustic(), vocoder, tts.WithSink(sink))

	if _, err := runner.Run(context.Background(), testRequest()); err == nil {
		t.Fatal("expected the run to fail")
	}

	if _, err := os.Stat(filepath.Join(root, "spk_2")); !os.IsNotExist(err) {
		t.Error("artifacts were written for a failed run")
	}
}

// TestRunnerAggregatesAcrossRuns tests RTF accumulation over several runs.
func TestRunnerAggregatesAcrossRuns(t *testing.T) {
	runner := tts.NewRunner(mock.NewAcoustic(), mock.NewVocoder())

	for i := 0; i < 3; i++ {
		if _, err := runner.Run(context.Background(), testRequest()); err != nil {
			t.Fatalf("run %d error: %v", i, err)
		}
	}

	if runner.Stats().Count() != 3 {
		t.Fatalf("aggregator recorded %d runs, want 3", runner.Stats().Count())
	}
	summary, ok := runner.Stats().Summary()
	if !ok {
		t.Fatal("no summary for recorded runs")
	}
	if summary.MeanWaveform <= 0 {
		t.Errorf("mean waveform RTF = %v, want > 0", summary.MeanWaveform)
	}
}
