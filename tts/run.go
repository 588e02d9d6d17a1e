package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ArtifactName is the base filename of persisted artifacts. Runs for the
// same speaker overwrite each other; there is no collision detection.
const ArtifactName = "synth"

// Runner executes end-to-end synthesis requests against a fixed pair of
// models. The models are loaded once per process and injected here; the
// runner itself holds no mutable cross-request state apart from the RTF
// aggregator, so it is safe for one in-flight request at a time.
type Runner struct {
	acoustic AcousticModel
	vocoder  Vocoder
	sink     *Sink
	stats    *RTFAggregator
	name     string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSink makes the runner persist artifacts after vocoding. Without a
// sink, runs stop after the vocoder stage and nothing touches disk.
func WithSink(s *Sink) RunnerOption {
	return func(r *Runner) { r.sink = s }
}

// WithArtifactName overrides the base filename of persisted artifacts.
func WithArtifactName(name string) RunnerOption {
	return func(r *Runner) { r.name = name }
}

// NewRunner creates a runner around the given models.
func NewRunner(acoustic AcousticModel, vocoder Vocoder, opts ...RunnerOption) *Runner {
	r := &Runner{
		acoustic: acoustic,
		vocoder:  vocoder,
		stats:    NewRTFAggregator(),
		name:     ArtifactName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stats returns the RTF aggregator accumulating across this runner's runs.
func (r *Runner) Stats() *RTFAggregator {
	return r.stats
}

// Run executes one request: profile resolution, text frontend, acoustic
// synthesis, vocoding and (with a sink) persistence. The stages form a
// single linear path; the first failure aborts the run, surfaces the
// underlying error and leaves no partial artifacts on disk.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	machine := newStageMachine()
	fail := func(stage Stage, err error) (*Result, error) {
		machine.transition(StageFailed)
		return nil, failStage(stage, err)
	}

	profile := ResolveProfile(req.Speaker, req.Profile)
	log.Debug("resolved normalization profile",
		"speaker", req.Speaker, "requested", req.Profile, "profile", profile)

	processed, err := ProcessText(req.Text, profile)
	if err != nil {
		return fail(StageNormalized, err)
	}
	machine.transition(StageNormalized)

	start := time.Now()
	mel, err := r.acoustic.Synthesize(ctx, processed.Symbols, processed.Length, req.Params, req.Speaker)
	if err != nil {
		return fail(StageAcousticDone, err)
	}
	machine.transition(StageAcousticDone)

	acousticElapsed := time.Since(start)
	acousticRTF := rtf(acousticElapsed, mel.Duration())
	log.Debug("acoustic stage done",
		"bins", mel.Bins, "frames", mel.Frames,
		"elapsed", acousticElapsed, "rtf", acousticRTF)

	// Catch a frequency-bin mismatch here, where it can be named, rather
	// than as an opaque shape error inside the vocoder graph.
	if want := r.vocoder.MelBins(); want > 0 && mel.Bins != want {
		return fail(StageVocoderDone,
			fmt.Errorf("%w: mel has %d bins, vocoder expects %d", ErrModel, mel.Bins, want))
	}

	waveform, err := r.vocoder.Decode(ctx, mel)
	if err != nil {
		return fail(StageVocoderDone, err)
	}
	machine.transition(StageVocoderDone)

	totalElapsed := time.Since(start)
	res := &Result{
		Text:            processed.Original,
		Phonemes:        processed.Phonemes,
		Profile:         profile,
		Speaker:         req.Speaker,
		Steps:           req.Params.Steps,
		Mel:             mel,
		Waveform:        waveform,
		StartedAt:       start,
		AcousticElapsed: acousticElapsed,
		TotalElapsed:    totalElapsed,
		AcousticRTF:     acousticRTF,
		WaveformRTF:     rtf(totalElapsed, waveform.Duration()),
	}

	if r.sink != nil {
		if err := r.sink.Save(r.name, res, req.Speaker); err != nil {
			return fail(StagePersisted, err)
		}
		machine.transition(StagePersisted)
	}

	r.stats.Add(res)
	log.Info("synthesis complete",
		"text", res.Text,
		"phonemes", res.Phonemes,
		"rtf", res.AcousticRTF,
		"rtf_waveform", res.WaveformRTF,
		"steps", res.Steps,
		"stage", machine.Current())
	return res, nil
}

// rtf is the elapsed/duration real-time factor: below 1.0 means
// synthesis ran faster than real-time playback.
func rtf(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	return elapsed.Seconds() / duration.Seconds()
}
