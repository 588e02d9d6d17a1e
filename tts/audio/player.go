package audio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"

	"github.com/projecte-aina/matxa-go/tts"
)

// Play blocks until the waveform has finished playing on the default
// audio device, or the context is canceled.
func Play(ctx context.Context, wf *tts.Waveform) error {
	pcm := Float32ToPCM16(wf.Samples)

	op := &oto.NewContextOptions{
		SampleRate:   wf.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	octx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("unable to open audio device: %w", err)
	}
	<-ready

	player := octx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close() //nolint:errcheck

	log.Debug("playback started", "samples", len(wf.Samples), "duration", wf.Duration())
	player.Play()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
