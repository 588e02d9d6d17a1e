package tts

import (
	"errors"
	"fmt"

	"github.com/projecte-aina/matxa-go/tts/text"
)

// ProcessText converts raw text into the padded symbol sequence the
// acoustic model consumes, plus a readable phonetic transcription for
// diagnostics. It is a pure function of its inputs and the fixed cleaner
// registry: identical inputs yield identical outputs.
func ProcessText(raw string, profile Profile) (*ProcessedText, error) {
	seq, err := text.TextToSequence(raw, string(profile))
	if err != nil {
		switch {
		case errors.Is(err, text.ErrUnknownCleaner):
			return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
		case errors.Is(err, text.ErrCannotEncode):
			return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		return nil, err
	}

	// Nothing downstream can handle a zero-length sequence: the models
	// take at least one symbol.
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: text normalized to an empty sequence", ErrEncoding)
	}

	interspersed := text.Intersperse(seq, text.PadID)
	return &ProcessedText{
		Original: raw,
		Symbols:  interspersed,
		Length:   len(interspersed),
		Phonemes: text.SequenceToText(seq),
	}, nil
}
