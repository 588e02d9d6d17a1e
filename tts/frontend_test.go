package tts

import (
	"errors"
	"testing"

	"github.com/projecte-aina/matxa-go/tts/text"
)

// TestProcessTextInterspersion tests the 2N-1 interspersion invariant:
// real symbols at even indices, separators between every adjacent pair,
// and a length field matching the actual sequence length.
func TestProcessTextInterspersion(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"single word", "hola"},
		{"sentence", "bon dia a tothom"},
		{"single rune", "a"},
		{"punctuation", "si, molt bé."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProcessText(tt.in, ProfileValencia)
			if err != nil {
				t.Fatalf("ProcessText(%q) error: %v", tt.in, err)
			}

			n := len([]rune(got.Phonemes))
			if n < 1 {
				t.Fatalf("no phonemes produced for %q", tt.in)
			}
			if want := 2*n - 1; len(got.Symbols) != want {
				t.Errorf("sequence length = %d, want 2N-1 = %d", len(got.Symbols), want)
			}
			if got.Length != len(got.Symbols) {
				t.Errorf("declared length %d != actual length %d", got.Length, len(got.Symbols))
			}
			for i, id := range got.Symbols {
				if i%2 == 1 && id != text.PadID {
					t.Errorf("position %d should be the separator, got %d", i, id)
				}
			}
		})
	}
}

// TestProcessTextRoundTrip tests that decoding the emitted codes
// reproduces the cleaned text exactly for every profile.
func TestProcessTextRoundTrip(t *testing.T) {
	for _, profile := range []Profile{ProfileCentral, ProfileBalear, ProfileOccidental, ProfileValencia} {
		t.Run(string(profile), func(t *testing.T) {
			got, err := ProcessText("Això és una prova de síntesi de veu.", profile)
			if err != nil {
				t.Fatalf("ProcessText error: %v", err)
			}

			seq, err := text.TextToSequence(got.Phonemes, string(profile))
			if err != nil {
				t.Fatalf("re-encoding phonemes failed: %v", err)
			}
			if decoded := text.SequenceToText(seq); decoded != got.Phonemes {
				t.Errorf("round trip mismatch: %q != %q", decoded, got.Phonemes)
			}
		})
	}
}

// TestProcessTextIdempotent tests that identical inputs yield identical
// outputs.
func TestProcessTextIdempotent(t *testing.T) {
	first, err := ProcessText("una prova", ProfileCentral)
	if err != nil {
		t.Fatalf("ProcessText error: %v", err)
	}
	second, err := ProcessText("una prova", ProfileCentral)
	if err != nil {
		t.Fatalf("ProcessText error: %v", err)
	}

	if first.Phonemes != second.Phonemes {
		t.Errorf("phonemes differ across calls: %q != %q", first.Phonemes, second.Phonemes)
	}
	if len(first.Symbols) != len(second.Symbols) {
		t.Fatalf("symbol lengths differ: %d != %d", len(first.Symbols), len(second.Symbols))
	}
	for i := range first.Symbols {
		if first.Symbols[i] != second.Symbols[i] {
			t.Errorf("symbol %d differs: %d != %d", i, first.Symbols[i], second.Symbols[i])
		}
	}
}

// TestProcessTextUnknownProfile tests the error classification for an
// unregistered profile.
func TestProcessTextUnknownProfile(t *testing.T) {
	_, err := ProcessText("hola", Profile("klingon_cleaners"))
	if !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, got %v", err)
	}
}

// TestProcessTextEncodingError tests that unmappable runes surface as
// ErrEncoding instead of being swallowed.
func TestProcessTextEncodingError(t *testing.T) {
	_, err := ProcessText("привет", ProfileCentral)
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

// TestProcessTextEmptyAfterCleaning tests that input the cleaner strips
// to nothing is rejected instead of producing an empty sequence.
func TestProcessTextEmptyAfterCleaning(t *testing.T) {
	for _, in := range []string{"", "   ", "«»", "“”"} {
		_, err := ProcessText(in, ProfileCentral)
		if !errors.Is(err, ErrEncoding) {
			t.Errorf("ProcessText(%q) = %v, want ErrEncoding", in, err)
		}
	}
}

// TestProcessTextAutoScenario tests the documented reference scenario:
// speaker 2 with "auto" resolves to the central profile and yields an
// odd-length interspersed sequence.
func TestProcessTextAutoScenario(t *testing.T) {
	profile := ResolveProfile(2, ProfileAuto)
	if profile != ProfileCentral {
		t.Fatalf("speaker 2 resolved to %v, want central", profile)
	}

	got, err := ProcessText("Això és una prova.", profile)
	if err != nil {
		t.Fatalf("ProcessText error: %v", err)
	}
	if len(got.Symbols)%2 != 1 {
		t.Errorf("interspersed length should be odd, got %d", len(got.Symbols))
	}
	if want := 2*len([]rune(got.Phonemes)) - 1; len(got.Symbols) != want {
		t.Errorf("length = %d, want %d", len(got.Symbols), want)
	}
}
