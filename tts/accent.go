package tts

import "github.com/projecte-aina/matxa-go/tts/text"

// Profile names a text-normalization ruleset (cleaner). The multiaccent
// model routes one phoneme vocabulary through different romanization and
// stress rules depending on which voice is speaking, so the profile is
// selected per request and independent of the speaker embedding.
type Profile string

// Known profiles. ProfileAuto is a sentinel: it resolves through the
// speaker-to-accent table instead of naming a cleaner.
const (
	ProfileAuto       Profile = "auto"
	ProfileCentral    Profile = text.CleanerCentral
	ProfileBalear     Profile = text.CleanerBalear
	ProfileOccidental Profile = text.CleanerOccidental
	ProfileValencia   Profile = text.CleanerValencia
)

// DefaultProfile is used for speaker ids absent from the accent table.
const DefaultProfile = ProfileCentral

// speakerProfiles maps the multiaccent model's speaker ids to the
// normalization profile matching that voice's accent. Two voices were
// trained per accent.
var speakerProfiles = map[SpeakerID]Profile{
	0: ProfileBalear,
	1: ProfileBalear,
	2: ProfileCentral,
	3: ProfileCentral,
	4: ProfileOccidental,
	5: ProfileOccidental,
	6: ProfileValencia,
	7: ProfileValencia,
}

// ResolveProfile returns the normalization profile for a request. An
// explicit non-auto request always wins; otherwise the speaker's accent
// decides, falling back to DefaultProfile for unknown ids. The function
// is pure and total: any input yields a deterministic profile.
func ResolveProfile(speaker SpeakerID, requested Profile) Profile {
	if requested != ProfileAuto && requested != "" {
		return requested
	}
	if p, ok := speakerProfiles[speaker]; ok {
		return p
	}
	return DefaultProfile
}
