package tts

// Stage represents a step of the synthesis pipeline. A run moves through
// exactly one linear path with no branching or retry; a failure at any
// stage moves to StageFailed and aborts the run.
type Stage int

const (
	// StageStart is the initial state of a run.
	StageStart Stage = iota
	// StageNormalized indicates the text frontend has produced symbols.
	StageNormalized
	// StageAcousticDone indicates the acoustic model has produced a mel.
	StageAcousticDone
	// StageVocoderDone indicates the vocoder has produced a waveform.
	StageVocoderDone
	// StagePersisted indicates the artifacts were written to disk.
	StagePersisted
	// StageFailed indicates the run was aborted by an error.
	StageFailed
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageNormalized:
		return "normalized"
	case StageAcousticDone:
		return "acoustic-done"
	case StageVocoderDone:
		return "vocoder-done"
	case StagePersisted:
		return "persisted"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// stageMachine tracks the progress of a single run and rejects
// transitions off the linear path.
type stageMachine struct {
	current     Stage
	transitions map[Stage][]Stage
}

func newStageMachine() *stageMachine {
	return &stageMachine{
		current: StageStart,
		transitions: map[Stage][]Stage{
			StageStart:        {StageNormalized, StageFailed},
			StageNormalized:   {StageAcousticDone, StageFailed},
			StageAcousticDone: {StageVocoderDone, StageFailed},
			StageVocoderDone:  {StagePersisted, StageFailed},
			StagePersisted:    {},
			StageFailed:       {},
		},
	}
}

// transition attempts to move to the given stage and reports whether the
// move is on the allowed path.
func (m *stageMachine) transition(to Stage) bool {
	for _, next := range m.transitions[m.current] {
		if next == to {
			m.current = to
			return true
		}
	}
	return false
}

// Current returns the current stage.
func (m *stageMachine) Current() Stage {
	return m.current
}
