package tts

import "testing"

// TestStageString tests the String() method for Stage.
func TestStageString(t *testing.T) {
	tests := []struct {
		stage    Stage
		expected string
	}{
		{StageStart, "start"},
		{StageNormalized, "normalized"},
		{StageAcousticDone, "acoustic-done"},
		{StageVocoderDone, "vocoder-done"},
		{StagePersisted, "persisted"},
		{StageFailed, "failed"},
		{Stage(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.stage.String(); got != tt.expected {
				t.Errorf("Stage.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestStageMachineLinearPath tests that the full pipeline path is
// accepted in order.
func TestStageMachineLinearPath(t *testing.T) {
	m := newStageMachine()
	path := []Stage{StageNormalized, StageAcousticDone, StageVocoderDone, StagePersisted}

	for _, stage := range path {
		if !m.transition(stage) {
			t.Fatalf("transition %v -> %v rejected", m.Current(), stage)
		}
	}
	if m.Current() != StagePersisted {
		t.Errorf("final stage = %v, want persisted", m.Current())
	}
}

// TestStageMachineRejectsBranching tests that off-path transitions are
// rejected.
func TestStageMachineRejectsBranching(t *testing.T) {
	tests := []struct {
		name string
		walk []Stage
		to   Stage
	}{
		{"skip normalization", nil, StageAcousticDone},
		{"skip acoustic", []Stage{StageNormalized}, StageVocoderDone},
		{"backwards", []Stage{StageNormalized, StageAcousticDone}, StageNormalized},
		{"persist before vocoder", []Stage{StageNormalized, StageAcousticDone}, StagePersisted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newStageMachine()
			for _, stage := range tt.walk {
				if !m.transition(stage) {
					t.Fatalf("setup transition to %v rejected", stage)
				}
			}
			if m.transition(tt.to) {
				t.Errorf("transition %v -> %v should be rejected", m.Current(), tt.to)
			}
		})
	}
}

// TestStageMachineTerminalStates tests that persisted and failed accept
// no further transitions.
func TestStageMachineTerminalStates(t *testing.T) {
	m := newStageMachine()
	m.transition(StageFailed)
	for _, stage := range []Stage{StageStart, StageNormalized, StagePersisted} {
		if m.transition(stage) {
			t.Errorf("failed state accepted transition to %v", stage)
		}
	}
}

// TestStageMachineFailableAnywhere tests that every non-terminal stage
// can abort to failed.
func TestStageMachineFailableAnywhere(t *testing.T) {
	walks := [][]Stage{
		{},
		{StageNormalized},
		{StageNormalized, StageAcousticDone},
		{StageNormalized, StageAcousticDone, StageVocoderDone},
	}

	for _, walk := range walks {
		m := newStageMachine()
		for _, stage := range walk {
			m.transition(stage)
		}
		if !m.transition(StageFailed) {
			t.Errorf("stage %v could not transition to failed", m.Current())
		}
	}
}
