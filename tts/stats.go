package tts

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// RTFAggregator accumulates real-time-factor samples across the runs of
// one process and reports mean and standard deviation. The reference flow
// runs once per invocation, but the statistics are computed as if many
// runs could accumulate.
type RTFAggregator struct {
	acoustic []float64
	waveform []float64
}

// NewRTFAggregator returns an empty aggregator.
func NewRTFAggregator() *RTFAggregator {
	return &RTFAggregator{}
}

// Add records the RTF values of one completed run.
func (a *RTFAggregator) Add(res *Result) {
	a.acoustic = append(a.acoustic, res.AcousticRTF)
	a.waveform = append(a.waveform, res.WaveformRTF)
}

// Count returns the number of runs recorded.
func (a *RTFAggregator) Count() int {
	return len(a.acoustic)
}

// RTFSummary holds aggregate statistics over the recorded runs.
type RTFSummary struct {
	MeanAcoustic   float64
	StdDevAcoustic float64
	MeanWaveform   float64
	StdDevWaveform float64
}

// Summary computes mean and population standard deviation of both RTF
// series. It returns ok=false when no runs were recorded.
func (a *RTFAggregator) Summary() (RTFSummary, bool) {
	if len(a.acoustic) == 0 {
		return RTFSummary{}, false
	}
	return RTFSummary{
		MeanAcoustic:   stat.Mean(a.acoustic, nil),
		StdDevAcoustic: stat.PopStdDev(a.acoustic, nil),
		MeanWaveform:   stat.Mean(a.waveform, nil),
		StdDevWaveform: stat.PopStdDev(a.waveform, nil),
	}, true
}

// String renders the summary in the "mean ± stddev" form used by the
// synthesis report.
func (s RTFSummary) String() string {
	return fmt.Sprintf("RTF %.6f ± %.6f, RTF waveform %.6f ± %.6f",
		s.MeanAcoustic, s.StdDevAcoustic, s.MeanWaveform, s.StdDevWaveform)
}
