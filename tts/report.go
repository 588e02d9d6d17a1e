package tts

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const reportWidth = 53

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	ruleStyle   = lipgloss.NewStyle().Faint(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1a8a53", Dark: "#5dd9a0"})
)

// WriteReport renders the human-readable synthesis report for one run:
// input text, phonetised text, both real-time factors and the step count.
func WriteReport(w io.Writer, res *Result, styled bool) {
	rule := strings.Repeat("-", reportWidth)
	banner := strings.Repeat("*", reportWidth)

	header := func(s string) string { return s }
	value := func(s string) string { return s }
	if styled {
		banner = ruleStyle.Render(banner)
		rule = ruleStyle.Render(rule)
		header = func(s string) string { return headerStyle.Render(s) }
		value = func(s string) string { return valueStyle.Render(s) }
	}

	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, header("Input text"))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, res.Text)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, header("Phonetised text"))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, res.Phonemes)
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "RTF:\t\t%s\n", value(fmt.Sprintf("%.6f", res.AcousticRTF)))
	fmt.Fprintf(w, "RTF Waveform:\t%s\n", value(fmt.Sprintf("%.6f", res.WaveformRTF)))
	fmt.Fprintf(w, "Refinement steps: %d\n", res.Steps)
}

// WriteSummary renders the aggregate RTF statistics over every run the
// aggregator has seen.
func WriteSummary(w io.Writer, stats *RTFAggregator) {
	summary, ok := stats.Summary()
	if !ok {
		return
	}
	fmt.Fprintf(w, "Mean RTF:\t\t\t\t%.6f ± %.6f\n",
		summary.MeanAcoustic, summary.StdDevAcoustic)
	fmt.Fprintf(w, "Mean RTF Waveform (incl. vocoder):\t%.6f ± %.6f\n",
		summary.MeanWaveform, summary.StdDevWaveform)
}
