// Package main provides the entry point for the Matxa TTS CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	homedir "github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/projecte-aina/matxa-go/internal/registry"
	"github.com/projecte-aina/matxa-go/tts"
	"github.com/projecte-aina/matxa-go/tts/audio"
	"github.com/projecte-aina/matxa-go/tts/engines/onnx"
	"github.com/projecte-aina/matxa-go/tts/text"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	debug      bool

	cfg tts.Config

	rootCmd = &cobra.Command{
		Use:   "matxa",
		Short: "Synthesize Catalan speech on the CLI",
		Long: paragraph(fmt.Sprintf(
			"\nSynthesize %s speech from text with the Matxa acoustic model and the Vocos vocoder.",
			keyword("Catalan"))),
		Example:       paragraph("matxa --text \"Bon dia a tothom.\" --speaker 4 -o out"),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return validateOptions()
		},
		RunE: execute,
	}
)

var (
	keyword = func(s string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d7008f", Dark: "#ff79c6"}).Render(s)
	}
	paragraph = func(s string) string {
		return lipgloss.NewStyle().Width(78).Padding(0, 0, 0, 2).Render(s)
	}
)

// validateOptions pulls config values from Viper and rejects invalid
// combinations before any model is loaded.
func validateOptions() error {
	var err error
	cfg, err = tts.LoadConfigFromViper()
	if err != nil {
		return err
	}

	// An unregistered profile must fail here, before model loading.
	if p := tts.Profile(cfg.Profile); p != tts.ProfileAuto && !text.Registered(cfg.Profile) {
		return fmt.Errorf("unknown normalization profile %q (registered: auto, %s)",
			cfg.Profile, strings.Join(text.Names(), ", "))
	}
	return nil
}

func execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reg, err := registry.New()
	if err != nil {
		return err
	}

	acousticPath, err := reg.Fetch(ctx, cfg.AcousticModel, onnx.AcousticModelFile)
	if err != nil {
		return err
	}
	vocoderPath, err := reg.Fetch(ctx, cfg.Vocoder, onnx.VocoderFile)
	if err != nil {
		return err
	}

	// Device and thread count are fixed for the process from here on.
	rt, err := onnx.NewRuntime(onnx.RuntimeConfig{
		LibraryPath: expandPath(cfg.OnnxLibrary),
		Threads:     cfg.Threads,
		Device:      cfg.Device,
	})
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	acoustic, err := onnx.LoadAcousticModel(acousticPath, rt)
	if err != nil {
		return err
	}
	defer acoustic.Close() //nolint:errcheck

	vocoder, err := onnx.LoadVocoder(vocoderPath, rt)
	if err != nil {
		return err
	}
	defer vocoder.Close() //nolint:errcheck

	sink := tts.NewSink(expandPath(cfg.OutputDir))
	runner := tts.NewRunner(acoustic, vocoder, tts.WithSink(sink))

	res, err := runner.Run(ctx, tts.Request{
		Text:    cfg.Text,
		Speaker: tts.SpeakerID(cfg.Speaker),
		Profile: tts.Profile(cfg.Profile),
		Params: tts.SynthesisParams{
			Steps:       cfg.Steps,
			Temperature: cfg.Temperature,
			LengthScale: cfg.LengthScale,
		},
	})
	if err != nil {
		return err
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	tts.WriteReport(os.Stdout, res, styled)
	tts.WriteSummary(os.Stdout, runner.Stats())
	fmt.Println("Saved to:", sink.Dir(res.Speaker))

	if cfg.Play {
		if err := audio.Play(ctx, res.Waveform); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	defaults := tts.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringP("text", "t", defaults.Text, "text to synthesize")
	rootCmd.Flags().IntP("speaker", "s", defaults.Speaker, "speaker id (negative for the global voice)")
	rootCmd.Flags().String("profile", defaults.Profile, "text-normalization profile (auto resolves from the speaker's accent)")
	rootCmd.Flags().Int("steps", defaults.Steps, "number of refinement steps of the acoustic model")
	rootCmd.Flags().Float64("temperature", defaults.Temperature, "sampling temperature")
	rootCmd.Flags().Float64("length-scale", defaults.LengthScale, "duration multiplier (>1 slows speech down)")
	rootCmd.Flags().StringP("output", "o", "output", "directory to write artifacts to")
	rootCmd.Flags().String("device", defaults.Device, "inference device (cpu or cuda)")
	rootCmd.Flags().Int("threads", defaults.Threads, "intra-op inference threads")
	rootCmd.Flags().String("onnx-library", "", "path to the onnxruntime shared library")
	rootCmd.Flags().Bool("play", false, "play the waveform after synthesis")

	// Config bindings
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("text", rootCmd.Flags().Lookup("text"))
	_ = viper.BindPFlag("speaker", rootCmd.Flags().Lookup("speaker"))
	_ = viper.BindPFlag("profile", rootCmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("steps", rootCmd.Flags().Lookup("steps"))
	_ = viper.BindPFlag("temperature", rootCmd.Flags().Lookup("temperature"))
	_ = viper.BindPFlag("length_scale", rootCmd.Flags().Lookup("length-scale"))
	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("device", rootCmd.Flags().Lookup("device"))
	_ = viper.BindPFlag("threads", rootCmd.Flags().Lookup("threads"))
	_ = viper.BindPFlag("onnx_library", rootCmd.Flags().Lookup("onnx-library"))
	_ = viper.BindPFlag("play", rootCmd.Flags().Lookup("play"))

	viper.SetDefault("speaker", defaults.Speaker)
	viper.SetDefault("profile", defaults.Profile)
	viper.SetDefault("steps", defaults.Steps)
	viper.SetDefault("temperature", defaults.Temperature)
	viper.SetDefault("length_scale", defaults.LengthScale)
	viper.SetDefault("device", defaults.Device)
	viper.SetDefault("threads", defaults.Threads)
	viper.SetDefault("acoustic_model", defaults.AcousticModel)
	viper.SetDefault("vocoder", defaults.Vocoder)

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "matxa")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "matxa")}, dirs...)
	}

	if c := os.Getenv("MATXA_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("matxa")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("matxa")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "matxa.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}

// expandPath resolves a leading ~ in path.
func expandPath(path string) string {
	if expanded, err := homedir.Expand(path); err == nil {
		return expanded
	}
	return path
}
