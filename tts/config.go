package tts

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default model registry identifiers.
const (
	DefaultAcousticModel = "projecte-aina/matxa-tts-cat-multiaccent"
	DefaultVocoder       = "projecte-aina/alvocat-vocos-22khz"
)

// Config contains the synthesis options of one invocation.
type Config struct {
	// Input
	Text    string `yaml:"text" env:"MATXA_TEXT"`
	Speaker int    `yaml:"speaker" env:"MATXA_SPEAKER" envDefault:"2"`
	Profile string `yaml:"profile" env:"MATXA_PROFILE" envDefault:"auto"`

	// Acoustic knobs
	Steps       int     `yaml:"steps" env:"MATXA_STEPS" envDefault:"80"`
	Temperature float64 `yaml:"temperature" env:"MATXA_TEMPERATURE" envDefault:"0.70"`
	LengthScale float64 `yaml:"length_scale" env:"MATXA_LENGTH_SCALE" envDefault:"0.9"`

	// Models
	AcousticModel string `yaml:"acoustic_model" env:"MATXA_ACOUSTIC_MODEL" envDefault:"projecte-aina/matxa-tts-cat-multiaccent"`
	Vocoder       string `yaml:"vocoder" env:"MATXA_VOCODER" envDefault:"projecte-aina/alvocat-vocos-22khz"`
	Device        string `yaml:"device" env:"MATXA_DEVICE" envDefault:"cpu"`
	Threads       int    `yaml:"threads" env:"MATXA_THREADS" envDefault:"8"`
	OnnxLibrary   string `yaml:"onnx_library" env:"MATXA_ONNX_LIBRARY"`

	// Output
	OutputDir string `yaml:"output" env:"MATXA_OUTPUT"`
	Play      bool   `yaml:"play" env:"MATXA_PLAY" envDefault:"false"`
}

// DefaultConfig returns a Config matching the reference invocation.
func DefaultConfig() Config {
	return Config{
		Text:          "Això és una prova de síntesi de veu.",
		Speaker:       2,
		Profile:       string(ProfileAuto),
		Steps:         80,
		Temperature:   0.70,
		LengthScale:   0.9,
		AcousticModel: DefaultAcousticModel,
		Vocoder:       DefaultVocoder,
		Device:        "cpu",
		Threads:       8,
	}
}

// Validate checks option ranges. Speaker ids are not range-checked here:
// the acoustic model is the authority on its embedding table and fails on
// out-of-range ids itself.
func (c Config) Validate() error {
	if c.Text == "" {
		return fmt.Errorf("text must not be empty")
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be a positive integer, got %d", c.Steps)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature must not be negative, got %.2f", c.Temperature)
	}
	if c.LengthScale <= 0 {
		return fmt.Errorf("length scale must be positive, got %.2f", c.LengthScale)
	}
	if c.Device != "cpu" && c.Device != "cuda" {
		return fmt.Errorf("device must be cpu or cuda, got %q", c.Device)
	}
	if c.Threads < 1 {
		return fmt.Errorf("threads must be a positive integer, got %d", c.Threads)
	}
	return nil
}

// LoadConfigFromViper builds a Config from Viper, starting from defaults
// so unset keys keep the reference values.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	if viper.IsSet("text") {
		cfg.Text = viper.GetString("text")
	}
	if viper.IsSet("speaker") {
		cfg.Speaker = viper.GetInt("speaker")
	}
	if viper.IsSet("profile") {
		cfg.Profile = viper.GetString("profile")
	}
	if viper.IsSet("steps") {
		cfg.Steps = viper.GetInt("steps")
	}
	if viper.IsSet("temperature") {
		cfg.Temperature = viper.GetFloat64("temperature")
	}
	if viper.IsSet("length_scale") {
		cfg.LengthScale = viper.GetFloat64("length_scale")
	}
	if viper.IsSet("acoustic_model") {
		cfg.AcousticModel = viper.GetString("acoustic_model")
	}
	if viper.IsSet("vocoder") {
		cfg.Vocoder = viper.GetString("vocoder")
	}
	if viper.IsSet("device") {
		cfg.Device = viper.GetString("device")
	}
	if viper.IsSet("threads") {
		cfg.Threads = viper.GetInt("threads")
	}
	if viper.IsSet("onnx_library") {
		cfg.OnnxLibrary = viper.GetString("onnx_library")
	}
	if viper.IsSet("output") {
		cfg.OutputDir = viper.GetString("output")
	}
	if viper.IsSet("play") {
		cfg.Play = viper.GetBool("play")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
