package tts

import "testing"

// TestDefaultConfig tests the reference invocation values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Text != "Això és una prova de síntesi de veu." {
		t.Errorf("default text = %q", cfg.Text)
	}
	if cfg.Speaker != 2 {
		t.Errorf("default speaker = %d, want 2", cfg.Speaker)
	}
	if cfg.Profile != string(ProfileAuto) {
		t.Errorf("default profile = %q, want auto", cfg.Profile)
	}
	if cfg.Steps != 80 {
		t.Errorf("default steps = %d, want 80", cfg.Steps)
	}
	if cfg.Temperature != 0.70 {
		t.Errorf("default temperature = %v, want 0.70", cfg.Temperature)
	}
	if cfg.LengthScale != 0.9 {
		t.Errorf("default length scale = %v, want 0.9", cfg.LengthScale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration failed validation: %v", err)
	}
}

// TestConfigValidate tests range checks on the synthesis knobs.
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty text", func(c *Config) { c.Text = "" }, true},
		{"zero steps", func(c *Config) { c.Steps = 0 }, true},
		{"negative steps", func(c *Config) { c.Steps = -5 }, true},
		{"one step", func(c *Config) { c.Steps = 1 }, false},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }, true},
		{"zero temperature", func(c *Config) { c.Temperature = 0 }, false},
		{"zero length scale", func(c *Config) { c.LengthScale = 0 }, true},
		{"negative length scale", func(c *Config) { c.LengthScale = -1 }, true},
		{"cuda device", func(c *Config) { c.Device = "cuda" }, false},
		{"bogus device", func(c *Config) { c.Device = "tpu" }, true},
		{"zero threads", func(c *Config) { c.Threads = 0 }, true},
		{"out of range speaker passes", func(c *Config) { c.Speaker = 500 }, false},
		{"negative speaker passes", func(c *Config) { c.Speaker = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
