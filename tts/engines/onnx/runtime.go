// Package onnx backs the synthesis capability interfaces with ONNX
// Runtime sessions for the exported Matxa acoustic model and the Vocos
// vocoder.
package onnx

import (
	"fmt"

	"github.com/charmbracelet/log"
	ort "github.com/yalue/onnxruntime_go"
)

// RuntimeConfig fixes the execution environment for the process. Device
// and thread count are chosen once at startup; there is no dynamic
// fallback if a device becomes unavailable mid-run.
type RuntimeConfig struct {
	// LibraryPath points at the onnxruntime shared library. Empty means
	// the loader's default lookup.
	LibraryPath string
	// Threads is the intra-op thread count of every session.
	Threads int
	// Device is "cpu" or "cuda".
	Device string
}

// Runtime owns the process-wide ONNX environment and the session options
// shared by both models.
type Runtime struct {
	opts *ort.SessionOptions
}

// NewRuntime initializes the ONNX environment once for the process.
func NewRuntime(cfg RuntimeConfig) (*Runtime, error) {
	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("unable to initialize onnxruntime: %w", err)
		}
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("unable to create session options: %w", err)
	}
	if cfg.Threads > 0 {
		if err := opts.SetIntraOpNumThreads(cfg.Threads); err != nil {
			opts.Destroy() //nolint:errcheck
			return nil, fmt.Errorf("unable to set thread count: %w", err)
		}
		log.Debug("inference threads configured", "threads", cfg.Threads)
	}

	if cfg.Device == "cuda" {
		cudaOpts, err := ort.NewCUDAProviderOptions()
		if err != nil {
			opts.Destroy() //nolint:errcheck
			return nil, fmt.Errorf("unable to create CUDA provider options: %w", err)
		}
		defer cudaOpts.Destroy() //nolint:errcheck
		if err := cudaOpts.Update(map[string]string{"device_id": "0"}); err != nil {
			opts.Destroy() //nolint:errcheck
			return nil, fmt.Errorf("unable to configure CUDA provider: %w", err)
		}
		if err := opts.AppendExecutionProviderCUDA(cudaOpts); err != nil {
			opts.Destroy() //nolint:errcheck
			return nil, fmt.Errorf("unable to enable CUDA execution: %w", err)
		}
		log.Info("using CUDA execution provider", "device_id", 0)
	}

	return &Runtime{opts: opts}, nil
}

// Close releases the session options and the environment.
func (r *Runtime) Close() error {
	if r.opts != nil {
		r.opts.Destroy() //nolint:errcheck
		r.opts = nil
	}
	return ort.DestroyEnvironment()
}
