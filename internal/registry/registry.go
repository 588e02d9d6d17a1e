// Package registry fetches pretrained model files from a remote model
// registry and caches them in the per-user cache directory.
package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
)

// DefaultEndpoint is the Hugging Face Hub, where the pretrained Matxa
// and Vocos exports are published.
const DefaultEndpoint = "https://huggingface.co"

const downloadTimeout = 10 * time.Minute

// Client downloads model artifacts and reuses cached copies.
type Client struct {
	endpoint string
	cacheDir string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the registry endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = strings.TrimRight(endpoint, "/") }
}

// WithCacheDir overrides the cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Client) { c.cacheDir = dir }
}

// New creates a registry client caching under the user's matxa cache
// scope.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: downloadTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cacheDir == "" {
		scope := gap.NewScope(gap.User, "matxa")
		dir, err := scope.CacheDir()
		if err != nil {
			return nil, fmt.Errorf("unable to resolve cache directory: %w", err)
		}
		c.cacheDir = filepath.Join(dir, "models")
	}
	return c, nil
}

// Fetch returns a local path for the named file of a registry model,
// downloading it on first use. A cached file is reused without any
// freshness check; loading failures propagate unmodified.
func (c *Client) Fetch(ctx context.Context, model, filename string) (string, error) {
	dir := filepath.Join(c.cacheDir, strings.ReplaceAll(model, "/", "--"))
	local := filepath.Join(dir, filename)

	if _, err := os.Stat(local); err == nil {
		log.Debug("model file cached", "model", model, "file", filename, "path", local)
		return local, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create cache directory: %w", err)
	}

	url := fmt.Sprintf("%s/%s/resolve/main/%s", c.endpoint, model, filename)
	log.Info("downloading model file", "model", model, "file", filename, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("unable to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to download %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unable to download %s: HTTP status %d", url, resp.StatusCode)
	}

	// Download to a temp file first so an interrupted transfer never
	// poisons the cache.
	tmp, err := os.CreateTemp(dir, filename+".download-*")
	if err != nil {
		return "", fmt.Errorf("unable to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("unable to write %s: %w", local, err)
	}
	if err := os.Rename(tmp.Name(), local); err != nil {
		return "", fmt.Errorf("unable to move download into cache: %w", err)
	}

	log.Info("model file downloaded", "model", model, "file", filename, "bytes", n)
	return local, nil
}
