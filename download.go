package geonames

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// httpClient is the default client for dataset downloads.
var httpClient = &http.Client{
	Timeout: 5 * time.Minute,
}

type loadConfig struct {
	sourceURL string
	client    *http.Client
}

// Option configures Load.
type Option func(*loadConfig)

// WithSourceURL sets a URL the dataset is fetched from when the file at the
// given path does not exist yet.
func WithSourceURL(u string) Option {
	return func(c *loadConfig) {
		c.sourceURL = u
	}
}

// WithHTTPClient overrides the client used for dataset downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(c *loadConfig) {
		c.client = client
	}
}

// Load builds the index from the dataset file at path, downloading it first
// when it is absent and a source URL is configured. Files ending in .zip are
// read in-stream, entry by entry; anything else is treated as a plain
// tab-separated dump. Any failure here is fatal to startup: the caller must
// not begin serving queries without a complete index.
func Load(path string, opts ...Option) (*Index, error) {
	cfg := &loadConfig{client: httpClient}
	for _, opt := range opts {
		opt(cfg)
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat dataset %s: %w", path, err)
		}
		if cfg.sourceURL == "" {
			return nil, fmt.Errorf("open dataset %s: %w", path, fs.ErrNotExist)
		}
		if err := downloadFile(cfg.client, cfg.sourceURL, path); err != nil {
			return nil, err
		}
	}

	if strings.HasSuffix(path, ".zip") {
		return loadZip(path)
	}

	fi, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer fi.Close()

	return Build(fi)
}

// loadZip feeds every .txt entry of the archive through one builder, so a
// dump split across entries still forms a single index. GeoNames archives
// ship a readme alongside the data; it is skipped.
func loadZip(path string) (*Index, error) {
	rz, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening zip %s: %w", path, err)
	}
	defer rz.Close()

	b := newBuilder()
	for _, entry := range rz.File {
		if strings.EqualFold(entry.Name, "readme.txt") {
			continue
		}
		if err := consumeZipEntry(b, entry); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

func consumeZipEntry(b *builder, entry *zip.File) error {
	fi, err := entry.Open()
	if err != nil {
		return fmt.Errorf("opening %s in zip: %w", entry.Name, err)
	}
	defer fi.Close()
	return b.consume(fi)
}

// downloadFile fetches url into path, removing the partial file on error.
func downloadFile(client *http.Client, url, path string) error {
	log.WithFields(log.Fields{"url": url, "path": path}).Info("downloading dataset")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating dataset directory: %w", err)
		}
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP GET %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(path) // best-effort cleanup of partial file
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	// Explicit close to catch flush errors before the file is trusted.
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	success = true
	return nil
}
