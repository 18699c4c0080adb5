// Package kaggle downloads public Kaggle dataset archives. Used as the
// fallback catalog source when the ingest command is given no local
// paths.
package kaggle

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://www.kaggle.com/api/v1"
	DefaultTimeout = 5 * time.Minute
)

// Default dataset slugs for the two catalog schemas.
const (
	MoviesDataset = "payamamanat/imbd-dataset"
	MixedDataset  = "shivamb/netflix-shows"
)

// Config holds configuration for the Kaggle client.
type Config struct {
	// BaseURL is the Kaggle API base URL (default: the public API).
	BaseURL string

	// Username and Key authenticate the download. Public datasets
	// download without credentials.
	Username string
	Key      string

	// CacheDir is where extracted datasets land (default: the user
	// cache dir under reelsearch/datasets).
	CacheDir string

	// Timeout is the download timeout (default: 5m).
	Timeout time.Duration
}

// Client downloads and extracts dataset archives.
type Client struct {
	client   *http.Client
	baseURL  string
	username string
	key      string
	cacheDir string
}

// NewClient creates a Kaggle dataset client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving cache dir: %w", err)
		}
		cfg.CacheDir = filepath.Join(base, "reelsearch", "datasets")
	}

	return &Client{
		client:   &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		key:      cfg.Key,
		cacheDir: cfg.CacheDir,
	}, nil
}

// Download fetches a dataset archive and extracts it, returning the
// directory holding its files. A previously extracted dataset is
// reused without re-downloading.
func (c *Client) Download(ctx context.Context, dataset string) (string, error) {
	target := filepath.Join(c.cacheDir, strings.ReplaceAll(dataset, "/", "__"))
	if populated(target) {
		return target, nil
	}

	url := c.baseURL + "/datasets/download/" + dataset
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.key)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s: status %d", dataset, resp.StatusCode)
	}

	archive, err := os.CreateTemp("", "reelsearch-dataset-*.zip")
	if err != nil {
		return "", fmt.Errorf("create temp archive: %w", err)
	}
	defer os.Remove(archive.Name())
	defer archive.Close()

	if _, err := io.Copy(archive, resp.Body); err != nil {
		return "", fmt.Errorf("saving %s: %w", dataset, err)
	}

	if err := extract(archive.Name(), target); err != nil {
		return "", fmt.Errorf("extracting %s: %w", dataset, err)
	}
	return target, nil
}

// populated reports whether a previous extraction left files behind.
func populated(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

// extract unpacks a zip archive into dir, refusing paths that escape
// it.
func extract(archivePath, dir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, f := range r.File {
		dest := filepath.Join(dir, filepath.Clean(f.Name))
		if !strings.HasPrefix(dest, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes target dir", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %q: %w", f.Name, err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
