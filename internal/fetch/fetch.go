// Package fetch provides the narrow download/extract contract asset
// steps depend on.
package fetch

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/huectl/huectl/internal/execx"
)

const userAgent = "Mozilla/5.0"

// Fetcher downloads remote assets. Steps never talk to the network
// directly; they go through this interface so tests can stub it out.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) error
	GetJSON(ctx context.Context, url string, v any) error
}

// HTTPFetcher is the default Fetcher backed by net/http.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher with a bounded HTTP client.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 60 * time.Second}}
}

// Download fetches a URL to a file, creating parent directories.
func (f *HTTPFetcher) Download(ctx context.Context, url, dest string) error {
	resp, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("download of %s failed: %w", url, err)
	}
	return nil
}

// GetJSON fetches a URL and decodes the JSON response.
func (f *HTTPFetcher) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("request to %s returned %s", url, resp.Status)
	}
	return resp, nil
}

// ExtractZip extracts regular files from a zip archive into destDir.
// When filter is non-nil only entries it accepts are extracted; each
// accepted entry is written flat under destDir using its base name.
// Returns the written file paths.
func ExtractZip(archive, destDir string, filter func(name string) bool) ([]string, error) {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if filter != nil && !filter(entry.Name) {
			continue
		}

		src, err := entry.Open()
		if err != nil {
			return written, fmt.Errorf("failed to read %s: %w", entry.Name, err)
		}
		dest := filepath.Join(destDir, filepath.Base(entry.Name))
		out, err := os.Create(dest)
		if err != nil {
			src.Close()
			return written, err
		}
		_, err = io.Copy(out, src)
		src.Close()
		out.Close()
		if err != nil {
			return written, fmt.Errorf("failed to extract %s: %w", entry.Name, err)
		}
		written = append(written, dest)
	}
	return written, nil
}

// ExtractZipTree extracts a zip archive into destDir preserving paths.
func ExtractZipTree(archive, destDir string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		dest := filepath.Join(destDir, filepath.Clean(entry.Name))
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}

		src, err := entry.Open()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", entry.Name, err)
		}
		out, err := os.Create(dest)
		if err != nil {
			src.Close()
			return err
		}
		_, err = io.Copy(out, src)
		src.Close()
		out.Close()
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
		}
	}
	return nil
}

// ExtractTar unpacks a tar archive (any compression tar understands)
// into destDir using the system tar command.
func ExtractTar(ctx context.Context, e execx.Executor, archive, destDir string) error {
	_, stderr, err := e.Exec(ctx, "tar", "xf", archive, "-C", destDir)
	if err != nil {
		return fmt.Errorf("tar extraction failed: %s: %w", execx.Diagnostic(stderr, 100), err)
	}
	return nil
}
