package vectors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FetchConfig configures the word-vector download.
type FetchConfig struct {
	URL        string
	Path       string
	Timeout    time.Duration
	MaxRetries int
	Client     *http.Client
}

// FetchError reports a download that failed after all retries.
type FetchError struct {
	URL    string
	Status string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetch downloads cfg.URL to cfg.Path unless the file already exists. Returns
// true when a download happened. Transient failures (transport errors, 429
// and 5xx) are retried with exponential backoff, honouring Retry-After.
func Fetch(ctx context.Context, cfg FetchConfig) (bool, error) {
	if _, err := os.Stat(cfg.Path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if cfg.URL == "" {
		return false, fmt.Errorf("word vectors missing at %s and no download url configured", cfg.Path)
	}

	client := cfg.Client
	if client == nil {
		t := cfg.Timeout
		if t == 0 {
			t = 30 * time.Minute
		}
		client = &http.Client{Timeout: t}
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var last *FetchError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		wait, err := fetchOnce(ctx, client, cfg)
		if err == nil {
			return true, nil
		}
		if !errors.As(err, &last) {
			return false, err
		}
		if wait < 0 || attempt == maxRetries {
			break
		}
		if wait == 0 {
			wait = retryDelay(attempt)
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(wait):
		}
	}
	return false, last
}

// fetchOnce performs one download attempt. A returned wait of -1 means the
// failure is permanent; 0 means use the default backoff.
func fetchOnce(ctx context.Context, client *http.Client, cfg FetchConfig) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return -1, err
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return -1, ctx.Err()
		}
		return 0, &FetchError{URL: cfg.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		var wait time.Duration
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				wait = time.Duration(secs) * time.Second
			}
		}
		return wait, &FetchError{URL: cfg.URL, Status: resp.Status}
	}
	if resp.StatusCode >= 300 {
		return -1, &FetchError{URL: cfg.URL, Status: resp.Status}
	}

	if err := writeAtomic(cfg.Path, resp.Body); err != nil {
		if ctx.Err() != nil {
			return -1, ctx.Err()
		}
		return 0, &FetchError{URL: cfg.URL, Err: err}
	}
	return 0, nil
}

// writeAtomic streams r into a temp file next to path and renames it into
// place, so a partial download never looks complete.
func writeAtomic(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".part-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 5 {
		return 5 * time.Second
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
