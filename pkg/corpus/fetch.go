package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const downloadAttempts = 3

// retryBase is the first backoff step; doubled on each further attempt.
var retryBase = time.Second

var httpClient = &http.Client{Timeout: 10 * time.Minute}

// downloadFile downloads url to dest with retries. The file only appears at
// dest once fully written.
func downloadFile(ctx context.Context, url, dest string) error {
	var lastErr error
	for attempt := 0; attempt < downloadAttempts; attempt++ {
		if attempt > 0 {
			backoff := retryBase << uint(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		tmp := dest + ".part"
		f, err := os.Create(tmp)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}
		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			os.Remove(tmp)
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			os.Remove(tmp)
			return closeErr
		}
		return os.Rename(tmp, dest)
	}
	return fmt.Errorf("download %s failed after %d attempts: %w", url, downloadAttempts, lastErr)
}
