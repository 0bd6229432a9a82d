package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/rs/zerolog"

	"github.com/handiism/erettsegi-downloader/internal/config"
)

// StatusError is returned when the server answers with anything but 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Is allows for error checking with errors.Is().
func (e *StatusError) Is(target error) bool {
	_, ok := target.(*StatusError)
	return ok
}

// Client wraps HTTP operations with archive-specific configuration.
//
// Example usage:
//
//	client := NewClient(settings, logger)
//
//	written, err := client.DownloadFile(ctx, zipURL, "/path/to/e_inffor_12okt_fl.zip", func(written, total int64) {
//	    percent := float64(written) / float64(total) * 100
//	    fmt.Printf("%.1f%%\n", percent)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new HTTP client from settings.
//
// The client is configured with:
//   - settings.Timeout() as overall request timeout
//   - settings.UserAgent as User-Agent header
//   - settings.ProxyAddress as proxy, when set and valid
//   - automatic decompression of gzip, br and zstd bodies
func NewClient(settings *config.Settings, logger zerolog.Logger) *Client {
	// Clone DefaultTransport to keep its pooling and timeouts
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if settings.ProxyAddress != "" {
		proxyURL, err := url.Parse(settings.ProxyAddress)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", settings.ProxyAddress).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   settings.Timeout(),
			Transport: newCompressionTransport(baseTransport),
		},
		userAgent: settings.UserAgent,
		logger:    logger,
	}
}

// ProgressWriter wraps a writer to track download progress.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes, -1 when unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

func (c *Client) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// Returns an error if:
//   - The request fails
//   - The server doesn't return a Content-Length header
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}
	// Sizes must match the decoded bytes DownloadFile reports.
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", url)
	}

	return resp.ContentLength, nil
}

// DownloadFile downloads a file to the specified path with optional progress callback.
//
// The content is streamed directly to disk. The destination is only
// created once the server answered 200 OK, and is removed again if the
// transfer fails midway, so a failed download never leaves a truncated
// file behind.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes);
//     pass nil to disable progress tracking
//
// Returns the number of bytes written.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	file, err := os.Create(destPath)
	if err != nil {
		return 0, err
	}

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	written, err := io.Copy(writer, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(destPath)
		return written, err
	}

	c.logger.Debug().
		Str("url", url).
		Str("path", destPath).
		Int64("bytes", written).
		Msg("Downloaded file")

	return written, nil
}
