// Package http provides an HTTP client configured for the dari.oktatas.hu
// document archive.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Optional proxy configuration
//   - Transparent gzip, brotli and zstd response decoding
//   - File downloads with progress tracking
//   - File size retrieval via HEAD requests
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(settings)
//
//	// Download file with progress callback
//	client.DownloadFile(ctx, pdfURL, "/path/to/e_inf_12okt_fl.pdf", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// Non-200 responses are reported as *StatusError so callers can tell a
// missing document (404) from a transport failure.
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
