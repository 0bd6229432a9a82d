// Package download provides the orchestration logic for fetching the
// documents of one exam session.
//
// # Manager
//
// The Manager coordinates the entire process:
//
//  1. Resolve file names and links for the request
//  2. Create the run directory
//  3. Download the four documents, one after another
//  4. Extract every zip archive and delete it (unless KeepArchives is set)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, msgs, logger, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, req); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.StartDownloads(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failures
//
// Processing stops at the first document that cannot be downloaded or
// extracted. The returned *TargetError names the document and wraps the
// cause. There are no retries.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress can be polled from another goroutine while downloads run.
package download
