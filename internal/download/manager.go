package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/handiism/erettsegi-downloader/internal/config"
	"github.com/handiism/erettsegi-downloader/internal/exam"
	"github.com/handiism/erettsegi-downloader/internal/http"
	"github.com/handiism/erettsegi-downloader/internal/i18n"
	ioutils "github.com/handiism/erettsegi-downloader/internal/io"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ErrNotInitialized is returned by StartDownloads before Initialize.
var ErrNotInitialized = errors.New("download manager not initialized")

// TargetError reports the document at which processing stopped.
type TargetError struct {
	Target exam.Target
	Err    error
}

// Error implements the error interface.
func (e *TargetError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Target.FileName, e.Target.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TargetError) Unwrap() error {
	return e.Err
}

// Manager coordinates the downloads of one request.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	messages   *i18n.Messages
	logger     zerolog.Logger

	request exam.Request
	targets []exam.Target
	runDir  string

	totalBytes      int64
	receivedBytes   int64
	totalFiles      int32
	downloadedFiles int32
	extracted       []string

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, messages *i18n.Messages, logger zerolog.Logger, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		httpClient: http.NewClient(settings, logger),
		messages:   messages,
		logger:     logger,
		onProgress: onProgress,
	}
}

// Initialize resolves the documents of req. It performs no network or
// disk I/O.
func (m *Manager) Initialize(ctx context.Context, req exam.Request) error {
	m.request = req
	m.targets = exam.Plan(m.settings.BaseURL, req)
	m.runDir = ioutils.RunDir(m.settings.DownloadsPath, req)
	m.totalFiles = int32(len(m.targets))

	m.logger.Debug().
		Int("year", int(req.Year)).
		Stringer("month", req.Month).
		Stringer("level", req.Level).
		Int("templates", exam.ResolveTemplates(req.Year, req.Month).Version).
		Str("dir", m.runDir).
		Msg("Resolved documents")

	for _, target := range m.targets {
		m.progress(ProgressEvent{Message: target.URL, Level: LevelVerbose})
	}

	return ctx.Err()
}

// Targets returns the documents resolved by Initialize.
func (m *Manager) Targets() []exam.Target {
	return m.targets
}

// RunDir returns the directory documents are stored in.
func (m *Manager) RunDir() string {
	return m.runDir
}

// Extracted returns the files unpacked from archives so far.
func (m *Manager) Extracted() []string {
	return m.extracted
}

// StartDownloads probes the expected sizes, then downloads every document
// in order, stopping at the first failure.
func (m *Manager) StartDownloads(ctx context.Context) error {
	if m.targets == nil {
		return ErrNotInitialized
	}

	m.calculateTotals(ctx)

	if err := ioutils.EnsureDir(m.runDir); err != nil {
		m.progress(ProgressEvent{Message: m.messages.Get(i18n.ErrFileSystem, err.Error()), Level: LevelError})
		return err
	}

	for _, target := range m.targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.processTarget(ctx, target); err != nil {
			return &TargetError{Target: target, Err: err}
		}
	}

	m.progress(ProgressEvent{Message: m.messages.Get(i18n.InfoDone, m.runDir), Level: LevelSuccess})
	return nil
}

// Run is Initialize followed by StartDownloads.
func (m *Manager) Run(ctx context.Context, req exam.Request) error {
	if err := m.Initialize(ctx, req); err != nil {
		return err
	}
	return m.StartDownloads(ctx)
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received, total int64, filesReceived, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt64(&m.totalBytes),
		atomic.LoadInt32(&m.downloadedFiles), m.totalFiles
}

func (m *Manager) calculateTotals(ctx context.Context) {
	var total int64
	for _, target := range m.targets {
		size, err := m.httpClient.GetFileSize(ctx, target.URL)
		if err != nil {
			m.logger.Debug().Err(err).Str("url", target.URL).Msg("Size unknown")
			continue
		}
		total += size
	}
	atomic.StoreInt64(&m.totalBytes, total)
}

func (m *Manager) processTarget(ctx context.Context, target exam.Target) error {
	dest := filepath.Join(m.runDir, target.FileName)
	m.progress(ProgressEvent{Message: m.messages.Get(i18n.InfoDownloading, target.FileName), Level: LevelInfo})

	var last int64
	_, err := m.httpClient.DownloadFile(ctx, target.URL, dest, func(written, _ int64) {
		atomic.AddInt64(&m.receivedBytes, written-last)
		last = written
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		m.progress(ProgressEvent{Message: m.messages.Get(i18n.ErrNetwork, err.Error()), Level: LevelError})
		return err
	}

	atomic.AddInt32(&m.downloadedFiles, 1)
	m.progress(ProgressEvent{Message: m.messages.Get(i18n.InfoDownloaded, target.FileName), Level: LevelSuccess})

	if !target.IsArchive() {
		return nil
	}

	m.progress(ProgressEvent{Message: m.messages.Get(i18n.InfoExtracting, target.FileName), Level: LevelInfo})
	files, err := ioutils.ExtractZip(ctx, dest, m.runDir)
	m.extracted = append(m.extracted, files...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		m.progress(ProgressEvent{Message: m.messages.Get(i18n.ErrArchive, err.Error()), Level: LevelError})
		return err
	}

	for _, file := range files {
		m.progress(ProgressEvent{Message: file, Level: LevelVerbose})
	}

	if m.settings.KeepArchives {
		return nil
	}
	if err := os.Remove(dest); err != nil {
		m.progress(ProgressEvent{Message: m.messages.Get(i18n.ErrFileSystem, err.Error()), Level: LevelWarning})
	}
	return nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
