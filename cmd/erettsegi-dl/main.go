package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/erettsegi-downloader/internal/config"
	"github.com/handiism/erettsegi-downloader/internal/download"
	"github.com/handiism/erettsegi-downloader/internal/exam"
	"github.com/handiism/erettsegi-downloader/internal/i18n"
	"github.com/handiism/erettsegi-downloader/internal/tui"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitInvalid   = 2
	exitCancelled = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	// Command line flags
	var interactive bool
	flag.BoolVar(&interactive, "interactive", false, "Prompt for year, month and level")
	flag.BoolVar(&interactive, "i", false, "Shorthand for -interactive")
	var (
		outputFlag  = flag.String("output", "", "Output directory template (overrides config)")
		configFlag  = flag.String("config", "", "Path to config file")
		langFlag    = flag.String("lang", "", "Message language: hu or en (overrides ERETTSEGIT_LANG)")
		keepFlag    = flag.Bool("keep-archives", false, "Keep zip files after extraction")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag  = flag.Bool("dry-run", false, "Print the download links without downloading")
	)

	flag.Usage = usage
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitFailure
	}

	// Apply flags
	if *outputFlag != "" {
		settings.DownloadsPath = *outputFlag
	}
	if *langFlag != "" {
		settings.Language = *langFlag
	}
	if *keepFlag {
		settings.KeepArchives = true
	}
	if *verboseFlag {
		settings.LogLevel = "debug"
	}

	logger := config.NewLogger(os.Stderr, settings.LogLevel)
	messages := i18n.New(settings.Language)

	if interactive {
		// Log output would tear the alternate screen.
		opts := tui.Options{Settings: settings, Messages: messages, Logger: config.NewLogger(os.Stderr, "disabled")}
		opts.Year, opts.Month, opts.Level = flag.Arg(0), flag.Arg(1), flag.Arg(2)
		if err := tui.Run(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	if flag.NArg() != 3 {
		usage()
		return exitInvalid
	}

	req, err := exam.ParseRequest(flag.Arg(0), flag.Arg(1), flag.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ "+messages.Error(err))
		return exitInvalid
	}

	if *dryRunFlag {
		for _, target := range exam.Plan(settings.BaseURL, req) {
			fmt.Printf("%s\t%s\n", target.FileName, target.URL)
		}
		fmt.Println("\n[Dry run - not downloading]")
		return exitOK
	}

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := download.NewManager(settings, messages, logger, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("📚 Érettségi Downloader")
	fmt.Println()

	if err := manager.Initialize(ctx, req); err != nil {
		if ctx.Err() != nil {
			return exitCancelled
		}
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return exitFailure
	}

	if err := manager.StartDownloads(ctx); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			fmt.Println("\n" + messages.Get(i18n.InfoQuit))
			return exitCancelled
		}
		logger.Debug().Err(err).Msg("Download failed")
		return exitFailure
	}

	received, _, files, totalFiles := manager.GetProgress()
	fmt.Println()
	fmt.Printf("✨ %d/%d files (%.2f MB) in %s\n", files, totalFiles, float64(received)/1024/1024, manager.RunDir())
	return exitOK
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Érettségi Downloader - informatics matura papers from dari.oktatas.hu")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  erettsegi-dl [options] YEAR MONTH LEVEL")
	fmt.Fprintln(out, "  erettsegi-dl -i [options] [YEAR [MONTH [LEVEL]]]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  erettsegi-dl 2012 okt emelt")
	fmt.Fprintln(out, "  erettsegi-dl 19 may mid")
	fmt.Fprintln(out)
	flag.PrintDefaults()
}
