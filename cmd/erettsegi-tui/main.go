package main

import (
	"fmt"
	"os"

	"github.com/handiism/erettsegi-downloader/internal/config"
	"github.com/handiism/erettsegi-downloader/internal/i18n"
	"github.com/handiism/erettsegi-downloader/internal/tui"
)

func main() {
	settings, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{
		Settings: settings,
		Messages: i18n.New(settings.Language),
		Logger:   config.NewLogger(os.Stderr, "disabled"),
	}

	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
