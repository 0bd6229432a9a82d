// Package config provides configuration management for erettsegi-downloader.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from a JSON or YAML file and ERETTSEGIT_* environment variables
//   - Saving settings as JSON
//   - Logger construction
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Downloads into ./erettsegi_{year}_{month}_{level}
//	// Hungarian messages, archives deleted after extraction
//
// # Loading
//
//	settings, err := config.Load("/path/to/erettsegit.json")
//
// An empty path searches for erettsegit.{json,yaml} in the working
// directory and in the user config directory. A missing file is not an
// error. Environment variables override the file, e.g. ERETTSEGIT_LANG=EN
// switches messages to English.
//
// # Configuration Options
//
// Settings includes options for:
//   - Download directory naming
//   - Archive handling
//   - Message language and log level
//   - HTTP client behaviour (User-Agent, timeout, proxy)
package config
