package ioutils

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/handiism/erettsegi-downloader/internal/exam"
)

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("feladat: 1/2")  // Returns "feladat_ 1_2"
//	SanitizeFileName("forras...")     // Returns "forras"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// RunDir computes the directory of a run from a path template.
//
// Available placeholders:
//   - {year}  - four digit year, e.g. "2012"
//   - {month} - session word, e.g. "okt"
//   - {date}  - two digit year and session word, e.g. "12okt"
//   - {level} - level letter, "k" or "e"
//
// Only the last path element is sanitized so templates may point anywhere.
func RunDir(template string, req exam.Request) string {
	path := template
	path = strings.ReplaceAll(path, "{year}", strconv.Itoa(int(req.Year)))
	path = strings.ReplaceAll(path, "{month}", req.Month.SeasonWord())
	path = strings.ReplaceAll(path, "{date}", exam.DatePart(req.Year, req.Month))
	path = strings.ReplaceAll(path, "{level}", string(req.Level))

	path = filepath.Clean(path)
	dir, base := filepath.Split(path)
	if safe := SanitizeFileName(base); safe != "" {
		return filepath.Join(dir, safe)
	}
	return path
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
