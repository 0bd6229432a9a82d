package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zip"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnsafePath is returned for archive entries that would be written
// outside the destination directory.
var ErrUnsafePath = errors.New("archive entry escapes destination")

// flagUTF8 is the general purpose bit marking UTF-8 encoded entry names.
const flagUTF8 = 0x800

// ExtractZip extracts every entry of the archive at src into destDir and
// returns the paths of the extracted files.
//
// Directory structure inside the archive is preserved. Entries with
// absolute paths or ".." components yield ErrUnsafePath. Cancellation is
// checked between entries.
func ExtractZip(ctx context.Context, src, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(src), err)
	}
	defer reader.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return nil, err
	}

	var extracted []string
	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return extracted, err
		}

		name := entryName(file)
		target, err := safeJoin(root, name)
		if err != nil {
			return extracted, fmt.Errorf("%s: %w", name, err)
		}

		if file.FileInfo().IsDir() {
			if err := EnsureDir(target); err != nil {
				return extracted, err
			}
			continue
		}

		if err := extractFile(file, target); err != nil {
			return extracted, fmt.Errorf("extract %s: %w", name, err)
		}
		extracted = append(extracted, target)
	}

	return extracted, nil
}

func extractFile(file *zip.File, target string) error {
	if err := EnsureDir(filepath.Dir(target)); err != nil {
		return err
	}

	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, rc)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

// entryName returns the UTF-8 name of an entry. Names without the UTF-8
// flag that are not valid UTF-8 are decoded as code page 852, the DOS code
// page for Hungarian.
func entryName(file *zip.File) string {
	name := file.Name
	if file.Flags&flagUTF8 != 0 || utf8.ValidString(name) {
		return name
	}
	decoded, err := charmap.CodePage852.NewDecoder().String(name)
	if err != nil {
		return name
	}
	return decoded
}

func safeJoin(root, name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", ErrUnsafePath
	}

	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", ErrUnsafePath
	}
	return target, nil
}
