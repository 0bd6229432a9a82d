package ioutils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"golang.org/x/text/encoding/charmap"

	"github.com/handiism/erettsegi-downloader/internal/exam"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"e_inf_12okt_fl.pdf", "e_inf_12okt_fl.pdf"},
		{"file:with:colons", "file_with_colons"},
		{"file<with>brackets", "file_with_brackets"},
		{"file/with\\slashes", "file_with_slashes"},
		{"file|with|pipes", "file_with_pipes"},
		{"file?with*wildcards", "file_with_wildcards"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRunDir(t *testing.T) {
	req := exam.Request{Year: 2012, Month: exam.October, Level: exam.LevelAdvanced}

	tests := []struct {
		template string
		want     string
	}{
		{"erettsegi_{year}_{month}_{level}", "erettsegi_2012_okt_e"},
		{"/data/{date}/{level}", "/data/12okt/e"},
		{"out/{year}:{level}", "out/2012_e"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			if got := RunDir(tt.template, req); got != filepath.FromSlash(tt.want) {
				t.Errorf("RunDir(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

type zipEntry struct {
	name    string
	content string
	rawName bool
}

func writeZip(t *testing.T, path string, entries []zipEntry) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		header := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		if e.rawName {
			header.NonUTF8 = true
		}
		fw, err := w.CreateHeader(header)
		if err != nil {
			t.Fatalf("create %s: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("write %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "e_inffor_12okt_fl.zip")

	legacyName, err := charmap.CodePage852.NewEncoder().String("forrás/szöveg_ő.txt")
	if err != nil {
		t.Fatal(err)
	}

	writeZip(t, archive, []zipEntry{
		{name: "adatok/"},
		{name: "adatok/be.txt", content: "1 2 3"},
		{name: "feladat.txt", content: "olvassa be"},
		{name: legacyName, content: "ékezetes", rawName: true},
	})

	files, err := ExtractZip(context.Background(), archive, dir)
	if err != nil {
		t.Fatalf("ExtractZip() error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("extracted %d files, want 3: %v", len(files), files)
	}

	checks := map[string]string{
		"adatok/be.txt":       "1 2 3",
		"feladat.txt":         "olvassa be",
		"forrás/szöveg_ő.txt": "ékezetes",
	}
	for name, want := range checks {
		got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("reading %s: %v", name, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestExtractZip_RejectsEscapingEntries(t *testing.T) {
	for _, name := range []string{"../evil.txt", "a/../../evil.txt", "/etc/evil"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			archive := filepath.Join(dir, "evil.zip")
			writeZip(t, archive, []zipEntry{{name: name, content: "x"}})

			dest := filepath.Join(dir, "out")
			// The zip reader may already refuse the archive; either way
			// extraction must fail.
			if _, err := ExtractZip(context.Background(), archive, dest); err == nil {
				t.Error("expected an error for an escaping entry")
			}
			if _, err := os.Stat(filepath.Join(dir, "evil.txt")); !os.IsNotExist(err) {
				t.Error("escaping entry was written")
			}
		})
	}
}

func TestSafeJoin(t *testing.T) {
	root := filepath.Join(t.TempDir(), "run")

	for _, name := range []string{"../x", "a/../../x", "/abs", `..\x`} {
		if _, err := safeJoin(root, name); !errors.Is(err, ErrUnsafePath) {
			t.Errorf("safeJoin(%q) error = %v, want ErrUnsafePath", name, err)
		}
	}

	got, err := safeJoin(root, "a/./b.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(root, "a", "b.txt"); got != want {
		t.Errorf("safeJoin() = %q, want %q", got, want)
	}
}

func TestExtractZip_Cancelled(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "a.zip")
	writeZip(t, archive, []zipEntry{{name: "a.txt", content: "a"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ExtractZip(ctx, archive, dir); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestExtractZip_NotAnArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.zip")
	if err := os.WriteFile(path, []byte("<html>not found</html>"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ExtractZip(context.Background(), path, dir); err == nil {
		t.Error("expected error for a non-zip file")
	}
}
