// Package i18n holds the user facing messages of erettsegi-downloader in
// Hungarian and English.
//
// The language is chosen once, from a tag injected by the caller:
//
//	msgs := i18n.New(settings.Language)
//	fmt.Println(msgs.Get(i18n.InfoQuit))
package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"

	"github.com/handiism/erettsegi-downloader/internal/exam"
)

// Key identifies a message.
type Key int

const (
	ErrInput Key = iota
	ErrNetwork
	ErrArchive
	ErrFileSystem
	FieldYear
	FieldMonth
	FieldLevel
	PromptYear
	PromptMonth
	PromptLevel
	InfoDownloading
	InfoDownloaded
	InfoExtracting
	InfoDone
	InfoQuit
)

var supported = []language.Tag{language.Hungarian, language.English}

var matcher = language.NewMatcher(supported)

// Each "{}" is replaced by the next extra argument.
var tables = map[language.Tag]map[Key]string{
	language.Hungarian: {
		ErrInput:        "hibás {}",
		ErrNetwork:      "hálózati hiba: {}",
		ErrArchive:      "hibás tömörített fájl: {}",
		ErrFileSystem:   "fájlrendszer hiba: {}",
		FieldYear:       "év",
		FieldMonth:      "hónap",
		FieldLevel:      "szint",
		PromptYear:      "Év (pl. 2012 vagy 12):",
		PromptMonth:     "Időszak (február, május, október):",
		PromptLevel:     "Szint (közép / emelt):",
		InfoDownloading: "letöltés: {}",
		InfoDownloaded:  "letöltve: {}",
		InfoExtracting:  "kicsomagolás: {}",
		InfoDone:        "kész, a fájlok helye: {}",
		InfoQuit:        "kilépés",
	},
	language.English: {
		ErrInput:        "incorrect {}",
		ErrNetwork:      "network error: {}",
		ErrArchive:      "broken archive: {}",
		ErrFileSystem:   "file system error: {}",
		FieldYear:       "year",
		FieldMonth:      "month",
		FieldLevel:      "level",
		PromptYear:      "Year (e.g. 2012 or 12):",
		PromptMonth:     "Session (february, may, october):",
		PromptLevel:     "Level (mid / advanced):",
		InfoDownloading: "downloading: {}",
		InfoDownloaded:  "downloaded: {}",
		InfoExtracting:  "extracting: {}",
		InfoDone:        "done, files are in {}",
		InfoQuit:        "quitting",
	},
}

// Messages renders messages in a single language.
type Messages struct {
	tag   language.Tag
	table map[Key]string
}

// New returns the messages best matching tag. Unknown or empty tags fall
// back to Hungarian.
func New(tag string) *Messages {
	chosen := language.Hungarian
	if parsed, err := language.Parse(strings.TrimSpace(tag)); err == nil {
		_, index, confidence := matcher.Match(parsed)
		if confidence != language.No {
			chosen = supported[index]
		}
	}
	return &Messages{tag: chosen, table: tables[chosen]}
}

// Language returns the selected language.
func (m *Messages) Language() language.Tag {
	return m.tag
}

// Get renders a message. Missing extras leave their placeholders empty and
// surplus extras are ignored.
func (m *Messages) Get(key Key, extra ...string) string {
	text := m.table[key]
	for strings.Contains(text, "{}") {
		value := ""
		if len(extra) > 0 {
			value, extra = extra[0], extra[1:]
		}
		text = strings.Replace(text, "{}", value, 1)
	}
	return strings.TrimSpace(text)
}

// Field returns the localized name of an input field.
func (m *Messages) Field(field exam.Field) string {
	switch field {
	case exam.FieldYear:
		return m.Get(FieldYear)
	case exam.FieldMonth:
		return m.Get(FieldMonth)
	case exam.FieldLevel:
		return m.Get(FieldLevel)
	}
	return string(field)
}

// Error renders err for the user. Validation errors become
// "incorrect <field>"; other errors are returned verbatim.
func (m *Messages) Error(err error) string {
	var verr *exam.ValidationError
	if errors.As(err, &verr) {
		return m.Get(ErrInput, m.Field(verr.Field))
	}
	return err.Error()
}
