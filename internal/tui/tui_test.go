package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/handiism/erettsegi-downloader/internal/config"
	"github.com/handiism/erettsegi-downloader/internal/download"
	"github.com/handiism/erettsegi-downloader/internal/exam"
	"github.com/handiism/erettsegi-downloader/internal/i18n"
)

func newTestModel(year, month, level string) Model {
	return NewModel(Options{
		Settings: config.DefaultSettings(),
		Messages: i18n.New("en"),
		Logger:   zerolog.Nop(),
		Year:     year,
		Month:    month,
		Level:    level,
	})
}

func press(m Model, key tea.KeyType) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: key})
	return updated.(Model)
}

func TestSubmit_InvalidInputKeepsForm(t *testing.T) {
	tests := []struct {
		name      string
		year      string
		month     string
		level     string
		wantFocus int
		wantError string
	}{
		{"bad year", "1999", "okt", "e", inputYear, "incorrect year"},
		{"bad month", "12", "december", "e", inputMonth, "incorrect month"},
		{"bad level", "12", "okt", "x", inputLevel, "incorrect level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newTestModel(tt.year, tt.month, tt.level), tea.KeyEnter)

			if m.state != StateInput {
				t.Errorf("state = %v, want StateInput", m.state)
			}
			if m.focused != tt.wantFocus {
				t.Errorf("focused = %d, want %d", m.focused, tt.wantFocus)
			}
			if m.inputError != tt.wantError {
				t.Errorf("inputError = %q, want %q", m.inputError, tt.wantError)
			}
			if !strings.Contains(m.View(), tt.wantError) {
				t.Error("view should show the validation error")
			}
		})
	}
}

func TestSubmit_ValidInputStartsRun(t *testing.T) {
	m := press(newTestModel("12", "ősz", "advanced"), tea.KeyEnter)

	if m.state != StateInitializing {
		t.Fatalf("state = %v, want StateInitializing", m.state)
	}
	want := exam.Request{Year: 2012, Month: exam.October, Level: exam.LevelAdvanced}
	if m.request != want {
		t.Errorf("request = %+v, want %+v", m.request, want)
	}
	if m.events == nil {
		t.Error("progress channel should be created")
	}
}

func TestUpdate_FocusCycles(t *testing.T) {
	m := newTestModel("", "", "")

	m = press(m, tea.KeyTab)
	if m.focused != inputMonth {
		t.Errorf("focused = %d after tab", m.focused)
	}
	m = press(m, tea.KeyShiftTab)
	m = press(m, tea.KeyShiftTab)
	if m.focused != inputLevel {
		t.Errorf("focused = %d, want wrap to level", m.focused)
	}
}

func TestUpdate_KeepArchivesToggleKeepsInput(t *testing.T) {
	m := newTestModel("2012", "", "")
	m.inputs[inputYear].SetCursor(2)

	m = press(m, tea.KeyCtrlK)

	if !m.keepArchives {
		t.Error("ctrl+k should toggle keep archives")
	}
	if got := m.inputs[inputYear].Value(); got != "2012" {
		t.Errorf("year input = %q, want it untouched", got)
	}
}

func TestUpdate_IgnoresMessagesFromOlderRuns(t *testing.T) {
	m := press(newTestModel("12", "okt", "e"), tea.KeyEnter)
	first := m.run

	m = press(m, tea.KeyEsc)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(Model)
	m.inputs[inputYear].SetValue("13")
	m.inputs[inputMonth].SetValue("maj")
	m.inputs[inputLevel].SetValue("k")
	m = press(m, tea.KeyEnter)

	if m.state != StateInitializing || m.run == first {
		t.Fatalf("state = %v, run = %d, want a new initializing run", m.state, m.run)
	}

	updated, _ = m.Update(InitDoneMsg{Run: first, Err: context.Canceled})
	m = updated.(Model)
	if m.state != StateInitializing {
		t.Errorf("state = %v, stale result should be ignored", m.state)
	}

	updated, _ = m.Update(ProgressMsg{Run: first, Event: download.ProgressEvent{Message: "old", Level: download.LevelInfo}})
	if logs := updated.(Model).logs; len(logs) != 0 {
		t.Errorf("logs = %v, stale events should be dropped", logs)
	}
}

func TestUpdate_DownloadResults(t *testing.T) {
	m := newTestModel("12", "okt", "e")
	m.state = StateDownloading

	updated, _ := m.Update(DownloadDoneMsg{Files: 4, TotalF: 4, Received: 10, Total: 10})
	if got := updated.(Model).state; got != StateComplete {
		t.Errorf("state = %v, want StateComplete", got)
	}

	failed, _ := m.Update(DownloadDoneMsg{Err: errors.New("HTTP 404")})
	if got := failed.(Model); got.state != StateError || !strings.Contains(got.View(), "HTTP 404") {
		t.Errorf("state = %v, want StateError showing the cause", got.state)
	}
}

func TestAppendLog_SkipsVerboseAndCaps(t *testing.T) {
	m := newTestModel("", "", "")
	m.appendLog(download.ProgressEvent{Message: "url", Level: download.LevelVerbose})
	if len(m.logs) != 0 {
		t.Fatal("verbose events should not be shown")
	}

	for i := 0; i < maxLogs+5; i++ {
		m.appendLog(download.ProgressEvent{Message: "x", Level: download.LevelInfo})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
}
