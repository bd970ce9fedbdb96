// Package logging configures the global zerolog logger. Output goes to stdout
// and to one file per day under the log directory; files older than the
// retention window are removed when the day rolls over.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

type Config struct {
	Level         string
	Format        string
	Dir           string
	RetentionDays int
}

// Setup installs the global logger and returns a func that closes the log file.
// When the directory cannot be created, logging continues on stdout only and the error is returned.
func Setup(cfg Config) (func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var stdout io.Writer = os.Stdout
	if cfg.Format == "console" {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	files, err := NewDailyWriter(cfg.Dir, cfg.RetentionDays)
	if err != nil {
		install(stdout)
		return func() {}, err
	}
	install(zerolog.MultiLevelWriter(stdout, files))
	return func() { _ = files.Close() }, nil
}

func install(w io.Writer) {
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}

// DailyWriter appends to app-YYYY-MM-DD.log and switches files when the date changes.
type DailyWriter struct {
	mu        sync.Mutex
	dir       string
	retention int
	date      string
	file      *os.File
	now       func() time.Time
}

func NewDailyWriter(dir string, retentionDays int) (*DailyWriter, error) {
	if dir == "" {
		dir = "storage/logs"
	}
	if retentionDays <= 0 || retentionDays > 7 {
		retentionDays = 7
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	w := &DailyWriter{dir: dir, retention: retentionDays, now: time.Now}
	if err := w.rotate(w.now().Format(dateLayout)); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *DailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if date := w.now().Format(dateLayout); date != w.date {
		if err := w.rotate(date); err != nil {
			return 0, err
		}
	}
	if w.file == nil {
		return 0, os.ErrClosed
	}
	return w.file.Write(p)
}

func (w *DailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// rotate must be called with mu held.
func (w *DailyWriter) rotate(date string) error {
	filename := filepath.Join(w.dir, fmt.Sprintf("app-%s.log", date))
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if w.file != nil {
		_ = w.file.Close()
	}
	w.file = file
	w.date = date
	cleanupOldLogs(w.dir, w.retention, w.now())
	return nil
}

func cleanupOldLogs(dir string, retentionDays int, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff, _ := time.Parse(dateLayout, now.AddDate(0, 0, -(retentionDays - 1)).Format(dateLayout))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		logDate, err := time.Parse(dateLayout, strings.TrimSuffix(strings.TrimPrefix(name, "app-"), ".log"))
		if err != nil {
			continue
		}
		if logDate.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}
