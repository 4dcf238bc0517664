// Package submissionlog appends one line per accepted submission to a monthly
// file. A missing log directory disables it silently.
package submissionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Field is one "Label: value" pair of a log line.
type Field struct {
	Label string
	Value string
}

// Sink writes to <dir>/<prefix>_YYYY-MM.log.
type Sink struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Sink {
	return &Sink{dir: dir}
}

// Append writes a line stamped with at. It returns nil without writing when
// the directory does not exist.
func (s *Sink) Append(prefix string, at time.Time, fields ...Field) error {
	if s == nil || s.dir == "" {
		return nil
	}
	if info, err := os.Stat(s.dir); err != nil || !info.IsDir() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := &lumberjack.Logger{
		Filename:   filepath.Join(s.dir, fmt.Sprintf("%s_%s.log", prefix, at.Format("2006-01"))),
		MaxSize:    50, // megabytes
		MaxBackups: 3,
	}
	defer w.Close()

	if _, err := w.Write([]byte(FormatLine(at, fields...))); err != nil {
		return fmt.Errorf("submissionlog: %w", err)
	}
	return nil
}

// FormatLine renders "[2006-01-02 15:04:05] A: x | B: y\n". Line breaks in
// values are flattened so every submission stays on one line.
func FormatLine(at time.Time, fields ...Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Label + ": " + flatten(f.Value)
	}
	return fmt.Sprintf("[%s] %s\n", at.Format("2006-01-02 15:04:05"), strings.Join(parts, " | "))
}

func flatten(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
