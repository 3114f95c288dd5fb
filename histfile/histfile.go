package histfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultMaxEntries bounds a history file when the caller passes 0.
const DefaultMaxEntries = 500

// File is a newline-delimited command history store. One executed line per
// file line, redacted on write, trimmed to the newest maxEntries on append.
type File struct {
	path       string
	maxEntries int
}

// New returns a File at path keeping at most maxEntries lines. The file is
// created lazily on first Append.
func New(path string, maxEntries int) *File {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &File{path: path, maxEntries: maxEntries}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the stored history, oldest first. A missing file is empty
// history, not an error.
func (f *File) Load() ([]string, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer fh.Close()

	var lines []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	if len(lines) > f.maxEntries {
		lines = lines[len(lines)-f.maxEntries:]
	}
	return lines, nil
}

// Append records one executed line, redacted. Empty and duplicate-of-last
// lines are skipped to mirror the in-memory ring's policy. When the file
// grows past the entry bound it is rewritten with the newest entries only.
func (f *File) Append(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	line = Redact(line)

	existing, err := f.Load()
	if err != nil {
		return err
	}
	if n := len(existing); n > 0 && existing[n-1] == line {
		return nil
	}

	if len(existing) >= f.maxEntries {
		existing = append(existing[len(existing)-f.maxEntries+1:], line)
		return f.rewrite(existing)
	}

	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("append history file: %w", err)
	}
	defer fh.Close()
	if _, err := fh.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// rewrite replaces the file contents atomically via a sibling temp file.
func (f *File) rewrite(lines []string) error {
	tmp := f.path + ".tmp"
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(tmp, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("rewrite history file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
