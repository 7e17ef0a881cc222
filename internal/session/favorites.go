package session

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FavoritesFile is the durable favorites list: UTF-8 text, one entry per
// line, append-only. Other processes may append to the same file; there is
// no locking.
type FavoritesFile struct {
	path string
}

func NewFavoritesFile(path string) *FavoritesFile {
	return &FavoritesFile{path: path}
}

func (f *FavoritesFile) Path() string {
	return f.path
}

// Load returns the non-blank lines of the file. A missing file is empty.
func (f *FavoritesFile) Load() ([]string, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening favorites: %w", err)
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading favorites: %w", err)
	}
	return lines, nil
}

// Append adds text as a new line unless the file already holds it.
// It reports whether a line was written.
func (f *FavoritesFile) Append(text string) (bool, error) {
	text = oneLine(text)
	if text == "" {
		return false, nil
	}

	existing, err := f.Load()
	if err != nil {
		return false, err
	}
	for _, line := range existing {
		if line == text {
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return false, fmt.Errorf("creating favorites dir: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("opening favorites: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(text + "\n"); err != nil {
		return false, fmt.Errorf("writing favorite: %w", err)
	}
	return true, nil
}

// Remove deletes the file. Removing a missing file is not an error.
func (f *FavoritesFile) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing favorites: %w", err)
	}
	return nil
}

// oneLine folds an entry onto a single line so the file stays line-oriented.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
