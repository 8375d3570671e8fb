package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

const chunkSize = 8 * 1024

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seek log: %w", err)
	}

	// Walk backwards a chunk at a time until enough newlines are buffered.
	var tail []byte
	offset := size
	for offset > 0 && bytes.Count(tail, []byte{'\n'}) <= maxLines {
		n := int64(chunkSize)
		if offset < n {
			n = offset
		}
		offset -= n
		buf := make([]byte, n)
		if _, err := file.ReadAt(buf, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		tail = append(buf, tail...)
	}

	text := strings.TrimRight(string(tail), "\r\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if offset > 0 {
		// First line may be partial.
		lines = lines[1:]
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines, nil
}

// Level is the severity parsed from a log line.
type Level int

const (
	LevelNone Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// Entry is one parsed log line.
type Entry struct {
	Time    string
	Level   Level
	Message string
	Raw     string
}

var linePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) ([A-Z]{4,5})\s+(?:<[^>]+>\s+)?(?:[\w.-]+:\s+)?(.*)$`)

// Parse splits a line in the logger's text format. Lines that do not match
// come back with LevelNone and the whole line as Message.
func Parse(line string) Entry {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{Message: line, Raw: line}
	}
	return Entry{Time: m[1], Level: parseLevel(m[2]), Message: m[3], Raw: line}
}

// Entries reads and parses the last maxLines lines of path.
func Entries(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		out = append(out, Parse(line))
	}
	return out, nil
}

func parseLevel(s string) Level {
	switch s {
	case "DEBU", "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN":
		return LevelWarn
	case "ERRO", "ERROR", "FATA", "FATAL":
		return LevelError
	default:
		return LevelNone
	}
}
