package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

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

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one line written by logrus' text formatter.
type Entry struct {
	Time    time.Time // zero when the line has no RFC 3339 time= pair
	Level   logrus.Level
	Message string
	Fields  []Field
	Raw     string
}

// Field is a key=value pair following the message.
type Field struct {
	Key   string
	Value string
}

var pairPattern = regexp.MustCompile(`([A-Za-z0-9_.\-]+)=("(?:[^"\\]|\\.)*"|\S*)`)

// Parse splits a logrus text line into its parts. Lines that do not carry a
// level= pair are returned with ok == false and only Raw set.
func Parse(line string) (Entry, bool) {
	entry := Entry{Raw: line}
	hasLevel := false
	for _, m := range pairPattern.FindAllStringSubmatch(line, -1) {
		key, value := m[1], unquote(m[2])
		switch key {
		case "time":
			if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
				entry.Time = ts
			}
		case "level":
			lvl, err := logrus.ParseLevel(value)
			if err != nil {
				return Entry{Raw: line}, false
			}
			entry.Level = lvl
			hasLevel = true
		case "msg":
			entry.Message = value
		default:
			entry.Fields = append(entry.Fields, Field{Key: key, Value: value})
		}
	}
	if !hasLevel {
		return Entry{Raw: line}, false
	}
	return entry, true
}

// Filter keeps lines at or above min severity. Lines that cannot be parsed
// are kept; they are usually continuation lines of the entry before them.
func Filter(lines []string, min logrus.Level) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		entry, ok := Parse(line)
		if !ok || entry.Level <= min {
			out = append(out, line)
		}
	}
	return out
}

func unquote(value string) string {
	if !strings.HasPrefix(value, `"`) {
		return value
	}
	if s, err := strconv.Unquote(value); err == nil {
		return s
	}
	return strings.Trim(value, `"`)
}
