// Package logparser parses lines of the minecraft log format
// `[13:46:33] [main/INFO] [FML]: message`
package logparser

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

var linePattern = regexp.MustCompile(`^\[([^\]]+)\] \[([^\]/]+)/([A-Z]+)\](?: \[([^\]]+)\])?: (.*)$`)

// Line is one parsed log line. Lines that do not match the format only have Message set
type Line struct {
	Time    string
	Thread  string
	Level   string
	Logger  string
	Message string
	raw     string
}

// ParseLine parses a single log line
func ParseLine(raw string) *Line {
	match := linePattern.FindStringSubmatch(raw)
	if match == nil {
		return &Line{Message: raw, raw: raw}
	}
	return &Line{
		Time:    match[1],
		Thread:  match[2],
		Level:   match[3],
		Logger:  match[4],
		Message: match[5],
		raw:     raw,
	}
}

// String returns the line as it was parsed
func (l *Line) String() string {
	return l.raw
}

// IsError is true for ERROR and FATAL lines
func (l *Line) IsError() bool {
	return l.Level == "ERROR" || l.Level == "FATAL"
}

// LastErrors returns up to n error lines of the log, the last one last.
// Lines following an error line without a level (stack traces) are skipped
func LastErrors(r io.Reader, n int) ([]*Line, error) {
	if n <= 0 {
		return nil, nil
	}
	errs := make([]*Line, 0, n)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := strings.TrimRight(scanner.Text(), "\r")
		line := ParseLine(text)
		if !line.IsError() {
			continue
		}
		if len(errs) == n {
			errs = append(errs[:0], errs[1:]...)
		}
		errs = append(errs, line)
	}
	return errs, scanner.Err()
}
