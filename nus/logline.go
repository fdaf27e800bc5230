// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nus

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Level is a Zephyr log message severity.
type Level uint8

//go:generate go tool golang.org/x/tools/cmd/stringer -type Level -trimprefix Level
const (
	LevelNone Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
)

var levelTags = map[string]Level{
	"err": LevelError,
	"wrn": LevelWarning,
	"inf": LevelInfo,
	"dbg": LevelDebug,
}

var (
	// [hh:mm:ss.mmm,uuu] <lvl> module: message
	logLinePattern = regexp.MustCompile(`^\[(\d+):(\d{2}):(\d{2})\.(\d{3}),(\d{3})\] <(err|wrn|inf|dbg)> ([^:]+): (.*)$`)

	// Terminal colouring used when CONFIG_LOG_BACKEND_SHOW_COLOR is set.
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

// LogLine is a single Zephyr log message.
type LogLine struct {
	Uptime  time.Duration // time since device boot
	Level   Level
	Module  string
	Message string
}

// ParseLogLine parses a Zephyr formatted log line. Lines without the
// timestamp, level and module prefix are returned with only Message set.
func ParseLogLine(text []byte) LogLine {
	line := ansiEscape.ReplaceAllString(string(text), "")
	line = strings.TrimRight(line, "\r\n\x00")
	sub := logLinePattern.FindStringSubmatch(line)
	if sub == nil {
		return LogLine{Message: line}
	}
	var t [5]int64
	for i, f := range sub[1:6] {
		// The pattern guarantees decimal digits; only a huge
		// hour field can overflow.
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return LogLine{Message: line}
		}
		t[i] = v
	}
	return LogLine{
		Uptime: time.Duration(t[0])*time.Hour +
			time.Duration(t[1])*time.Minute +
			time.Duration(t[2])*time.Second +
			time.Duration(t[3])*time.Millisecond +
			time.Duration(t[4])*time.Microsecond,
		Level:   levelTags[sub[6]],
		Module:  sub[7],
		Message: sub[8],
	}
}

// splitLines returns the non-empty lines held in a notification payload.
func splitLines(buf []byte) [][]byte {
	var lines [][]byte
	for len(buf) != 0 {
		i := bytes.IndexAny(buf, "\r\n")
		if i < 0 {
			lines = append(lines, buf)
			break
		}
		if i != 0 {
			lines = append(lines, buf[:i])
		}
		buf = buf[i+1:]
	}
	return lines
}
