// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package severity

import (
	"fmt"
	"strings"
)

// Severity is the importance of a difference. Values are ordered so that a
// plain integer comparison ranks them: None < Info < Warning < Error.
type Severity int

const (
	// None is the zero value and means the difference carries no severity.
	None Severity = iota
	Info
	Warning
	Error
)

var names = map[Severity]string{
	None:    "none",
	Info:    "info",
	Warning: "warning",
	Error:   "error",
}

// All returns the real severities, lowest first. None is not included.
func All() []Severity {
	return []Severity{Info, Warning, Error}
}

// String returns the lower case name of the severity.
func (s Severity) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// IsSet reports whether s is a real severity rather than None.
func (s Severity) IsSet() bool {
	return s != None
}

// Compare returns -1, 0 or 1 as s is lower than, equal to or higher than o.
func (s Severity) Compare(o Severity) int {
	switch {
	case s < o:
		return -1
	case s > o:
		return 1
	}
	return 0
}

// Max returns the higher of a and b.
func Max(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}

// ParseSeverity converts a case-insensitive name into a Severity. "warn" and
// "err" are accepted as short forms, and the empty string parses as None.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "info":
		return Info, nil
	case "warning", "warn":
		return Warning, nil
	case "error", "err":
		return Error, nil
	}
	return None, fmt.Errorf("unknown severity: %q", s)
}

// MarshalText implements encoding.TextMarshaler. JSON and yaml.v3 both use it.
func (s Severity) MarshalText() ([]byte, error) {
	if _, ok := names[s]; !ok {
		return nil, fmt.Errorf("invalid severity: %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalYAML implements the yaml.v2 Marshaler so report output shows names.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
