// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/log"
)

// Format names the encoding of a recorded difference stream.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for a format other than json, yaml or auto.
var ErrUnknownFormat = errors.New("unknown stream format")

// ParseFormat maps a flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json", "jsonl":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatAuto, fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

// Replay decodes the stream in r and pushes every difference into l in
// stream order, then calls l.Stop. The first decode or listener error aborts
// the replay and Stop is not called.
func Replay(r io.Reader, format Format, l difference.Listener) error {
	diffs, err := Decode(r, format)
	if err != nil {
		return err
	}

	for i, d := range diffs {
		if err := l.ReportDiff(d); err != nil {
			return fmt.Errorf("difference %d: %w", i, err)
		}
	}
	log.Debugf("replayed %d differences", len(diffs))

	return l.Stop()
}

// Decode reads a whole stream. With FormatAuto the stream is JSON when its
// first non-blank byte is '[' or '{' and YAML otherwise. A null entry decodes
// as a nil difference.
func Decode(r io.Reader, format Format) ([]*difference.Difference, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}

	if format == FormatAuto {
		format = sniff(data)
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatYAML
}

// decodeJSON accepts a JSON array of differences or JSON lines with one
// difference object per line.
func decodeJSON(data []byte) ([]*difference.Difference, error) {
	diffs := []*difference.Difference{}
	if len(bytes.TrimSpace(data)) == 0 {
		return diffs, nil
	}
	if !gjson.ValidBytes(data) && !validLines(data) {
		return nil, fmt.Errorf("invalid json stream")
	}

	var decodeErr error
	each := func(item gjson.Result) bool {
		if item.Type == gjson.Null {
			diffs = append(diffs, nil)
			return true
		}
		if !item.IsObject() {
			decodeErr = fmt.Errorf("difference %d: expected object, got %s", len(diffs), item.Type)
			return false
		}
		var d difference.Difference
		if err := json.Unmarshal([]byte(item.Raw), &d); err != nil {
			decodeErr = fmt.Errorf("difference %d: %w", len(diffs), err)
			return false
		}
		diffs = append(diffs, &d)
		return true
	}

	root := gjson.ParseBytes(data)
	if root.IsArray() {
		root.ForEach(func(_, item gjson.Result) bool { return each(item) })
	} else {
		gjson.ForEachLine(string(data), each)
	}

	if decodeErr != nil {
		return nil, decodeErr
	}
	return diffs, nil
}

func validLines(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) > 0 && !gjson.ValidBytes(line) {
			return false
		}
	}
	return true
}

func decodeYAML(data []byte) ([]*difference.Difference, error) {
	diffs := []*difference.Difference{}
	if err := yaml.Unmarshal(data, &diffs); err != nil {
		return nil, fmt.Errorf("invalid yaml stream: %w", err)
	}
	return diffs, nil
}
