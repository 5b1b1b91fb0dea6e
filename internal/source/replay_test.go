// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/apidiff/internal/aggregator"
	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/filters"
	"github.com/tfctl/apidiff/internal/severity"
)

const jsonStream = `[
  {"code": 7011, "class": "com.acme.Widget", "method": "void paint()", "message": "Method added", "sourceSeverity": "info"},
  {"code": 7002, "class": "com.acme.Widget", "method": "void draw()", "message": "Method removed", "binarySeverity": "error", "sourceSeverity": "error"},
  {"code": 6004, "class": "com.acme.Widget", "field": "SIZE", "message": "Field type changed", "severity": "warning"}
]`

const jsonLinesStream = `{"code": 7011, "class": "com.acme.Widget", "method": "void paint()", "message": "Method added", "sourceSeverity": "info"}
{"code": 7002, "class": "com.acme.Widget", "method": "void draw()", "message": "Method removed", "binarySeverity": "error", "sourceSeverity": "error"}
{"code": 6004, "class": "com.acme.Widget", "field": "SIZE", "message": "Field type changed", "severity": "warning"}
`

const yamlStream = `
- code: 7011
  class: com.acme.Widget
  method: void paint()
  message: Method added
  sourceSeverity: info
- code: 7002
  class: com.acme.Widget
  method: void draw()
  message: Method removed
  binarySeverity: error
  sourceSeverity: error
- code: 6004
  class: com.acme.Widget
  field: SIZE
  message: Field type changed
  severity: warning
`

func codes(diffs []*difference.Difference) []int {
	out := make([]int, len(diffs))
	for i, d := range diffs {
		out[i] = d.Code
	}
	return out
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		format Format
	}{
		{name: "json array", stream: jsonStream, format: FormatJSON},
		{name: "json lines", stream: jsonLinesStream, format: FormatJSON},
		{name: "yaml", stream: yamlStream, format: FormatYAML},
		{name: "auto json", stream: jsonStream, format: FormatAuto},
		{name: "auto json lines", stream: jsonLinesStream, format: FormatAuto},
		{name: "auto yaml", stream: yamlStream, format: FormatAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs, err := Decode(strings.NewReader(tt.stream), tt.format)
			require.NoError(t, err)
			require.Len(t, diffs, 3)

			assert.Equal(t, []int{7011, 7002, 6004}, codes(diffs))
			assert.Equal(t, "void paint()", diffs[0].Method)
			assert.Equal(t, severity.Info, diffs[0].MaximumSeverity())
			assert.Equal(t, severity.Error, diffs[1].BinarySeverity)
			assert.Equal(t, severity.Error, diffs[1].MaximumSeverity())
			assert.Equal(t, "SIZE", diffs[2].Field)
			assert.Equal(t, severity.Warning, diffs[2].Severity)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, stream := range []string{"", "[]", "  \n"} {
		diffs, err := Decode(strings.NewReader(stream), FormatAuto)
		require.NoError(t, err, "stream %q", stream)
		assert.Empty(t, diffs)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		format Format
	}{
		{name: "truncated json", stream: `[{"code": 1`, format: FormatJSON},
		{name: "scalar entry", stream: `[1, 2]`, format: FormatJSON},
		{name: "bad severity", stream: `[{"code": 1, "severity": "fatal"}]`, format: FormatJSON},
		{name: "yaml mapping", stream: "code: 1\n", format: FormatYAML},
		{name: "unknown format", stream: "[]", format: Format("xml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.stream), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":      FormatAuto,
		"auto":  FormatAuto,
		"JSON":  FormatJSON,
		"jsonl": FormatJSON,
		"yml":   FormatYAML,
		"yaml":  FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestReplayIntoAggregator(t *testing.T) {
	a := aggregator.New(filters.ExcludeSeverity(severity.Info))

	require.NoError(t, Replay(strings.NewReader(jsonStream), FormatAuto, a))

	assert.True(t, a.Finalized())
	assert.Equal(t, []int{7002, 6004}, codes(a.Differences()))
	assert.Equal(t, 1, a.SeverityCount(severity.Error))
	assert.Equal(t, 1, a.SeverityCount(severity.Warning))
	assert.Equal(t, 0, a.SeverityCount(severity.Info))
}

func TestReplayNullEntry(t *testing.T) {
	a := aggregator.New()

	err := Replay(strings.NewReader(`[{"code": 1, "severity": "info"}, null]`), FormatJSON, a)
	require.ErrorIs(t, err, aggregator.ErrNilDifference)
	assert.False(t, a.Finalized())
}

// stopCounter fails ReportDiff after a number of accepted differences.
type stopCounter struct {
	accepted int
	failAt   int
	stops    int
}

var errListener = errors.New("listener failed")

func (s *stopCounter) ReportDiff(*difference.Difference) error {
	if s.accepted == s.failAt {
		return errListener
	}
	s.accepted++
	return nil
}

func (s *stopCounter) Stop() error {
	s.stops++
	return nil
}

func TestReplayAbortsOnListenerError(t *testing.T) {
	l := &stopCounter{failAt: 1}

	err := Replay(strings.NewReader(yamlStream), FormatYAML, l)
	require.ErrorIs(t, err, errListener)
	assert.Equal(t, 1, l.accepted)
	assert.Equal(t, 0, l.stops)
}

func TestReplayStopsOnce(t *testing.T) {
	l := &stopCounter{failAt: -1}

	require.NoError(t, Replay(strings.NewReader(yamlStream), FormatYAML, l))
	assert.Equal(t, 3, l.accepted)
	assert.Equal(t, 1, l.stops)
}
