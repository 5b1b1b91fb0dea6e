// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/severity"
)

// recorder is a difference.Listener that keeps everything it is told.
type recorder struct {
	diffs   []*difference.Difference
	stops   int
	failOn  int
	failErr error
}

func (r *recorder) ReportDiff(d *difference.Difference) error {
	if r.failErr != nil && len(r.diffs) == r.failOn {
		return r.failErr
	}
	r.diffs = append(r.diffs, d)
	return nil
}

func (r *recorder) Stop() error {
	r.stops++
	return nil
}

const before = `{
  "com.acme.io.Channel": {
    "methods": {"void close()": "public", "int read(byte[])": "public"},
    "fields":  {"SIZE": "public static final int"}
  },
  "com.acme.io.Legacy": {
    "methods": {"void run()": "public"}
  }
}`

const after = `{
  "com.acme.io.Channel": {
    "methods": {"int read(byte[])": "public final", "void flush()": "public"},
    "fields":  {"SIZE": "public static final long", "MODE": "public static final int"}
  },
  "com.acme.io.Pipe": {
    "methods": {"void drain()": "public"}
  }
}`

func TestCompare(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Compare([]byte(before), []byte(after), r))

	type row struct {
		code   int
		class  string
		member string
		sev    severity.Severity
	}
	var got []row
	for _, d := range r.diffs {
		got = append(got, row{d.Code, d.Class, d.Member(), d.MaximumSeverity()})
	}

	assert.Equal(t, []row{
		{CodeFieldAdded, "com.acme.io.Channel", "MODE", severity.Info},
		{CodeFieldChanged, "com.acme.io.Channel", "SIZE", severity.Warning},
		{CodeMethodChanged, "com.acme.io.Channel", "int read(byte[])", severity.Error},
		{CodeMethodRemoved, "com.acme.io.Channel", "void close()", severity.Error},
		{CodeMethodAdded, "com.acme.io.Channel", "void flush()", severity.Info},
		{CodeClassRemoved, "com.acme.io.Legacy", "", severity.Error},
		{CodeClassAdded, "com.acme.io.Pipe", "", severity.Info},
	}, got)
	assert.Equal(t, 1, r.stops)

	for _, d := range r.diffs {
		assert.NotEmpty(t, d.Message)
	}
	assert.Equal(t, "SIZE", r.diffs[1].Field)
	assert.Equal(t, "void close()", r.diffs[3].Method)
}

func TestCompareIsDeterministic(t *testing.T) {
	first := &recorder{}
	require.NoError(t, Compare([]byte(before), []byte(after), first))

	for i := 0; i < 10; i++ {
		again := &recorder{}
		require.NoError(t, Compare([]byte(before), []byte(after), again))
		assert.Equal(t, first.diffs, again.diffs)
	}
}

func TestCompareIdentical(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Compare([]byte(before), []byte(before), r))
	assert.Empty(t, r.diffs)
	assert.Equal(t, 1, r.stops)
}

func TestCompareWholeSection(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Compare(
		[]byte(`{"a.B": {"methods": {"void x()": "public"}}}`),
		[]byte(`{"a.B": {"fields": {"F": "int", "G": "int"}}}`),
		r,
	))

	require.Len(t, r.diffs, 3)
	assert.Equal(t, CodeFieldAdded, r.diffs[0].Code)
	assert.Equal(t, "F", r.diffs[0].Field)
	assert.Equal(t, CodeFieldAdded, r.diffs[1].Code)
	assert.Equal(t, "G", r.diffs[1].Field)
	assert.Equal(t, CodeMethodRemoved, r.diffs[2].Code)
}

func TestCompareStructuralChange(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Compare(
		[]byte(`{"a.B": {"annotations": "none"}}`),
		[]byte(`{"a.B": {"annotations": "deprecated"}}`),
		r,
	))

	require.Len(t, r.diffs, 1)
	assert.Equal(t, CodeSurfaceChanged, r.diffs[0].Code)
	assert.Equal(t, severity.Warning, r.diffs[0].MaximumSeverity())
}

func TestCompareListenerError(t *testing.T) {
	boom := errors.New("boom")
	r := &recorder{failOn: 2, failErr: boom}

	err := Compare([]byte(before), []byte(after), r)
	require.ErrorIs(t, err, boom)
	assert.Len(t, r.diffs, 2)
	assert.Equal(t, 0, r.stops)
}

func TestCompareInvalidInput(t *testing.T) {
	r := &recorder{}
	assert.Error(t, Compare([]byte(`not json`), []byte(`{}`), r))
	assert.Equal(t, 0, r.stops)
}
