// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aggregator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/filters"
	"github.com/tfctl/apidiff/internal/severity"
)

// diff builds a difference with the given severity and a class name used to
// identify it in assertions.
func diff(class string, sev severity.Severity) *difference.Difference {
	return &difference.Difference{Class: class, Severity: sev}
}

// classes returns the class names of diffs in order.
func classes(diffs []*difference.Difference) []string {
	out := make([]string, len(diffs))
	for i, d := range diffs {
		out[i] = d.Class
	}
	return out
}

// report feeds every difference into a and fails the test on error.
func report(t *testing.T, a *Aggregator, diffs ...*difference.Difference) {
	t.Helper()
	for _, d := range diffs {
		require.NoError(t, a.ReportDiff(d))
	}
}

func TestExcludeInfoScenario(t *testing.T) {
	a := New(filters.ExcludeSeverity(severity.Info))

	report(t, a,
		diff("err", severity.Error),
		diff("info", severity.Info),
		diff("warn", severity.Warning),
	)
	require.NoError(t, a.Stop())

	assert.Equal(t, []string{"err", "warn"}, classes(a.Differences()))
	assert.Equal(t, 1, a.SeverityCount(severity.Error))
	assert.Equal(t, 1, a.SeverityCount(severity.Warning))
	assert.Equal(t, 0, a.SeverityCount(severity.Info))
}

func TestStableDescendingSort(t *testing.T) {
	a := New()

	report(t, a,
		diff("low1", severity.Info),
		diff("high1", severity.Error),
		diff("low2", severity.Info),
		diff("high2", severity.Error),
	)
	require.NoError(t, a.Stop())

	assert.Equal(t, []string{"high1", "high2", "low1", "low2"}, classes(a.Differences()))
}

func TestSortKeepsArrivalOrderWithinSeverity(t *testing.T) {
	a := New()

	sevs := []severity.Severity{severity.Warning, severity.None, severity.Error, severity.Info}
	want := map[severity.Severity][]string{}
	for i := 0; i < 40; i++ {
		sev := sevs[(i*7)%len(sevs)]
		name := fmt.Sprintf("%s-%02d", sev, i)
		want[sev] = append(want[sev], name)
		report(t, a, diff(name, sev))
	}
	require.NoError(t, a.Stop())

	var expected []string
	for _, sev := range []severity.Severity{severity.Error, severity.Warning, severity.Info, severity.None} {
		expected = append(expected, want[sev]...)
	}
	assert.Equal(t, expected, classes(a.Differences()))
}

func TestArrivalOrderBeforeStop(t *testing.T) {
	a := New()
	report(t, a, diff("a", severity.Info), diff("b", severity.Error))

	assert.False(t, a.Finalized())
	assert.Equal(t, []string{"a", "b"}, classes(a.Differences()))
}

func TestIdempotentStop(t *testing.T) {
	a := New()
	report(t, a,
		diff("w1", severity.Warning),
		diff("e1", severity.Error),
		diff("w2", severity.Warning),
	)

	require.NoError(t, a.Stop())
	first := classes(a.Differences())
	firstCounts := a.Counts()

	require.NoError(t, a.Stop())
	assert.Equal(t, first, classes(a.Differences()))
	assert.Equal(t, firstCounts, a.Counts())
	assert.Equal(t, []string{"e1", "w1", "w2"}, first)
	assert.Equal(t, 2, a.SeverityCount(severity.Warning))
}

func TestEmptyInput(t *testing.T) {
	a := New(filters.MinSeverity(severity.Error))
	require.NoError(t, a.Stop())

	assert.Empty(t, a.Differences())
	assert.NotNil(t, a.Differences())
	for _, sev := range append(severity.All(), severity.None) {
		assert.Equal(t, 0, a.SeverityCount(sev), "severity %s", sev)
	}
}

func TestRejectionLeavesNoTrace(t *testing.T) {
	a := New(filters.Func(func(d *difference.Difference) (bool, error) {
		return d.Class != "drop", nil
	}))

	report(t, a,
		diff("keep", severity.Warning),
		diff("drop", severity.Error),
	)
	require.NoError(t, a.Stop())

	assert.Equal(t, []string{"keep"}, classes(a.Differences()))
	assert.Equal(t, 0, a.SeverityCount(severity.Error))
	assert.Equal(t, 1, a.SeverityCount(severity.Warning))
}

func TestNoSeverityListedButNotCounted(t *testing.T) {
	a := New()
	report(t, a, diff("none", severity.None), diff("info", severity.Info))
	require.NoError(t, a.Stop())

	assert.Equal(t, []string{"info", "none"}, classes(a.Differences()))
	assert.Equal(t, 0, a.SeverityCount(severity.None))
	assert.Equal(t, 1, a.SeverityCount(severity.Info))
	assert.Equal(t, map[severity.Severity]int{
		severity.Info:    1,
		severity.Warning: 0,
		severity.Error:   0,
	}, a.Counts())
}

func TestFilterAndSemantics(t *testing.T) {
	accept := filters.Func(func(*difference.Difference) (bool, error) { return true, nil })
	reject := filters.Func(func(*difference.Difference) (bool, error) { return false, nil })

	tests := []struct {
		name    string
		filters []filters.Filter
		kept    bool
	}{
		{name: "no filters", filters: nil, kept: true},
		{name: "all accept", filters: []filters.Filter{accept, accept, accept}, kept: true},
		{name: "reject first", filters: []filters.Filter{reject, accept, accept}, kept: false},
		{name: "reject middle", filters: []filters.Filter{accept, reject, accept}, kept: false},
		{name: "reject last", filters: []filters.Filter{accept, accept, reject}, kept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.filters...)
			report(t, a, diff("d", severity.Error))
			require.NoError(t, a.Stop())

			assert.Equal(t, tt.kept, len(a.Differences()) == 1)
			want := 0
			if tt.kept {
				want = 1
			}
			assert.Equal(t, want, a.SeverityCount(severity.Error))
		})
	}
}

func TestFilterErrorPropagates(t *testing.T) {
	boom := errors.New("rule source unavailable")
	a := New(
		filters.ExcludeSeverity(severity.Info),
		filters.Func(func(*difference.Difference) (bool, error) { return false, boom }),
	)

	err := a.ReportDiff(diff("x", severity.Error))
	require.ErrorIs(t, err, boom)

	var fe *filters.FilterError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.Index)

	require.NoError(t, a.Stop())
	assert.Empty(t, a.Differences())
	assert.Equal(t, 0, a.SeverityCount(severity.Error))
}

func TestNilDifference(t *testing.T) {
	a := New()
	assert.ErrorIs(t, a.ReportDiff(nil), ErrNilDifference)
}

func TestReportAfterStop(t *testing.T) {
	a := New()
	report(t, a, diff("early", severity.Info))
	require.NoError(t, a.Stop())

	err := a.ReportDiff(diff("late", severity.Error))
	require.ErrorIs(t, err, ErrFinalized)

	assert.True(t, a.Finalized())
	assert.Equal(t, []string{"early"}, classes(a.Differences()))
	assert.Equal(t, 0, a.SeverityCount(severity.Error))
}

func TestDifferencesIsACopy(t *testing.T) {
	a := New()
	report(t, a, diff("a", severity.Error), diff("b", severity.Info))
	require.NoError(t, a.Stop())

	got := a.Differences()
	got[0] = diff("intruder", severity.Error)
	_ = append(got[:1], diff("more", severity.Error))

	assert.Equal(t, []string{"a", "b"}, classes(a.Differences()))

	counts := a.Counts()
	counts[severity.Error] = 99
	assert.Equal(t, 1, a.SeverityCount(severity.Error))
}

func TestFilterSetIsFixed(t *testing.T) {
	fs := []filters.Filter{filters.ExcludeSeverity(severity.Info)}
	a := New(fs...)
	fs[0] = filters.ExcludeSeverity(severity.Error)

	report(t, a, diff("e", severity.Error), diff("i", severity.Info))
	require.NoError(t, a.Stop())
	assert.Equal(t, []string{"e"}, classes(a.Differences()))
}

func TestCountsMatchAcceptedDifferences(t *testing.T) {
	a := New(filters.Func(func(d *difference.Difference) (bool, error) {
		return d.Code%3 != 0, nil
	}))

	sevs := []severity.Severity{severity.Info, severity.Warning, severity.Error, severity.None}
	want := map[severity.Severity]int{}
	for i := 1; i <= 60; i++ {
		sev := sevs[i%len(sevs)]
		d := &difference.Difference{Code: i, Class: fmt.Sprint(i), Severity: sev}
		if i%3 != 0 && sev.IsSet() {
			want[sev]++
		}
		report(t, a, d)
	}
	require.NoError(t, a.Stop())

	for _, sev := range severity.All() {
		assert.Equal(t, want[sev], a.SeverityCount(sev), "severity %s", sev)
	}
}
