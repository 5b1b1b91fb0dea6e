// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aggregator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/filters"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/severity"
)

var (
	// ErrNilDifference is returned when ReportDiff is handed a nil difference.
	ErrNilDifference = errors.New("nil difference reported")
	// ErrFinalized is returned when ReportDiff is called after Stop.
	ErrFinalized = errors.New("difference reported after aggregation finished")
)

// Aggregator filters, counts and ranks differences. It implements
// difference.Listener.
type Aggregator struct {
	filters   filters.Chain
	diffs     []*difference.Difference
	counts    map[severity.Severity]int
	finalized bool
}

var _ difference.Listener = (*Aggregator)(nil)

// New returns an Aggregator using the given filters in order. The filter set
// is copied and cannot change afterwards.
func New(fs ...filters.Filter) *Aggregator {
	return &Aggregator{
		filters: append(filters.Chain(nil), fs...),
		counts:  make(map[severity.Severity]int, len(severity.All())),
	}
}

// ReportDiff runs d through the filter chain and, if every filter accepts it,
// records it and bumps the count for its maximum severity. Differences without
// a severity are recorded but not counted. A filter error is returned wrapped
// and leaves the aggregator unchanged.
func (a *Aggregator) ReportDiff(d *difference.Difference) error {
	if d == nil {
		return ErrNilDifference
	}
	if a.finalized {
		return fmt.Errorf("%w: %s", ErrFinalized, d)
	}

	ok, err := a.filters.Include(d)
	if err != nil {
		return fmt.Errorf("failed to filter difference %s: %w", d, err)
	}
	if !ok {
		return nil
	}

	if sev := d.MaximumSeverity(); sev.IsSet() {
		a.counts[sev]++
	}
	a.diffs = append(a.diffs, d)
	log.Tracef("accepted: %s", d)
	return nil
}

// Stop marks the end of the difference stream and orders the kept differences
// by descending severity. Equal severities keep their arrival order. Calling
// Stop again is harmless.
func (a *Aggregator) Stop() error {
	sort.SliceStable(a.diffs, func(one, two int) bool {
		return a.diffs[one].MaximumSeverity() > a.diffs[two].MaximumSeverity()
	})
	a.finalized = true
	log.Debugf("aggregation finished: kept=%d counts=%v", len(a.diffs), a.counts)
	return nil
}

// Finalized reports whether Stop has been called.
func (a *Aggregator) Finalized() bool {
	return a.finalized
}

// Differences returns a copy of the kept differences. Before Stop they are in
// arrival order, afterwards in report order. Changing the returned slice does
// not affect the aggregator.
func (a *Aggregator) Differences() []*difference.Difference {
	out := make([]*difference.Difference, len(a.diffs))
	copy(out, a.diffs)
	return out
}

// SeverityCount returns how many kept differences have sev as their maximum
// severity. Severities never seen count as zero.
func (a *Aggregator) SeverityCount(sev severity.Severity) int {
	return a.counts[sev]
}

// Counts returns a copy of the per-severity counts with an entry for every
// real severity, including those never seen.
func (a *Aggregator) Counts() map[severity.Severity]int {
	out := make(map[severity.Severity]int, len(severity.All()))
	for _, sev := range severity.All() {
		out[sev] = a.counts[sev]
	}
	return out
}
