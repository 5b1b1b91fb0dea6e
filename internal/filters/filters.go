// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/log"
)

// Filter decides whether a single difference should be retained. Include must
// not modify d. An error means the filter itself is broken for this input.
type Filter interface {
	Include(d *difference.Difference) (bool, error)
}

// Func adapts an ordinary function to the Filter interface.
type Func func(d *difference.Difference) (bool, error)

// Include implements Filter.
func (f Func) Include(d *difference.Difference) (bool, error) {
	return f(d)
}

// FilterError reports a filter that failed while evaluating a difference.
type FilterError struct {
	// Index is the position of the failing filter in its chain.
	Index int
	// Name describes the failing filter.
	Name string
	Err  error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %d (%s) failed: %v", e.Index, e.Name, e.Err)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}

// Chain is an ordered list of filters combined with AND semantics.
type Chain []Filter

// Include returns true only if every filter in the chain accepts d. Filters
// run in order and evaluation stops at the first rejection or error. An empty
// chain accepts everything.
func (c Chain) Include(d *difference.Difference) (bool, error) {
	for i, f := range c {
		ok, err := f.Include(d)
		if err != nil {
			return false, &FilterError{Index: i, Name: describe(f), Err: err}
		}
		if !ok {
			log.Tracef("rejected by filter %d (%s): %s", i, describe(f), d)
			return false, nil
		}
	}
	return true, nil
}

// describe names a filter for diagnostics.
func describe(f Filter) string {
	if s, ok := f.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", f)
}
