// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"strings"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/severity"
)

type excludeSeverity struct {
	levels []severity.Severity
}

// ExcludeSeverity rejects differences whose maximum severity is one of levels.
func ExcludeSeverity(levels ...severity.Severity) Filter {
	return excludeSeverity{levels: append([]severity.Severity(nil), levels...)}
}

func (f excludeSeverity) Include(d *difference.Difference) (bool, error) {
	sev := d.MaximumSeverity()
	for _, l := range f.levels {
		if sev == l {
			return false, nil
		}
	}
	return true, nil
}

func (f excludeSeverity) String() string {
	names := make([]string, len(f.levels))
	for i, l := range f.levels {
		names[i] = l.String()
	}
	return "exclude(" + strings.Join(names, ",") + ")"
}

type minSeverity struct {
	floor severity.Severity
}

// MinSeverity rejects differences ranked below floor. Differences without a
// severity rank below everything, so they only pass when floor is None.
func MinSeverity(floor severity.Severity) Filter {
	return minSeverity{floor: floor}
}

func (f minSeverity) Include(d *difference.Difference) (bool, error) {
	return d.MaximumSeverity() >= f.floor, nil
}

func (f minSeverity) String() string {
	return "min(" + f.floor.String() + ")"
}
