// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/tfctl/apidiff/internal/severity"
)

// ErrThreshold is returned by CheckFailOn when a report breaches the
// --fail-on severity.
var ErrThreshold = errors.New("differences at or above the fail-on severity")

// Summary renders the per-severity counts, highest first, e.g.
// "1 error, 2 warnings, 0 infos".
func Summary(counts map[severity.Severity]int) string {
	all := severity.All()
	parts := make([]string, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		sev := all[i]
		n := counts[sev]
		name := sev.String()
		parts = append(parts, fmt.Sprintf("%s %s", humanize.Comma(int64(n)), english.PluralWord(n, name, name+"s")))
	}
	return strings.Join(parts, ", ")
}

// CheckFailOn returns an ErrThreshold error when any severity at or above
// threshold has a non-zero count. A None threshold never fails.
func CheckFailOn(counts map[severity.Severity]int, threshold severity.Severity) error {
	if !threshold.IsSet() {
		return nil
	}
	for _, sev := range severity.All() {
		if sev >= threshold && counts[sev] > 0 {
			return fmt.Errorf("%w (%s): %s", ErrThreshold, threshold, Summary(counts))
		}
	}
	return nil
}
