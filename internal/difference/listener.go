// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package difference

// Listener receives differences from a comparison engine. ReportDiff is called
// once per difference in discovery order and Stop exactly once when the
// comparison has finished. An error from either method aborts the comparison.
type Listener interface {
	ReportDiff(d *Difference) error
	Stop() error
}
