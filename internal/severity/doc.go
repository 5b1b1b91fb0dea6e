// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package severity defines the ordered importance levels attached to API
// differences. The ordering is used both to rank differences in a report and
// as the key for per-severity counts.
package severity
