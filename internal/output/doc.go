// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders aggregated differences as a text table, JSON or
// YAML, followed by a per-severity summary, and decides whether a report
// breaches the --fail-on threshold.
package output
