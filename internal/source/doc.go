// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source reads API surfaces and recorded difference streams from a
// file, stdin ("-") or S3 ("s3://bucket/key"), and replays recorded streams
// into a difference.Listener as if a comparison engine were producing them.
//
// Recorded streams are a JSON array, JSON lines, or a YAML list of
// differences.
package source
