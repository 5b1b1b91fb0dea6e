// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package difference holds the record describing a single API difference and
// the Listener contract through which a comparison engine hands differences
// to their consumer.
package difference
