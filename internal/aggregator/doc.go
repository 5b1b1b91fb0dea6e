// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aggregator collects the differences reported by a comparison engine.
//
// An Aggregator is registered with the engine as its difference.Listener. Each
// reported difference is run through the configured filter chain; accepted
// differences are kept in arrival order and counted by maximum severity. When
// the engine calls Stop the kept differences are sorted, highest severity
// first, with a stable sort so that differences of equal severity stay in
// arrival order. After Stop the aggregator is read-only and further reports
// fail with ErrFinalized.
//
// The aggregator expects a single producer and does no locking.
package aggregator
