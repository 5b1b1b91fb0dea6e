// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters decides which API differences are kept in a report.
//
// A Filter is a predicate over a single difference. Filters are combined into
// a Chain, which keeps a difference only when every filter accepts it. The
// chain stops at the first rejection. A filter that fails returns an error,
// which the chain wraps in a FilterError and hands back to its caller; a
// failing filter never silently keeps or drops a difference.
//
// Three families of filters are provided:
//
//   - Severity filters: ExcludeSeverity and MinSeverity.
//   - Expression filters, parsed from key-operator-target expressions by
//     BuildFilters and evaluated against the JSON form of the difference.
//   - Ignore rules, which reject differences matching a code and class/member
//     wildcards, typically loaded from the user configuration.
//
// Expression operators:
//
//   - = : exact match (supports negation with !=)
//   - ^ : prefix match (supports negation with !^)
//   - ~ : case-insensitive match (supports negation with !~)
//   - < : less than (numeric, or severity ordering for severity keys)
//   - > : greater than (numeric, or severity ordering for severity keys)
//   - @ : contains substring (supports negation with !@)
//   - / : regex match (supports negation with !/)
//
// Examples:
//
//   - "class^com.acme." : keeps differences in the com.acme package tree
//   - "maximumSeverity>info" : keeps warnings and errors
//   - "code!=7011" : drops "method added" differences
//   - "method!@internal" : drops members whose signature mentions internal
//
// Expressions are comma delimited. APIDIFF_FILTER_DELIM overrides the
// delimiter for values that contain commas.
package filters
