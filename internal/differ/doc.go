// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two JSON descriptions of an API surface and reports
// each change to a difference.Listener.
//
// A surface is a JSON object keyed by fully qualified class name. Each class
// holds optional "methods" and "fields" objects keyed by member signature;
// member values are free-form descriptions (modifiers, return type) whose
// change counts as a modification:
//
//	{
//	  "com.acme.io.Channel": {
//	    "methods": {"void close()": "public"},
//	    "fields":  {"SIZE": "public static final int"}
//	  }
//	}
package differ
