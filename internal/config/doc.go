// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for apidiff's user
// configuration. The configuration is a YAML document named apidiff.yaml in
// the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/apidiff.yaml or $HOME/.config/apidiff.yaml
//   - macOS: $HOME/Library/Application Support/apidiff.yaml
//   - Windows: %AppData%/apidiff.yaml
//
// APIDIFF_CFG_FILE overrides the location. A missing file is not an error for
// callers that supply defaults.
package config
