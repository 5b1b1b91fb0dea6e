// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/apidiff/internal/severity"
)

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "yaml"} {
		assert.NoError(t, FlagValidators(v, OutputValidator), v)
	}
	assert.Error(t, FlagValidators("raw", OutputValidator))
	assert.Error(t, FlagValidators("", OutputValidator))
}

func TestSeverityValidators(t *testing.T) {
	assert.NoError(t, SeverityValidator("warn"))
	assert.NoError(t, SeverityValidator("ERROR"))
	assert.Error(t, SeverityValidator("fatal"))

	assert.NoError(t, SeverityListValidator("info, warning"))
	assert.Error(t, SeverityListValidator("info,bogus"))
}

func TestFormatValidator(t *testing.T) {
	assert.NoError(t, FormatValidator("auto"))
	assert.NoError(t, FormatValidator("yaml"))
	assert.Error(t, FormatValidator("xml"))
}

func TestParseSeverities(t *testing.T) {
	got, err := parseSeverities("info,,warning ")
	require.NoError(t, err)
	assert.Equal(t, []severity.Severity{severity.Info, severity.Warning}, got)

	got, err = parseSeverities("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
