// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/tfctl/apidiff/internal/severity"
	"github.com/tfctl/apidiff/internal/source"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// SeverityValidator accepts a single severity name.
func SeverityValidator(value any) error {
	_, err := severity.ParseSeverity(fmt.Sprint(value))
	return err
}

// SeverityListValidator accepts a comma-separated list of severity names.
func SeverityListValidator(value any) error {
	_, err := parseSeverities(fmt.Sprint(value))
	return err
}

// FormatValidator accepts a recorded stream format.
func FormatValidator(value any) error {
	_, err := source.ParseFormat(fmt.Sprint(value))
	return err
}

// parseSeverities parses "info,warning" into severities. Blank entries are
// skipped.
func parseSeverities(list string) ([]severity.Severity, error) {
	var sevs []severity.Severity
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sev, err := severity.ParseSeverity(part)
		if err != nil {
			return nil, err
		}
		sevs = append(sevs, sev)
	}
	return sevs, nil
}
