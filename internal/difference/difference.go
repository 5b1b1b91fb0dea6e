// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package difference

import (
	"encoding/json"
	"strings"

	"github.com/tfctl/apidiff/internal/severity"
)

// Difference is one detected change between two versions of an API surface.
// Consumers treat it as immutable once it has been reported.
type Difference struct {
	// Code identifies the kind of change (e.g. 7002 for a removed method).
	Code int `yaml:"code" json:"code"`
	// Message is the human readable description.
	Message string `yaml:"message" json:"message"`
	// Class is the fully qualified name of the affected type.
	Class string `yaml:"class" json:"class"`
	// Method is the affected method signature, if any.
	Method string `yaml:"method,omitempty" json:"method,omitempty"`
	// Field is the affected field name, if any.
	Field string `yaml:"field,omitempty" json:"field,omitempty"`
	// Severity, when set, overrides the binary and source severities.
	Severity severity.Severity `yaml:"severity,omitempty" json:"severity,omitempty"`
	// BinarySeverity is the impact on already compiled clients.
	BinarySeverity severity.Severity `yaml:"binarySeverity,omitempty" json:"binarySeverity,omitempty"`
	// SourceSeverity is the impact on clients recompiled from source.
	SourceSeverity severity.Severity `yaml:"sourceSeverity,omitempty" json:"sourceSeverity,omitempty"`
}

// MaximumSeverity returns the severity used for ranking and counting. An
// explicit Severity wins; otherwise the higher of the binary and source
// severities is used. None means the difference has no severity at all.
func (d *Difference) MaximumSeverity() severity.Severity {
	if d.Severity.IsSet() {
		return d.Severity
	}
	return severity.Max(d.BinarySeverity, d.SourceSeverity)
}

// Member returns the affected method or field, whichever is set.
func (d *Difference) Member() string {
	if d.Method != "" {
		return d.Method
	}
	return d.Field
}

// String renders a one line summary, mostly for logging.
func (d *Difference) String() string {
	var sb strings.Builder
	sb.WriteString(d.MaximumSeverity().String())
	sb.WriteString(" ")
	sb.WriteString(d.Class)
	if m := d.Member(); m != "" {
		sb.WriteString("#")
		sb.WriteString(m)
	}
	if d.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(d.Message)
	}
	return sb.String()
}

// JSON returns the JSON document for d with the computed maximumSeverity
// included, so path based filters can address it.
func (d *Difference) JSON() (string, error) {
	type alias Difference
	doc := struct {
		*alias
		MaximumSeverity severity.Severity `json:"maximumSeverity"`
	}{
		alias:           (*alias)(d),
		MaximumSeverity: d.MaximumSeverity(),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
