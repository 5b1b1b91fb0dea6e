// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/log"
)

// IgnoreRule describes differences that are known and accepted. Empty fields
// match anything. Class, Method and Field accept '*' (any run of characters)
// and '?' (any single character) wildcards.
type IgnoreRule struct {
	Code          int    `yaml:"code" json:"code"`
	Class         string `yaml:"class" json:"class"`
	Method        string `yaml:"method" json:"method"`
	Field         string `yaml:"field" json:"field"`
	Justification string `yaml:"justification" json:"justification"`
}

// Matches reports whether d is covered by the rule.
func (r IgnoreRule) Matches(d *difference.Difference) bool {
	if r.Code != 0 && r.Code != d.Code {
		return false
	}
	return wildcard(r.Class, d.Class) &&
		wildcard(r.Method, d.Method) &&
		wildcard(r.Field, d.Field)
}

// IgnoreRules is a Filter rejecting any difference matched by one of its
// rules.
type IgnoreRules []IgnoreRule

// Include implements Filter.
func (rules IgnoreRules) Include(d *difference.Difference) (bool, error) {
	for _, r := range rules {
		if r.Matches(d) {
			log.Tracef("ignored (%s): %s", r.Justification, d)
			return false, nil
		}
	}
	return true, nil
}

func (rules IgnoreRules) String() string {
	return fmt.Sprintf("ignore(%d rules)", len(rules))
}

// Validate checks that every rule constrains something.
func (rules IgnoreRules) Validate() error {
	for i, r := range rules {
		if r.Code == 0 && r.Class == "" && r.Method == "" && r.Field == "" {
			return fmt.Errorf("ignore rule %d matches every difference", i)
		}
	}
	return nil
}

// LoadIgnoreRules decodes rules from YAML. The document may either be a bare
// list of rules or a mapping with an "ignore" key holding the list.
func LoadIgnoreRules(r io.Reader) (IgnoreRules, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore rules: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse ignore rules: %w", err)
	}

	// Empty document.
	if len(node.Content) == 0 {
		return nil, nil
	}

	var rules IgnoreRules
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&rules)
	case yaml.MappingNode:
		var doc struct {
			Ignore IgnoreRules `yaml:"ignore"`
		}
		err = root.Decode(&doc)
		rules = doc.Ignore
	default:
		err = errors.New("expected a list of rules or an ignore mapping")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode ignore rules: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// wildcard matches value against a '*'/'?' pattern. An empty pattern matches
// anything.
func wildcard(pattern, value string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?") {
		return pattern == value
	}

	quoted := regexp.QuoteMeta(pattern)
	quoted = strings.ReplaceAll(quoted, `\*`, ".*")
	quoted = strings.ReplaceAll(quoted, `\?`, ".")
	return regexp.MustCompile("^" + quoted + "$").MatchString(value)
}
