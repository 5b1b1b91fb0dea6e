// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/severity"
)

// exprRegex splits an expression into key, operator and target. The operator
// is one of = ^ ~ < > @ or /, optionally prefixed with '!'. Examples:
// "method" (key only), "class=com.acme.Widget" (key + operator + target),
// "method=" (key + operator, no target).
var exprRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// severityKeys are difference fields compared by severity rank rather than by
// their string names.
var severityKeys = map[string]bool{
	"severity":        true,
	"maximumSeverity": true,
	"binarySeverity":  true,
	"sourceSeverity":  true,
}

// ErrInvalidExpr is returned by BuildFilters for a malformed expression.
var ErrInvalidExpr = errors.New("invalid filter expression")

// Expr is a single parsed --filter expression. Key is a gjson path into the
// JSON form of a difference (see difference.Difference.JSON).
type Expr struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`

	re *regexp.Regexp
}

// BuildFilters parses a delimited filter specification into expressions. Any
// malformed entry fails the whole spec.
func BuildFilters(spec string) ([]Expr, error) {
	//nolint:prealloc
	var exprs []Expr

	if strings.TrimSpace(spec) == "" {
		return exprs, nil
	}

	delim := ","
	if d, ok := os.LookupEnv("APIDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, part := range strings.Split(spec, delim) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		expr, err := ParseExpr(part)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	log.Debugf("built %d filter expressions from %q", len(exprs), spec)
	return exprs, nil
}

// ParseExpr parses one key-operator-target expression.
func ParseExpr(s string) (Expr, error) {
	parts := exprRegex.FindStringSubmatch(s)
	if parts == nil {
		return Expr{}, fmt.Errorf("%w: %s", ErrInvalidExpr, s)
	}

	key := strings.TrimSpace(parts[1])
	if key == "" {
		return Expr{}, fmt.Errorf("%w: empty key in %s", ErrInvalidExpr, s)
	}

	operand := parts[2]
	negate := strings.HasPrefix(operand, "!")
	operand = strings.TrimPrefix(operand, "!")

	expr := Expr{
		Key:     key,
		Negate:  negate,
		Operand: operand,
		Value:   parts[3],
	}

	// Bad regexes and severities fail at parse time.
	switch {
	case operand == "/":
		re, err := regexp.Compile(expr.Value)
		if err != nil {
			return Expr{}, fmt.Errorf("%w: bad regex in %s: %v", ErrInvalidExpr, s, err)
		}
		expr.re = re
	case severityKeys[key] && strings.ContainsAny(operand, "=~<>"):
		if _, err := severity.ParseSeverity(expr.Value); err != nil {
			return Expr{}, fmt.Errorf("%w: %v", ErrInvalidExpr, err)
		}
	}

	return expr, nil
}

// String returns the expression in its source form.
func (e Expr) String() string {
	op := e.Operand
	if e.Negate {
		op = "!" + op
	}
	return e.Key + op + e.Value
}

// Include implements Filter. A key that is absent from the difference rejects
// it; a bare key with no operator keeps any difference where the key is
// present and non-empty.
func (e Expr) Include(d *difference.Difference) (bool, error) {
	doc, err := d.JSON()
	if err != nil {
		return false, err
	}

	value := gjson.Get(doc, e.Key)
	if !value.Exists() || value.Type == gjson.Null {
		return false, nil
	}

	if e.Operand == "" {
		return (value.String() != "") == !e.Negate, nil
	}

	if severityKeys[e.Key] && e.Operand != "@" {
		return e.checkSeverityOperand(value.String())
	}

	switch value.Type {
	case gjson.Number:
		return e.checkNumericOperand(value.Float())
	case gjson.String, gjson.True, gjson.False:
		return e.checkStringOperand(value.String())
	default:
		return e.checkContainsOperand(value)
	}
}

// checkSeverityOperand compares severities by rank so that "maximumSeverity>info"
// means warnings and errors rather than a string comparison of names.
func (e Expr) checkSeverityOperand(raw string) (bool, error) {
	got, err := severity.ParseSeverity(raw)
	if err != nil {
		return false, err
	}
	want, err := severity.ParseSeverity(e.Value)
	if err != nil {
		return false, err
	}

	switch e.Operand {
	case "=", "~":
		return (got == want) == !e.Negate, nil
	case ">":
		return (got > want) == !e.Negate, nil
	case "<":
		return (got < want) == !e.Negate, nil
	}
	return e.checkStringOperand(raw)
}

// checkNumericOperand compares a numeric field against the target using
// numeric semantics. Supported operands: =, >, < and their negations.
func (e Expr) checkNumericOperand(value float64) (bool, error) {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(e.Value), 64)
	if err != nil {
		return false, fmt.Errorf("invalid numeric value %q for %s", e.Value, e.Key)
	}

	switch e.Operand {
	case "=":
		return (value == tgt) == !e.Negate, nil
	case ">":
		return (value > tgt) == !e.Negate, nil
	case "<":
		return (value < tgt) == !e.Negate, nil
	default:
		return false, fmt.Errorf("unsupported numeric operand: %s", e.Operand)
	}
}

// checkStringOperand evaluates a string comparison style expression against
// value.
func (e Expr) checkStringOperand(value string) (bool, error) {
	switch e.Operand {
	case "=":
		return (value == e.Value) == !e.Negate, nil
	case "~":
		return strings.EqualFold(value, e.Value) == !e.Negate, nil
	case "^":
		return strings.HasPrefix(value, e.Value) == !e.Negate, nil
	case ">":
		return (value > e.Value) == !e.Negate, nil
	case "<":
		return (value < e.Value) == !e.Negate, nil
	case "@":
		return strings.Contains(value, e.Value) == !e.Negate, nil
	case "/":
		re := e.re
		if re == nil {
			var err error
			if re, err = regexp.Compile(e.Value); err != nil {
				return false, fmt.Errorf("invalid regex: %s", e.Value)
			}
		}
		return re.MatchString(value) == !e.Negate, nil
	default:
		return false, fmt.Errorf("unsupported filtering operand: %s", e.Operand)
	}
}

// checkContainsOperand evaluates a membership expression (operand '@')
// against array or object values.
func (e Expr) checkContainsOperand(value gjson.Result) (bool, error) {
	if e.Operand != "@" {
		return false, fmt.Errorf("operand %s not supported on %s", e.Operand, e.Key)
	}

	found := false
	switch {
	case value.IsArray():
		for _, item := range value.Array() {
			if item.String() == e.Value {
				found = true
				break
			}
		}
	case value.IsObject():
		_, found = value.Map()[e.Value]
	default:
		return false, fmt.Errorf("unsupported type for contains filtering: %s", value.Type)
	}
	return found == !e.Negate, nil
}
