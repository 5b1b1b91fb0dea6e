// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/severity"
)

// Columns are the table columns, in order.
var Columns = []string{"severity", "code", "class", "member", "message"}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Codes are integral.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Row flattens a difference into the column keys used by the table and by
// SortRows. "severity" holds the maximum severity.
func Row(d *difference.Difference) (map[string]interface{}, error) {
	doc, err := d.JSON()
	if err != nil {
		return nil, err
	}

	row := make(map[string]interface{}, len(Columns))
	for k, v := range gjson.Parse(doc).Map() {
		row[k] = v.Value()
	}
	row["severity"] = row["maximumSeverity"]
	row["member"] = d.Member()
	return row, nil
}

// SortRows sorts rows by a comma separated list of column keys. A leading "-"
// sorts that key descending and a leading "!" makes string comparison case
// sensitive. Severities compare by rank. The sort is stable, so an empty spec
// keeps the incoming order.
func SortRows(rows []map[string]interface{}, spec string) {
	if strings.TrimSpace(spec) == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(rows, func(one, two int) bool {
		for _, field := range fields {
			field = strings.TrimSpace(field)
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			if c := compareField(field, rows[one][field], rows[two][field], caseSensitive); c != 0 {
				if ascending {
					return c < 0
				}
				return c > 0
			}
		}
		return false
	})
}

// compareField returns -1, 0 or 1 comparing two column values.
func compareField(field string, one, two interface{}, caseSensitive bool) int {
	if strings.HasSuffix(strings.ToLower(field), "severity") {
		a, _ := severity.ParseSeverity(InterfaceToString(one))
		b, _ := severity.ParseSeverity(InterfaceToString(two))
		return a.Compare(b)
	}

	oneNum, oneOk := one.(float64)
	twoNum, twoOk := two.(float64)
	if oneOk && twoOk {
		switch {
		case oneNum < twoNum:
			return -1
		case oneNum > twoNum:
			return 1
		}
		return 0
	}

	// Fall back to string comparison which can also handle bools.
	oneStr := InterfaceToString(one)
	twoStr := InterfaceToString(two)
	if !caseSensitive {
		oneStr = strings.ToLower(oneStr)
		twoStr = strings.ToLower(twoStr)
	}
	return strings.Compare(oneStr, twoStr)
}
