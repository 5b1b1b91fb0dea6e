// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"sort"

	"github.com/yudai/gojsondiff"

	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/severity"
)

// Difference codes emitted by Compare.
const (
	CodeFieldAdded     = 6000
	CodeFieldChanged   = 6004
	CodeFieldRemoved   = 6011
	CodeMethodChanged  = 7005
	CodeMethodRemoved  = 7002
	CodeMethodAdded    = 7011
	CodeClassAdded     = 8000
	CodeClassRemoved   = 8001
	CodeSurfaceChanged = 9000
)

// memberKind describes one of the member sections of a class.
type memberKind struct {
	label                     string
	added, removed, changed   int
	addSev, removeSev, chgSev severity.Severity
}

var memberKinds = map[string]memberKind{
	"methods": {
		label: "Method",
		added: CodeMethodAdded, removed: CodeMethodRemoved, changed: CodeMethodChanged,
		addSev: severity.Info, removeSev: severity.Error, chgSev: severity.Error,
	},
	"fields": {
		label: "Field",
		added: CodeFieldAdded, removed: CodeFieldRemoved, changed: CodeFieldChanged,
		addSev: severity.Info, removeSev: severity.Error, chgSev: severity.Warning,
	},
}

// Compare diffs the before and after surfaces and reports every difference to l,
// followed by a single Stop. Differences are reported sorted by class, member
// and code so that the same inputs always produce the same event stream. The
// first listener error aborts the comparison and Stop is not called.
func Compare(before, after []byte, l difference.Listener) error {
	log.Debugf(">> differ.Compare() len(before)=%d len(after)=%d", len(before), len(after))

	delta, err := gojsondiff.New().Compare(before, after)
	if err != nil {
		return fmt.Errorf("failed to compare surfaces: %w", err)
	}

	var diffs []*difference.Difference
	if delta.Modified() {
		for _, d := range delta.Deltas() {
			diffs = append(diffs, classDeltas(d)...)
		}
	}

	sort.SliceStable(diffs, func(one, two int) bool {
		a, b := diffs[one], diffs[two]
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		if a.Member() != b.Member() {
			return a.Member() < b.Member()
		}
		return a.Code < b.Code
	})
	log.Debugf("surface differences: %d", len(diffs))

	for _, d := range diffs {
		if err := l.ReportDiff(d); err != nil {
			return err
		}
	}
	return l.Stop()
}

// classDeltas converts a top level delta, positioned at a class name.
func classDeltas(d gojsondiff.Delta) []*difference.Difference {
	class := position(d)

	switch d := d.(type) {
	case *gojsondiff.Added:
		return []*difference.Difference{{
			Code:     CodeClassAdded,
			Message:  fmt.Sprintf("Class %s added", class),
			Class:    class,
			Severity: severity.Info,
		}}
	case *gojsondiff.Deleted:
		return []*difference.Difference{{
			Code:     CodeClassRemoved,
			Message:  fmt.Sprintf("Class %s removed", class),
			Class:    class,
			Severity: severity.Error,
		}}
	case *gojsondiff.Object:
		var out []*difference.Difference
		for _, section := range d.Deltas {
			out = append(out, sectionDeltas(class, section)...)
		}
		return out
	}

	return []*difference.Difference{surfaceChanged(class, class)}
}

// sectionDeltas converts a delta positioned at a section ("methods",
// "fields") of class.
func sectionDeltas(class string, d gojsondiff.Delta) []*difference.Difference {
	name := position(d)
	kind, ok := memberKinds[name]
	if !ok {
		return []*difference.Difference{surfaceChanged(class, name)}
	}

	switch d := d.(type) {
	case *gojsondiff.Object:
		var out []*difference.Difference
		for _, m := range d.Deltas {
			out = append(out, memberDelta(class, kind, m))
		}
		return out
	case *gojsondiff.Added:
		return wholeSection(class, kind, d.Value, true)
	case *gojsondiff.Deleted:
		return wholeSection(class, kind, d.Value, false)
	}

	return []*difference.Difference{surfaceChanged(class, name)}
}

// memberDelta converts a delta positioned at a single member.
func memberDelta(class string, kind memberKind, d gojsondiff.Delta) *difference.Difference {
	member := position(d)

	switch d := d.(type) {
	case *gojsondiff.Added:
		return memberDiff(class, kind, member, kind.added, kind.addSev,
			fmt.Sprintf("%s '%s' has been added", kind.label, member))
	case *gojsondiff.Deleted:
		return memberDiff(class, kind, member, kind.removed, kind.removeSev,
			fmt.Sprintf("%s '%s' has been removed", kind.label, member))
	case *gojsondiff.TextDiff:
		return memberDiff(class, kind, member, kind.changed, kind.chgSev,
			fmt.Sprintf("%s '%s' changed from '%v' to '%v'", kind.label, member, d.OldValue, d.NewValue))
	case *gojsondiff.Modified:
		return memberDiff(class, kind, member, kind.changed, kind.chgSev,
			fmt.Sprintf("%s '%s' changed from '%v' to '%v'", kind.label, member, d.OldValue, d.NewValue))
	}

	return memberDiff(class, kind, member, kind.changed, kind.chgSev,
		fmt.Sprintf("%s '%s' changed", kind.label, member))
}

// wholeSection handles a "methods" or "fields" object that appeared or
// disappeared as a whole, reporting each of its members.
func wholeSection(class string, kind memberKind, value interface{}, added bool) []*difference.Difference {
	members, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}

	out := make([]*difference.Difference, 0, len(members))
	for member := range members {
		if added {
			out = append(out, memberDiff(class, kind, member, kind.added, kind.addSev,
				fmt.Sprintf("%s '%s' has been added", kind.label, member)))
		} else {
			out = append(out, memberDiff(class, kind, member, kind.removed, kind.removeSev,
				fmt.Sprintf("%s '%s' has been removed", kind.label, member)))
		}
	}
	return out
}

// memberDiff builds the difference for one method or field.
func memberDiff(class string, kind memberKind, member string, code int, sev severity.Severity, msg string) *difference.Difference {
	d := &difference.Difference{
		Code:     code,
		Message:  msg,
		Class:    class,
		Severity: sev,
	}
	if kind.label == "Field" {
		d.Field = member
	} else {
		d.Method = member
	}
	return d
}

// surfaceChanged covers structural changes that are not a class or member
// being added, removed or modified, such as a class entry changing shape.
func surfaceChanged(class, what string) *difference.Difference {
	return &difference.Difference{
		Code:     CodeSurfaceChanged,
		Message:  fmt.Sprintf("Surface entry '%s' changed", what),
		Class:    class,
		Severity: severity.Warning,
	}
}

// position returns the object key or array index a delta applies to.
func position(d gojsondiff.Delta) string {
	switch p := d.(type) {
	case interface{ PostPosition() gojsondiff.Position }:
		return p.PostPosition().String()
	case interface{ PrePosition() gojsondiff.Position }:
		return p.PrePosition().String()
	}
	return ""
}
