// Package integrity checks the cross-reference invariants of a level:
// pvar table contiguity and placement reference validity. Findings
// are diagnostic only; nothing is ever corrected in place.
package integrity

import (
	"fmt"
	"sort"

	"github.com/ratchetmods/mobyswap/pkg/level"
)

// Kind classifies one finding.
type Kind int

const (
	// KindPVarGap reports a value missing from the assigned pvar
	// index sequence.
	KindPVarGap Kind = iota
	// KindModelRef reports a moby whose class id resolves to no model.
	KindModelRef
	// KindPVarRange reports a moby whose pvar index falls outside the
	// table.
	KindPVarRange
)

// String returns a short name for the finding kind.
func (k Kind) String() string {
	switch k {
	case KindPVarGap:
		return "pvar index gap"
	case KindModelRef:
		return "dangling model id"
	case KindPVarRange:
		return "pvar index out of range"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Violation is one individual finding. MobyID is -1 for level-wide
// findings; Value carries the offending or missing index.
type Violation struct {
	Kind   Kind
	MobyID int32
	Value  int32
}

// String formats the violation for reports and logs.
func (v Violation) String() string {
	if v.MobyID < 0 {
		return fmt.Sprintf("%s: %d", v.Kind, v.Value)
	}
	return fmt.Sprintf("moby %d: %s: %d", v.MobyID, v.Kind, v.Value)
}

// Report collects the findings of one check pass.
type Report struct {
	Violations []Violation
}

// OK reports whether the pass found nothing wrong.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Check runs every integrity check over the level. Violations are
// reported individually, never folded into one finding.
func Check(lvl *level.Level) Report {
	var report Report
	report.Violations = append(report.Violations, checkPVarContiguity(lvl)...)
	report.Violations = append(report.Violations, checkReferences(lvl)...)
	return report
}

// checkPVarContiguity verifies the assigned pvar indices cover 0..k-1
// with no holes. The -1 sentinel is excluded; shared indices are
// fine. Every missing value in a gap is reported on its own.
func checkPVarContiguity(lvl *level.Level) []Violation {
	var used []int32
	for i := range lvl.Mobys {
		if idx := lvl.Mobys[i].PVarIndex; idx >= 0 {
			used = append(used, idx)
		}
	}
	if len(used) == 0 {
		return nil
	}
	sort.Slice(used, func(i, j int) bool { return used[i] < used[j] })

	var out []Violation
	expect := int32(0)
	for _, idx := range used {
		if idx < expect {
			// Duplicate of an index already checked off.
			continue
		}
		for missing := expect; missing < idx; missing++ {
			out = append(out, Violation{Kind: KindPVarGap, MobyID: -1, Value: missing})
		}
		expect = idx + 1
	}
	return out
}

// checkReferences verifies each moby's class id resolves and its pvar
// index stays inside the table. Class ids are sparse, so that check
// is by existence; pvar indices are table positions and get a range
// check.
func checkReferences(lvl *level.Level) []Violation {
	var out []Violation
	tableSize := int32(len(lvl.PVarTable))

	for i := range lvl.Mobys {
		moby := &lvl.Mobys[i]
		if moby.ModelID < 0 || lvl.ModelByID(moby.ModelID) == nil {
			out = append(out, Violation{Kind: KindModelRef, MobyID: moby.ID, Value: moby.ModelID})
		}
		if moby.PVarIndex != -1 && (moby.PVarIndex < 0 || moby.PVarIndex >= tableSize) {
			out = append(out, Violation{Kind: KindPVarRange, MobyID: moby.ID, Value: moby.PVarIndex})
		}
	}
	return out
}
