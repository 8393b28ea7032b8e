package familylink

import (
	"slices"

	"github.com/gedtools/gedserve/internal/gedcom"
)

// TraverseRefs walks ascent steps toward parents, then descent steps
// toward children, and returns the identifiers of the people reached. The
// degree of kinship between the start person and each result is
// ascent + descent.
//
// Two rules shape the result set. People in the frontier held just before
// the final ascent step are excluded during descent, which keeps the
// direct line out of collateral results (so 1-up-1-down gives siblings,
// not the person themselves). And only when ascent is exactly 1 is the
// first descent step de-duplicated: with both parents known, each sibling
// is reached once through each parent. Deeper traversals are NOT globally
// de-duplicated, so a person reachable along several paths (double
// cousins, say) appears once per path.
func (fl *FamilyLink) TraverseRefs(indi string, ascent, descent int) []string {
	frontier := []string{indi}
	lastAncestors := []string{indi}
	for i := 0; i < ascent; i++ {
		lastAncestors = frontier
		var next []string
		for _, id := range frontier {
			father, mother := fl.Parents(id)
			if father.Exists() {
				next = append(next, father.Tag)
			}
			if mother.Exists() {
				next = append(next, mother.Tag)
			}
		}
		frontier = next
	}
	for k := 0; k < descent; k++ {
		var next []string
		for _, id := range frontier {
			for _, child := range fl.ChildRefs(id) {
				if !slices.Contains(lastAncestors, child) {
					next = append(next, child)
				}
			}
		}
		if k == 0 && ascent == 1 {
			next = dedup(next)
		}
		frontier = next
	}
	return frontier
}

// Traverse is TraverseRefs with each identifier resolved to its record.
func (fl *FamilyLink) Traverse(indi string, ascent, descent int) []*gedcom.Line {
	return fl.resolve(fl.TraverseRefs(indi, ascent, descent))
}

// RelativeRefs returns the identifiers of the person's relatives at the
// given generation and collateral distance. generationDiff is positive
// toward ancestors (1 parents, 2 grandparents) and negative toward
// descendants; collateralDiff spreads sideways (1 siblings, 2 cousins,
// combined: 1,1 gives uncles and aunts, -1,1 nephews and nieces).
func (fl *FamilyLink) RelativeRefs(indi string, generationDiff, collateralDiff int) []string {
	posGen, negGen := 0, 0
	if generationDiff >= 0 {
		posGen = generationDiff
	} else {
		negGen = -generationDiff
	}
	return fl.TraverseRefs(indi, posGen+collateralDiff, negGen+collateralDiff)
}

// Relatives is RelativeRefs with each identifier resolved to its record.
func (fl *FamilyLink) Relatives(indi string, generationDiff, collateralDiff int) []*gedcom.Line {
	return fl.resolve(fl.RelativeRefs(indi, generationDiff, collateralDiff))
}

// ByDegreeRefs returns the identifiers of every relative at exactly the
// given degree of kinship, concatenating the traversals of every
// ascent/descent split summing to degree.
func (fl *FamilyLink) ByDegreeRefs(indi string, degree int) []string {
	var out []string
	for ascent := 0; ascent <= degree; ascent++ {
		out = append(out, fl.TraverseRefs(indi, ascent, degree-ascent)...)
	}
	return out
}

// ByDegree is ByDegreeRefs with each identifier resolved to its record.
func (fl *FamilyLink) ByDegree(indi string, degree int) []*gedcom.Line {
	return fl.resolve(fl.ByDegreeRefs(indi, degree))
}

// dedup keeps the first occurrence of each identifier.
func dedup(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := refs[:0]
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
